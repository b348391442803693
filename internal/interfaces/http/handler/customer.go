package handler

import (
	"github.com/gin-gonic/gin"
	crmapp "github.com/niorc/backend/internal/application/crm"
)

// CustomerHandler handles customer endpoints
type CustomerHandler struct {
	BaseHandler
	customerService *crmapp.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *crmapp.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// CreateCustomerRequest is the body for creating a customer
type CreateCustomerRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=200"`
	Phone string `json:"phone" binding:"omitempty,max=20"`
	Email string `json:"email" binding:"omitempty,email,max=200"`
	Notes string `json:"notes" binding:"omitempty,max=2000"`
}

// UpdateCustomerRequest patches a customer
type UpdateCustomerRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=200"`
	Phone *string `json:"phone" binding:"omitempty,max=20"`
	Email *string `json:"email" binding:"omitempty,email,max=200"`
	Notes *string `json:"notes" binding:"omitempty,max=2000"`
}

// RegisterRoutes registers the customer endpoints
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	{
		customers.POST("", h.Create)
		customers.GET("", h.List)
		customers.GET("/:id", h.Get)
		customers.PATCH("/:id", h.Update)
		customers.DELETE("/:id", h.Delete)
		customers.POST("/:id/visits", h.RecordVisit)
	}
}

// Create creates a customer
func (h *CustomerHandler) Create(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}

	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customer, err := h.customerService.Create(c.Request.Context(), vendor, crmapp.CreateCustomerInput{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
		Notes: req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, customer)
}

// List lists the vendor's customers
func (h *CustomerHandler) List(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}

	filter, err := listFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.customerService.List(c.Request.Context(), vendor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Paginated(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get returns one customer
func (h *CustomerHandler) Get(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	customer, err := h.customerService.Get(c.Request.Context(), vendor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// Update patches a customer
func (h *CustomerHandler) Update(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customer, err := h.customerService.Update(c.Request.Context(), vendor, id, crmapp.UpdateCustomerInput{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
		Notes: req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// Delete removes a customer
func (h *CustomerHandler) Delete(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	if err := h.customerService.Delete(c.Request.Context(), vendor, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RecordVisit increments a customer's visit counter
func (h *CustomerHandler) RecordVisit(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	customer, err := h.customerService.RecordVisit(c.Request.Context(), vendor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}
