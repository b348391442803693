package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	billingapp "github.com/niorc/backend/internal/application/billing"
	"github.com/shopspring/decimal"
)

// BillHandler handles billing endpoints
type BillHandler struct {
	BaseHandler
	billingService *billingapp.BillingService
}

// NewBillHandler creates a new BillHandler
func NewBillHandler(billingService *billingapp.BillingService) *BillHandler {
	return &BillHandler{billingService: billingService}
}

// BillLineRequest references one menu item to sell. No price field:
// amounts always come from the stored menu.
type BillLineRequest struct {
	MenuItemID string `json:"menu_item_id" binding:"required,uuid"`
	Quantity   int    `json:"quantity" binding:"required,min=1"`
}

// CreateBillRequest is the body for creating a bill
type CreateBillRequest struct {
	Items         []BillLineRequest `json:"items" binding:"required,min=1,dive"`
	CustomerID    *string           `json:"customer_id" binding:"omitempty,uuid"`
	Discount      string            `json:"discount" binding:"omitempty,money"`
	ExtraCharges  string            `json:"extra_charges" binding:"omitempty,money"`
	PaymentMethod string            `json:"payment_method" binding:"omitempty,oneof=cash card upi other"`
}

// RegisterRoutes registers the billing endpoints
func (h *BillHandler) RegisterRoutes(rg *gin.RouterGroup) {
	bills := rg.Group("/bills")
	{
		bills.POST("", h.Create)
		bills.GET("", h.List)
		bills.GET("/:id", h.Get)
		bills.POST("/:id/payment", h.MarkPaid)
		bills.POST("/:id/cancellation", h.Cancel)
		bills.GET("/:id/pdf", h.RenderPDF)
	}
}

// Create creates a bill
func (h *BillHandler) Create(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}

	var req CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := billingapp.CreateBillInput{
		Discount:      decimal.Zero,
		ExtraCharges:  decimal.Zero,
		PaymentMethod: req.PaymentMethod,
	}
	var err error
	if req.Discount != "" {
		if input.Discount, err = decimal.NewFromString(req.Discount); err != nil {
			h.BadRequest(c, "Invalid discount")
			return
		}
	}
	if req.ExtraCharges != "" {
		if input.ExtraCharges, err = decimal.NewFromString(req.ExtraCharges); err != nil {
			h.BadRequest(c, "Invalid extra charges")
			return
		}
	}
	if req.CustomerID != nil {
		id, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			h.BadRequest(c, "Invalid customer ID")
			return
		}
		input.CustomerID = &id
	}
	for _, line := range req.Items {
		id, err := uuid.Parse(line.MenuItemID)
		if err != nil {
			h.BadRequest(c, "Invalid menu item ID")
			return
		}
		input.Items = append(input.Items, billingapp.BillLineInput{
			MenuItemID: id,
			Quantity:   line.Quantity,
		})
	}

	bill, err := h.billingService.Create(c.Request.Context(), vendor, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, bill)
}

// List lists the vendor's bills
func (h *BillHandler) List(c *gin.Context) {
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

	result, err := h.billingService.List(c.Request.Context(), vendor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Paginated(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get returns one bill
func (h *BillHandler) Get(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid bill ID")
		return
	}

	bill, err := h.billingService.Get(c.Request.Context(), vendor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, bill)
}

// MarkPaid settles a bill
func (h *BillHandler) MarkPaid(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid bill ID")
		return
	}

	bill, err := h.billingService.MarkPaid(c.Request.Context(), vendor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, bill)
}

// Cancel voids a bill
func (h *BillHandler) Cancel(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid bill ID")
		return
	}

	bill, err := h.billingService.Cancel(c.Request.Context(), vendor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, bill)
}

// RenderPDF returns a printable document for the bill
func (h *BillHandler) RenderPDF(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid bill ID")
		return
	}

	pdf, err := h.billingService.RenderPDF(c.Request.Context(), vendor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/pdf", pdf)
}
