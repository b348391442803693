package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	opsapp "github.com/niorc/backend/internal/application/ops"
)

// OpsHandler handles tables, staff, attendance and expense endpoints
type OpsHandler struct {
	BaseHandler
	opsService *opsapp.OpsService
}

// NewOpsHandler creates a new OpsHandler
func NewOpsHandler(opsService *opsapp.OpsService) *OpsHandler {
	return &OpsHandler{opsService: opsService}
}

// CreateTableRequest is the body for creating a dining table
type CreateTableRequest struct {
	Number int `json:"number" binding:"required,min=1"`
	Seats  int `json:"seats" binding:"required,min=1,max=100"`
}

// SetOccupancyRequest flips a table's occupancy
type SetOccupancyRequest struct {
	Occupied *bool `json:"occupied" binding:"required"`
}

// CreateStaffRequest is the body for adding a staff member
type CreateStaffRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=200"`
	Role  string `json:"role" binding:"required,min=1,max=100"`
	Phone string `json:"phone" binding:"omitempty,max=20"`
}

// CreateExpenseRequest records an expense
type CreateExpenseRequest struct {
	Category   string `json:"category" binding:"required,min=1,max=100"`
	Amount     string `json:"amount" binding:"required,money"`
	Note       string `json:"note" binding:"omitempty,max=500"`
	IncurredAt string `json:"incurred_at" binding:"omitempty"`
}

// RegisterRoutes registers the operations endpoints
func (h *OpsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	tables := rg.Group("/tables")
	{
		tables.POST("", h.CreateTable)
		tables.GET("", h.ListTables)
		tables.PUT("/:id/occupancy", h.SetOccupancy)
		tables.DELETE("/:id", h.DeleteTable)
	}
	staff := rg.Group("/staff")
	{
		staff.POST("", h.CreateStaff)
		staff.GET("", h.ListStaff)
		staff.POST("/:id/deactivation", h.DeactivateStaff)
		staff.POST("/:id/checkin", h.CheckIn)
		staff.POST("/:id/checkout", h.CheckOut)
		staff.GET("/:id/attendance", h.Attendance)
	}
	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.CreateExpense)
		expenses.GET("", h.ListExpenses)
		expenses.DELETE("/:id", h.DeleteExpense)
	}
}

// CreateTable creates a dining table
func (h *OpsHandler) CreateTable(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}

	var req CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	table, err := h.opsService.CreateTable(c.Request.Context(), vendor, opsapp.CreateTableInput{
		Number: req.Number,
		Seats:  req.Seats,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, table)
}

// ListTables lists the vendor's tables
func (h *OpsHandler) ListTables(c *gin.Context) {
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

	result, err := h.opsService.ListTables(c.Request.Context(), vendor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Paginated(c, result.Items, result.Total, result.Page, result.PageSize)
}

// SetOccupancy marks a table occupied or free
func (h *OpsHandler) SetOccupancy(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid table ID")
		return
	}

	var req SetOccupancyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	table, err := h.opsService.SetTableOccupied(c.Request.Context(), vendor, id, *req.Occupied)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, table)
}

// DeleteTable removes a table
func (h *OpsHandler) DeleteTable(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid table ID")
		return
	}

	if err := h.opsService.DeleteTable(c.Request.Context(), vendor, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateStaff adds a staff member
func (h *OpsHandler) CreateStaff(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}

	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	staff, err := h.opsService.CreateStaff(c.Request.Context(), vendor, opsapp.CreateStaffInput{
		Name:  req.Name,
		Role:  req.Role,
		Phone: req.Phone,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, staff)
}

// ListStaff lists the vendor's staff
func (h *OpsHandler) ListStaff(c *gin.Context) {
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

	result, err := h.opsService.ListStaff(c.Request.Context(), vendor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Paginated(c, result.Items, result.Total, result.Page, result.PageSize)
}

// DeactivateStaff marks a staff member inactive
func (h *OpsHandler) DeactivateStaff(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid staff ID")
		return
	}

	staff, err := h.opsService.DeactivateStaff(c.Request.Context(), vendor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, staff)
}

// CheckIn opens an attendance record for a staff member
func (h *OpsHandler) CheckIn(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid staff ID")
		return
	}

	attendance, err := h.opsService.CheckIn(c.Request.Context(), vendor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, attendance)
}

// CheckOut closes the open attendance record for a staff member
func (h *OpsHandler) CheckOut(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid staff ID")
		return
	}

	attendance, err := h.opsService.CheckOut(c.Request.Context(), vendor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, attendance)
}

// Attendance lists a staff member's attendance records
func (h *OpsHandler) Attendance(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid staff ID")
		return
	}
	filter, err := listFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entries, err := h.opsService.Attendance(c.Request.Context(), vendor, id, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// CreateExpense records an expense
func (h *OpsHandler) CreateExpense(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	amount, ok := parseAmount(&h.BaseHandler, c, req.Amount, "amount")
	if !ok {
		return
	}

	incurredAt := time.Now()
	if req.IncurredAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.IncurredAt)
		if err != nil {
			h.BadRequest(c, "Invalid incurred_at, expected RFC3339")
			return
		}
		incurredAt = parsed
	}

	expense, err := h.opsService.CreateExpense(c.Request.Context(), vendor, opsapp.CreateExpenseInput{
		Category:   req.Category,
		Amount:     amount,
		Note:       req.Note,
		IncurredAt: incurredAt,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, expense)
}

// ListExpenses lists the vendor's expenses
func (h *OpsHandler) ListExpenses(c *gin.Context) {
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

	result, err := h.opsService.ListExpenses(c.Request.Context(), vendor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Paginated(c, result.Items, result.Total, result.Page, result.PageSize)
}

// DeleteExpense removes an expense record
func (h *OpsHandler) DeleteExpense(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	if err := h.opsService.DeleteExpense(c.Request.Context(), vendor, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
