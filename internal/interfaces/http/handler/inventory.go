package handler

import (
	"github.com/gin-gonic/gin"
	inventoryapp "github.com/niorc/backend/internal/application/inventory"
	"github.com/shopspring/decimal"
)

// InventoryHandler handles stock endpoints
type InventoryHandler struct {
	BaseHandler
	inventoryService *inventoryapp.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService *inventoryapp.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// CreateInventoryItemRequest is the body for creating a stock record
type CreateInventoryItemRequest struct {
	Name              string `json:"name" binding:"required,min=1,max=200"`
	Unit              string `json:"unit" binding:"omitempty,max=20"`
	Stock             string `json:"stock" binding:"omitempty,money"`
	LowStockThreshold string `json:"low_stock_threshold" binding:"omitempty,money"`
}

// AdjustStockRequest moves stock in or out
type AdjustStockRequest struct {
	Quantity  string `json:"quantity" binding:"required,money"`
	Direction string `json:"direction" binding:"required,oneof=in out"`
}

// SetThresholdRequest sets the low-stock threshold
type SetThresholdRequest struct {
	Threshold string `json:"threshold" binding:"required,money"`
}

// RegisterRoutes registers the inventory endpoints
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	inv := rg.Group("/inventory")
	{
		inv.POST("", h.Create)
		inv.GET("", h.List)
		inv.GET("/low-stock", h.LowStock)
		inv.GET("/:id", h.Get)
		inv.POST("/:id/adjustments", h.Adjust)
		inv.PUT("/:id/threshold", h.SetThreshold)
		inv.DELETE("/:id", h.Delete)
	}
}

func parseAmount(h *BaseHandler, c *gin.Context, raw, field string) (decimal.Decimal, bool) {
	if raw == "" {
		return decimal.Zero, true
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		h.BadRequest(c, "Invalid "+field)
		return decimal.Zero, false
	}
	return d, true
}

// Create creates a stock record
func (h *InventoryHandler) Create(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}

	var req CreateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	stock, ok := parseAmount(&h.BaseHandler, c, req.Stock, "stock")
	if !ok {
		return
	}
	threshold, ok := parseAmount(&h.BaseHandler, c, req.LowStockThreshold, "threshold")
	if !ok {
		return
	}

	item, err := h.inventoryService.Create(c.Request.Context(), vendor, inventoryapp.CreateItemInput{
		Name:              req.Name,
		Unit:              req.Unit,
		Stock:             stock,
		LowStockThreshold: threshold,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// List lists the vendor's stock records
func (h *InventoryHandler) List(c *gin.Context) {
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

	result, err := h.inventoryService.List(c.Request.Context(), vendor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Paginated(c, result.Items, result.Total, result.Page, result.PageSize)
}

// LowStock lists items at or below their threshold
func (h *InventoryHandler) LowStock(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}

	items, err := h.inventoryService.LowStock(c.Request.Context(), vendor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// Get returns one stock record
func (h *InventoryHandler) Get(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid inventory item ID")
		return
	}

	item, err := h.inventoryService.Get(c.Request.Context(), vendor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Adjust moves stock in or out under a row lock
func (h *InventoryHandler) Adjust(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid inventory item ID")
		return
	}

	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	quantity, err := decimal.NewFromString(req.Quantity)
	if err != nil {
		h.BadRequest(c, "Invalid quantity")
		return
	}

	item, err := h.inventoryService.Adjust(c.Request.Context(), vendor, id, inventoryapp.AdjustStockInput{
		Quantity:  quantity,
		Direction: req.Direction,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// SetThreshold sets a stock record's low-stock threshold
func (h *InventoryHandler) SetThreshold(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid inventory item ID")
		return
	}

	var req SetThresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	threshold, err := decimal.NewFromString(req.Threshold)
	if err != nil {
		h.BadRequest(c, "Invalid threshold")
		return
	}

	item, err := h.inventoryService.SetThreshold(c.Request.Context(), vendor, id, threshold)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Delete removes a stock record
func (h *InventoryHandler) Delete(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid inventory item ID")
		return
	}

	if err := h.inventoryService.Delete(c.Request.Context(), vendor, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
