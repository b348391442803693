package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	loyaltyapp "github.com/niorc/backend/internal/application/loyalty"
)

// LoyaltyHandler handles reward and point ledger endpoints
type LoyaltyHandler struct {
	BaseHandler
	loyaltyService *loyaltyapp.LoyaltyService
}

// NewLoyaltyHandler creates a new LoyaltyHandler
func NewLoyaltyHandler(loyaltyService *loyaltyapp.LoyaltyService) *LoyaltyHandler {
	return &LoyaltyHandler{loyaltyService: loyaltyService}
}

// CreateRewardRequest is the body for creating a reward
type CreateRewardRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=200"`
	PointsCost int    `json:"points_cost" binding:"required,min=1"`
}

// UpdateRewardRequest patches a reward
type UpdateRewardRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=1,max=200"`
	PointsCost *int    `json:"points_cost" binding:"omitempty,min=1"`
	Active     *bool   `json:"active"`
}

// RedeemRequest exchanges a customer's points for a reward
type RedeemRequest struct {
	CustomerID string `json:"customer_id" binding:"required,uuid"`
	RewardID   string `json:"reward_id" binding:"required,uuid"`
}

// RegisterRoutes registers the loyalty endpoints
func (h *LoyaltyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rewards := rg.Group("/rewards")
	{
		rewards.POST("", h.CreateReward)
		rewards.GET("", h.ListRewards)
		rewards.GET("/:id", h.GetReward)
		rewards.PATCH("/:id", h.UpdateReward)
		rewards.DELETE("/:id", h.DeleteReward)
	}
	rg.GET("/customers/:id/points", h.Ledger)
	rg.POST("/redemptions", h.Redeem)
}

// CreateReward creates a reward
func (h *LoyaltyHandler) CreateReward(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}

	var req CreateRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	reward, err := h.loyaltyService.CreateReward(c.Request.Context(), vendor, loyaltyapp.CreateRewardInput{
		Name:       req.Name,
		PointsCost: req.PointsCost,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, reward)
}

// ListRewards lists the vendor's rewards
func (h *LoyaltyHandler) ListRewards(c *gin.Context) {
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

	result, err := h.loyaltyService.ListRewards(c.Request.Context(), vendor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Paginated(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetReward returns one reward
func (h *LoyaltyHandler) GetReward(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid reward ID")
		return
	}

	reward, err := h.loyaltyService.GetReward(c.Request.Context(), vendor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, reward)
}

// UpdateReward patches a reward
func (h *LoyaltyHandler) UpdateReward(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid reward ID")
		return
	}

	var req UpdateRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	reward, err := h.loyaltyService.UpdateReward(c.Request.Context(), vendor, id, loyaltyapp.UpdateRewardInput{
		Name:       req.Name,
		PointsCost: req.PointsCost,
		Active:     req.Active,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, reward)
}

// DeleteReward removes a reward
func (h *LoyaltyHandler) DeleteReward(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid reward ID")
		return
	}

	if err := h.loyaltyService.DeleteReward(c.Request.Context(), vendor, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Ledger lists a customer's point movements
func (h *LoyaltyHandler) Ledger(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}
	customerID, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}
	filter, err := listFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entries, err := h.loyaltyService.Ledger(c.Request.Context(), vendor, customerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// Redeem exchanges points for a reward
func (h *LoyaltyHandler) Redeem(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}

	var req RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}
	rewardID, err := uuid.Parse(req.RewardID)
	if err != nil {
		h.BadRequest(c, "Invalid reward ID")
		return
	}

	customer, err := h.loyaltyService.Redeem(c.Request.Context(), vendor, customerID, rewardID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}
