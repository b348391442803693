package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/niorc/backend/internal/application/identity"
)

// ProfileHandler handles vendor self-service profile endpoints. These are
// reachable in any onboarding status; only business data is gated.
type ProfileHandler struct {
	BaseHandler
	profileService *identityapp.ProfileService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileService *identityapp.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// UpdateProfileRequest patches the profile's business metadata
type UpdateProfileRequest struct {
	BusinessName *string `json:"business_name" binding:"omitempty,min=1,max=200"`
	OwnerName    *string `json:"owner_name" binding:"omitempty,max=100"`
	Phone        *string `json:"phone" binding:"omitempty,max=20"`
	Email        *string `json:"email" binding:"omitempty,email,max=200"`
	Address      *string `json:"address" binding:"omitempty,max=1000"`
}

// RegisterRoutes registers the profile endpoints
func (h *ProfileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	profile := rg.Group("/profile")
	{
		profile.GET("", h.Get)
		profile.PATCH("", h.Update)
		profile.GET("/flags", h.Flags)
	}
}

// Get returns the calling vendor's profile
func (h *ProfileHandler) Get(c *gin.Context) {
	id, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}

	profile, err := h.profileService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// Update patches the calling vendor's profile
func (h *ProfileHandler) Update(c *gin.Context) {
	id, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	profile, err := h.profileService.Update(c.Request.Context(), id, identityapp.UpdateProfileInput{
		BusinessName: req.BusinessName,
		OwnerName:    req.OwnerName,
		Phone:        req.Phone,
		Email:        req.Email,
		Address:      req.Address,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// Flags returns the calling vendor's feature flags
func (h *ProfileHandler) Flags(c *gin.Context) {
	id, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}

	flags, err := h.profileService.Flags(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, flags)
}
