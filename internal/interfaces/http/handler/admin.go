package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/niorc/backend/internal/application/identity"
	"github.com/niorc/backend/internal/domain/identity"
)

// AdminHandler handles the cross-vendor admin surface: onboarding
// transitions and per-vendor feature flags.
type AdminHandler struct {
	BaseHandler
	onboardingService *identityapp.OnboardingService
	profileService    *identityapp.ProfileService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(onboardingService *identityapp.OnboardingService, profileService *identityapp.ProfileService) *AdminHandler {
	return &AdminHandler{
		onboardingService: onboardingService,
		profileService:    profileService,
	}
}

// TransitionRequest names the target onboarding status
type TransitionRequest struct {
	Status string `json:"status" binding:"required,oneof=pending active rejected"`
}

// SetFlagRequest flips one feature flag for a vendor
type SetFlagRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	Enabled bool   `json:"enabled"`
}

// listProfilesRequest extends listing with an optional status filter
type listProfilesRequest struct {
	Status string `form:"status" binding:"omitempty,oneof=pending active rejected"`
}

// RegisterRoutes registers the admin endpoints
func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	vendors := rg.Group("/vendors")
	{
		vendors.GET("", h.List)
		vendors.GET("/:id", h.Get)
		vendors.POST("/:id/transition", h.Transition)
		vendors.PUT("/:id/flags", h.SetFlag)
	}
}

// List lists vendor profiles across all tenants, optionally by status
func (h *AdminHandler) List(c *gin.Context) {
	filter, err := listFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var req listProfilesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	var status *identity.OnboardingStatus
	if req.Status != "" {
		s := identity.OnboardingStatus(req.Status)
		status = &s
	}

	result, err := h.onboardingService.List(c.Request.Context(), status, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Paginated(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get returns one vendor profile
func (h *AdminHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid profile ID")
		return
	}

	profile, err := h.onboardingService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// Transition moves a vendor through the onboarding state machine
func (h *AdminHandler) Transition(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid profile ID")
		return
	}

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	profile, err := h.onboardingService.Transition(c.Request.Context(), identityapp.TransitionInput{
		ProfileID: id,
		Target:    identity.OnboardingStatus(req.Status),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// SetFlag flips a feature flag on a vendor's profile
func (h *AdminHandler) SetFlag(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid profile ID")
		return
	}

	var req SetFlagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	flags, err := h.profileService.SetFlag(c.Request.Context(), id, req.Name, req.Enabled)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, flags)
}
