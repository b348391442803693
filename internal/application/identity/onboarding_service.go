package identity

import (
	"context"

	"github.com/google/uuid"
	domain "github.com/niorc/backend/internal/domain/identity"
	"github.com/niorc/backend/internal/domain/notify"
	"github.com/niorc/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OnboardingService drives the vendor approval state machine. All
// transitions are admin-only; vendors can read but never change their own
// status.
type OnboardingService struct {
	profileRepo      domain.ProfileRepository
	notificationRepo notify.NotificationRepository
	logger           *zap.Logger
}

// NewOnboardingService creates a new onboarding service
func NewOnboardingService(profileRepo domain.ProfileRepository, notificationRepo notify.NotificationRepository, logger *zap.Logger) *OnboardingService {
	return &OnboardingService{
		profileRepo:      profileRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// List lists profiles for the admin surface, optionally by status
func (s *OnboardingService) List(ctx context.Context, status *domain.OnboardingStatus, filter shared.Filter) (shared.Paginated[ProfileResponse], error) {
	profiles, err := s.profileRepo.FindAll(ctx, status, filter)
	if err != nil {
		return shared.Paginated[ProfileResponse]{}, err
	}
	total, err := s.profileRepo.Count(ctx, status)
	if err != nil {
		return shared.Paginated[ProfileResponse]{}, err
	}

	items := make([]ProfileResponse, len(profiles))
	for i := range profiles {
		items[i] = NewProfileResponse(&profiles[i])
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// Get returns any profile by ID for the admin surface
func (s *OnboardingService) Get(ctx context.Context, profileID uuid.UUID) (*ProfileResponse, error) {
	profile, err := s.profileRepo.FindByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	resp := NewProfileResponse(profile)
	return &resp, nil
}

// Transition moves a profile to the target onboarding status. Disallowed
// edges surface as INVALID_STATE; the transition table is the single
// source of truth for what is allowed.
func (s *OnboardingService) Transition(ctx context.Context, input TransitionInput) (*ProfileResponse, error) {
	if !input.Target.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown onboarding status")
	}

	profile, err := s.profileRepo.FindByID(ctx, input.ProfileID)
	if err != nil {
		return nil, err
	}

	from := profile.Status
	if err := profile.TransitionTo(input.Target); err != nil {
		return nil, err
	}

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info("Onboarding transition",
		zap.String("profile_id", profile.ID.String()),
		zap.String("from", string(from)),
		zap.String("to", string(profile.Status)))

	s.notifyTransition(ctx, profile, from)

	resp := NewProfileResponse(profile)
	return &resp, nil
}

// notifyTransition drops an in-app notification about the status change.
// Best-effort: a failure here never rolls back the transition.
func (s *OnboardingService) notifyTransition(ctx context.Context, profile *domain.Profile, from domain.OnboardingStatus) {
	var title, body string
	switch profile.Status {
	case domain.OnboardingActive:
		title = "Account approved"
		body = "Your account has been approved. All features are now available."
	case domain.OnboardingRejected:
		title = "Account rejected"
		body = "Your account has been rejected. Contact support for details."
	case domain.OnboardingPending:
		title = "Account under review"
		body = "Your account is back under review."
	default:
		return
	}

	notification, err := notify.NewNotification(profile.ID, title, body)
	if err != nil {
		return
	}
	if err := s.notificationRepo.Create(ctx, profile.ID, notification); err != nil {
		s.logger.Warn("Failed to create onboarding notification",
			zap.String("profile_id", profile.ID.String()),
			zap.String("from", string(from)),
			zap.Error(err))
	}
}
