package identity

import (
	"context"

	"github.com/google/uuid"
	domain "github.com/niorc/backend/internal/domain/identity"
	"github.com/niorc/backend/internal/infrastructure/cache"
	"go.uber.org/zap"
)

// ProfileService handles vendor profile reads and updates
type ProfileService struct {
	profileRepo domain.ProfileRepository
	flagCache   cache.FlagCache
	logger      *zap.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(profileRepo domain.ProfileRepository, flagCache cache.FlagCache, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		flagCache:   flagCache,
		logger:      logger,
	}
}

// Get returns a vendor's own profile
func (s *ProfileService) Get(ctx context.Context, profileID uuid.UUID) (*ProfileResponse, error) {
	profile, err := s.profileRepo.FindByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	resp := NewProfileResponse(profile)
	return &resp, nil
}

// Update patches a vendor's own profile; nil fields stay unchanged
func (s *ProfileService) Update(ctx context.Context, profileID uuid.UUID, input UpdateProfileInput) (*ProfileResponse, error) {
	profile, err := s.profileRepo.FindByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	if err := profile.Update(input.BusinessName, input.OwnerName, input.Phone, input.Email, input.Address); err != nil {
		return nil, err
	}

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}

	resp := NewProfileResponse(profile)
	return &resp, nil
}

// Flags returns a vendor's feature flag set, served from cache when fresh
func (s *ProfileService) Flags(ctx context.Context, profileID uuid.UUID) (domain.FlagSet, error) {
	if flags, err := s.flagCache.Get(ctx, profileID); err == nil && flags != nil {
		return flags, nil
	}

	profile, err := s.profileRepo.FindByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	flags := profile.Flags
	if flags == nil {
		flags = domain.FlagSet{}
	}
	if err := s.flagCache.Set(ctx, profileID, flags, 0); err != nil {
		s.logger.Warn("Failed to cache vendor flags", zap.Error(err))
	}
	return flags, nil
}

// SetFlag turns a feature flag on or off and invalidates the cached set
func (s *ProfileService) SetFlag(ctx context.Context, profileID uuid.UUID, name string, enabled bool) (domain.FlagSet, error) {
	profile, err := s.profileRepo.FindByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	if err := profile.SetFlag(name, enabled); err != nil {
		return nil, err
	}

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}

	if err := s.flagCache.Delete(ctx, profileID); err != nil {
		s.logger.Warn("Failed to invalidate vendor flag cache", zap.Error(err))
	}

	return profile.Flags, nil
}
