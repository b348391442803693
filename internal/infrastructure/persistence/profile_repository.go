package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/niorc/backend/internal/domain/identity"
	"github.com/niorc/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormProfileRepository implements ProfileRepository using GORM.
// Profiles are the tenant roots, so this repository is deliberately not
// vendor-scoped; the admin gate in the interface layer guards listings.
type GormProfileRepository struct {
	db *gorm.DB
}

// NewGormProfileRepository creates a new GormProfileRepository
func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// FindByID finds a profile by its ID
func (r *GormProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Profile, error) {
	var profile identity.Profile
	if err := conn(ctx, r.db).First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// FindByAuthSubject finds the profile registered for an auth subject
func (r *GormProfileRepository) FindByAuthSubject(ctx context.Context, authSubject string) (*identity.Profile, error) {
	var profile identity.Profile
	if err := conn(ctx, r.db).
		Where("auth_subject = ?", strings.ToLower(authSubject)).
		First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// FindAll lists profiles, optionally restricted to one onboarding status
func (r *GormProfileRepository) FindAll(ctx context.Context, status *identity.OnboardingStatus, filter shared.Filter) ([]identity.Profile, error) {
	var profiles []identity.Profile
	query := conn(ctx, r.db).Model(&identity.Profile{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("business_name ILIKE ? OR owner_name ILIKE ? OR phone ILIKE ?", pattern, pattern, pattern)
	}

	query = query.Order("created_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	if err := query.Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// Count counts profiles, optionally restricted to one onboarding status
func (r *GormProfileRepository) Count(ctx context.Context, status *identity.OnboardingStatus) (int64, error) {
	var count int64
	query := conn(ctx, r.db).Model(&identity.Profile{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByAuthSubject reports whether a profile exists for the subject
func (r *GormProfileRepository) ExistsByAuthSubject(ctx context.Context, authSubject string) (bool, error) {
	var count int64
	if err := conn(ctx, r.db).
		Model(&identity.Profile{}).
		Where("auth_subject = ?", strings.ToLower(authSubject)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a profile
func (r *GormProfileRepository) Save(ctx context.Context, profile *identity.Profile) error {
	return conn(ctx, r.db).Save(profile).Error
}

var _ identity.ProfileRepository = (*GormProfileRepository)(nil)
