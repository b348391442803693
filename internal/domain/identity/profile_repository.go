package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/niorc/backend/internal/domain/shared"
)

// ProfileRepository defines the interface for profile persistence.
// Profiles are the tenant roots themselves, so operations here are not
// vendor-scoped; callers gate cross-vendor listings behind the admin check.
type ProfileRepository interface {
	// FindByID finds a profile by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Profile, error)

	// FindByAuthSubject finds the (unique) profile for an auth subject
	FindByAuthSubject(ctx context.Context, authSubject string) (*Profile, error)

	// FindAll lists profiles, optionally restricted to one status
	FindAll(ctx context.Context, status *OnboardingStatus, filter shared.Filter) ([]Profile, error)

	// Count counts profiles, optionally restricted to one status
	Count(ctx context.Context, status *OnboardingStatus) (int64, error)

	// ExistsByAuthSubject reports whether a profile exists for the subject
	ExistsByAuthSubject(ctx context.Context, authSubject string) (bool, error)

	// Save creates or updates a profile
	Save(ctx context.Context, profile *Profile) error
}
