package identity

import (
	"time"

	"github.com/google/uuid"
	domain "github.com/niorc/backend/internal/domain/identity"
)

// RegisterInput carries a vendor registration request
type RegisterInput struct {
	AuthSubject  string
	Password     string
	BusinessName string
}

// LoginInput carries a login request
type LoginInput struct {
	AuthSubject string
	Password    string
}

// AuthResult is returned after a successful login or refresh
type AuthResult struct {
	AccessToken           string          `json:"access_token"`
	RefreshToken          string          `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time       `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time       `json:"refresh_token_expires_at"`
	TokenType             string          `json:"token_type"`
	Profile               ProfileResponse `json:"profile"`
}

// UpdateProfileInput carries a profile patch; nil fields stay unchanged
type UpdateProfileInput struct {
	BusinessName *string
	OwnerName    *string
	Phone        *string
	Email        *string
	Address      *string
}

// ProfileResponse is the outward view of a vendor profile
type ProfileResponse struct {
	ID           uuid.UUID               `json:"id"`
	AuthSubject  string                  `json:"auth_subject"`
	BusinessName string                  `json:"business_name"`
	OwnerName    string                  `json:"owner_name,omitempty"`
	Phone        string                  `json:"phone,omitempty"`
	Email        string                  `json:"email,omitempty"`
	Address      string                  `json:"address,omitempty"`
	Status       domain.OnboardingStatus `json:"status"`
	IsAdmin      bool                    `json:"is_admin,omitempty"`
	Flags        domain.FlagSet          `json:"flags"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

// NewProfileResponse maps a domain profile to its outward view
func NewProfileResponse(p *domain.Profile) ProfileResponse {
	flags := p.Flags
	if flags == nil {
		flags = domain.FlagSet{}
	}
	return ProfileResponse{
		ID:           p.ID,
		AuthSubject:  p.AuthSubject,
		BusinessName: p.BusinessName,
		OwnerName:    p.OwnerName,
		Phone:        p.Phone,
		Email:        p.Email,
		Address:      p.Address,
		Status:       p.Status,
		IsAdmin:      p.IsAdmin,
		Flags:        flags,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// TransitionInput carries an admin-side onboarding transition request
type TransitionInput struct {
	ProfileID uuid.UUID
	Target    domain.OnboardingStatus
}
