package identity

import (
	"context"

	domain "github.com/niorc/backend/internal/domain/identity"
	"github.com/niorc/backend/internal/domain/shared"
	"github.com/niorc/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthService handles registration, login and token refresh
type AuthService struct {
	profileRepo domain.ProfileRepository
	jwtService  *auth.JWTService
	logger      *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(profileRepo domain.ProfileRepository, jwtService *auth.JWTService, logger *zap.Logger) *AuthService {
	return &AuthService{
		profileRepo: profileRepo,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// Register creates a vendor profile in pending status. Exactly one profile
// may exist per auth subject; the account cannot use vendor operations
// until an administrator approves it.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*ProfileResponse, error) {
	if len(input.Password) < 8 {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}

	exists, err := s.profileRepo.ExistsByAuthSubject(ctx, input.AuthSubject)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A profile already exists for this account")
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to process registration")
	}

	profile, err := domain.NewProfile(input.AuthSubject, hash, input.BusinessName)
	if err != nil {
		return nil, err
	}

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info("Vendor registered",
		zap.String("profile_id", profile.ID.String()),
		zap.String("business_name", profile.BusinessName))

	resp := NewProfileResponse(profile)
	return &resp, nil
}

// Login authenticates a vendor and returns a token pair. A pending or
// rejected profile can still log in; the approval gate guards the vendor
// operations themselves.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	profile, err := s.profileRepo.FindByAuthSubject(ctx, input.AuthSubject)
	if err != nil {
		s.logger.Warn("Login attempt for unknown subject", zap.String("auth_subject", input.AuthSubject))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid account or password")
	}

	if !auth.VerifyPassword(profile.PasswordHash, input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("profile_id", profile.ID.String()))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid account or password")
	}

	return s.issueTokens(profile)
}

// Refresh exchanges a valid refresh token for a new token pair. Claims are
// re-derived from the live profile, so an admin flag or status change takes
// effect at the next refresh.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid or expired refresh token")
	}

	profile, err := s.profileRepo.FindByAuthSubject(ctx, claims.AuthSubject)
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Profile no longer exists")
	}

	return s.issueTokens(profile)
}

// Me returns the profile for an auth subject
func (s *AuthService) Me(ctx context.Context, authSubject string) (*ProfileResponse, error) {
	profile, err := s.profileRepo.FindByAuthSubject(ctx, authSubject)
	if err != nil {
		return nil, err
	}
	resp := NewProfileResponse(profile)
	return &resp, nil
}

func (s *AuthService) issueTokens(profile *domain.Profile) (*AuthResult, error) {
	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		VendorID:    profile.ID,
		AuthSubject: profile.AuthSubject,
		IsAdmin:     profile.IsAdmin,
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	return &AuthResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		Profile:               NewProfileResponse(profile),
	}, nil
}
