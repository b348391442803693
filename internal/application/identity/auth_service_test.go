package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	domain "github.com/niorc/backend/internal/domain/identity"
	"github.com/niorc/backend/internal/domain/notify"
	"github.com/niorc/backend/internal/domain/shared"
	"github.com/niorc/backend/internal/infrastructure/auth"
	"github.com/niorc/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockProfileRepository is a mock implementation of ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindByAuthSubject(ctx context.Context, authSubject string) (*domain.Profile, error) {
	args := m.Called(ctx, authSubject)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindAll(ctx context.Context, status *domain.OnboardingStatus, filter shared.Filter) ([]domain.Profile, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).([]domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) Count(ctx context.Context, status *domain.OnboardingStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProfileRepository) ExistsByAuthSubject(ctx context.Context, authSubject string) (bool, error) {
	args := m.Called(ctx, authSubject)
	return args.Bool(0), args.Error(1)
}

func (m *MockProfileRepository) Save(ctx context.Context, profile *domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

// MockNotificationRepository is a mock implementation of NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) FindByID(ctx context.Context, vendorID, id uuid.UUID) (*notify.Notification, error) {
	args := m.Called(ctx, vendorID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notify.Notification), args.Error(1)
}

func (m *MockNotificationRepository) FindAll(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]notify.Notification, error) {
	args := m.Called(ctx, vendorID, filter)
	return args.Get(0).([]notify.Notification), args.Error(1)
}

func (m *MockNotificationRepository) Count(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, vendorID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, vendorID uuid.UUID) (int64, error) {
	args := m.Called(ctx, vendorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) Create(ctx context.Context, vendorID uuid.UUID, notification *notify.Notification) error {
	args := m.Called(ctx, vendorID, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) Save(ctx context.Context, vendorID uuid.UUID, notification *notify.Notification) error {
	args := m.Called(ctx, vendorID, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) Delete(ctx context.Context, vendorID, id uuid.UUID) error {
	args := m.Called(ctx, vendorID, id)
	return args.Error(0)
}

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "test",
	})
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	return de.Code
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pending profile", func(t *testing.T) {
		repo := new(MockProfileRepository)
		svc := NewAuthService(repo, testJWTService(), zap.NewNop())

		repo.On("ExistsByAuthSubject", ctx, "ravi@chai.in").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*identity.Profile")).Return(nil)

		resp, err := svc.Register(ctx, RegisterInput{
			AuthSubject:  "ravi@chai.in",
			Password:     "secret-password",
			BusinessName: "Ravi Tea Stall",
		})

		require.NoError(t, err)
		assert.Equal(t, domain.OnboardingPending, resp.Status)
		assert.Equal(t, "Ravi Tea Stall", resp.BusinessName)
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicate subject", func(t *testing.T) {
		repo := new(MockProfileRepository)
		svc := NewAuthService(repo, testJWTService(), zap.NewNop())

		repo.On("ExistsByAuthSubject", ctx, "ravi@chai.in").Return(true, nil)

		_, err := svc.Register(ctx, RegisterInput{
			AuthSubject:  "ravi@chai.in",
			Password:     "secret-password",
			BusinessName: "Ravi Tea Stall",
		})

		assert.Equal(t, "ALREADY_EXISTS", domainCode(t, err))
	})

	t.Run("rejects short password", func(t *testing.T) {
		repo := new(MockProfileRepository)
		svc := NewAuthService(repo, testJWTService(), zap.NewNop())

		_, err := svc.Register(ctx, RegisterInput{
			AuthSubject:  "ravi@chai.in",
			Password:     "short",
			BusinessName: "Ravi Tea Stall",
		})

		assert.Equal(t, "INVALID_PASSWORD", domainCode(t, err))
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	newProfile := func(t *testing.T, password string) *domain.Profile {
		t.Helper()
		hash, err := auth.HashPassword(password)
		require.NoError(t, err)
		profile, err := domain.NewProfile("ravi@chai.in", hash, "Ravi Tea Stall")
		require.NoError(t, err)
		return profile
	}

	t.Run("returns tokens for valid credentials", func(t *testing.T) {
		repo := new(MockProfileRepository)
		svc := NewAuthService(repo, testJWTService(), zap.NewNop())
		profile := newProfile(t, "secret-password")

		repo.On("FindByAuthSubject", ctx, "ravi@chai.in").Return(profile, nil)

		result, err := svc.Login(ctx, LoginInput{AuthSubject: "ravi@chai.in", Password: "secret-password"})

		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		assert.Equal(t, profile.ID, result.Profile.ID)
	})

	t.Run("pending profile can still log in", func(t *testing.T) {
		repo := new(MockProfileRepository)
		svc := NewAuthService(repo, testJWTService(), zap.NewNop())
		profile := newProfile(t, "secret-password")
		require.Equal(t, domain.OnboardingPending, profile.Status)

		repo.On("FindByAuthSubject", ctx, "ravi@chai.in").Return(profile, nil)

		result, err := svc.Login(ctx, LoginInput{AuthSubject: "ravi@chai.in", Password: "secret-password"})

		require.NoError(t, err)
		assert.Equal(t, domain.OnboardingPending, result.Profile.Status)
	})

	t.Run("wrong password and unknown subject look identical", func(t *testing.T) {
		repo := new(MockProfileRepository)
		svc := NewAuthService(repo, testJWTService(), zap.NewNop())
		profile := newProfile(t, "secret-password")

		repo.On("FindByAuthSubject", ctx, "ravi@chai.in").Return(profile, nil)
		repo.On("FindByAuthSubject", ctx, "ghost@chai.in").Return(nil, shared.ErrNotFound)

		_, wrongPass := svc.Login(ctx, LoginInput{AuthSubject: "ravi@chai.in", Password: "wrong"})
		_, unknown := svc.Login(ctx, LoginInput{AuthSubject: "ghost@chai.in", Password: "whatever"})

		assert.Equal(t, "INVALID_CREDENTIALS", domainCode(t, wrongPass))
		assert.Equal(t, "INVALID_CREDENTIALS", domainCode(t, unknown))
		assert.Equal(t, wrongPass.Error(), unknown.Error())
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("re-derives claims from the live profile", func(t *testing.T) {
		repo := new(MockProfileRepository)
		jwt := testJWTService()
		svc := NewAuthService(repo, jwt, zap.NewNop())

		hash, err := auth.HashPassword("secret-password")
		require.NoError(t, err)
		profile, err := domain.NewProfile("ravi@chai.in", hash, "Ravi Tea Stall")
		require.NoError(t, err)

		pair, err := jwt.GenerateTokenPair(auth.GenerateTokenInput{
			VendorID:    profile.ID,
			AuthSubject: profile.AuthSubject,
		})
		require.NoError(t, err)

		// status changed since the token was issued
		require.NoError(t, profile.TransitionTo(domain.OnboardingActive))
		repo.On("FindByAuthSubject", ctx, "ravi@chai.in").Return(profile, nil)

		result, err := svc.Refresh(ctx, pair.RefreshToken)

		require.NoError(t, err)
		assert.Equal(t, domain.OnboardingActive, result.Profile.Status)
	})

	t.Run("rejects an access token used as refresh token", func(t *testing.T) {
		repo := new(MockProfileRepository)
		jwt := testJWTService()
		svc := NewAuthService(repo, jwt, zap.NewNop())

		pair, err := jwt.GenerateTokenPair(auth.GenerateTokenInput{
			VendorID:    uuid.New(),
			AuthSubject: "ravi@chai.in",
		})
		require.NoError(t, err)

		_, err = svc.Refresh(ctx, pair.AccessToken)
		assert.Equal(t, "UNAUTHORIZED", domainCode(t, err))
	})
}
