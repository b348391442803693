package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/niorc/backend/internal/domain/identity"
	"github.com/niorc/backend/internal/domain/shared"
	"github.com/niorc/backend/internal/infrastructure/auth"
	"github.com/niorc/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindByAuthSubject(ctx context.Context, authSubject string) (*identity.Profile, error) {
	args := m.Called(ctx, authSubject)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindAll(ctx context.Context, status *identity.OnboardingStatus, filter shared.Filter) ([]identity.Profile, error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.Profile), args.Error(1)
}

func (m *MockProfileRepository) Count(ctx context.Context, status *identity.OnboardingStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProfileRepository) ExistsByAuthSubject(ctx context.Context, authSubject string) (bool, error) {
	args := m.Called(ctx, authSubject)
	return args.Bool(0), args.Error(1)
}

func (m *MockProfileRepository) Save(ctx context.Context, profile *identity.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
	})
}

func testProfile(t *testing.T, status identity.OnboardingStatus) *identity.Profile {
	t.Helper()
	profile, err := identity.NewProfile("owner@example.com", "hashed", "Chai Point")
	require.NoError(t, err)
	profile.Status = status
	return profile
}

func accessTokenFor(t *testing.T, jwtService *auth.JWTService, vendorID uuid.UUID) string {
	t.Helper()
	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		VendorID:    vendorID,
		AuthSubject: "owner@example.com",
	})
	require.NoError(t, err)
	return pair.AccessToken
}

func TestJWTAuth_ValidToken(t *testing.T) {
	jwtService := newTestJWTService()
	vendorID := uuid.New()
	token := accessTokenFor(t, jwtService, vendorID)

	router := gin.New()
	router.Use(JWTAuth(jwtService))
	router.GET("/test", func(c *gin.Context) {
		claims := GetClaims(c)
		require.NotNil(t, claims)
		assert.Equal(t, vendorID.String(), claims.VendorID)

		id, ok := GetVendorID(c)
		require.True(t, ok)
		assert.Equal(t, vendorID, id)

		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(AuthHeader, BearerScheme+token)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	router := gin.New()
	router.Use(JWTAuth(newTestJWTService()))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "ERR_UNAUTHORIZED")
}

func TestJWTAuth_MalformedHeader(t *testing.T) {
	router := gin.New()
	router.Use(JWTAuth(newTestJWTService()))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(AuthHeader, "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	router := gin.New()
	router.Use(JWTAuth(newTestJWTService()))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(AuthHeader, BearerScheme+"not-a-real-token")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_RefreshTokenRejected(t *testing.T) {
	jwtService := newTestJWTService()
	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		VendorID:    uuid.New(),
		AuthSubject: "owner@example.com",
	})
	require.NoError(t, err)

	router := gin.New()
	router.Use(JWTAuth(jwtService))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(AuthHeader, BearerScheme+pair.RefreshToken)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireApproved_ActiveVendor(t *testing.T) {
	jwtService := newTestJWTService()
	vendorID := uuid.New()
	token := accessTokenFor(t, jwtService, vendorID)

	profiles := new(MockProfileRepository)
	profiles.On("FindByID", mock.Anything, vendorID).Return(testProfile(t, identity.OnboardingActive), nil)

	router := gin.New()
	router.Use(JWTAuth(jwtService), RequireApproved(profiles))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(AuthHeader, BearerScheme+token)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	profiles.AssertExpectations(t)
}

func TestRequireApproved_PendingVendor(t *testing.T) {
	jwtService := newTestJWTService()
	vendorID := uuid.New()
	token := accessTokenFor(t, jwtService, vendorID)

	profiles := new(MockProfileRepository)
	profiles.On("FindByID", mock.Anything, vendorID).Return(testProfile(t, identity.OnboardingPending), nil)

	router := gin.New()
	router.Use(JWTAuth(jwtService), RequireApproved(profiles))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(AuthHeader, BearerScheme+token)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "VENDOR_NOT_APPROVED")
}

// A token issued while the vendor was active must lose access once the
// profile is moved back out of active. The gate reads the live status.
func TestRequireApproved_RevokedAfterIssue(t *testing.T) {
	jwtService := newTestJWTService()
	vendorID := uuid.New()
	token := accessTokenFor(t, jwtService, vendorID)

	profiles := new(MockProfileRepository)
	profiles.On("FindByID", mock.Anything, vendorID).Return(testProfile(t, identity.OnboardingRejected), nil)

	router := gin.New()
	router.Use(JWTAuth(jwtService), RequireApproved(profiles))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(AuthHeader, BearerScheme+token)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireApproved_UnknownVendor(t *testing.T) {
	jwtService := newTestJWTService()
	vendorID := uuid.New()
	token := accessTokenFor(t, jwtService, vendorID)

	profiles := new(MockProfileRepository)
	profiles.On("FindByID", mock.Anything, vendorID).Return(nil, shared.ErrNotFound)

	router := gin.New()
	router.Use(JWTAuth(jwtService), RequireApproved(profiles))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(AuthHeader, BearerScheme+token)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin_NonAdmin(t *testing.T) {
	jwtService := newTestJWTService()
	vendorID := uuid.New()
	token := accessTokenFor(t, jwtService, vendorID)

	profiles := new(MockProfileRepository)
	profiles.On("FindByID", mock.Anything, vendorID).Return(testProfile(t, identity.OnboardingActive), nil)

	router := gin.New()
	router.Use(JWTAuth(jwtService), RequireAdmin(profiles))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(AuthHeader, BearerScheme+token)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "ERR_FORBIDDEN")
}

func TestRequireAdmin_Admin(t *testing.T) {
	jwtService := newTestJWTService()
	vendorID := uuid.New()
	token := accessTokenFor(t, jwtService, vendorID)

	admin := testProfile(t, identity.OnboardingActive)
	admin.IsAdmin = true

	profiles := new(MockProfileRepository)
	profiles.On("FindByID", mock.Anything, vendorID).Return(admin, nil)

	router := gin.New()
	router.Use(JWTAuth(jwtService), RequireAdmin(profiles))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(AuthHeader, BearerScheme+token)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
