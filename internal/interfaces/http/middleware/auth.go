// Package middleware holds the gin middleware chain: request identity,
// authentication, onboarding gates and CORS.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/niorc/backend/internal/domain/identity"
	"github.com/niorc/backend/internal/infrastructure/auth"
	"github.com/niorc/backend/internal/infrastructure/logger"
	"github.com/niorc/backend/internal/interfaces/http/dto"
)

// Context keys set by the authentication middleware
const (
	ClaimsKey    = "jwt_claims"
	VendorIDKey  = "jwt_vendor_id"
	AuthHeader   = "Authorization"
	BearerScheme = "Bearer "
)

// JWTAuth validates the bearer token and threads the vendor identity
// through both the gin context and the request context. Every scoped
// repository call downstream reads the vendor ID back out of the request
// context.
func JWTAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(AuthHeader)
		if header == "" || !strings.HasPrefix(header, BearerScheme) {
			abortUnauthorized(c, "Missing or malformed authorization header")
			return
		}

		token := strings.TrimPrefix(header, BearerScheme)
		claims, err := jwtService.ValidateAccessToken(token)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(VendorIDKey, claims.VendorID)

		ctx := c.Request.Context()
		reqLogger := logger.FromContext(ctx)
		ctx, reqLogger = logger.WithVendorID(ctx, reqLogger, claims.VendorID)
		ctx, _ = logger.WithUserID(ctx, reqLogger, claims.AuthSubject)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetClaims returns the validated claims, or nil before authentication
func GetClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(ClaimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetVendorID returns the authenticated vendor's profile ID
func GetVendorID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString(VendorIDKey))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// RequireApproved gates business-data endpoints on the live onboarding
// status. The check hits the store on purpose: a token issued before a
// suspension must not keep its access.
func RequireApproved(profiles identity.ProfileRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorID, ok := GetVendorID(c)
		if !ok {
			abortUnauthorized(c, "Missing vendor identity")
			return
		}

		profile, err := profiles.FindByID(c.Request.Context(), vendorID)
		if err != nil {
			abortUnauthorized(c, "Unknown vendor identity")
			return
		}
		if !profile.IsApproved() {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse("VENDOR_NOT_APPROVED", "Vendor account has not been approved yet"))
			return
		}
		c.Next()
	}
}

// RequireAdmin gates the admin surface on the live profile's admin flag.
// Failing the check is always an explicit 403, never an empty result.
func RequireAdmin(profiles identity.ProfileRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorID, ok := GetVendorID(c)
		if !ok {
			abortUnauthorized(c, "Missing vendor identity")
			return
		}

		profile, err := profiles.FindByID(c.Request.Context(), vendorID)
		if err != nil {
			abortUnauthorized(c, "Unknown vendor identity")
			return
		}
		if !profile.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Admin access required"))
			return
		}
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(dto.ErrCodeUnauthorized, message))
}
