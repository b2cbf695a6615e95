package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/mentorhub/internal/app/models/dto"
	"github.com/yigit/mentorhub/internal/pkg/apperrors"
	"github.com/yigit/mentorhub/internal/pkg/auth"
)

// Gin context keys set by JWTAuth
const (
	ContextUserID    = "userID"
	ContextEmail     = "email"
	ContextRole      = "role"
	ContextTokenID   = "tokenID"
	ContextExpiresAt = "tokenExpiresAt"
)

// TokenValidator parses and verifies access tokens
type TokenValidator interface {
	ValidateToken(tokenString string) (*auth.Claims, error)
}

// RevocationChecker reports whether a token ID has been revoked
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthMiddleware for authentication
type AuthMiddleware struct {
	tokens      TokenValidator
	revocations RevocationChecker
	logger      zerolog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware. revocations may be nil.
func NewAuthMiddleware(tokens TokenValidator, revocations RevocationChecker, logger zerolog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:      tokens,
		revocations: revocations,
		logger:      logger,
	}
}

// JWTAuth middleware for JWT token validation
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authentication required", "Authorization header missing")
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authentication required", "Invalid token format")
			return
		}

		claims, err := m.tokens.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, apperrors.ErrTokenExpired) {
				abortUnauthorized(c, dto.ErrorCodeExpiredToken, "Authentication failed", "Token has expired")
				return
			}
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Authentication failed", "Invalid token")
			return
		}

		if m.revocations != nil {
			revoked, err := m.revocations.IsRevoked(c.Request.Context(), claims.ID)
			switch {
			case err != nil:
				// the revocation list is unavailable; the signature and expiry still hold
				m.logger.Warn().Err(err).Str("jti", claims.ID).Msg("Could not check token revocation")
			case revoked:
				abortUnauthorized(c, dto.ErrorCodeRevokedToken, "Authentication failed", "Token has been revoked")
				return
			}
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextTokenID, claims.ID)
		if claims.ExpiresAt != nil {
			c.Set(ContextExpiresAt, claims.ExpiresAt.Time)
		}

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, message, details string) {
	detail := dto.NewErrorDetail(code, message).WithDetails(details)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
}

// GetUserID returns the authenticated user's id
func GetUserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok && id > 0
}

// GetTokenID returns the jti and expiry of the presented token
func GetTokenID(c *gin.Context) (string, time.Time, bool) {
	jti := c.GetString(ContextTokenID)
	exp := c.GetTime(ContextExpiresAt)
	return jti, exp, jti != ""
}
