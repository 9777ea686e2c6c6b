package middleware

import (
	"net/http"
	"strings"

	"roombook/internal/domain/user"
	"roombook/internal/handler/httperr"
	"roombook/internal/pkg/cookie"
	"roombook/internal/usecase"

	"github.com/gin-gonic/gin"
)

const ctxIdentityKey = "auth_identity"

type AuthMiddleware struct {
	validator usecase.TokenValidator
}

func NewAuthMiddleware(validator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{validator: validator}
}

// RequireAuth rejects requests without a valid access token. The token is
// read from the auth cookie first, then from the Authorization header.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, "authentication required")
			return
		}

		identity, err := m.validator.ValidateToken(token)
		if err != nil {
			httperr.AbortWithError(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		c.Set(ctxIdentityKey, identity)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if token := cookie.GetAccessToken(c); token != "" {
		return token
	}

	authHeader := c.GetHeader("Authorization")
	if after, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
		return after
	}
	return ""
}

// GetIdentity returns the authenticated identity set by RequireAuth.
func GetIdentity(c *gin.Context) (user.Identity, bool) {
	v, exists := c.Get(ctxIdentityKey)
	if !exists {
		return user.Identity{}, false
	}
	identity, ok := v.(user.Identity)
	if !ok || identity.IsZero() {
		return user.Identity{}, false
	}
	return identity, true
}
