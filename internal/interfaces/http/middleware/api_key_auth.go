package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"jadara-labs.backend/internal/domain/entities"
)

const (
	// ApiKeyHeader carries the raw key for programmatic callers
	ApiKeyHeader = "X-API-Key"
)

// ApiKeyAuthenticator resolves a raw API key to its owner
type ApiKeyAuthenticator interface {
	Authenticate(ctx context.Context, apiKey string) (*entities.User, error)
}

// DualAuthMiddleware accepts either a bearer token or an API key. A request
// carrying both is authenticated by the API key; a request carrying neither
// is rejected.
func DualAuthMiddleware(jwtAuth gin.HandlerFunc, authenticator ApiKeyAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := strings.TrimSpace(c.GetHeader(ApiKeyHeader))
		if apiKey == "" {
			jwtAuth(c)
			return
		}

		user, err := authenticator.Authenticate(c.Request.Context(), apiKey)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid API key",
			})
			return
		}

		c.Set(UserIDKey, user.ID)
		c.Set(UserEmailKey, user.Email)
		c.Set(UserRoleKey, string(user.Role))

		c.Next()
	}
}
