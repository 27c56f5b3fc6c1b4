package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/zvrva/littlelemon/internal/domain"
)

// TokenVerifier is the slice of the auth capability the middleware needs.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*domain.User, error)
}

// TokenAuth rejects requests without a valid bearer credential before they
// reach any store. Both "Bearer <tok>" and "Token <tok>" schemes are
// accepted.
func TokenAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := credentialFromHeader(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			return
		}

		user, err := verifier.VerifyToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			return
		}

		c.Set("user", user)
		c.Next()
	}
}

func credentialFromHeader(header string) string {
	for _, scheme := range []string{"Bearer ", "Token "} {
		if strings.HasPrefix(header, scheme) {
			return strings.TrimSpace(strings.TrimPrefix(header, scheme))
		}
	}
	return ""
}
