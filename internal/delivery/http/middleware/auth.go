package middleware

import (
	"net/http"
	"strings"

	"github.com/DylanL0ng/student-housing-sub001/internal/usecase/session"
	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	verifier *session.Verifier
}

func NewAuthMiddleware(verifier *session.Verifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// RequireSession rejects requests without a valid bearer token. This is
// the one transport-level failure that does not use the 200 envelope; an
// invalid session is not an application outcome.
func (m *AuthMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":   "error",
				"response": "Missing session token",
			})
			return
		}

		userID, valid := m.verifier.Verify(token)
		if !valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":   "error",
				"response": "Invalid session",
			})
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}
