package middlewares

import (
	"net/http"
	"strings"

	"github.com/freshbite/shop/internal/auth"
	"github.com/gin-gonic/gin"
)

// Keep this small interface so tests can fake it easily.
type TokenVerifier interface {
	VerifyToken(token string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	jwt TokenVerifier
}

func NewAuthMiddleware(jwt TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt}
}

// RequireAuth gates a route on a valid session token. The Authorization
// header carries the raw token; a "Bearer " prefix is tolerated since most
// HTTP clients add one, but it is not required. Auth failures are 400s, the
// same bucket as any other malformed request in this API.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("Authorization"))
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))

		if raw == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": gin.H{
					"code":    "token_missing",
					"message": "Authorization token is missing",
				},
			})
			return
		}

		claims, err := m.jwt.VerifyToken(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": gin.H{
					"code":    "invalid_token",
					"message": "Invalid or expired token",
				},
			})
			return
		}

		// Stash the resolved identity on the request context; the token is
		// not checked against the store, so this is whatever it asserted.
		c.Set(string(CtxUserID), claims.Subject)

		c.Next()
	}
}

// UserIDFromContext lets handlers read the identity without knowing the
// magic key.
func UserIDFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(string(CtxUserID))
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}
