package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"plantdefender/internal/apperr"
)

// UserIDKey holds the authenticated user id in the gin context.
const UserIDKey = "user_id"

type Authenticator interface {
	Authenticate(token string) (string, error)
}

// Auth resolves the bearer token into a user id. Failures stop the chain
// with 401 before any handler runs.
func Auth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := auth.Authenticate(bearerToken(c.GetHeader("Authorization")))
		if err != nil {
			c.AbortWithStatusJSON(apperr.HTTPStatus(apperr.KindOf(err)), gin.H{
				"error":  string(apperr.KindOf(err)),
				"detail": apperr.PublicMessage(err),
			})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// UserID returns the id set by Auth.
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
