package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"stockroom/api/internal/models"
	"stockroom/api/internal/security"
)

// SessionCookie is the cookie carrying the session token.
const SessionCookie = "token"

// CurrentUserKey is the gin context key the gate stores the resolved
// identity under.
const CurrentUserKey = "current_user"

// UserResolver turns a verified token subject into a live account record,
// loaded without the password hash.
type UserResolver interface {
	GetByIDPublic(ctx context.Context, id string) (models.User, error)
}

// Auth is the single enforcement point for protected routes. A missing,
// malformed, expired or mis-signed cookie, and a subject that no longer
// resolves to a user, all produce the same 401 so callers learn nothing
// about which check failed.
func Auth(jwtSecret string, users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(SessionCookie)
		if err != nil || tokenStr == "" {
			abortUnauthorized(c)
			return
		}

		userID, err := security.ParseSessionToken(tokenStr, jwtSecret)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		user, err := users.GetByIDPublic(c.Request.Context(), userID)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized, please login"})
}

// CurrentUser fetches the identity the gate attached to the request.
func CurrentUser(c *gin.Context) (models.User, bool) {
	val, exists := c.Get(CurrentUserKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := val.(models.User)
	return user, ok
}
