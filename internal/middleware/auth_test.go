package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/api/internal/middleware"
	"stockroom/api/internal/models"
	"stockroom/api/internal/repository"
	"stockroom/api/internal/security"
)

const testSecret = "middleware-test-secret"

type staticResolver struct {
	users map[string]models.User
}

func (r staticResolver) GetByIDPublic(_ context.Context, id string) (models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func newGateRouter(t *testing.T, resolver middleware.UserResolver) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/protected", middleware.Auth(testSecret, resolver), func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": user.ID})
	})
	return router
}

func doRequest(router *gin.Engine, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: cookie})
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthGate(t *testing.T) {
	resolver := staticResolver{users: map[string]models.User{
		"user-1": {ID: "user-1", Name: "Ada", Email: "ada@example.com"},
	}}
	router := newGateRouter(t, resolver)

	validToken, err := security.IssueSessionToken(testSecret, "user-1", time.Hour)
	require.NoError(t, err)

	t.Run("valid cookie reaches the handler", func(t *testing.T) {
		rec := doRequest(router, validToken)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "user-1")
	})

	t.Run("all failure modes share one response", func(t *testing.T) {
		wrongSecret, err := security.IssueSessionToken("another-secret", "user-1", time.Hour)
		require.NoError(t, err)

		expired, err := security.IssueSessionToken(testSecret, "user-1", -time.Minute)
		require.NoError(t, err)

		ghost, err := security.IssueSessionToken(testSecret, "deleted-user", time.Hour)
		require.NoError(t, err)

		cases := map[string]string{
			"missing cookie":  "",
			"garbage token":   "not-a-jwt",
			"wrong secret":    wrongSecret,
			"expired token":   expired,
			"unknown subject": ghost,
		}

		var bodies []string
		for name, cookie := range cases {
			rec := doRequest(router, cookie)
			assert.Equal(t, http.StatusUnauthorized, rec.Code, name)
			bodies = append(bodies, rec.Body.String())
		}
		for _, body := range bodies[1:] {
			assert.Equal(t, bodies[0], body)
		}
	})
}
