package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stockroom/api/internal/middleware"
	"stockroom/api/internal/models"
	"stockroom/api/internal/service"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Photo string `json:"photo"`
	Bio   string `json:"bio"`
}

type authResponse struct {
	userResponse
	Token string `json:"token"`
}

func toUserResponse(user models.User) userResponse {
	return userResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Phone: user.Phone,
		Photo: user.PhotoURL,
		Bio:   user.Bio,
	}
}

func (h HandlerSet) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.setSessionCookie(c, result.Token)
	c.JSON(http.StatusCreated, authResponse{
		userResponse: toUserResponse(result.User),
		Token:        result.Token,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.authService.Login(c.Request.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.setSessionCookie(c, result.Token)
	c.JSON(http.StatusOK, authResponse{
		userResponse: toUserResponse(result.User),
		Token:        result.Token,
	})
}

// Logout expires the cookie client-side. The token itself stays valid until
// its natural expiry; no server-side revocation list exists.
func (h HandlerSet) Logout(c *gin.Context) {
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// LoginStatus answers with a bare boolean and never errors, so the frontend
// can probe without handling failures.
func (h HandlerSet) LoginStatus(c *gin.Context) {
	token, err := c.Cookie(middleware.SessionCookie)
	if err != nil {
		c.JSON(http.StatusOK, false)
		return
	}
	c.JSON(http.StatusOK, h.authService.TokenIsValid(token))
}

func (h HandlerSet) GetUser(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized, please login"})
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

type updateUserRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Bio   *string `json:"bio"`
	Photo *string `json:"photo"`
}

func (h HandlerSet) UpdateUser(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized, please login"})
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := h.authService.UpdateProfile(c.Request.Context(), user.ID, service.UpdateProfileInput{
		Name:  req.Name,
		Phone: req.Phone,
		Bio:   req.Bio,
		Photo: req.Photo,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(updated))
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	Password    string `json:"password"`
}

func (h HandlerSet) ChangePassword(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized, please login"})
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), user.ID, req.OldPassword, req.Password); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password changed"})
}

func (h HandlerSet) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(
		middleware.SessionCookie,
		token,
		int(h.cfg.Security.SessionTTL/time.Second),
		"/",
		"",
		true, // secure
		true, // http-only
	)
}

func (h HandlerSet) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", true, true)
}
