package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"stockroom/api/internal/config"
	"stockroom/api/internal/ids"
	"stockroom/api/internal/models"
	"stockroom/api/internal/repository"
	"stockroom/api/internal/security"
)

const minPasswordLen = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserStore is the persistence contract the auth flows need. Implemented by
// repository.UserRepository.
type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByIDPublic(ctx context.Context, id string) (models.User, error)
	UpdateProfile(ctx context.Context, user models.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

type AuthService struct {
	users UserStore
	cfg   *config.AppConfig
	log   zerolog.Logger
}

func NewAuthService(users UserStore, cfg *config.AppConfig, log zerolog.Logger) *AuthService {
	return &AuthService{
		users: users,
		cfg:   cfg,
		log:   log,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthResult pairs the persisted account with the session token the caller
// sets as a cookie.
type AuthResult struct {
	User  models.User
	Token string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (AuthResult, error) {
	input.Email = normalizeEmail(input.Email)

	if input.Name == "" || input.Email == "" || input.Password == "" {
		return AuthResult{}, ValidationError("please fill all fields")
	}
	if len(input.Password) < minPasswordLen {
		return AuthResult{}, ValidationError("password must be 6 characters or more")
	}
	if !emailPattern.MatchString(input.Email) {
		return AuthResult{}, ValidationError("please enter a valid email")
	}

	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return AuthResult{}, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return AuthResult{}, err
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return AuthResult{}, err
	}

	user := models.User{
		ID:           ids.New(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: passwordHash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// The unique constraint backs the pre-check under concurrent signups.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return AuthResult{}, ErrEmailTaken
		}
		return AuthResult{}, err
	}

	token, err := security.IssueSessionToken(s.cfg.Security.JWTSecret, user.ID, s.cfg.Security.SessionTTL)
	if err != nil {
		return AuthResult{}, err
	}

	return AuthResult{User: user, Token: token}, nil
}

type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and only then mints a session token. Every
// failure collapses into ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (AuthResult, error) {
	input.Email = normalizeEmail(input.Email)
	if input.Email == "" || input.Password == "" {
		return AuthResult{}, ValidationError("please fill all fields")
	}

	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}

	if !security.VerifyPassword(input.Password, user.PasswordHash) {
		return AuthResult{}, ErrInvalidCredentials
	}

	token, err := security.IssueSessionToken(s.cfg.Security.JWTSecret, user.ID, s.cfg.Security.SessionTTL)
	if err != nil {
		return AuthResult{}, err
	}

	return AuthResult{User: user, Token: token}, nil
}

// TokenIsValid reports whether a cookie-borne token would pass the gate,
// without resolving the user. Backs the logged-in probe.
func (s *AuthService) TokenIsValid(token string) bool {
	if token == "" {
		return false
	}
	_, err := security.ParseSessionToken(token, s.cfg.Security.JWTSecret)
	return err == nil
}

func (s *AuthService) GetUser(ctx context.Context, id string) (models.User, error) {
	return s.users.GetByIDPublic(ctx, id)
}

type UpdateProfileInput struct {
	Name  *string
	Phone *string
	Bio   *string
	Photo *string
}

// UpdateProfile applies the provided fields and keeps the rest. Email and
// password are immutable through this path.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (models.User, error) {
	user, err := s.users.GetByIDPublic(ctx, userID)
	if err != nil {
		return models.User{}, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Photo != nil {
		user.PhotoURL = *input.Photo
	}

	if user.Name == "" {
		return models.User{}, ValidationError("name cannot be empty")
	}

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return ValidationError("please fill all fields")
	}
	if len(newPassword) < minPasswordLen {
		return ValidationError("password must be 6 characters or more")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !security.VerifyPassword(oldPassword, user.PasswordHash) {
		return ValidationError("old password is incorrect")
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.users.UpdatePassword(ctx, userID, passwordHash)
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}
