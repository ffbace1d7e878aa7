package service_test

import (
	"context"
	"sync"
	"time"

	"stockroom/api/internal/config"
	"stockroom/api/internal/mail"
	"stockroom/api/internal/models"
	"stockroom/api/internal/repository"
)

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		Environment: "test",
		FrontendURL: "http://localhost:3000",
		Security: config.SecurityConfig{
			JWTSecret:     "test-signing-secret",
			SessionTTL:    24 * time.Hour,
			ResetTokenTTL: 30 * time.Minute,
		},
	}
}

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]models.User)}
}

func (s *fakeUserStore) Create(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, repository.ErrUserNotFound
}

func (s *fakeUserStore) GetByID(_ context.Context, id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func (s *fakeUserStore) GetByIDPublic(ctx context.Context, id string) (models.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *fakeUserStore) UpdateProfile(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.users[user.ID]
	if !ok {
		return repository.ErrUserNotFound
	}
	existing.Name = user.Name
	existing.Phone = user.Phone
	existing.Bio = user.Bio
	existing.PhotoURL = user.PhotoURL
	existing.UpdatedAt = time.Now()
	s.users[user.ID] = existing
	return nil
}

func (s *fakeUserStore) UpdatePassword(_ context.Context, id, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	user.UpdatedAt = time.Now()
	s.users[id] = user
	return nil
}

func (s *fakeUserStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

type fakeResetTokenStore struct {
	mu     sync.Mutex
	tokens map[string]models.ResetToken // keyed by user id
}

func newFakeResetTokenStore() *fakeResetTokenStore {
	return &fakeResetTokenStore{tokens: make(map[string]models.ResetToken)}
}

func (s *fakeResetTokenStore) Replace(_ context.Context, token models.ResetToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	token.CreatedAt = time.Now()
	s.tokens[token.UserID] = token
	return nil
}

func (s *fakeResetTokenStore) FindByTokenHash(_ context.Context, tokenHash string) (models.ResetToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, token := range s.tokens {
		if token.TokenHash == tokenHash {
			return token, nil
		}
	}
	return models.ResetToken{}, repository.ErrResetTokenNotFound
}

func (s *fakeResetTokenStore) DeleteByUser(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, userID)
	return nil
}

type fakeMailer struct {
	mu       sync.Mutex
	sent     []mail.Message
	failWith error
}

func (m *fakeMailer) Send(_ context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *fakeMailer) lastSent() (mail.Message, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return mail.Message{}, false
	}
	return m.sent[len(m.sent)-1], true
}
