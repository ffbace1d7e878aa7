package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"stockroom/api/internal/config"
	"stockroom/api/internal/mail"
	"stockroom/api/internal/models"
	"stockroom/api/internal/repository"
	"stockroom/api/internal/security"
)

// ResetTokenStore is the persistence contract for recovery tokens.
// Implemented by repository.ResetTokenRepository.
type ResetTokenStore interface {
	Replace(ctx context.Context, token models.ResetToken) error
	FindByTokenHash(ctx context.Context, tokenHash string) (models.ResetToken, error)
	DeleteByUser(ctx context.Context, userID string) error
}

type ResetService struct {
	users  UserStore
	tokens ResetTokenStore
	mailer mail.Mailer
	cfg    *config.AppConfig
	log    zerolog.Logger
}

func NewResetService(users UserStore, tokens ResetTokenStore, mailer mail.Mailer, cfg *config.AppConfig, log zerolog.Logger) *ResetService {
	return &ResetService{
		users:  users,
		tokens: tokens,
		mailer: mailer,
		cfg:    cfg,
		log:    log,
	}
}

// Request issues a fresh recovery token for the account behind email and
// mails the raw value out. Any token previously issued to the same user
// stops working. Returns repository.ErrUserNotFound for unknown emails;
// the handler decides how much of that to reveal.
func (s *ResetService) Request(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}

	raw, hash, err := security.GenerateResetToken(user.ID)
	if err != nil {
		return err
	}

	token := models.ResetToken{
		UserID:    user.ID,
		TokenHash: hash,
		ExpiresAt: time.Now().Add(s.cfg.Security.ResetTokenTTL),
	}
	if err := s.tokens.Replace(ctx, token); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/resetpassword/%s", s.cfg.FrontendURL, raw)
	msg := mail.Message{
		Subject: "Password Reset Request",
		HTML:    resetEmailBody(user.Name, resetURL, s.cfg.Security.ResetTokenTTL),
		To:      user.Email,
		From:    s.cfg.Mail.From,
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("reset email delivery failed")
		return ErrMailDelivery
	}
	return nil
}

// Consume redeems a raw token exactly once: it verifies the stored hash and
// expiry, persists the new password through the password hasher, and deletes
// the row so a replay fails.
func (s *ResetService) Consume(ctx context.Context, rawToken, newPassword string) error {
	if newPassword == "" {
		return ValidationError("please provide a new password")
	}
	if len(newPassword) < minPasswordLen {
		return ValidationError("password must be 6 characters or more")
	}

	token, err := s.tokens.FindByTokenHash(ctx, security.HashResetToken(rawToken))
	if err != nil {
		if errors.Is(err, repository.ErrResetTokenNotFound) {
			return ErrResetTokenInvalid
		}
		return err
	}

	if token.IsExpired() {
		return ErrResetTokenInvalid
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, token.UserID, passwordHash); err != nil {
		return err
	}

	if err := s.tokens.DeleteByUser(ctx, token.UserID); err != nil {
		// Password change already landed; the leftover row still dies at expiry.
		s.log.Warn().Err(err).Str("user_id", token.UserID).Msg("consumed reset token cleanup failed")
	}
	return nil
}

func resetEmailBody(name, resetURL string, ttl time.Duration) string {
	return fmt.Sprintf(`<h2>Hello %s,</h2>
<p>You requested a password reset. Use the link below; it is valid for %d minutes.</p>
<p><a href=%q clicktracking="off">%s</a></p>
<p>If you did not ask for this, you can ignore this email.</p>
<p>Regards,<br>The Stockroom Team</p>`,
		name, int(ttl.Minutes()), resetURL, resetURL)
}
