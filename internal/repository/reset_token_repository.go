package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"stockroom/api/internal/models"
)

var ErrResetTokenNotFound = errors.New("reset token not found")

type ResetTokenRepository struct {
	pool *pgxpool.Pool
}

func NewResetTokenRepository(pool *pgxpool.Pool) *ResetTokenRepository {
	return &ResetTokenRepository{pool: pool}
}

// Replace stores a fresh token for the user, displacing any prior one.
// Last writer wins under concurrent issuance.
func (r *ResetTokenRepository) Replace(ctx context.Context, token models.ResetToken) error {
	const query = `
		INSERT INTO reset_tokens (user_id, token_hash, created_at, expires_at)
		VALUES ($1, $2, NOW(), $3)
		ON CONFLICT (user_id)
		DO UPDATE SET
			token_hash = EXCLUDED.token_hash,
			created_at = NOW(),
			expires_at = EXCLUDED.expires_at
	`

	_, err := r.pool.Exec(ctx, query, token.UserID, token.TokenHash, token.ExpiresAt)
	return err
}

func (r *ResetTokenRepository) FindByTokenHash(ctx context.Context, tokenHash string) (models.ResetToken, error) {
	const query = `
		SELECT user_id, token_hash, created_at, expires_at
		FROM reset_tokens WHERE token_hash = $1
	`

	row := r.pool.QueryRow(ctx, query, tokenHash)
	var token models.ResetToken
	if err := row.Scan(&token.UserID, &token.TokenHash, &token.CreatedAt, &token.ExpiresAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ResetToken{}, ErrResetTokenNotFound
		}
		return models.ResetToken{}, err
	}
	return token, nil
}

func (r *ResetTokenRepository) DeleteByUser(ctx context.Context, userID string) error {
	const query = `DELETE FROM reset_tokens WHERE user_id = $1`
	_, err := r.pool.Exec(ctx, query, userID)
	return err
}

// DeleteExpired sweeps rows whose window has passed. Expiry is still checked
// at consumption time; this only bounds table growth.
func (r *ResetTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	const query = `DELETE FROM reset_tokens WHERE expires_at < NOW()`
	cmd, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
