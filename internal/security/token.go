package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every session token failure mode. Callers must not
// be able to tell a bad signature from a malformed or expired token.
var ErrInvalidToken = errors.New("invalid token")

const resetTokenBytes = 32

// IssueSessionToken mints a signed bearer token for the user, valid for ttl.
func IssueSessionToken(secret, userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}

// ParseSessionToken verifies the token and returns its subject. Wrong
// structure, wrong signature and expiry all collapse into ErrInvalidToken.
func ParseSessionToken(tokenStr, secret string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// GenerateResetToken creates a high-entropy recovery token bound to the
// user. The raw value goes into the reset email and is never persisted;
// only its hash is stored.
func GenerateResetToken(userID string) (raw, hash string, err error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("generate reset token: %w", err)
	}

	raw = hex.EncodeToString(buf) + userID
	return raw, HashResetToken(raw), nil
}

// HashResetToken is a fast deterministic one-way hash. The raw value is
// already high entropy and single use, so a slow KDF is unnecessary here.
func HashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
