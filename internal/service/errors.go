package service

import "errors"

var (
	// ErrInvalidCredentials is deliberately generic: a wrong password and an
	// unknown email must be indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrEmailTaken = errors.New("email is taken")

	// ErrResetTokenInvalid covers both "no such token" and "expired" so the
	// response never confirms whether a token ever existed.
	ErrResetTokenInvalid = errors.New("invalid or expired reset token")

	ErrNotOwner = errors.New("unauthorized user action")

	ErrMailDelivery = errors.New("email could not be sent, please try again")
)

// ValidationError carries a descriptive message for malformed input.
// Handlers map it to a 400 response.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }
