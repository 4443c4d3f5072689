package auth

import "errors"

var (
	// ErrUserNotFound is returned by the repository when no account
	// exists for the given email.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken is returned when registering with an email that
	// already has an account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned on login failures. It covers an
	// unknown email, a wrong password and a deactivated account so the
	// response never reveals which one failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
