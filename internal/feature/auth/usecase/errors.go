// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrCredentialsTaken is returned when signing up with an email that is
	// already registered. It maps the store's unique-constraint violation and
	// is safe to surface to the caller.
	ErrCredentialsTaken = errors.New("credentials taken")

	// ErrInvalidCredentials is returned on sign-in for both an unknown email
	// and a wrong password. The two causes are deliberately not distinguished
	// to prevent account enumeration.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidRefreshToken is returned when a presented refresh token fails
	// signature verification or no longer matches the stored hash.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)
