// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered account.
// It carries the credential material needed for authentication; the hash
// columns are excluded from JSON so they never leak through API responses.
type User struct {
	// ID is the unique identifier for the user, assigned at creation.
	ID uint `gorm:"primaryKey" json:"id"`

	// Username is the display identifier. It is not required to be unique.
	Username string `gorm:"size:255;not null" json:"username"`

	// Email is the unique lookup key for sign-in and refresh-token updates.
	Email string `gorm:"uniqueIndex;size:255;not null" json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Plaintext passwords are never stored.
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	// RefreshTokenHash is the hash of the most recently issued refresh token.
	// It is nil when the user is logged out or has never signed in.
	RefreshTokenHash *string `gorm:"size:255" json:"-"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time `json:"updated_at"`
}
