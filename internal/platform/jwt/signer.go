// Package jwtmw provides JWT signing, verification and the Gin middleware
// that guards authenticated routes.
package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// AccessTokenTTL is the fixed lifetime of an access token.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL is the fixed lifetime of a refresh token.
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// ErrInvalidToken is returned when a token fails parsing, signature
// verification or expiry checks.
var ErrInvalidToken = errors.New("invalid token")

// Signer produces and verifies the access/refresh token pair.
// The two kinds are signed with distinct secrets: compromise of one must not
// allow forging the other, and a token of one kind never verifies as the
// other.
type Signer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewSigner creates a Signer with the two signing secrets and per-kind TTLs.
func NewSigner(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Signer {
	return &Signer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// SignAccess creates a signed access token carrying the user's identity.
func (s *Signer) SignAccess(userID uint, email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"iat":     now.Unix(),
		"exp":     now.Add(s.accessTTL).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.accessSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// SignRefresh creates a signed refresh token. The just-minted access token is
// embedded as a claim, tying the pair together.
func (s *Signer) SignRefresh(userID uint, email, accessToken string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":      userID,
		"email":        email,
		"access_token": accessToken,
		"iat":          now.Unix(),
		"exp":          now.Add(s.refreshTTL).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.refreshSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return signed, nil
}

// ParseAccess verifies an access token and returns its identity claims.
func (s *Signer) ParseAccess(token string) (uint, string, error) {
	return s.parse(token, s.accessSecret)
}

// ParseRefresh verifies a refresh token and returns its identity claims.
func (s *Signer) ParseRefresh(token string) (uint, string, error) {
	return s.parse(token, s.refreshSecret)
}

// parse verifies the token signature and expiry against the given secret and
// extracts the user_id and email claims.
func (s *Signer) parse(tokenStr string, secret []byte) (uint, string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		// Only HMAC is accepted; reject algorithm-substitution tokens.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return 0, "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", ErrInvalidToken
	}
	// JWT numbers are decoded as float64.
	id, ok := claims["user_id"].(float64)
	if !ok {
		return 0, "", ErrInvalidToken
	}
	email, ok := claims["email"].(string)
	if !ok {
		return 0, "", ErrInvalidToken
	}
	return uint(id), email, nil
}
