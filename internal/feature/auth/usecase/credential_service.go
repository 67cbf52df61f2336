package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"auth_backend/internal/feature/auth/domain/entity"
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention, the interface is defined by the consumer (usecase)
// rather than the provider (adapters).
type UserRepository interface {
	// Create persists a new user. It returns ErrCredentialsTaken if a user
	// with the same email already exists; any other failure is passed through.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves a user by email address.
	// It returns ErrUserNotFound if no such user exists.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID retrieves a user by ID.
	// It returns ErrUserNotFound if no such user exists.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// UpdateRefreshTokenHash stores the refresh token hash on the user row
	// located by email. It returns ErrUserNotFound if no row matches.
	UpdateRefreshTokenHash(ctx context.Context, email, hash string) error

	// ClearRefreshTokenHash nulls the refresh token hash for the given user,
	// but only where a hash is currently set. Matching zero rows is not an
	// error; the operation is idempotent.
	ClearRefreshTokenHash(ctx context.Context, userID uint) error
}

// PasswordHasher abstracts one-way hashing of plaintext secrets.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext secret.
	Hash(plaintext string) (string, error)

	// Verify reports whether the plaintext matches the given hash.
	Verify(hash, plaintext string) bool
}

// TokenSigner abstracts signed, time-bound token production and verification.
// Access and refresh tokens are signed with distinct secrets so that
// compromise of one cannot forge the other.
type TokenSigner interface {
	// SignAccess produces a short-lived access token carrying the user's
	// identity claims.
	SignAccess(userID uint, email string) (string, error)

	// SignRefresh produces a long-lived refresh token whose claims embed the
	// just-minted access token.
	SignRefresh(userID uint, email, accessToken string) (string, error)

	// ParseRefresh verifies a refresh token against the refresh secret and
	// returns its identity claims.
	ParseRefresh(token string) (userID uint, email string, err error)
}

// dummyPasswordHash is compared against when the email is unknown, so that
// sign-in with a nonexistent account costs roughly the same as a wrong
// password. Mitigates timing-based account enumeration.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// credentialService orchestrates the credential and token lifecycle.
// It performs no logging and no retries; failures it does not classify are
// returned to the caller unchanged.
type credentialService struct {
	users  UserRepository
	hasher PasswordHasher
	signer TokenSigner
}

// NewCredentialService creates a new instance of credentialService with its
// capabilities injected.
func NewCredentialService(users UserRepository, hasher PasswordHasher, signer TokenSigner) *credentialService {
	return &credentialService{
		users:  users,
		hasher: hasher,
		signer: signer,
	}
}

// SignUp registers a new user and issues its first token pair.
// The email must be globally unique; a duplicate surfaces as
// ErrCredentialsTaken from the repository. Once the row exists, token minting
// and refresh-hash persistence run unconditionally: a failure there is
// returned without rolling back the created user, since a later sign-in
// re-establishes consistent state.
func (s *credentialService) SignUp(ctx context.Context, username, email, password string) (*entity.User, entity.TokenPair, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, entity.TokenPair{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{Username: username, Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, entity.TokenPair{}, err
	}

	pair, err := s.issueTokens(user.ID, user.Email)
	if err != nil {
		return nil, entity.TokenPair{}, err
	}
	if err := s.updateRefreshToken(ctx, user.Email, pair.RefreshToken); err != nil {
		return nil, entity.TokenPair{}, err
	}

	return user, pair, nil
}

// SignIn authenticates a user by email and password and issues a fresh token
// pair, overwriting any previously stored refresh token hash.
func (s *credentialService) SignIn(ctx context.Context, email, password string) (*entity.User, entity.TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		// Store faults are not credential failures; propagate unchanged.
		return nil, entity.TokenPair{}, err
	}

	// Always run the comparison, against a dummy hash when the email is
	// unknown, so both failure causes take the same path.
	passwordHash := dummyPasswordHash
	if err == nil {
		passwordHash = user.PasswordHash
	}
	match := s.hasher.Verify(passwordHash, password)
	if err != nil || !match {
		return nil, entity.TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(user.ID, user.Email)
	if err != nil {
		return nil, entity.TokenPair{}, err
	}
	if err := s.updateRefreshToken(ctx, user.Email, pair.RefreshToken); err != nil {
		return nil, entity.TokenPair{}, err
	}

	return user, pair, nil
}

// LogOut clears the stored refresh token hash for the given user. The clear
// is conditional on a hash being present; an already-logged-out or unknown id
// is a no-op, so calling LogOut twice succeeds both times.
func (s *credentialService) LogOut(ctx context.Context, userID uint) error {
	return s.users.ClearRefreshTokenHash(ctx, userID)
}

// Refresh exchanges a valid refresh token for a fresh token pair, rotating
// the stored hash. Beyond signature and expiry, the presented token must
// match the hash currently stored on the user row: a token overwritten by a
// newer sign-in, or cleared by logout, is rejected even while its own
// signature is still valid.
func (s *credentialService) Refresh(ctx context.Context, refreshToken string) (*entity.User, entity.TokenPair, error) {
	userID, email, err := s.signer.ParseRefresh(refreshToken)
	if err != nil {
		return nil, entity.TokenPair{}, ErrInvalidRefreshToken
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, entity.TokenPair{}, ErrInvalidRefreshToken
		}
		return nil, entity.TokenPair{}, err
	}

	if user.ID != userID || user.RefreshTokenHash == nil ||
		!s.hasher.Verify(*user.RefreshTokenHash, digestToken(refreshToken)) {
		return nil, entity.TokenPair{}, ErrInvalidRefreshToken
	}

	pair, err := s.issueTokens(user.ID, user.Email)
	if err != nil {
		return nil, entity.TokenPair{}, err
	}
	if err := s.updateRefreshToken(ctx, user.Email, pair.RefreshToken); err != nil {
		return nil, entity.TokenPair{}, err
	}

	return user, pair, nil
}

// CurrentUser returns the user record for an authenticated request.
func (s *credentialService) CurrentUser(ctx context.Context, userID uint) (*entity.User, error) {
	return s.users.FindByID(ctx, userID)
}

// issueTokens mints an access/refresh pair for the given identity. Minting
// has no side effects; persisting the refresh hash is the caller's explicit
// next step.
func (s *credentialService) issueTokens(userID uint, email string) (entity.TokenPair, error) {
	access, err := s.signer.SignAccess(userID, email)
	if err != nil {
		return entity.TokenPair{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	refresh, err := s.signer.SignRefresh(userID, email, access)
	if err != nil {
		return entity.TokenPair{}, fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return entity.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// updateRefreshToken hashes the refresh token and writes the hash to the user
// row located by email.
func (s *credentialService) updateRefreshToken(ctx context.Context, email, refreshToken string) error {
	hash, err := s.hasher.Hash(digestToken(refreshToken))
	if err != nil {
		return fmt.Errorf("failed to hash refresh token: %w", err)
	}
	return s.users.UpdateRefreshTokenHash(ctx, email, hash)
}

// digestToken reduces a token to a fixed-size hex digest before hashing.
// bcrypt rejects inputs longer than 72 bytes and a signed JWT always exceeds
// that, so the digest is what gets hashed and verified.
func digestToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
