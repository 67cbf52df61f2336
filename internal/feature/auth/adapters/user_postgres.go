// Package adapters provides repository implementations for the auth feature.
package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"auth_backend/internal/feature/auth/domain/entity"
	"auth_backend/internal/feature/auth/usecase"
)

// userPostgres is a Postgres implementation of the UserRepository interface.
// It uses GORM for database operations.
type userPostgres struct {
	db *gorm.DB
}

// Compile-time check that userPostgres implements UserRepository.
var _ usecase.UserRepository = (*userPostgres)(nil)

// NewUserPostgres creates a new instance of userPostgres with the given
// gorm.DB connection.
func NewUserPostgres(db *gorm.DB) *userPostgres {
	return &userPostgres{db: db}
}

// Create adds a user to the database.
// A unique-constraint violation on email is classified here, at the boundary
// closest to the failing store, and returned as usecase.ErrCredentialsTaken.
func (r *userPostgres) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		// Postgres 23505: duplicate key value violates unique constraint.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return usecase.ErrCredentialsTaken
		}
		// The sqlite test driver surfaces the translated GORM error instead.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return usecase.ErrCredentialsTaken
		}
		return err
	}
	return nil
}

// FindByEmail retrieves a user by email address.
// It returns usecase.ErrUserNotFound if the user does not exist.
func (r *userPostgres) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByID retrieves a user by ID.
// It returns usecase.ErrUserNotFound if the user does not exist.
func (r *userPostgres) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// UpdateRefreshTokenHash writes the refresh token hash to the user row
// located by email. It returns usecase.ErrUserNotFound when no row matches,
// which should not happen in normal flow since callers update an email they
// just created or looked up.
func (r *userPostgres) UpdateRefreshTokenHash(ctx context.Context, email, hash string) error {
	result := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("email = ?", email).
		Update("refresh_token_hash", hash)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// ClearRefreshTokenHash nulls the refresh token hash for the given user id.
// The presence check is part of the update predicate, not a separate read;
// matching zero rows (already logged out, unknown id) is success.
func (r *userPostgres) ClearRefreshTokenHash(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ? AND refresh_token_hash IS NOT NULL", userID).
		Update("refresh_token_hash", nil).Error
}
