// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"auth_backend/internal/feature/auth/domain/entity"
	"auth_backend/internal/feature/auth/usecase"
)

// CachingUserRepository decorates a UserRepository with Redis caching for the
// FindByID read path, which backs the authenticated profile endpoint. It
// implements the decorator pattern, transparently adding caching without
// modifying the underlying repository.
//
// Only the public projection of a user is written to Redis: credential
// columns never leave the primary store, and FindByEmail (the sign-in and
// refresh lookup) always goes straight through.
type CachingUserRepository struct {
	inner     usecase.UserRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.UserRepository = (*CachingUserRepository)(nil)

// cachedUser is the Redis representation of a user. Hash columns are
// deliberately absent.
type cachedUser struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCachingUserRepository decorates a UserRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses
// "users".
func NewCachingUserRepository(rdb *redis.Client, ttl time.Duration, inner usecase.UserRepository, namespace string) *CachingUserRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "users"
	}
	return &CachingUserRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create passes through to the underlying repository.
func (c *CachingUserRepository) Create(ctx context.Context, user *entity.User) error {
	return c.inner.Create(ctx, user)
}

// FindByEmail passes through to the underlying repository. The result feeds
// credential verification, so it is never served from cache.
func (c *CachingUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return c.inner.FindByEmail(ctx, email)
}

// FindByID retrieves a user, checking the cache first and falling back to
// the database. Cache hits return the public projection: the hash columns
// are empty.
func (c *CachingUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := c.cacheKey(id)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var cu cachedUser
		if err := json.Unmarshal(b, &cu); err == nil {
			return &entity.User{
				ID:        cu.ID,
				Username:  cu.Username,
				Email:     cu.Email,
				CreatedAt: cu.CreatedAt,
				UpdatedAt: cu.UpdatedAt,
			}, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	user, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3) Store the projection in cache (best effort)
	cu := cachedUser{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
	if b, err := json.Marshal(cu); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return user, nil
}

// UpdateRefreshTokenHash passes through. The cached projection carries no
// hash columns, so no invalidation is needed.
func (c *CachingUserRepository) UpdateRefreshTokenHash(ctx context.Context, email, hash string) error {
	return c.inner.UpdateRefreshTokenHash(ctx, email, hash)
}

// ClearRefreshTokenHash passes through and drops the cached entry so a
// subsequent read reflects the updated row timestamp.
func (c *CachingUserRepository) ClearRefreshTokenHash(ctx context.Context, userID uint) error {
	if err := c.inner.ClearRefreshTokenHash(ctx, userID); err != nil {
		return err
	}
	if c.rdb != nil {
		// Best effort: don't fail the logout if cache invalidation fails
		_ = c.rdb.Del(ctx, c.cacheKey(userID)).Err()
	}
	return nil
}

// cacheKey generates the Redis key for a user id.
func (c *CachingUserRepository) cacheKey(id uint) string {
	return fmt.Sprintf("%s:%d", c.namespace, id)
}
