package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"auth_backend/internal/feature/auth/domain/entity"
)

// mockUserRepository is a mock UserRepository for testing the decorator.
type mockUserRepository struct {
	createFn                 func(ctx context.Context, user *entity.User) error
	findByEmailFn            func(ctx context.Context, email string) (*entity.User, error)
	findByIDFn               func(ctx context.Context, id uint) (*entity.User, error)
	updateRefreshTokenHashFn func(ctx context.Context, email, hash string) error
	clearRefreshTokenHashFn  func(ctx context.Context, userID uint) error
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepository) UpdateRefreshTokenHash(ctx context.Context, email, hash string) error {
	if m.updateRefreshTokenHashFn != nil {
		return m.updateRefreshTokenHashFn(ctx, email, hash)
	}
	return nil
}

func (m *mockUserRepository) ClearRefreshTokenHash(ctx context.Context, userID uint) error {
	if m.clearRefreshTokenHashFn != nil {
		return m.clearRefreshTokenHashFn(ctx, userID)
	}
	return nil
}

// testUser returns a user with fixed timestamps so cached JSON is deterministic.
func testUser() *entity.User {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	hash := "refresh-hash"
	return &entity.User{
		ID:               5,
		Username:         "alice",
		Email:            "a@x.com",
		PasswordHash:     "password-hash",
		RefreshTokenHash: &hash,
		CreatedAt:        ts,
		UpdatedAt:        ts,
	}
}

// projectionJSON returns the bytes the decorator writes to Redis for a user.
func projectionJSON(t *testing.T, u *entity.User) []byte {
	t.Helper()
	b, err := json.Marshal(cachedUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	})
	if err != nil {
		t.Fatalf("failed to marshal projection: %v", err)
	}
	return b
}

// TestNewCachingUserRepository_Defaults verifies TTL and namespace defaults.
func TestNewCachingUserRepository_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{"default values when zero/empty", 0, "", 5 * time.Minute, "users"},
		{"negative ttl uses default", -time.Minute, "", 5 * time.Minute, "users"},
		{"custom values preserved", 10 * time.Minute, "custom", 10 * time.Minute, "custom"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := NewCachingUserRepository(nil, tt.ttl, &mockUserRepository{}, tt.namespace)

			if repo.ttl != tt.expectedTTL {
				t.Errorf("expected TTL %v, got %v", tt.expectedTTL, repo.ttl)
			}
			if repo.namespace != tt.expectedNamespace {
				t.Errorf("expected namespace %q, got %q", tt.expectedNamespace, repo.namespace)
			}
		})
	}
}

// TestCachingUserRepository_FindByID_NilClient verifies the decorator is a
// pure pass-through when Redis is not configured.
func TestCachingUserRepository_FindByID_NilClient(t *testing.T) {
	t.Parallel()

	innerCalled := false
	inner := &mockUserRepository{
		findByIDFn: func(ctx context.Context, id uint) (*entity.User, error) {
			innerCalled = true
			return testUser(), nil
		},
	}

	repo := NewCachingUserRepository(nil, time.Minute, inner, "users")
	user, err := repo.FindByID(context.Background(), 5)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !innerCalled {
		t.Error("expected fallback to the inner repository")
	}
	if user.PasswordHash == "" {
		t.Error("bypass path must return the full record")
	}
}

// TestCachingUserRepository_FindByID_MissThenStore verifies a cache miss falls
// back to the database and stores the public projection.
func TestCachingUserRepository_FindByID_MissThenStore(t *testing.T) {
	t.Parallel()

	u := testUser()
	db, mock := redismock.NewClientMock()
	mock.ExpectGet("users:5").RedisNil()
	mock.ExpectSet("users:5", projectionJSON(t, u), time.Minute).SetVal("OK")

	inner := &mockUserRepository{
		findByIDFn: func(ctx context.Context, id uint) (*entity.User, error) {
			return u, nil
		},
	}

	repo := NewCachingUserRepository(db, time.Minute, inner, "users")
	got, err := repo.FindByID(context.Background(), 5)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Email != u.Email {
		t.Errorf("expected email %q, got %q", u.Email, got.Email)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("redis expectations not met: %v", err)
	}
}

// TestCachingUserRepository_FindByID_Hit verifies a cache hit skips the
// database and returns the projection without credential columns.
func TestCachingUserRepository_FindByID_Hit(t *testing.T) {
	t.Parallel()

	u := testUser()
	db, mock := redismock.NewClientMock()
	mock.ExpectGet("users:5").SetVal(string(projectionJSON(t, u)))

	inner := &mockUserRepository{
		findByIDFn: func(ctx context.Context, id uint) (*entity.User, error) {
			t.Error("inner repository must not be called on a cache hit")
			return nil, nil
		},
	}

	repo := NewCachingUserRepository(db, time.Minute, inner, "users")
	got, err := repo.FindByID(context.Background(), 5)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Username != "alice" || got.Email != "a@x.com" {
		t.Errorf("unexpected cached user: %+v", got)
	}
	if got.PasswordHash != "" || got.RefreshTokenHash != nil {
		t.Error("cache hits must not carry credential columns")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("redis expectations not met: %v", err)
	}
}

// TestCachingUserRepository_FindByID_CorruptedEntry verifies a corrupted cache
// entry is dropped and the database is consulted.
func TestCachingUserRepository_FindByID_CorruptedEntry(t *testing.T) {
	t.Parallel()

	u := testUser()
	db, mock := redismock.NewClientMock()
	mock.ExpectGet("users:5").SetVal("{not json")
	mock.ExpectDel("users:5").SetVal(1)
	mock.ExpectSet("users:5", projectionJSON(t, u), time.Minute).SetVal("OK")

	inner := &mockUserRepository{
		findByIDFn: func(ctx context.Context, id uint) (*entity.User, error) {
			return u, nil
		},
	}

	repo := NewCachingUserRepository(db, time.Minute, inner, "users")
	if _, err := repo.FindByID(context.Background(), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("redis expectations not met: %v", err)
	}
}

// TestCachingUserRepository_FindByEmail_NeverCached verifies the credential
// lookup path always goes to the database.
func TestCachingUserRepository_FindByEmail_NeverCached(t *testing.T) {
	t.Parallel()

	db, mock := redismock.NewClientMock()
	// No redis expectations: any command would fail the test.

	innerCalled := false
	inner := &mockUserRepository{
		findByEmailFn: func(ctx context.Context, email string) (*entity.User, error) {
			innerCalled = true
			return testUser(), nil
		},
	}

	repo := NewCachingUserRepository(db, time.Minute, inner, "users")
	user, err := repo.FindByEmail(context.Background(), "a@x.com")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !innerCalled {
		t.Error("expected the inner repository to serve the lookup")
	}
	if user.PasswordHash == "" {
		t.Error("credential lookups must return the full record")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("redis expectations not met: %v", err)
	}
}

// TestCachingUserRepository_ClearRefreshTokenHash verifies the cached entry is
// invalidated after a successful clear.
func TestCachingUserRepository_ClearRefreshTokenHash(t *testing.T) {
	t.Parallel()

	db, mock := redismock.NewClientMock()
	mock.ExpectDel("users:5").SetVal(1)

	cleared := false
	inner := &mockUserRepository{
		clearRefreshTokenHashFn: func(ctx context.Context, userID uint) error {
			cleared = true
			return nil
		},
	}

	repo := NewCachingUserRepository(db, time.Minute, inner, "users")
	if err := repo.ClearRefreshTokenHash(context.Background(), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cleared {
		t.Error("expected the inner clear to run")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("redis expectations not met: %v", err)
	}
}
