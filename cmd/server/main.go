package main

import (
	"log"

	redisv9 "github.com/redis/go-redis/v9"

	"auth_backend/internal/app/router"
	authadapters "auth_backend/internal/feature/auth/adapters"
	authhandler "auth_backend/internal/feature/auth/transport/handler"
	authusecase "auth_backend/internal/feature/auth/usecase"
	"auth_backend/internal/platform/cache"
	"auth_backend/internal/platform/config"
	"auth_backend/internal/platform/db"
	"auth_backend/internal/platform/hash"
	jwtmw "auth_backend/internal/platform/jwt"
	platformredis "auth_backend/internal/platform/redis"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg := config.MustLoad()

	if cfg.SecretAccess == cfg.SecretRefresh {
		log.Fatal("SECRET_ACCESS and SECRET_REFRESH must be distinct values")
	}

	// db
	gormDB := db.OpenDB(cfg.DB)

	// Redis (optional: the service runs uncached without it)
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(cfg.Redis); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository, wrapped with the Redis read cache
	userRepo := authadapters.NewUserPostgres(gormDB)
	cachedRepo := cache.NewCachingUserRepository(rdb, 0, userRepo, "users")

	// Capabilities
	hasher := hash.NewBcryptHasher(bcrypt.DefaultCost)
	signer := jwtmw.NewSigner(cfg.SecretAccess, cfg.SecretRefresh,
		jwtmw.AccessTokenTTL, jwtmw.RefreshTokenTTL)

	// Usecase
	authUC := authusecase.NewCredentialService(cachedRepo, hasher, signer)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)

	r := router.NewRouter(authH, signer)

	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
