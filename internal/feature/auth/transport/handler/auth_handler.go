// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"auth_backend/internal/feature/auth/domain/entity"
	"auth_backend/internal/feature/auth/transport/http/dto"
	"auth_backend/internal/feature/auth/usecase"
	jwtmw "auth_backend/internal/platform/jwt"
)

// CredentialService defines the auth operations consumed by the transport
// layer. Following Go convention, the interface is defined by the consumer
// (handler) rather than the provider (usecase).
type CredentialService interface {
	// SignUp registers a new user and returns it with its first token pair.
	SignUp(ctx context.Context, username, email, password string) (*entity.User, entity.TokenPair, error)
	// SignIn authenticates a user and returns a fresh token pair.
	SignIn(ctx context.Context, email, password string) (*entity.User, entity.TokenPair, error)
	// LogOut clears the user's stored refresh token hash. Idempotent.
	LogOut(ctx context.Context, userID uint) error
	// Refresh rotates a valid refresh token into a fresh token pair.
	Refresh(ctx context.Context, refreshToken string) (*entity.User, entity.TokenPair, error)
	// CurrentUser returns the user record for an authenticated request.
	CurrentUser(ctx context.Context, userID uint) (*entity.User, error)
}

// AuthHandler handles HTTP requests for credential operations.
// It depends on the CredentialService interface and deals in JSON
// request/response bodies.
type AuthHandler struct {
	auth CredentialService
}

// NewAuthHandler creates a new instance of AuthHandler.
func NewAuthHandler(auth CredentialService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup handles the user registration endpoint.
// - binds the request JSON to SignupReq, 400 on validation failure
// - 409 when the email is already registered
// - 201 with the token pair and user on success
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request"})
		return
	}

	user, pair, err := h.auth.SignUp(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrCredentialsTaken) {
			slog.Warn("signup rejected", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusConflict, dto.ErrorRes{Error: "credentials taken"})
			return
		}
		slog.Error("signup failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "internal error"})
		return
	}

	slog.Info("user signup successful", "email", user.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.AuthRes{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         *user,
	})
}

// Signin handles the login endpoint.
// - binds the request JSON to SigninReq, 400 on validation failure
// - 401 for unknown email or wrong password, without distinguishing the two
// - 200 with a fresh token pair and the user on success
func (h *AuthHandler) Signin(c *gin.Context) {
	var req dto.SigninReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signin validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request"})
		return
	}

	user, pair, err := h.auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			slog.Warn("signin rejected", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, dto.ErrorRes{Error: "invalid email or password"})
			return
		}
		slog.Error("signin failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "internal error"})
		return
	}

	slog.Info("user signin successful", "email", user.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.AuthRes{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         *user,
	})
}

// Logout handles the logout endpoint for an authenticated user.
// Logout is idempotent: a user who is already logged out still gets
// {"logged_out": true}.
func (h *AuthHandler) Logout(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	if err := h.auth.LogOut(c.Request.Context(), userID); err != nil {
		slog.Error("logout failed", "error", err, "user_id", userID, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "internal error"})
		return
	}

	slog.Info("user logout successful", "user_id", userID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.LogoutRes{LoggedOut: true})
}

// Refresh handles the token refresh endpoint.
// - 401 when the refresh token is invalid, expired, rotated away or cleared
// - 200 with a fresh token pair and the user on success
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("refresh validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request"})
		return
	}

	user, pair, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidRefreshToken) {
			slog.Warn("refresh rejected", "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, dto.ErrorRes{Error: "invalid refresh token"})
			return
		}
		slog.Error("refresh failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "internal error"})
		return
	}

	slog.Info("token refresh successful", "email", user.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.AuthRes{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         *user,
	})
}

// Me handles the current-user endpoint for an authenticated request.
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	user, err := h.auth.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorRes{Error: "user not found"})
			return
		}
		slog.Error("current user lookup failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "internal error"})
		return
	}

	c.JSON(http.StatusOK, user)
}
