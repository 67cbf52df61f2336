// Package router wires the HTTP routes for the service.
package router

import (
	"github.com/gin-gonic/gin"

	authhandler "auth_backend/internal/feature/auth/transport/handler"
	"auth_backend/internal/platform/http/handler"
	"auth_backend/internal/platform/http/middleware"
	jwtmw "auth_backend/internal/platform/jwt"
)

// NewRouter builds the Gin engine with all routes registered.
func NewRouter(auth *authhandler.AuthHandler, parser jwtmw.AccessParser) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RequestID())

	// Public routes
	r.GET("/healthz", handler.Health)
	r.POST("/signup", auth.Signup)
	r.POST("/signin", auth.Signin)
	r.POST("/refresh", auth.Refresh)

	// Routes requiring a valid access token
	authed := r.Group("/")
	authed.Use(jwtmw.AuthRequired(parser))
	{
		authed.POST("/logout", auth.Logout)
		authed.GET("/me", auth.Me)
	}

	return r
}
