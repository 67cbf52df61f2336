package dto

import "auth_backend/internal/feature/auth/domain/entity"

// AuthRes is the response for successful signup, signin and refresh calls.
// The user's hash columns are excluded by the entity's JSON tags.
type AuthRes struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         entity.User `json:"user"`
}

// LogoutRes is the response for the /logout endpoint.
type LogoutRes struct {
	LoggedOut bool `json:"logged_out"`
}

// ErrorRes is the generic error response body.
type ErrorRes struct {
	Error string `json:"error"`
}
