package entity

// TokenPair holds a freshly issued access/refresh token pair.
// It is ephemeral: only a hash of the refresh token is ever persisted.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
