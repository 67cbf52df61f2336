package dto

// RefreshReq represents the request body for the /refresh endpoint.
type RefreshReq struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
