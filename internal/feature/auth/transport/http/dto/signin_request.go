package dto

// SigninReq represents the request body for the /signin endpoint.
type SigninReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
