package dto

import "github.com/yigit/mentorhub/internal/app/models"

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// LoginResponse keeps the legacy login body and adds the token lifetime
type LoginResponse struct {
	Message   string       `json:"message" example:"Login successful"`
	User      *models.User `json:"user"`
	Role      string       `json:"role" example:"Mentor"`
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expires_in" example:"86400"`
}
