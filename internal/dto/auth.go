package dto

import (
	"time"

	"github.com/mindbuilders/dtmms/internal/models"
)

// LoginResponse is returned by POST /auth/login.
type LoginResponse struct {
	AccessToken string       `json:"accessToken"`
	TokenType   string       `json:"tokenType"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	User        UserResponse `json:"user"`
}

func NewLoginResponse(result *models.LoginResult) LoginResponse {
	return LoginResponse{
		AccessToken: result.AccessToken,
		TokenType:   "Bearer",
		ExpiresAt:   result.ExpiresAt,
		User:        NewUserResponse(result.User),
	}
}
