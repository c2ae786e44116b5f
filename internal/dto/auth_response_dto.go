package dto

import "time"

// LoginRequest defines the credentials for local login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued access token. The refresh token travels
// in an HTTP-only cookie, never in the body.
type LoginResponse struct {
	AccessToken string       `json:"accessToken"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	User        UserResponse `json:"user"`
}

// RefreshRequest identifies the user presenting a refresh cookie.
type RefreshRequest struct {
	UserID string `json:"userID" binding:"required"`
}
