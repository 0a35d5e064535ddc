package dto

import "time"

// RegisterRequest carries the credentials for new-player registration.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=24,username"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	District string `json:"district" binding:"omitempty,max=48"`
}

// LoginRequest carries login credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ExchangeCodeRequest carries the authorization code from the Google sign-in redirect.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// RefreshRequest carries a refresh token for clients that cannot use the
// session cookie. The cookie takes precedence when both are present.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// AuthResponse is returned on successful registration, login or refresh.
// RefreshToken is the raw opaque token; the server stores only its hash.
type AuthResponse struct {
	PlayerID     string    `json:"playerID"`
	Username     string    `json:"username"`
	SessionID    string    `json:"sessionID"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}
