package models

import "time"

type UserLoginParams struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type SessionResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token,omitempty"`
	ExpiresAt time.Time    `json:"expires_at"`
}

type ThemeParams struct {
	Theme string `json:"theme" binding:"required,oneof=light dark system"`
}

type ThemeResponse struct {
	Theme string `json:"theme"`
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Providers []string          `json:"providers"`
	Checks    map[string]string `json:"checks,omitempty"`
	// TokenExpiresAt is set when a Dataverse token is cached
	TokenExpiresAt *time.Time `json:"token_expires_at,omitempty"`
}
