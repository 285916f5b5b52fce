package dto

import (
	"time"

	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/model"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegisterRequest struct {
	Name     string     `json:"name"     validate:"required,max=100"`
	Email    string     `json:"email"    validate:"omitempty,max=254"`
	Phone    string     `json:"phone"    validate:"omitempty,max=30"`
	Password string     `json:"password" validate:"required,max=72"`
	Role     model.Role `json:"role"     validate:"required,oneof=admin salesman"`
	Remember bool       `json:"remember"`
}

// LoginRequest identifies admins by email and salesmen by name.
type LoginRequest struct {
	Role     model.Role `json:"role"     validate:"required,oneof=admin salesman"`
	Email    string     `json:"email"    validate:"required_if=Role admin"`
	Name     string     `json:"name"     validate:"required_if=Role salesman"`
	Password string     `json:"password" validate:"required"`
	Remember bool       `json:"remember"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LoginResponse struct {
	AccessToken string     `json:"accessToken"`
	TokenType   string     `json:"tokenType"`
	ExpiresIn   int        `json:"expiresIn"` // seconds
	ExpiresAt   time.Time  `json:"expiresAt"`
	User        model.User `json:"user"`
}

type SessionResponse struct {
	User      model.User `json:"user"`
	StartedAt time.Time  `json:"startedAt"`
	ExpiresAt time.Time  `json:"expiresAt"`
	Remember  bool       `json:"remember"`
}
