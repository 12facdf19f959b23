package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a platform account (owner or admin). Guests never have a row here.
type User struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"` // Never expose password hash in JSON
	FullName     string     `json:"full_name" db:"full_name"`
	Role         string     `json:"role" db:"role"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty" db:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// LoginRequest is the dashboard login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginResponse carries the session token issued on login
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        *User     `json:"user"`
}

// VerifyRoleRequest is the owner dashboard role-verification payload
type VerifyRoleRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// VerifyRoleResponse reports the resolved role and dashboard access decision
type VerifyRoleResponse struct {
	Role       Role `json:"role"`
	Authorized bool `json:"authorized"`
}

// ChangePasswordRequest is the dashboard password-change payload
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}
