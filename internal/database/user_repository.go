package database

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/gamenest/cafe-booking-backend/internal/models"
)

const userColumns = `
	id, email, password_hash, full_name, role, is_active, last_login_at, created_at, updated_at`

// UserRepository handles platform account database operations
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByEmail returns an active user by email, or nil when not found
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Get(&user, `
		SELECT `+userColumns+` FROM users WHERE email = $1 AND is_active = true
	`, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetRole returns the raw stored role string for a user. The caller
// normalizes it; a missing user surfaces as sql.ErrNoRows.
func (r *UserRepository) GetRole(userID uuid.UUID) (string, error) {
	var role string
	err := r.db.Get(&role, `SELECT role FROM users WHERE id = $1 AND is_active = true`, userID)
	if err != nil {
		return "", err
	}
	return role, nil
}

// UpdatePassword replaces the stored password hash for a user
func (r *UserRepository) UpdatePassword(userID uuid.UUID, passwordHash string) error {
	_, err := r.db.Exec(`
		UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3
	`, passwordHash, time.Now(), userID)
	return err
}

// TouchLastLogin records a successful login time
func (r *UserRepository) TouchLastLogin(userID uuid.UUID) error {
	_, err := r.db.Exec(`
		UPDATE users SET last_login_at = $1, updated_at = $1 WHERE id = $2
	`, time.Now(), userID)
	return err
}
