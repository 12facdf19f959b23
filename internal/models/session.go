package models

import (
	"time"

	"github.com/google/uuid"
)

// SessionLifetime is the fixed window after which a session must
// re-authenticate, measured from issue time.
const SessionLifetime = 24 * time.Hour

// Session is the client-held session state carried inside a JWT.
// It is a plain value object so expiry can be tested without any
// storage or HTTP machinery.
type Session struct {
	UserID   uuid.UUID `json:"user_id"`
	Email    string    `json:"email"`
	Role     Role      `json:"role"`
	IssuedAt time.Time `json:"issued_at"`
}

// IsExpired reports whether the session has aged past SessionLifetime.
// A zero IssuedAt is treated as expired.
func (s Session) IsExpired(now time.Time) bool {
	if s.IssuedAt.IsZero() {
		return true
	}
	return now.Sub(s.IssuedAt) >= SessionLifetime
}

// ExpiresAt returns the instant the session stops being valid.
func (s Session) ExpiresAt() time.Time {
	return s.IssuedAt.Add(SessionLifetime)
}
