package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditLogEntry is an append-only record of an admin action, attributed to
// the acting identity at write time
type AuditLogEntry struct {
	ID         uuid.UUID `json:"id" db:"id"`
	ActorID    uuid.UUID `json:"actor_id" db:"actor_id"`
	ActorEmail string    `json:"actor_email" db:"actor_email"`
	Action     string    `json:"action" db:"action"`
	EntityType string    `json:"entity_type" db:"entity_type"`
	EntityID   string    `json:"entity_id" db:"entity_id"`
	Details    *string   `json:"details,omitempty" db:"details"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
