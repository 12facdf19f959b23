package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gamenest/cafe-booking-backend/internal/models"
)

// AuditLogRepository handles the append-only audit log
type AuditLogRepository struct {
	db *sqlx.DB
}

// NewAuditLogRepository creates a new AuditLogRepository
func NewAuditLogRepository(db *sqlx.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

// Append writes one audit entry. Entries are never updated or deleted.
func (r *AuditLogRepository) Append(entry *models.AuditLogEntry) error {
	_, err := r.db.Exec(`
		INSERT INTO audit_log (id, actor_id, actor_email, action, entity_type, entity_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, entry.ID, entry.ActorID, entry.ActorEmail, entry.Action,
		entry.EntityType, entry.EntityID, entry.Details, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

// ListRecent returns the newest audit entries up to limit
func (r *AuditLogRepository) ListRecent(limit int) ([]models.AuditLogEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	if limit > 500 {
		limit = 500
	}

	var entries []models.AuditLogEntry
	err := r.db.Select(&entries, `
		SELECT id, actor_id, actor_email, action, entity_type, entity_id, details, created_at
		FROM audit_log
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	return entries, nil
}
