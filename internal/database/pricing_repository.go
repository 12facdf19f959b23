package database

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/gamenest/cafe-booking-backend/internal/models"
)

// PricingRepository handles console pricing tier database operations
type PricingRepository struct {
	db *sqlx.DB
}

// NewPricingRepository creates a new PricingRepository
func NewPricingRepository(db *sqlx.DB) *PricingRepository {
	return &PricingRepository{db: db}
}

// ListByCafe returns the full price matrix for a café
func (r *PricingRepository) ListByCafe(cafeID uuid.UUID) ([]models.ConsolePricingTier, error) {
	var tiers []models.ConsolePricingTier
	err := r.db.Select(&tiers, `
		SELECT id, cafe_id, console_type, quantity, duration_minutes, price, created_at, updated_at
		FROM console_pricing_tiers
		WHERE cafe_id = $1
		ORDER BY console_type, quantity, duration_minutes
	`, cafeID)
	if err != nil {
		return nil, err
	}
	return tiers, nil
}

// GetTier returns the price cell for one (console, quantity, duration)
// combination, or nil when the combination is not purchasable.
func (r *PricingRepository) GetTier(cafeID uuid.UUID, consoleType string, quantity, durationMinutes int) (*models.ConsolePricingTier, error) {
	var tier models.ConsolePricingTier
	err := r.db.Get(&tier, `
		SELECT id, cafe_id, console_type, quantity, duration_minutes, price, created_at, updated_at
		FROM console_pricing_tiers
		WHERE cafe_id = $1 AND console_type = $2 AND quantity = $3 AND duration_minutes = $4
	`, cafeID, consoleType, quantity, durationMinutes)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &tier, nil
}
