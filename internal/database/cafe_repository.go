package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/gamenest/cafe-booking-backend/internal/models"
)

const cafeColumns = `
	id, owner_id, name, slug, description, address, city, phone, image_url,
	amenities, opening_hour, closing_hour, is_active, is_featured,
	created_at, updated_at`

// CafeRepository handles cafés and console inventory database operations
type CafeRepository struct {
	db *sqlx.DB
}

// NewCafeRepository creates a new CafeRepository
func NewCafeRepository(db *sqlx.DB) *CafeRepository {
	return &CafeRepository{db: db}
}

// ListActive returns all active cafés, featured first
func (r *CafeRepository) ListActive() ([]models.Cafe, error) {
	var cafes []models.Cafe
	err := r.db.Select(&cafes, `
		SELECT `+cafeColumns+`
		FROM cafes
		WHERE is_active = true
		ORDER BY is_featured DESC, name
	`)
	if err != nil {
		return nil, err
	}
	return cafes, nil
}

// GetByID returns a single café by id, or nil when not found
func (r *CafeRepository) GetByID(id uuid.UUID) (*models.Cafe, error) {
	var cafe models.Cafe
	err := r.db.Get(&cafe, `SELECT `+cafeColumns+` FROM cafes WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &cafe, nil
}

// GetByOwnerID returns the café owned by a user, or nil when none exists
func (r *CafeRepository) GetByOwnerID(ownerID uuid.UUID) (*models.Cafe, error) {
	var cafe models.Cafe
	err := r.db.Get(&cafe, `SELECT `+cafeColumns+` FROM cafes WHERE owner_id = $1`, ownerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &cafe, nil
}

// Update applies an owner dashboard update; nil request fields keep the
// stored value via COALESCE.
func (r *CafeRepository) Update(id uuid.UUID, req *models.UpdateCafeRequest) (*models.Cafe, error) {
	// A nil amenities slice means "leave unchanged"; an empty one clears
	var amenities interface{}
	if req.Amenities != nil {
		amenities = pq.Array(req.Amenities)
	}

	var cafe models.Cafe
	err := r.db.Get(&cafe, `
		UPDATE cafes SET
			name = COALESCE($1, name),
			description = COALESCE($2, description),
			address = COALESCE($3, address),
			city = COALESCE($4, city),
			phone = COALESCE($5, phone),
			image_url = COALESCE($6, image_url),
			amenities = COALESCE($7, amenities),
			opening_hour = COALESCE($8, opening_hour),
			closing_hour = COALESCE($9, closing_hour),
			is_featured = COALESCE($10, is_featured),
			updated_at = $11
		WHERE id = $12
		RETURNING `+cafeColumns+`
	`,
		req.Name, req.Description, req.Address, req.City, req.Phone,
		req.ImageURL, amenities, req.OpeningHour, req.ClosingHour,
		req.IsFeatured, time.Now(), id,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update cafe: %w", err)
	}
	return &cafe, nil
}

// SetActive flips the café's active flag (admin action)
func (r *CafeRepository) SetActive(id uuid.UUID, active bool) (bool, error) {
	result, err := r.db.Exec(`
		UPDATE cafes SET is_active = $1, updated_at = $2 WHERE id = $3
	`, active, time.Now(), id)
	if err != nil {
		return false, err
	}

	rowsAffected, _ := result.RowsAffected()
	return rowsAffected == 1, nil
}

// GetInventory returns the configured unit count for one console type.
// Returns 0 with no error when the café has no inventory row for the type.
func (r *CafeRepository) GetInventory(cafeID uuid.UUID, consoleType string) (int, error) {
	var total int
	err := r.db.Get(&total, `
		SELECT total_units FROM console_inventory
		WHERE cafe_id = $1 AND console_type = $2
	`, cafeID, consoleType)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, err
	}
	return total, nil
}

// ListInventory returns every console inventory row for a café
func (r *CafeRepository) ListInventory(cafeID uuid.UUID) ([]models.ConsoleInventory, error) {
	var inventory []models.ConsoleInventory
	err := r.db.Select(&inventory, `
		SELECT id, cafe_id, console_type, total_units, created_at, updated_at
		FROM console_inventory
		WHERE cafe_id = $1
		ORDER BY console_type
	`, cafeID)
	if err != nil {
		return nil, err
	}
	return inventory, nil
}
