package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/gamenest/cafe-booking-backend/internal/models"
)

const couponColumns = `
	id, cafe_id, code, discount_type, discount_value, is_active, created_at, updated_at`

// CouponRepository handles coupons and coupon usage database operations
type CouponRepository struct {
	db *sqlx.DB
}

// NewCouponRepository creates a new CouponRepository
func NewCouponRepository(db *sqlx.DB) *CouponRepository {
	return &CouponRepository{db: db}
}

// ListByCafe returns all coupons for a café
func (r *CouponRepository) ListByCafe(cafeID uuid.UUID) ([]models.Coupon, error) {
	var coupons []models.Coupon
	err := r.db.Select(&coupons, `
		SELECT `+couponColumns+`
		FROM coupons
		WHERE cafe_id = $1
		ORDER BY code
	`, cafeID)
	if err != nil {
		return nil, err
	}
	return coupons, nil
}

// GetActiveByCode resolves a code to an active coupon scoped to the café.
// Returns nil when no active coupon matches. Codes are stored uppercase.
func (r *CouponRepository) GetActiveByCode(cafeID uuid.UUID, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.db.Get(&coupon, `
		SELECT `+couponColumns+`
		FROM coupons
		WHERE cafe_id = $1 AND code = $2 AND is_active = true
	`, cafeID, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &coupon, nil
}

// Upsert inserts a coupon or updates the existing (cafe_id, code) row
func (r *CouponRepository) Upsert(coupon *models.Coupon) (*models.Coupon, error) {
	var saved models.Coupon
	err := r.db.Get(&saved, `
		INSERT INTO coupons (id, cafe_id, code, discount_type, discount_value, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (cafe_id, code) DO UPDATE SET
			discount_type = EXCLUDED.discount_type,
			discount_value = EXCLUDED.discount_value,
			updated_at = EXCLUDED.updated_at
		RETURNING `+couponColumns+`
	`,
		coupon.ID, coupon.CafeID, strings.ToUpper(coupon.Code),
		coupon.DiscountType, coupon.DiscountValue, coupon.IsActive, time.Now(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert coupon: %w", err)
	}
	return &saved, nil
}

// SetActive toggles a coupon's active flag
func (r *CouponRepository) SetActive(id uuid.UUID, active bool) (bool, error) {
	result, err := r.db.Exec(`
		UPDATE coupons SET is_active = $1, updated_at = $2 WHERE id = $3
	`, active, time.Now(), id)
	if err != nil {
		return false, err
	}

	rowsAffected, _ := result.RowsAffected()
	return rowsAffected == 1, nil
}

// Delete removes a coupon. Usage records are kept (append-only).
func (r *CouponRepository) Delete(id uuid.UUID) (bool, error) {
	result, err := r.db.Exec(`DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		return false, err
	}

	rowsAffected, _ := result.RowsAffected()
	return rowsAffected == 1, nil
}

// ListUsage returns the redemption history of a coupon, newest first
func (r *CouponRepository) ListUsage(couponID uuid.UUID) ([]models.CouponUsage, error) {
	var usages []models.CouponUsage
	err := r.db.Select(&usages, `
		SELECT id, coupon_id, booking_id, amount_discounted, used_at
		FROM coupon_usages
		WHERE coupon_id = $1
		ORDER BY used_at DESC
	`, couponID)
	if err != nil {
		return nil, err
	}
	return usages, nil
}
