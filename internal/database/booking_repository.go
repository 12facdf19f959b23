package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/gamenest/cafe-booking-backend/internal/models"
)

// bookingColumns is the shared select list; date and time columns are
// rendered as text so they round-trip the API's YYYY-MM-DD / HH:MM formats.
const bookingColumns = `
	id, cafe_id,
	to_char(booking_date, 'YYYY-MM-DD') as booking_date,
	to_char(start_time, 'HH24:MI') as start_time,
	customer_name, customer_email, customer_phone,
	subtotal, discount, total_amount, coupon_code, uropay_order_id,
	status, created_at, updated_at`

// BookingRepository handles bookings and booking_items database operations
type BookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// CreateWithItems persists a booking, its line items and (optionally) a
// coupon usage record in a single transaction. A booking row without its
// items must never be observable, so any failure rolls everything back.
func (r *BookingRepository) CreateWithItems(booking *models.Booking, items []models.BookingItem, usage *models.CouponUsage) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO bookings (
			id, cafe_id, booking_date, start_time,
			customer_name, customer_email, customer_phone,
			subtotal, discount, total_amount, coupon_code, status,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)
	`,
		booking.ID, booking.CafeID, booking.BookingDate, booking.StartTime,
		booking.CustomerName, booking.CustomerEmail, booking.CustomerPhone,
		booking.Subtotal, booking.Discount, booking.TotalAmount,
		booking.CouponCode, booking.Status, booking.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	for _, item := range items {
		_, err = tx.Exec(`
			INSERT INTO booking_items (
				id, booking_id, console_type, quantity, duration_minutes, unit_price, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
		`,
			item.ID, booking.ID, item.ConsoleType, item.Quantity,
			item.DurationMinutes, item.UnitPrice, item.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert booking item %s: %w", item.ConsoleType, err)
		}
	}

	if usage != nil {
		_, err = tx.Exec(`
			INSERT INTO coupon_usages (id, coupon_id, booking_id, amount_discounted, used_at)
			VALUES ($1, $2, $3, $4, $5)
		`, usage.ID, usage.CouponID, booking.ID, usage.AmountDiscounted, usage.UsedAt)
		if err != nil {
			return fmt.Errorf("failed to insert coupon usage: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit booking: %w", err)
	}

	return nil
}

// GetByID returns a booking with its items
func (r *BookingRepository) GetByID(id uuid.UUID) (*models.BookingWithItems, error) {
	var booking models.Booking
	err := r.db.Get(&booking, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	items, err := r.GetItems(id)
	if err != nil {
		return nil, err
	}

	return &models.BookingWithItems{Booking: booking, Items: items}, nil
}

// GetItems returns the line items of a booking
func (r *BookingRepository) GetItems(bookingID uuid.UUID) ([]models.BookingItem, error) {
	var items []models.BookingItem
	err := r.db.Select(&items, `
		SELECT id, booking_id, console_type, quantity, duration_minutes, unit_price, created_at
		FROM booking_items
		WHERE booking_id = $1
		ORDER BY console_type
	`, bookingID)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// GetItemsForBookings returns line items for multiple bookings at once
func (r *BookingRepository) GetItemsForBookings(bookingIDs []uuid.UUID) ([]models.BookingItem, error) {
	if len(bookingIDs) == 0 {
		return []models.BookingItem{}, nil
	}

	query, args, err := sqlx.In(`
		SELECT id, booking_id, console_type, quantity, duration_minutes, unit_price, created_at
		FROM booking_items
		WHERE booking_id IN (?)
		ORDER BY booking_id, console_type
	`, bookingIDs)
	if err != nil {
		return nil, err
	}

	query = r.db.Rebind(query)

	var items []models.BookingItem
	err = r.db.Select(&items, query, args...)
	if err != nil {
		return nil, err
	}

	return items, nil
}

// ListByCafeDate returns all bookings for a café on a date
func (r *BookingRepository) ListByCafeDate(cafeID uuid.UUID, date string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.Select(&bookings, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE cafe_id = $1 AND booking_date = $2
		ORDER BY start_time, created_at
	`, cafeID, date)
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// OccupiedItems returns every non-cancelled booked line for a café, date and
// console type together with its booking's start time. The availability
// calculator resolves slot overlap from these rows.
func (r *BookingRepository) OccupiedItems(cafeID uuid.UUID, date, consoleType string) ([]models.OccupiedItem, error) {
	var items []models.OccupiedItem
	err := r.db.Select(&items, `
		SELECT to_char(b.start_time, 'HH24:MI') as start_time,
			   bi.duration_minutes, bi.quantity
		FROM booking_items bi
		JOIN bookings b ON b.id = bi.booking_id
		WHERE b.cafe_id = $1
		  AND b.booking_date = $2
		  AND bi.console_type = $3
		  AND b.status != 'cancelled'
	`, cafeID, date, consoleType)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// SetUroPayOrderID stores the remote order id on a pending booking
func (r *BookingRepository) SetUroPayOrderID(bookingID uuid.UUID, orderID string) error {
	result, err := r.db.Exec(`
		UPDATE bookings
		SET uropay_order_id = $1, updated_at = $2
		WHERE id = $3 AND status = 'pending'
	`, orderID, time.Now(), bookingID)
	if err != nil {
		return err
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("booking %s is not pending, order id not stored", bookingID)
	}

	return nil
}

// ConfirmIfPending transitions a booking pending -> confirmed. The status
// predicate makes the write a compare-and-swap: under concurrent polls at
// most one caller sees rowsAffected == 1 and owns the confirmation side
// effects. A cancelled booking is never revived.
func (r *BookingRepository) ConfirmIfPending(bookingID uuid.UUID) (bool, error) {
	result, err := r.db.Exec(`
		UPDATE bookings
		SET status = 'confirmed', updated_at = $1
		WHERE id = $2 AND status = 'pending'
	`, time.Now(), bookingID)
	if err != nil {
		return false, err
	}

	rowsAffected, _ := result.RowsAffected()
	return rowsAffected == 1, nil
}

// CancelIfActive transitions a pending or confirmed booking to cancelled
func (r *BookingRepository) CancelIfActive(bookingID uuid.UUID) (bool, error) {
	result, err := r.db.Exec(`
		UPDATE bookings
		SET status = 'cancelled', updated_at = $1
		WHERE id = $2 AND status IN ('pending', 'confirmed')
	`, time.Now(), bookingID)
	if err != nil {
		return false, err
	}

	rowsAffected, _ := result.RowsAffected()
	return rowsAffected == 1, nil
}
