package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/gamenest/cafe-booking-backend/internal/models"
)

const drawerColumns = `
	id, cafe_id, to_char(drawer_date, 'YYYY-MM-DD') as drawer_date,
	opening_balance, cash_sales, collected, collected_at, change_left,
	actual_closing, closed_at, created_at, updated_at`

// CashDrawerRepository handles cash drawer database operations
type CashDrawerRepository struct {
	db *sqlx.DB
}

// NewCashDrawerRepository creates a new CashDrawerRepository
func NewCashDrawerRepository(db *sqlx.DB) *CashDrawerRepository {
	return &CashDrawerRepository{db: db}
}

// GetByCafeDate returns the drawer record for a café and date, or nil
func (r *CashDrawerRepository) GetByCafeDate(cafeID uuid.UUID, date string) (*models.CashDrawerRecord, error) {
	var record models.CashDrawerRecord
	err := r.db.Get(&record, `
		SELECT `+drawerColumns+`
		FROM cash_drawer_records
		WHERE cafe_id = $1 AND drawer_date = $2
	`, cafeID, date)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// Open creates the single drawer record for a café and date. The unique
// (cafe_id, drawer_date) constraint rejects a second open.
func (r *CashDrawerRepository) Open(record *models.CashDrawerRecord) error {
	_, err := r.db.Exec(`
		INSERT INTO cash_drawer_records (
			id, cafe_id, drawer_date, opening_balance, cash_sales, change_left, created_at, updated_at
		) VALUES ($1, $2, $3, $4, 0, 0, $5, $5)
	`, record.ID, record.CafeID, record.DrawerDate, record.OpeningBalance, record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to open cash drawer: %w", err)
	}
	return nil
}

// AddCashSale accumulates a cash sale into the drawer for the day. The
// closed_at IS NULL predicate keeps sales out of a drawer that has already
// been closed.
func (r *CashDrawerRepository) AddCashSale(cafeID uuid.UUID, date string, amount float64) (bool, error) {
	result, err := r.db.Exec(`
		UPDATE cash_drawer_records
		SET cash_sales = cash_sales + $1, updated_at = $2
		WHERE cafe_id = $3 AND drawer_date = $4 AND closed_at IS NULL
	`, amount, time.Now(), cafeID, date)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}

// RecordCollection writes the single collection event. The collected_at IS
// NULL predicate guarantees at most one collection per record.
func (r *CashDrawerRepository) RecordCollection(cafeID uuid.UUID, date string, amount, changeLeft float64) (bool, error) {
	result, err := r.db.Exec(`
		UPDATE cash_drawer_records
		SET collected = $1, change_left = $2, collected_at = $3, updated_at = $3
		WHERE cafe_id = $4 AND drawer_date = $5 AND collected_at IS NULL
	`, amount, changeLeft, time.Now(), cafeID, date)
	if err != nil {
		return false, err
	}

	rowsAffected, _ := result.RowsAffected()
	return rowsAffected == 1, nil
}

// RecordClosing writes the single closing verification. The closed_at IS
// NULL predicate guarantees at most one close per record.
func (r *CashDrawerRepository) RecordClosing(cafeID uuid.UUID, date string, actualClosing float64) (bool, error) {
	result, err := r.db.Exec(`
		UPDATE cash_drawer_records
		SET actual_closing = $1, closed_at = $2, updated_at = $2
		WHERE cafe_id = $3 AND drawer_date = $4 AND closed_at IS NULL
	`, actualClosing, time.Now(), cafeID, date)
	if err != nil {
		return false, err
	}

	rowsAffected, _ := result.RowsAffected()
	return rowsAffected == 1, nil
}
