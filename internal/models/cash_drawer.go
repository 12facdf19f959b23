package models

import (
	"time"

	"github.com/google/uuid"
)

// CashDrawerRecord tracks a café's cash drawer for one calendar date.
// At most one collection event and one closing verification per record.
type CashDrawerRecord struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	CafeID         uuid.UUID  `json:"cafe_id" db:"cafe_id"`
	DrawerDate     string     `json:"drawer_date" db:"drawer_date"` // YYYY-MM-DD
	OpeningBalance float64    `json:"opening_balance" db:"opening_balance"`
	CashSales      float64    `json:"cash_sales" db:"cash_sales"`
	Collected      *float64   `json:"collected,omitempty" db:"collected"`
	CollectedAt    *time.Time `json:"collected_at,omitempty" db:"collected_at"`
	ChangeLeft     float64    `json:"change_left" db:"change_left"`
	ActualClosing  *float64   `json:"actual_closing,omitempty" db:"actual_closing"`
	ClosedAt       *time.Time `json:"closed_at,omitempty" db:"closed_at"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// ExpectedClosing is the invariant: opening balance plus cash sales since
// open, minus change left in the drawer after collection.
func (r CashDrawerRecord) ExpectedClosing() float64 {
	return r.OpeningBalance + r.CashSales - r.ChangeLeft
}

// HasCollection reports whether the single collection event already happened
func (r CashDrawerRecord) HasCollection() bool {
	return r.CollectedAt != nil
}

// IsClosed reports whether the closing verification already happened
func (r CashDrawerRecord) IsClosed() bool {
	return r.ClosedAt != nil
}

// OpenDrawerRequest opens a drawer record for a café and date
type OpenDrawerRequest struct {
	CafeID         string  `json:"cafe_id" binding:"required"`
	DrawerDate     string  `json:"drawer_date" binding:"required"`
	OpeningBalance float64 `json:"opening_balance" binding:"gte=0"`
}

// CashSaleRequest accumulates one walk-in cash sale into the day's drawer
type CashSaleRequest struct {
	CafeID     string  `json:"cafe_id" binding:"required"`
	DrawerDate string  `json:"drawer_date" binding:"required"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
}

// CollectDrawerRequest records the single collection event
type CollectDrawerRequest struct {
	CafeID     string  `json:"cafe_id" binding:"required"`
	DrawerDate string  `json:"drawer_date" binding:"required"`
	Amount     float64 `json:"amount" binding:"required,gte=0"`
	ChangeLeft float64 `json:"change_left" binding:"gte=0"`
}

// CloseDrawerRequest records the single closing verification
type CloseDrawerRequest struct {
	CafeID        string  `json:"cafe_id" binding:"required"`
	DrawerDate    string  `json:"drawer_date" binding:"required"`
	ActualClosing float64 `json:"actual_closing" binding:"gte=0"`
}
