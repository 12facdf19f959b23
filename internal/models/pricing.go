package models

import (
	"time"

	"github.com/google/uuid"
)

// ConsolePricingTier is one cell of a café's price matrix: the price for
// booking `quantity` units of `console_type` for `duration_minutes`.
// An absent row means the combination is not purchasable.
type ConsolePricingTier struct {
	ID              uuid.UUID `json:"id" db:"id"`
	CafeID          uuid.UUID `json:"cafe_id" db:"cafe_id"`
	ConsoleType     string    `json:"console_type" db:"console_type"`
	Quantity        int       `json:"quantity" db:"quantity"`
	DurationMinutes int       `json:"duration_minutes" db:"duration_minutes"`
	Price           float64   `json:"price" db:"price"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// TicketOption is a purchasable (console, quantity, duration) combination
// derived from a pricing tier at read time; it is never persisted.
type TicketOption struct {
	ConsoleType     string  `json:"console_type"`
	Quantity        int     `json:"quantity"`
	DurationMinutes int     `json:"duration_minutes"`
	Price           float64 `json:"price"`
}

// TicketOptionFromTier projects a pricing tier into its ticket option.
func TicketOptionFromTier(t ConsolePricingTier) TicketOption {
	return TicketOption{
		ConsoleType:     t.ConsoleType,
		Quantity:        t.Quantity,
		DurationMinutes: t.DurationMinutes,
		Price:           t.Price,
	}
}
