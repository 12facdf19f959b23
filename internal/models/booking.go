package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BookingStatus is the lifecycle state of a booking. Bookings are never
// deleted, only status-transitioned.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// SlotMinutes is the capacity-tracking grid: every slot is 30 minutes and
// bookings start on a slot boundary.
const SlotMinutes = 30

// Booking represents a reservation of console units at a café for one slot
type Booking struct {
	ID            uuid.UUID     `json:"id" db:"id"`
	CafeID        uuid.UUID     `json:"cafe_id" db:"cafe_id"`
	BookingDate   string        `json:"booking_date" db:"booking_date"` // YYYY-MM-DD
	StartTime     string        `json:"start_time" db:"start_time"`     // HH:MM, slot-aligned
	CustomerName  string        `json:"customer_name" db:"customer_name"`
	CustomerEmail string        `json:"customer_email" db:"customer_email"`
	CustomerPhone string        `json:"customer_phone" db:"customer_phone"`
	Subtotal      float64       `json:"subtotal" db:"subtotal"`
	Discount      float64       `json:"discount" db:"discount"`
	TotalAmount   float64       `json:"total_amount" db:"total_amount"`
	CouponCode    *string       `json:"coupon_code,omitempty" db:"coupon_code"`
	UroPayOrderID *string       `json:"uropay_order_id,omitempty" db:"uropay_order_id"`
	Status        BookingStatus `json:"status" db:"status"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" db:"updated_at"`
}

// BookingItem is one line of a booking. Immutable once the booking exists.
type BookingItem struct {
	ID              uuid.UUID `json:"id" db:"id"`
	BookingID       uuid.UUID `json:"booking_id" db:"booking_id"`
	ConsoleType     string    `json:"console_type" db:"console_type"`
	Quantity        int       `json:"quantity" db:"quantity"`
	DurationMinutes int       `json:"duration_minutes" db:"duration_minutes"`
	UnitPrice       float64   `json:"unit_price" db:"unit_price"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// BookingWithItems bundles a booking with its line items for API responses
type BookingWithItems struct {
	Booking
	Items []BookingItem `json:"items"`
}

// BookingSelection is one requested (console, quantity, duration) line
type BookingSelection struct {
	ConsoleType     string `json:"console_type" binding:"required"`
	Quantity        int    `json:"quantity" binding:"required,min=1"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=30"`
}

// CreateBookingRequest is the public booking creation payload
type CreateBookingRequest struct {
	CafeID        string             `json:"cafe_id" binding:"required"`
	BookingDate   string             `json:"booking_date" binding:"required"`
	StartTime     string             `json:"start_time" binding:"required"`
	CustomerName  string             `json:"customer_name" binding:"required"`
	CustomerEmail string             `json:"customer_email" binding:"required,email"`
	CustomerPhone string             `json:"customer_phone" binding:"required"`
	CouponCode    string             `json:"coupon_code"`
	Selections    []BookingSelection `json:"selections" binding:"required,min=1"`
}

// OccupiedItem is a booked line joined with its booking's start time, the
// input the availability calculator needs to resolve slot overlap.
type OccupiedItem struct {
	StartTime       string `db:"start_time"`
	DurationMinutes int    `db:"duration_minutes"`
	Quantity        int    `db:"quantity"`
}

// ParseSlot converts an HH:MM time-of-day into minutes since midnight and
// rejects values off the slot grid.
func ParseSlot(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	minutes := t.Hour()*60 + t.Minute()
	if minutes%SlotMinutes != 0 {
		return 0, fmt.Errorf("time %q is not aligned to the %d-minute slot grid", s, SlotMinutes)
	}
	return minutes, nil
}

// SlotsOverlap reports whether a booking starting at startMin lasting
// durationMin minutes occupies the slot beginning at slotMin. A 60-minute
// booking consumes both contained 30-minute slots.
func SlotsOverlap(startMin, durationMin, slotMin int) bool {
	return slotMin >= startMin && slotMin < startMin+durationMin
}
