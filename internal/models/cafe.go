package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Cafe represents a gaming café venue listed on the platform
type Cafe struct {
	ID          uuid.UUID      `json:"id" db:"id"`
	OwnerID     uuid.UUID      `json:"owner_id" db:"owner_id"`
	Name        string         `json:"name" db:"name"`
	Slug        string         `json:"slug" db:"slug"`
	Description *string        `json:"description,omitempty" db:"description"`
	Address     string         `json:"address" db:"address"`
	City        string         `json:"city" db:"city"`
	Phone       *string        `json:"phone,omitempty" db:"phone"`
	ImageURL    *string        `json:"image_url,omitempty" db:"image_url"`
	Amenities   pq.StringArray `json:"amenities" db:"amenities"`
	OpeningHour int            `json:"opening_hour" db:"opening_hour"`
	ClosingHour int            `json:"closing_hour" db:"closing_hour"`
	IsActive    bool           `json:"is_active" db:"is_active"`
	IsFeatured  bool           `json:"is_featured" db:"is_featured"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}

// UpdateCafeRequest is the owner dashboard café update payload.
// Nil fields are left unchanged.
type UpdateCafeRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Address     *string  `json:"address"`
	City        *string  `json:"city"`
	Phone       *string  `json:"phone"`
	ImageURL    *string  `json:"image_url"`
	Amenities   []string `json:"amenities"`
	OpeningHour *int     `json:"opening_hour"`
	ClosingHour *int     `json:"closing_hour"`
	IsFeatured  *bool    `json:"is_featured"`
}

// ConsoleInventory is the configured unit count for one console type at a café
type ConsoleInventory struct {
	ID          uuid.UUID `json:"id" db:"id"`
	CafeID      uuid.UUID `json:"cafe_id" db:"cafe_id"`
	ConsoleType string    `json:"console_type" db:"console_type"`
	TotalUnits  int       `json:"total_units" db:"total_units"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
