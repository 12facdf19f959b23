package models

import (
	"time"

	"github.com/google/uuid"
)

// MembershipPlan is a café-scoped plan definition
type MembershipPlan struct {
	ID           uuid.UUID `json:"id" db:"id"`
	CafeID       uuid.UUID `json:"cafe_id" db:"cafe_id"`
	Name         string    `json:"name" db:"name"`
	Description  *string   `json:"description,omitempty" db:"description"`
	Price        float64   `json:"price" db:"price"`
	DurationDays int       `json:"duration_days" db:"duration_days"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Subscription is a customer's instance of a membership plan. Subscriptions
// are created and deleted, never edited in place.
type Subscription struct {
	ID            uuid.UUID `json:"id" db:"id"`
	PlanID        uuid.UUID `json:"plan_id" db:"plan_id"`
	CafeID        uuid.UUID `json:"cafe_id" db:"cafe_id"`
	CustomerName  string    `json:"customer_name" db:"customer_name"`
	CustomerEmail string    `json:"customer_email" db:"customer_email"`
	StartsAt      time.Time `json:"starts_at" db:"starts_at"`
	EndsAt        time.Time `json:"ends_at" db:"ends_at"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// CreateMembershipPlanRequest is the owner dashboard plan creation payload
type CreateMembershipPlanRequest struct {
	CafeID       string  `json:"cafe_id" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	Price        float64 `json:"price" binding:"required,gte=0"`
	DurationDays int     `json:"duration_days" binding:"required,min=1"`
}

// CreateSubscriptionRequest is the owner dashboard subscription payload
type CreateSubscriptionRequest struct {
	PlanID        string `json:"plan_id" binding:"required"`
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerEmail string `json:"customer_email" binding:"required,email"`
}
