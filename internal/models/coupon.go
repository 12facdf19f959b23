package models

import (
	"time"

	"github.com/google/uuid"
)

// DiscountType distinguishes percentage coupons from flat-amount coupons
type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountFlat    DiscountType = "flat"
)

// Coupon is a café-scoped discount code
type Coupon struct {
	ID            uuid.UUID    `json:"id" db:"id"`
	CafeID        uuid.UUID    `json:"cafe_id" db:"cafe_id"`
	Code          string       `json:"code" db:"code"`
	DiscountType  DiscountType `json:"discount_type" db:"discount_type"`
	DiscountValue float64      `json:"discount_value" db:"discount_value"`
	IsActive      bool         `json:"is_active" db:"is_active"`
	CreatedAt     time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at" db:"updated_at"`
}

// DiscountOn returns the discount amount for a subtotal. The result is
// clamped so the discounted total never goes below zero.
func (c Coupon) DiscountOn(subtotal float64) float64 {
	var discount float64
	switch c.DiscountType {
	case DiscountPercent:
		discount = subtotal * c.DiscountValue / 100
	case DiscountFlat:
		discount = c.DiscountValue
	}
	if discount < 0 {
		discount = 0
	}
	if discount > subtotal {
		discount = subtotal
	}
	return discount
}

// CouponUsage is an append-only redemption record, one row per redemption
type CouponUsage struct {
	ID               uuid.UUID `json:"id" db:"id"`
	CouponID         uuid.UUID `json:"coupon_id" db:"coupon_id"`
	BookingID        uuid.UUID `json:"booking_id" db:"booking_id"`
	AmountDiscounted float64   `json:"amount_discounted" db:"amount_discounted"`
	UsedAt           time.Time `json:"used_at" db:"used_at"`
}

// UpsertCouponRequest is the owner dashboard coupon create/update payload
type UpsertCouponRequest struct {
	CafeID        string  `json:"cafe_id" binding:"required"`
	Code          string  `json:"code" binding:"required"`
	DiscountType  string  `json:"discount_type" binding:"required,oneof=percent flat"`
	DiscountValue float64 `json:"discount_value" binding:"required,gt=0"`
}
