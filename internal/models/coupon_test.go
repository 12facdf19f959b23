package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoupon_DiscountOn(t *testing.T) {
	tests := []struct {
		name     string
		coupon   Coupon
		subtotal float64
		expected float64
	}{
		{"ten percent", Coupon{DiscountType: DiscountPercent, DiscountValue: 10}, 1000, 100},
		{"flat amount", Coupon{DiscountType: DiscountFlat, DiscountValue: 150}, 1000, 150},
		{"flat larger than subtotal clamps", Coupon{DiscountType: DiscountFlat, DiscountValue: 1500}, 1000, 1000},
		{"hundred percent", Coupon{DiscountType: DiscountPercent, DiscountValue: 100}, 800, 800},
		{"zero subtotal", Coupon{DiscountType: DiscountPercent, DiscountValue: 50}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			discount := tt.coupon.DiscountOn(tt.subtotal)
			assert.Equal(t, tt.expected, discount)
			assert.LessOrEqual(t, discount, tt.subtotal, "discounted total must stay non-negative")
		})
	}
}
