package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamenest/cafe-booking-backend/internal/apperrors"
	"github.com/gamenest/cafe-booking-backend/internal/models"
)

type fakeBookingRepo struct {
	created      *models.Booking
	createdItems []models.BookingItem
	createdUsage *models.CouponUsage
	createErr    error

	byID        map[uuid.UUID]*models.BookingWithItems
	cancelOK    bool
	cancelCalls int
}

func (f *fakeBookingRepo) CreateWithItems(b *models.Booking, items []models.BookingItem, usage *models.CouponUsage) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = b
	f.createdItems = items
	f.createdUsage = usage
	return nil
}

func (f *fakeBookingRepo) GetByID(id uuid.UUID) (*models.BookingWithItems, error) {
	return f.byID[id], nil
}

func (f *fakeBookingRepo) CancelIfActive(id uuid.UUID) (bool, error) {
	f.cancelCalls++
	return f.cancelOK, nil
}

type fakePricingRepo struct {
	tiers map[string]float64 // "console/qty/duration" -> price
}

func pricingKey(console string, qty, duration int) string {
	return fmt.Sprintf("%s/%d/%d", console, qty, duration)
}

func (f *fakePricingRepo) GetTier(cafeID uuid.UUID, consoleType string, quantity, durationMinutes int) (*models.ConsolePricingTier, error) {
	price, ok := f.tiers[pricingKey(consoleType, quantity, durationMinutes)]
	if !ok {
		return nil, nil
	}
	return &models.ConsolePricingTier{
		CafeID:          cafeID,
		ConsoleType:     consoleType,
		Quantity:        quantity,
		DurationMinutes: durationMinutes,
		Price:           price,
	}, nil
}

type fakeCouponResolver struct {
	coupon *models.Coupon
	calls  int
}

func (f *fakeCouponResolver) GetActiveByCode(cafeID uuid.UUID, code string) (*models.Coupon, error) {
	f.calls++
	return f.coupon, nil
}

type fakeCapacityChecker struct {
	err   error
	calls int
}

func (f *fakeCapacityChecker) CheckSelection(cafeID uuid.UUID, date, startTime string, sel models.BookingSelection) error {
	f.calls++
	return f.err
}

func validRequest() *models.CreateBookingRequest {
	return &models.CreateBookingRequest{
		CafeID:        uuid.New().String(),
		BookingDate:   "2026-03-14",
		StartTime:     "17:00",
		CustomerName:  "Riya Sharma",
		CustomerEmail: "riya@example.com",
		CustomerPhone: "9876543210",
		Selections: []models.BookingSelection{
			{ConsoleType: "ps5", Quantity: 2, DurationMinutes: 60},
			{ConsoleType: "xbox", Quantity: 1, DurationMinutes: 30},
		},
	}
}

func newBookingService(repo *fakeBookingRepo, pricing *fakePricingRepo, coupons *fakeCouponResolver, capacity *fakeCapacityChecker) *BookingService {
	return NewBookingService(repo, pricing, coupons, capacity, nil, testLogger())
}

func TestCreateBooking_SubtotalMatchesItems(t *testing.T) {
	repo := &fakeBookingRepo{}
	pricing := &fakePricingRepo{tiers: map[string]float64{
		pricingKey("ps5", 2, 60):  400,
		pricingKey("xbox", 1, 30): 150,
	}}
	svc := newBookingService(repo, pricing, &fakeCouponResolver{}, &fakeCapacityChecker{})

	booking, err := svc.CreateBooking(validRequest())
	require.NoError(t, err)

	// sum(unit_price * quantity) == subtotal == total with no coupon
	sum := 0.0
	for _, item := range booking.Items {
		sum += item.UnitPrice * float64(item.Quantity)
	}
	assert.Equal(t, sum, booking.Subtotal)
	assert.Equal(t, 2*400.0+1*150.0, booking.Subtotal)
	assert.Equal(t, booking.Subtotal, booking.TotalAmount)
	assert.Equal(t, models.BookingPending, booking.Status)

	// Persisted in one call: booking plus both items together
	require.NotNil(t, repo.created)
	assert.Len(t, repo.createdItems, 2)
	assert.Nil(t, repo.createdUsage)
}

func TestCreateBooking_CouponDiscountsTotal(t *testing.T) {
	repo := &fakeBookingRepo{}
	pricing := &fakePricingRepo{tiers: map[string]float64{
		pricingKey("ps5", 2, 60):  400,
		pricingKey("xbox", 1, 30): 150,
	}}
	coupons := &fakeCouponResolver{coupon: &models.Coupon{
		ID:            uuid.New(),
		Code:          "WELCOME10",
		DiscountType:  models.DiscountPercent,
		DiscountValue: 10,
		IsActive:      true,
	}}
	svc := newBookingService(repo, pricing, coupons, &fakeCapacityChecker{})

	req := validRequest()
	req.CouponCode = "WELCOME10"

	booking, err := svc.CreateBooking(req)
	require.NoError(t, err)

	assert.Equal(t, 950.0, booking.Subtotal)
	assert.Equal(t, 95.0, booking.Discount)
	assert.Equal(t, 855.0, booking.TotalAmount)
	assert.LessOrEqual(t, booking.TotalAmount, booking.Subtotal)

	// The redemption record rides in the same persist call
	require.NotNil(t, repo.createdUsage)
	assert.Equal(t, 95.0, repo.createdUsage.AmountDiscounted)
}

func TestCreateBooking_CapacityCheckedBeforeCoupon(t *testing.T) {
	capacity := &fakeCapacityChecker{err: &apperrors.CapacityError{ConsoleType: "ps5", Requested: 2, Available: 1}}
	coupons := &fakeCouponResolver{}
	svc := newBookingService(&fakeBookingRepo{}, &fakePricingRepo{}, coupons, capacity)

	req := validRequest()
	req.CouponCode = "WELCOME10"

	_, err := svc.CreateBooking(req)
	var capErr *apperrors.CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, "ps5", capErr.ConsoleType)
	assert.Zero(t, coupons.calls, "a capacity failure must not consume a coupon attempt")
}

func TestCreateBooking_MissingPricingTier(t *testing.T) {
	pricing := &fakePricingRepo{tiers: map[string]float64{}}
	svc := newBookingService(&fakeBookingRepo{}, pricing, &fakeCouponResolver{}, &fakeCapacityChecker{})

	_, err := svc.CreateBooking(validRequest())
	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Error(), "no price defined")
}

func TestCreateBooking_InvalidCoupon(t *testing.T) {
	pricing := &fakePricingRepo{tiers: map[string]float64{
		pricingKey("ps5", 2, 60):  400,
		pricingKey("xbox", 1, 30): 150,
	}}
	svc := newBookingService(&fakeBookingRepo{}, pricing, &fakeCouponResolver{coupon: nil}, &fakeCapacityChecker{})

	req := validRequest()
	req.CouponCode = "EXPIRED"

	_, err := svc.CreateBooking(req)
	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "coupon_code", validationErr.Field)
}

func TestCreateBooking_ValidationErrors(t *testing.T) {
	svc := newBookingService(&fakeBookingRepo{}, &fakePricingRepo{}, &fakeCouponResolver{}, &fakeCapacityChecker{})

	tests := []struct {
		name   string
		mutate func(*models.CreateBookingRequest)
		field  string
	}{
		{"bad cafe id", func(r *models.CreateBookingRequest) { r.CafeID = "not-a-uuid" }, "cafe_id"},
		{"bad date", func(r *models.CreateBookingRequest) { r.BookingDate = "14-03-2026" }, "booking_date"},
		{"off-grid start time", func(r *models.CreateBookingRequest) { r.StartTime = "17:10" }, "start_time"},
		{"blank name", func(r *models.CreateBookingRequest) { r.CustomerName = "  " }, "customer_name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := svc.CreateBooking(req)
			var validationErr *apperrors.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}
}

func TestCancelBooking_NotCancellable(t *testing.T) {
	repo := &fakeBookingRepo{cancelOK: false}
	svc := newBookingService(repo, &fakePricingRepo{}, &fakeCouponResolver{}, &fakeCapacityChecker{})

	_, err := svc.CancelBooking(uuid.New())
	var validationErr *apperrors.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, 1, repo.cancelCalls)
}
