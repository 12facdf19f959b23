package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/gamenest/cafe-booking-backend/internal/apperrors"
	"github.com/gamenest/cafe-booking-backend/internal/models"
	"github.com/gamenest/cafe-booking-backend/pkg/mailer"
)

// BookingRepo is the booking persistence contract
type BookingRepo interface {
	CreateWithItems(booking *models.Booking, items []models.BookingItem, usage *models.CouponUsage) error
	GetByID(id uuid.UUID) (*models.BookingWithItems, error)
	CancelIfActive(id uuid.UUID) (bool, error)
}

// PricingRepo resolves pricing tier cells
type PricingRepo interface {
	GetTier(cafeID uuid.UUID, consoleType string, quantity, durationMinutes int) (*models.ConsolePricingTier, error)
}

// CouponResolver resolves café-scoped coupon codes
type CouponResolver interface {
	GetActiveByCode(cafeID uuid.UUID, code string) (*models.Coupon, error)
}

// CapacityChecker verifies selections against remaining availability
type CapacityChecker interface {
	CheckSelection(cafeID uuid.UUID, date, startTime string, sel models.BookingSelection) error
}

// BookingService validates and persists booking requests
type BookingService struct {
	bookings     BookingRepo
	pricing      PricingRepo
	coupons      CouponResolver
	availability CapacityChecker
	notifier     *NotificationService
	logger       *logrus.Logger
}

// NewBookingService creates a new booking service
func NewBookingService(
	bookings BookingRepo,
	pricing PricingRepo,
	coupons CouponResolver,
	availability CapacityChecker,
	notifier *NotificationService,
	logger *logrus.Logger,
) *BookingService {
	return &BookingService{
		bookings:     bookings,
		pricing:      pricing,
		coupons:      coupons,
		availability: availability,
		notifier:     notifier,
		logger:       logger,
	}
}

// CreateBooking validates a booking request and persists it atomically.
// Validation order is fixed: capacity for every selection first, then
// pricing tiers, then the coupon, so a capacity failure never consumes a
// coupon attempt. The booking starts out pending.
func (s *BookingService) CreateBooking(req *models.CreateBookingRequest) (*models.BookingWithItems, error) {
	cafeID, err := uuid.Parse(req.CafeID)
	if err != nil {
		return nil, apperrors.NewValidation("cafe_id", "must be a valid UUID")
	}
	if _, err := time.Parse("2006-01-02", req.BookingDate); err != nil {
		return nil, apperrors.NewValidation("booking_date", "must be YYYY-MM-DD")
	}
	if _, err := models.ParseSlot(req.StartTime); err != nil {
		return nil, apperrors.NewValidation("start_time", err.Error())
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, apperrors.NewValidation("customer_name", "is required")
	}
	if strings.TrimSpace(req.CustomerEmail) == "" {
		return nil, apperrors.NewValidation("customer_email", "is required")
	}

	// Capacity before anything else
	for _, sel := range req.Selections {
		if err := s.availability.CheckSelection(cafeID, req.BookingDate, req.StartTime, sel); err != nil {
			return nil, err
		}
	}

	// Price every selection; an absent tier means the combination is not
	// purchasable at this café.
	now := time.Now()
	subtotal := 0.0
	items := make([]models.BookingItem, 0, len(req.Selections))
	for _, sel := range req.Selections {
		tier, err := s.pricing.GetTier(cafeID, sel.ConsoleType, sel.Quantity, sel.DurationMinutes)
		if err != nil {
			return nil, fmt.Errorf("failed to load pricing tier: %w", err)
		}
		if tier == nil {
			return nil, apperrors.NewValidation("selections", fmt.Sprintf(
				"no price defined for %d x %s for %d minutes",
				sel.Quantity, sel.ConsoleType, sel.DurationMinutes))
		}

		items = append(items, models.BookingItem{
			ID:              uuid.New(),
			ConsoleType:     sel.ConsoleType,
			Quantity:        sel.Quantity,
			DurationMinutes: sel.DurationMinutes,
			UnitPrice:       tier.Price,
			CreatedAt:       now,
		})
		subtotal += tier.Price * float64(sel.Quantity)
	}

	// Coupon last, after the request is known to fit
	discount := 0.0
	var couponCode *string
	var usage *models.CouponUsage
	if strings.TrimSpace(req.CouponCode) != "" {
		coupon, err := s.coupons.GetActiveByCode(cafeID, req.CouponCode)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve coupon: %w", err)
		}
		if coupon == nil {
			return nil, apperrors.NewValidation("coupon_code", "coupon is invalid or inactive for this cafe")
		}

		discount = coupon.DiscountOn(subtotal)
		couponCode = &coupon.Code
		usage = &models.CouponUsage{
			ID:               uuid.New(),
			CouponID:         coupon.ID,
			AmountDiscounted: discount,
			UsedAt:           now,
		}
	}

	booking := &models.Booking{
		ID:            uuid.New(),
		CafeID:        cafeID,
		BookingDate:   req.BookingDate,
		StartTime:     req.StartTime,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Subtotal:      subtotal,
		Discount:      discount,
		TotalAmount:   subtotal - discount,
		CouponCode:    couponCode,
		Status:        models.BookingPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.bookings.CreateWithItems(booking, items, usage); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"cafe_id":    cafeID,
		"total":      booking.TotalAmount,
		"items":      len(items),
	}).Info("Booking created")

	result := &models.BookingWithItems{Booking: *booking, Items: items}
	for i := range result.Items {
		result.Items[i].BookingID = booking.ID
	}
	return result, nil
}

// CancelBooking transitions a pending or confirmed booking to cancelled and
// sends the cancellation email. Email failure is logged, never returned.
func (s *BookingService) CancelBooking(bookingID uuid.UUID) (*models.BookingWithItems, error) {
	cancelled, err := s.bookings.CancelIfActive(bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}
	if !cancelled {
		return nil, apperrors.NewValidation("booking_id", "booking does not exist or is not cancellable")
	}

	booking, err := s.bookings.GetByID(bookingID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil && booking != nil {
		s.notifier.DispatchLogged(mailer.TypeBookingCancellation, map[string]interface{}{
			"email":        booking.CustomerEmail,
			"name":         booking.CustomerName,
			"booking_id":   booking.ID.String(),
			"booking_date": booking.BookingDate,
			"start_time":   booking.StartTime,
		})
	}

	s.logger.WithField("booking_id", bookingID).Info("Booking cancelled")
	return booking, nil
}
