package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/gamenest/cafe-booking-backend/internal/apperrors"
	"github.com/gamenest/cafe-booking-backend/internal/models"
	"github.com/gamenest/cafe-booking-backend/pkg/mailer"
	"github.com/gamenest/cafe-booking-backend/pkg/uropay"
)

// PaymentBookingRepo is the slice of booking persistence the orchestrator
// needs: reads plus the two status-guarded writes.
type PaymentBookingRepo interface {
	GetByID(id uuid.UUID) (*models.BookingWithItems, error)
	SetUroPayOrderID(bookingID uuid.UUID, orderID string) error
	ConfirmIfPending(bookingID uuid.UUID) (bool, error)
}

// CafeReader resolves café display data for gateway payloads
type CafeReader interface {
	GetByID(id uuid.UUID) (*models.Cafe, error)
}

// PaymentGateway is the remote UPI gateway contract
type PaymentGateway interface {
	CreateOrder(req uropay.CreateOrderRequest) (*uropay.CreateOrderResponse, error)
	GetOrderStatus(orderID string) (*uropay.OrderStatusResponse, error)
}

// PaymentService reconciles remote payment orders into booking status
type PaymentService struct {
	bookings PaymentBookingRepo
	cafes    CafeReader
	gateway  PaymentGateway
	notifier *NotificationService
	logger   *logrus.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	bookings PaymentBookingRepo,
	cafes CafeReader,
	gateway PaymentGateway,
	notifier *NotificationService,
	logger *logrus.Logger,
) *PaymentService {
	return &PaymentService{
		bookings: bookings,
		cafes:    cafes,
		gateway:  gateway,
		notifier: notifier,
		logger:   logger,
	}
}

// CreateOrder creates a remote payment order for a pending booking and
// stores the returned order id. On gateway failure nothing is stored and
// the booking stays pending, so the caller may simply retry.
func (s *PaymentService) CreateOrder(bookingID uuid.UUID) (*uropay.CreateOrderResponse, error) {
	booking, err := s.bookings.GetByID(bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	if booking == nil {
		return nil, apperrors.NewValidation("booking_id", "booking not found")
	}
	if booking.Status != models.BookingPending {
		return nil, apperrors.NewValidation("booking_id",
			fmt.Sprintf("booking is %s, payment order can only be created while pending", booking.Status))
	}

	cafeName := ""
	if cafe, err := s.cafes.GetByID(booking.CafeID); err == nil && cafe != nil {
		cafeName = cafe.Name
	}

	order, err := s.gateway.CreateOrder(uropay.CreateOrderRequest{
		BookingID:     booking.ID.String(),
		Amount:        booking.TotalAmount,
		CustomerName:  booking.CustomerName,
		CustomerEmail: booking.CustomerEmail,
		CafeName:      cafeName,
	})
	if err != nil {
		return nil, &apperrors.GatewayError{Provider: "uropay", Err: err}
	}

	if err := s.bookings.SetUroPayOrderID(bookingID, order.UroPayOrderID); err != nil {
		return nil, fmt.Errorf("failed to store order id: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id": bookingID,
		"order_id":   order.UroPayOrderID,
		"amount":     booking.TotalAmount,
	}).Info("Payment order created")

	return order, nil
}

// PollStatus queries the remote order's status and reconciles a COMPLETED
// result into the booking via a status-guarded write. Two concurrent polls
// may both see COMPLETED; the pending-only predicate lets at most one win,
// so confirmation side effects fire exactly once. Polling an already
// confirmed booking is a no-op; a cancelled booking is never revived.
func (s *PaymentService) PollStatus(bookingID uuid.UUID, orderID string) (*models.BookingWithItems, *uropay.OrderStatusResponse, error) {
	booking, err := s.bookings.GetByID(bookingID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load booking: %w", err)
	}
	if booking == nil {
		return nil, nil, apperrors.NewValidation("booking_id", "booking not found")
	}

	if orderID == "" {
		if booking.UroPayOrderID == nil || *booking.UroPayOrderID == "" {
			return nil, nil, apperrors.NewValidation("order_id", "booking has no payment order")
		}
		orderID = *booking.UroPayOrderID
	}

	status, err := s.gateway.GetOrderStatus(orderID)
	if err != nil {
		return nil, nil, &apperrors.GatewayError{Provider: "uropay", Err: err}
	}

	if status.OrderStatus == uropay.OrderStatusCompleted {
		confirmed, err := s.bookings.ConfirmIfPending(bookingID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to confirm booking: %w", err)
		}
		if confirmed {
			s.logger.WithFields(logrus.Fields{
				"booking_id": bookingID,
				"order_id":   orderID,
			}).Info("Booking confirmed by payment")

			if s.notifier != nil {
				s.notifier.DispatchLogged(mailer.TypeBookingConfirmation, map[string]interface{}{
					"email":        booking.CustomerEmail,
					"name":         booking.CustomerName,
					"booking_id":   booking.ID.String(),
					"booking_date": booking.BookingDate,
					"start_time":   booking.StartTime,
					"total_amount": booking.TotalAmount,
				})
			}
		}
	}

	refreshed, err := s.bookings.GetByID(bookingID)
	if err != nil {
		return nil, nil, err
	}
	return refreshed, status, nil
}
