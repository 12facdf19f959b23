package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gamenest/cafe-booking-backend/internal/services"
)

// PaymentHandler handles UroPay payment requests
type PaymentHandler struct {
	paymentService *services.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// CreateOrderRequest is the create-order payload
type CreateOrderRequest struct {
	BookingID string `json:"booking_id" binding:"required"`
}

// CreateOrder handles POST /api/v1/uropay/create-order
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		respondBadRequest(c, "booking_id must be a valid UUID")
		return
	}

	order, err := h.paymentService.CreateOrder(bookingID)
	if err != nil {
		log.Printf("ERROR: Failed to create payment order for booking %s: %v", bookingID, err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// GetStatus handles GET /api/v1/uropay/status?booking_id=&order_id=
// order_id is optional; when absent the booking's stored order id is used.
func (h *PaymentHandler) GetStatus(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Query("booking_id"))
	if err != nil {
		respondBadRequest(c, "booking_id query parameter is required and must be a UUID")
		return
	}

	booking, status, err := h.paymentService.PollStatus(bookingID, c.Query("order_id"))
	if err != nil {
		log.Printf("ERROR: Payment status poll failed for booking %s: %v", bookingID, err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"booking_status": booking.Status,
		"order_status":   status.OrderStatus,
		"order_id":       status.UroPayOrderID,
	})
}
