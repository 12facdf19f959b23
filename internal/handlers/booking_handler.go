package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gamenest/cafe-booking-backend/internal/database"
	"github.com/gamenest/cafe-booking-backend/internal/models"
	"github.com/gamenest/cafe-booking-backend/internal/services"
)

// BookingHandler handles public booking requests
type BookingHandler struct {
	bookingService *services.BookingService
	bookingRepo    *database.BookingRepository
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *services.BookingService, bookingRepo *database.BookingRepository) *BookingHandler {
	return &BookingHandler{bookingService: bookingService, bookingRepo: bookingRepo}
}

// CreateBooking handles POST /api/v1/bookings
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	booking, err := h.bookingService.CreateBooking(&req)
	if err != nil {
		log.Printf("ERROR: Failed to create booking for cafe %s: %v", req.CafeID, err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"booking": booking})
}

// GetBooking handles GET /api/v1/bookings/:id
func (h *BookingHandler) GetBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "Invalid booking id")
		return
	}

	booking, err := h.bookingRepo.GetByID(bookingID)
	if err != nil {
		log.Printf("ERROR: Failed to get booking %s: %v", bookingID, err)
		respondError(c, err)
		return
	}
	if booking == nil {
		respondNotFound(c, "Booking not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// CancelBooking handles POST /api/v1/bookings/:id/cancel
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "Invalid booking id")
		return
	}

	booking, err := h.bookingService.CancelBooking(bookingID)
	if err != nil {
		log.Printf("ERROR: Failed to cancel booking %s: %v", bookingID, err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// ListOwnerBookings handles GET /api/v1/owner/bookings?cafe_id=&date=
func (h *BookingHandler) ListOwnerBookings(c *gin.Context) {
	cafeID, err := uuid.Parse(c.Query("cafe_id"))
	if err != nil {
		respondBadRequest(c, "cafe_id query parameter is required and must be a UUID")
		return
	}

	date := c.Query("date")
	if date == "" {
		respondBadRequest(c, "date query parameter is required")
		return
	}

	bookings, err := h.bookingRepo.ListByCafeDate(cafeID, date)
	if err != nil {
		log.Printf("ERROR: Failed to list bookings for cafe %s: %v", cafeID, err)
		respondError(c, err)
		return
	}

	ids := make([]uuid.UUID, len(bookings))
	for i, b := range bookings {
		ids[i] = b.ID
	}
	items, err := h.bookingRepo.GetItemsForBookings(ids)
	if err != nil {
		log.Printf("ERROR: Failed to load booking items for cafe %s: %v", cafeID, err)
		respondError(c, err)
		return
	}

	itemsByBooking := make(map[uuid.UUID][]models.BookingItem, len(bookings))
	for _, item := range items {
		itemsByBooking[item.BookingID] = append(itemsByBooking[item.BookingID], item)
	}

	result := make([]models.BookingWithItems, len(bookings))
	for i, b := range bookings {
		result[i] = models.BookingWithItems{Booking: b, Items: itemsByBooking[b.ID]}
	}

	c.JSON(http.StatusOK, gin.H{"bookings": result, "total": len(result)})
}
