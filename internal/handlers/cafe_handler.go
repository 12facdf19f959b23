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

// CafeHandler handles public café browsing requests
type CafeHandler struct {
	cafeRepo     *database.CafeRepository
	pricingRepo  *database.PricingRepository
	availability *services.AvailabilityService
}

// NewCafeHandler creates a new café handler
func NewCafeHandler(
	cafeRepo *database.CafeRepository,
	pricingRepo *database.PricingRepository,
	availability *services.AvailabilityService,
) *CafeHandler {
	return &CafeHandler{
		cafeRepo:     cafeRepo,
		pricingRepo:  pricingRepo,
		availability: availability,
	}
}

// ListCafes handles GET /api/v1/cafes
func (h *CafeHandler) ListCafes(c *gin.Context) {
	cafes, err := h.cafeRepo.ListActive()
	if err != nil {
		log.Printf("ERROR: Failed to list cafes: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cafes": cafes, "total": len(cafes)})
}

// GetCafe handles GET /api/v1/cafes/:id
func (h *CafeHandler) GetCafe(c *gin.Context) {
	cafeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "Invalid cafe id")
		return
	}

	cafe, err := h.cafeRepo.GetByID(cafeID)
	if err != nil {
		log.Printf("ERROR: Failed to get cafe %s: %v", cafeID, err)
		respondError(c, err)
		return
	}
	if cafe == nil || !cafe.IsActive {
		respondNotFound(c, "Cafe not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"cafe": cafe})
}

// GetTicketOptions handles GET /api/v1/cafes/:id/ticket-options
// Ticket options are derived from the café's pricing tiers at read time.
func (h *CafeHandler) GetTicketOptions(c *gin.Context) {
	cafeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "Invalid cafe id")
		return
	}

	tiers, err := h.pricingRepo.ListByCafe(cafeID)
	if err != nil {
		log.Printf("ERROR: Failed to list pricing tiers for cafe %s: %v", cafeID, err)
		respondError(c, err)
		return
	}

	options := make([]models.TicketOption, 0, len(tiers))
	for _, tier := range tiers {
		options = append(options, models.TicketOptionFromTier(tier))
	}

	c.JSON(http.StatusOK, gin.H{"ticket_options": options})
}

// GetAvailability handles GET /api/v1/cafes/:id/availability
// Query params: date (YYYY-MM-DD), slot (HH:MM), console.
func (h *CafeHandler) GetAvailability(c *gin.Context) {
	cafeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "Invalid cafe id")
		return
	}

	date := c.Query("date")
	slot := c.Query("slot")
	console := c.Query("console")
	if date == "" || slot == "" || console == "" {
		respondBadRequest(c, "date, slot and console query parameters are required")
		return
	}

	available, err := h.availability.SlotAvailability(cafeID, date, slot, console)
	if err != nil {
		log.Printf("ERROR: Availability lookup failed for cafe %s: %v", cafeID, err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cafe_id":      cafeID,
		"date":         date,
		"slot":         slot,
		"console_type": console,
		"available":    available,
	})
}
