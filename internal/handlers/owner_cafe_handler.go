package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gamenest/cafe-booking-backend/internal/database"
	"github.com/gamenest/cafe-booking-backend/internal/middleware"
	"github.com/gamenest/cafe-booking-backend/internal/models"
)

// OwnerCafeHandler handles the owner dashboard café endpoints
type OwnerCafeHandler struct {
	cafeRepo *database.CafeRepository
}

// NewOwnerCafeHandler creates a new owner café handler
func NewOwnerCafeHandler(cafeRepo *database.CafeRepository) *OwnerCafeHandler {
	return &OwnerCafeHandler{cafeRepo: cafeRepo}
}

// GetCafe handles GET /api/v1/owner/cafes?id=
// Without an id the session owner's café is returned.
func (h *OwnerCafeHandler) GetCafe(c *gin.Context) {
	session, _ := middleware.GetSession(c)

	var cafe *models.Cafe
	var err error
	if idStr := c.Query("id"); idStr != "" {
		cafeID, parseErr := uuid.Parse(idStr)
		if parseErr != nil {
			respondBadRequest(c, "Invalid cafe id")
			return
		}
		cafe, err = h.cafeRepo.GetByID(cafeID)
	} else {
		cafe, err = h.cafeRepo.GetByOwnerID(session.UserID)
	}

	if err != nil {
		log.Printf("ERROR: Failed to get cafe for owner %s: %v", session.UserID, err)
		respondError(c, err)
		return
	}
	if cafe == nil {
		respondNotFound(c, "Cafe not found")
		return
	}

	inventory, err := h.cafeRepo.ListInventory(cafe.ID)
	if err != nil {
		log.Printf("ERROR: Failed to list inventory for cafe %s: %v", cafe.ID, err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cafe": cafe, "inventory": inventory})
}

// UpdateCafe handles PUT /api/v1/owner/cafes?id=
func (h *OwnerCafeHandler) UpdateCafe(c *gin.Context) {
	cafeID, err := uuid.Parse(c.Query("id"))
	if err != nil {
		respondBadRequest(c, "id query parameter is required and must be a UUID")
		return
	}

	session, _ := middleware.GetSession(c)

	existing, err := h.cafeRepo.GetByID(cafeID)
	if err != nil {
		log.Printf("ERROR: Failed to get cafe %s: %v", cafeID, err)
		respondError(c, err)
		return
	}
	if existing == nil {
		respondNotFound(c, "Cafe not found")
		return
	}

	// Owners may only edit their own café; admins may edit any
	if existing.OwnerID != session.UserID && !session.Role.IsAdmin() {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden", Message: "You do not own this cafe"})
		return
	}

	var req models.UpdateCafeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	cafe, err := h.cafeRepo.Update(cafeID, &req)
	if err != nil {
		log.Printf("ERROR: Failed to update cafe %s: %v", cafeID, err)
		respondError(c, err)
		return
	}
	if cafe == nil {
		respondNotFound(c, "Cafe not found")
		return
	}

	log.Printf("INFO: Cafe %s updated by %s", cafeID, session.UserID)
	c.JSON(http.StatusOK, gin.H{"cafe": cafe})
}
