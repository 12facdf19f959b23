package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gamenest/cafe-booking-backend/internal/database"
	"github.com/gamenest/cafe-booking-backend/internal/middleware"
	"github.com/gamenest/cafe-booking-backend/internal/models"
)

// AdminHandler handles the thin admin surface
type AdminHandler struct {
	cafeRepo  *database.CafeRepository
	auditRepo *database.AuditLogRepository
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(cafeRepo *database.CafeRepository, auditRepo *database.AuditLogRepository) *AdminHandler {
	return &AdminHandler{cafeRepo: cafeRepo, auditRepo: auditRepo}
}

// ListAuditLogs handles GET /api/v1/admin/audit-logs?limit=
func (h *AdminHandler) ListAuditLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	entries, err := h.auditRepo.ListRecent(limit)
	if err != nil {
		log.Printf("ERROR: Failed to list audit logs: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries, "total": len(entries)})
}

// ActivateCafe handles POST /api/v1/admin/cafes/:id/activate
func (h *AdminHandler) ActivateCafe(c *gin.Context) {
	h.setCafeActive(c, true, "cafe_activated")
}

// DeactivateCafe handles POST /api/v1/admin/cafes/:id/deactivate
func (h *AdminHandler) DeactivateCafe(c *gin.Context) {
	h.setCafeActive(c, false, "cafe_deactivated")
}

func (h *AdminHandler) setCafeActive(c *gin.Context, active bool, action string) {
	cafeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "Invalid cafe id")
		return
	}

	session, _ := middleware.GetSession(c)

	updated, err := h.cafeRepo.SetActive(cafeID, active)
	if err != nil {
		log.Printf("ERROR: Failed to set cafe %s active=%t: %v", cafeID, active, err)
		respondError(c, err)
		return
	}
	if !updated {
		respondNotFound(c, "Cafe not found")
		return
	}

	// Audit failure must not undo the admin action; log and continue
	entry := &models.AuditLogEntry{
		ID:         uuid.New(),
		ActorID:    session.UserID,
		ActorEmail: session.Email,
		Action:     action,
		EntityType: "cafe",
		EntityID:   cafeID.String(),
		CreatedAt:  time.Now(),
	}
	if err := h.auditRepo.Append(entry); err != nil {
		log.Printf("ERROR: Failed to write audit entry for %s: %v", action, err)
	}

	log.Printf("INFO: %s by %s for cafe %s", action, session.Email, cafeID)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
