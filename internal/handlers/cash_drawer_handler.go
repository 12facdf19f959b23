package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gamenest/cafe-booking-backend/internal/database"
	"github.com/gamenest/cafe-booking-backend/internal/models"
)

// CashDrawerHandler handles the owner dashboard cash drawer endpoints
type CashDrawerHandler struct {
	drawerRepo *database.CashDrawerRepository
}

// NewCashDrawerHandler creates a new cash drawer handler
func NewCashDrawerHandler(drawerRepo *database.CashDrawerRepository) *CashDrawerHandler {
	return &CashDrawerHandler{drawerRepo: drawerRepo}
}

// GetDrawer handles GET /api/v1/owner/cash-drawer?cafe_id=&date=
func (h *CashDrawerHandler) GetDrawer(c *gin.Context) {
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

	record, err := h.drawerRepo.GetByCafeDate(cafeID, date)
	if err != nil {
		log.Printf("ERROR: Failed to get cash drawer for cafe %s on %s: %v", cafeID, date, err)
		respondError(c, err)
		return
	}
	if record == nil {
		respondNotFound(c, "No cash drawer record for that date")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"record":           record,
		"expected_closing": record.ExpectedClosing(),
	})
}

// OpenDrawer handles POST /api/v1/owner/cash-drawer
func (h *CashDrawerHandler) OpenDrawer(c *gin.Context) {
	var req models.OpenDrawerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	cafeID, err := uuid.Parse(req.CafeID)
	if err != nil {
		respondBadRequest(c, "cafe_id must be a valid UUID")
		return
	}

	existing, err := h.drawerRepo.GetByCafeDate(cafeID, req.DrawerDate)
	if err != nil {
		log.Printf("ERROR: Failed to check cash drawer for cafe %s: %v", cafeID, err)
		respondError(c, err)
		return
	}
	if existing != nil {
		respondBadRequest(c, "Cash drawer already opened for that date")
		return
	}

	record := &models.CashDrawerRecord{
		ID:             uuid.New(),
		CafeID:         cafeID,
		DrawerDate:     req.DrawerDate,
		OpeningBalance: req.OpeningBalance,
		CreatedAt:      time.Now(),
	}

	if err := h.drawerRepo.Open(record); err != nil {
		log.Printf("ERROR: Failed to open cash drawer for cafe %s: %v", cafeID, err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"record": record})
}

// RecordSale handles POST /api/v1/owner/cash-drawer/sale. Walk-in cash
// payments accumulate into cash_sales so the expected closing stays honest.
func (h *CashDrawerHandler) RecordSale(c *gin.Context) {
	var req models.CashSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	cafeID, err := uuid.Parse(req.CafeID)
	if err != nil {
		respondBadRequest(c, "cafe_id must be a valid UUID")
		return
	}

	recorded, err := h.drawerRepo.AddCashSale(cafeID, req.DrawerDate, req.Amount)
	if err != nil {
		log.Printf("ERROR: Failed to record cash sale for cafe %s: %v", cafeID, err)
		respondError(c, err)
		return
	}
	if !recorded {
		respondBadRequest(c, "Cash drawer not open for that date or already closed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Collect handles POST /api/v1/owner/cash-drawer/collect
// At most one collection per record; a second attempt is rejected.
func (h *CashDrawerHandler) Collect(c *gin.Context) {
	var req models.CollectDrawerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	cafeID, err := uuid.Parse(req.CafeID)
	if err != nil {
		respondBadRequest(c, "cafe_id must be a valid UUID")
		return
	}

	collected, err := h.drawerRepo.RecordCollection(cafeID, req.DrawerDate, req.Amount, req.ChangeLeft)
	if err != nil {
		log.Printf("ERROR: Failed to record collection for cafe %s: %v", cafeID, err)
		respondError(c, err)
		return
	}
	if !collected {
		respondBadRequest(c, "Cash drawer not open for that date or collection already recorded")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Close handles POST /api/v1/owner/cash-drawer/close
// At most one closing verification per record.
func (h *CashDrawerHandler) Close(c *gin.Context) {
	var req models.CloseDrawerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	cafeID, err := uuid.Parse(req.CafeID)
	if err != nil {
		respondBadRequest(c, "cafe_id must be a valid UUID")
		return
	}

	closed, err := h.drawerRepo.RecordClosing(cafeID, req.DrawerDate, req.ActualClosing)
	if err != nil {
		log.Printf("ERROR: Failed to record closing for cafe %s: %v", cafeID, err)
		respondError(c, err)
		return
	}
	if !closed {
		respondBadRequest(c, "Cash drawer not open for that date or already closed")
		return
	}

	record, err := h.drawerRepo.GetByCafeDate(cafeID, req.DrawerDate)
	if err != nil {
		log.Printf("ERROR: Failed to reload cash drawer for cafe %s: %v", cafeID, err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"record":           record,
		"expected_closing": record.ExpectedClosing(),
		"difference":       *record.ActualClosing - record.ExpectedClosing(),
	})
}
