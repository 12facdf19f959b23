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

// CouponHandler handles the owner dashboard coupon endpoints
type CouponHandler struct {
	couponRepo *database.CouponRepository
}

// NewCouponHandler creates a new coupon handler
func NewCouponHandler(couponRepo *database.CouponRepository) *CouponHandler {
	return &CouponHandler{couponRepo: couponRepo}
}

// ListCoupons handles GET /api/v1/owner/coupons?cafe_id=
func (h *CouponHandler) ListCoupons(c *gin.Context) {
	cafeID, err := uuid.Parse(c.Query("cafe_id"))
	if err != nil {
		respondBadRequest(c, "cafe_id query parameter is required and must be a UUID")
		return
	}

	coupons, err := h.couponRepo.ListByCafe(cafeID)
	if err != nil {
		log.Printf("ERROR: Failed to list coupons for cafe %s: %v", cafeID, err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"coupons": coupons, "total": len(coupons)})
}

// UpsertCoupon handles POST /api/v1/owner/coupons
func (h *CouponHandler) UpsertCoupon(c *gin.Context) {
	var req models.UpsertCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	cafeID, err := uuid.Parse(req.CafeID)
	if err != nil {
		respondBadRequest(c, "cafe_id must be a valid UUID")
		return
	}

	coupon, err := h.couponRepo.Upsert(&models.Coupon{
		ID:            uuid.New(),
		CafeID:        cafeID,
		Code:          req.Code,
		DiscountType:  models.DiscountType(req.DiscountType),
		DiscountValue: req.DiscountValue,
		IsActive:      true,
		CreatedAt:     time.Now(),
	})
	if err != nil {
		log.Printf("ERROR: Failed to upsert coupon %s: %v", req.Code, err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"coupon": coupon})
}

// ToggleCouponRequest is the active-flag toggle payload
type ToggleCouponRequest struct {
	ID       string `json:"id" binding:"required"`
	IsActive *bool  `json:"is_active" binding:"required"`
}

// ToggleCoupon handles PATCH /api/v1/owner/coupons
func (h *CouponHandler) ToggleCoupon(c *gin.Context) {
	var req ToggleCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	couponID, err := uuid.Parse(req.ID)
	if err != nil {
		respondBadRequest(c, "id must be a valid UUID")
		return
	}

	updated, err := h.couponRepo.SetActive(couponID, *req.IsActive)
	if err != nil {
		log.Printf("ERROR: Failed to toggle coupon %s: %v", couponID, err)
		respondError(c, err)
		return
	}
	if !updated {
		respondNotFound(c, "Coupon not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteCoupon handles DELETE /api/v1/owner/coupons?id=
func (h *CouponHandler) DeleteCoupon(c *gin.Context) {
	couponID, err := uuid.Parse(c.Query("id"))
	if err != nil {
		respondBadRequest(c, "id query parameter is required and must be a UUID")
		return
	}

	deleted, err := h.couponRepo.Delete(couponID)
	if err != nil {
		log.Printf("ERROR: Failed to delete coupon %s: %v", couponID, err)
		respondError(c, err)
		return
	}
	if !deleted {
		respondNotFound(c, "Coupon not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListCouponUsage handles GET /api/v1/owner/coupons/usage?coupon_id=
func (h *CouponHandler) ListCouponUsage(c *gin.Context) {
	couponID, err := uuid.Parse(c.Query("coupon_id"))
	if err != nil {
		respondBadRequest(c, "coupon_id query parameter is required and must be a UUID")
		return
	}

	usages, err := h.couponRepo.ListUsage(couponID)
	if err != nil {
		log.Printf("ERROR: Failed to list usage for coupon %s: %v", couponID, err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"usages": usages, "total": len(usages)})
}
