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

// MembershipHandler handles the owner dashboard membership endpoints
type MembershipHandler struct {
	membershipRepo *database.MembershipRepository
}

// NewMembershipHandler creates a new membership handler
func NewMembershipHandler(membershipRepo *database.MembershipRepository) *MembershipHandler {
	return &MembershipHandler{membershipRepo: membershipRepo}
}

// ListPlans handles GET /api/v1/owner/membership-plans?cafe_id=
func (h *MembershipHandler) ListPlans(c *gin.Context) {
	cafeID, err := uuid.Parse(c.Query("cafe_id"))
	if err != nil {
		respondBadRequest(c, "cafe_id query parameter is required and must be a UUID")
		return
	}

	plans, err := h.membershipRepo.ListPlansByCafe(cafeID)
	if err != nil {
		log.Printf("ERROR: Failed to list membership plans for cafe %s: %v", cafeID, err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"plans": plans, "total": len(plans)})
}

// CreatePlan handles POST /api/v1/owner/membership-plans
func (h *MembershipHandler) CreatePlan(c *gin.Context) {
	var req models.CreateMembershipPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	cafeID, err := uuid.Parse(req.CafeID)
	if err != nil {
		respondBadRequest(c, "cafe_id must be a valid UUID")
		return
	}

	plan := &models.MembershipPlan{
		ID:           uuid.New(),
		CafeID:       cafeID,
		Name:         req.Name,
		Price:        req.Price,
		DurationDays: req.DurationDays,
		CreatedAt:    time.Now(),
	}
	if req.Description != "" {
		plan.Description = &req.Description
	}

	if err := h.membershipRepo.CreatePlan(plan); err != nil {
		log.Printf("ERROR: Failed to create membership plan for cafe %s: %v", cafeID, err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"plan": plan})
}

// DeletePlan handles DELETE /api/v1/owner/membership-plans?id=
func (h *MembershipHandler) DeletePlan(c *gin.Context) {
	planID, err := uuid.Parse(c.Query("id"))
	if err != nil {
		respondBadRequest(c, "id query parameter is required and must be a UUID")
		return
	}

	deleted, err := h.membershipRepo.DeletePlan(planID)
	if err != nil {
		log.Printf("ERROR: Failed to delete membership plan %s: %v", planID, err)
		respondError(c, err)
		return
	}
	if !deleted {
		respondNotFound(c, "Membership plan not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListSubscriptions handles GET /api/v1/owner/subscriptions?cafe_id=
func (h *MembershipHandler) ListSubscriptions(c *gin.Context) {
	cafeID, err := uuid.Parse(c.Query("cafe_id"))
	if err != nil {
		respondBadRequest(c, "cafe_id query parameter is required and must be a UUID")
		return
	}

	subs, err := h.membershipRepo.ListSubscriptionsByCafe(cafeID)
	if err != nil {
		log.Printf("ERROR: Failed to list subscriptions for cafe %s: %v", cafeID, err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscriptions": subs, "total": len(subs)})
}

// CreateSubscription handles POST /api/v1/owner/subscriptions
func (h *MembershipHandler) CreateSubscription(c *gin.Context) {
	var req models.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	planID, err := uuid.Parse(req.PlanID)
	if err != nil {
		respondBadRequest(c, "plan_id must be a valid UUID")
		return
	}

	plan, err := h.membershipRepo.GetPlanByID(planID)
	if err != nil {
		log.Printf("ERROR: Failed to get membership plan %s: %v", planID, err)
		respondError(c, err)
		return
	}
	if plan == nil {
		respondNotFound(c, "Membership plan not found")
		return
	}

	now := time.Now()
	sub := &models.Subscription{
		ID:            uuid.New(),
		PlanID:        plan.ID,
		CafeID:        plan.CafeID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		StartsAt:      now,
		EndsAt:        now.AddDate(0, 0, plan.DurationDays),
		CreatedAt:     now,
	}

	if err := h.membershipRepo.CreateSubscription(sub); err != nil {
		log.Printf("ERROR: Failed to create subscription for plan %s: %v", planID, err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"subscription": sub})
}

// DeleteSubscription handles DELETE /api/v1/owner/subscriptions?id=
func (h *MembershipHandler) DeleteSubscription(c *gin.Context) {
	subID, err := uuid.Parse(c.Query("id"))
	if err != nil {
		respondBadRequest(c, "id query parameter is required and must be a UUID")
		return
	}

	deleted, err := h.membershipRepo.DeleteSubscription(subID)
	if err != nil {
		log.Printf("ERROR: Failed to delete subscription %s: %v", subID, err)
		respondError(c, err)
		return
	}
	if !deleted {
		respondNotFound(c, "Subscription not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
