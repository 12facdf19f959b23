package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gamenest/cafe-booking-backend/internal/services"
	"github.com/gamenest/cafe-booking-backend/pkg/mailer"
)

// EmailHandler handles transactional email dispatch requests
type EmailHandler struct {
	notifier *services.NotificationService
}

// NewEmailHandler creates a new email handler
func NewEmailHandler(notifier *services.NotificationService) *EmailHandler {
	return &EmailHandler{notifier: notifier}
}

// SendEmailRequest is the {type, data} dispatch payload
type SendEmailRequest struct {
	Type string                 `json:"type" binding:"required"`
	Data map[string]interface{} `json:"data" binding:"required"`
}

// Send handles POST /api/v1/email
func (h *EmailHandler) Send(c *gin.Context) {
	var req SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.notifier.Dispatch(mailer.EmailType(req.Type), req.Data); err != nil {
		log.Printf("ERROR: Email dispatch failed for type %s: %v", req.Type, err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
