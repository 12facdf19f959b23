package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gamenest/cafe-booking-backend/internal/apperrors"
)

// ErrorResponse is the JSON error body returned by all handlers
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// respondError maps the service error taxonomy onto HTTP statuses:
// validation 400, capacity 409, authorization 403, gateway and store
// failures 500 with the downstream message passed through.
func respondError(c *gin.Context, err error) {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: validationErr.Error()})
		return
	}

	var capacityErr *apperrors.CapacityError
	if errors.As(err, &capacityErr) {
		c.JSON(http.StatusConflict, ErrorResponse{Error: "capacity_error", Message: capacityErr.Error()})
		return
	}

	var authErr *apperrors.AuthorizationError
	if errors.As(err, &authErr) {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden", Message: authErr.Error()})
		return
	}

	var gatewayErr *apperrors.GatewayError
	if errors.As(err, &gatewayErr) {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "gateway_error", Message: gatewayErr.Error()})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal_error", Message: err.Error()})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: message})
}

func respondNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: "not_found", Message: message})
}
