package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/gamenest/cafe-booking-backend/internal/apperrors"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			"validation maps to 400",
			apperrors.NewValidation("start_time", "must align to a 30 minute slot"),
			http.StatusBadRequest, "validation_error",
		},
		{
			"capacity maps to 409",
			&apperrors.CapacityError{ConsoleType: "ps5", Requested: 2, Available: 1},
			http.StatusConflict, "capacity_error",
		},
		{
			"authorization maps to 403",
			&apperrors.AuthorizationError{Reason: "role lookup failed"},
			http.StatusForbidden, "forbidden",
		},
		{
			"gateway maps to 500",
			&apperrors.GatewayError{Provider: "uropay", Err: errors.New("timeout")},
			http.StatusInternalServerError, "gateway_error",
		},
		{
			"wrapped validation still maps to 400",
			errors.Join(errors.New("outer"), apperrors.NewValidation("cafe_id", "must be a valid UUID")),
			http.StatusBadRequest, "validation_error",
		},
		{
			"unknown error maps to 500",
			errors.New("something broke"),
			http.StatusInternalServerError, "internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantCode)
		})
	}
}
