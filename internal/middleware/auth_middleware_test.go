package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamenest/cafe-booking-backend/internal/models"
	"github.com/gamenest/cafe-booking-backend/pkg/jwt"
)

func setupRouter(jwtService *jwt.Service, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handlers := []gin.HandlerFunc{AuthMiddleware(jwtService)}
	handlers = append(handlers, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		session, _ := GetSession(c)
		c.JSON(http.StatusOK, gin.H{"user_id": session.UserID, "role": session.Role})
	})

	router.GET("/protected", handlers...)
	return router
}

func issueToken(t *testing.T, svc *jwt.Service, role models.Role, issuedAt time.Time) string {
	t.Helper()
	token, err := svc.IssueSession(models.Session{
		UserID:   uuid.New(),
		Email:    "user@example.com",
		Role:     role,
		IssuedAt: issuedAt,
	})
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware(t *testing.T) {
	jwtService := jwt.NewService("test-secret")

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantError  string
	}{
		{"missing header", "", http.StatusUnauthorized, "unauthorized"},
		{"not bearer", "Basic abc123", http.StatusUnauthorized, "unauthorized"},
		{"empty token", "Bearer ", http.StatusUnauthorized, "unauthorized"},
		{"garbage token", "Bearer not.a.token", http.StatusUnauthorized, "invalid_token"},
		{
			"expired session",
			"Bearer " + issueToken(t, jwtService, models.RoleOwner, time.Now().Add(-models.SessionLifetime-time.Hour)),
			http.StatusUnauthorized, "session_expired",
		},
		{
			"valid session",
			"Bearer " + issueToken(t, jwtService, models.RoleOwner, time.Now()),
			http.StatusOK, "",
		},
	}

	router := setupRouter(jwtService)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantError != "" {
				assert.Contains(t, w.Body.String(), tt.wantError)
			}
		})
	}
}

func TestRequireOwnerPrivileged(t *testing.T) {
	jwtService := jwt.NewService("test-secret")
	router := setupRouter(jwtService, RequireOwnerPrivileged())

	t.Run("guest denied", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+issueToken(t, jwtService, models.RoleGuest, time.Now()))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	for _, role := range []models.Role{models.RoleOwner, models.RoleAdmin, models.RoleSuperAdmin} {
		t.Run(string(role)+" allowed", func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+issueToken(t, jwtService, role, time.Now()))
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	jwtService := jwt.NewService("test-secret")
	router := setupRouter(jwtService, RequireAdmin())

	t.Run("owner denied", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+issueToken(t, jwtService, models.RoleOwner, time.Now()))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin allowed", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+issueToken(t, jwtService, models.RoleAdmin, time.Now()))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireRole_WithoutAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/broken", RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/broken", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
