package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/gamenest/cafe-booking-backend/internal/database"
	"github.com/gamenest/cafe-booking-backend/internal/middleware"
	"github.com/gamenest/cafe-booking-backend/internal/models"
	"github.com/gamenest/cafe-booking-backend/internal/services"
	"github.com/gamenest/cafe-booking-backend/internal/utils"
	"github.com/gamenest/cafe-booking-backend/pkg/jwt"
	"github.com/gamenest/cafe-booking-backend/pkg/mailer"
)

// AuthHandler handles login and role verification
type AuthHandler struct {
	userRepo    *database.UserRepository
	roleService *services.RoleService
	jwtService  *jwt.Service
	notifier    *services.NotificationService
	bcryptCost  int
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	userRepo *database.UserRepository,
	roleService *services.RoleService,
	jwtService *jwt.Service,
	notifier *services.NotificationService,
	bcryptCost int,
) *AuthHandler {
	return &AuthHandler{
		userRepo:    userRepo,
		roleService: roleService,
		jwtService:  jwtService,
		notifier:    notifier,
		bcryptCost:  bcryptCost,
	}
}

// Login handles POST /api/v1/auth/login
// A successful login issues a session token and fires a login-alert email
// describing the signing-in device. Email failure never fails the login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	user, err := h.userRepo.GetByEmail(req.Email)
	if err != nil {
		log.Printf("ERROR: Login lookup failed for %s: %v", req.Email, err)
		respondError(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid_credentials", Message: "Invalid email or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid_credentials", Message: "Invalid email or password"})
		return
	}

	session := models.Session{
		UserID:   user.ID,
		Email:    user.Email,
		Role:     models.NormalizeRole(user.Role),
		IssuedAt: time.Now(),
	}

	token, err := h.jwtService.IssueSession(session)
	if err != nil {
		log.Printf("ERROR: Failed to issue session for %s: %v", user.Email, err)
		respondError(c, err)
		return
	}

	if err := h.userRepo.TouchLastLogin(user.ID); err != nil {
		log.Printf("ERROR: Failed to record login time for %s: %v", user.Email, err)
	}

	device := utils.ParseUserAgent(c.Request.UserAgent())
	h.notifier.DispatchLogged(mailer.TypeLoginAlert, map[string]interface{}{
		"email":  user.Email,
		"name":   user.FullName,
		"device": device.Describe(),
		"ip":     c.ClientIP(),
		"time":   session.IssuedAt.Format(time.RFC3339),
	})

	c.JSON(http.StatusOK, models.LoginResponse{
		AccessToken: token,
		ExpiresAt:   session.ExpiresAt(),
		User:        user,
	})
}

// VerifyRole handles POST /api/v1/owner/verify
// Resolves a user identity to a role and reports the dashboard access
// decision. A failed lookup denies access rather than erroring open.
func (h *AuthHandler) VerifyRole(c *gin.Context) {
	var req models.VerifyRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		respondBadRequest(c, "user_id must be a valid UUID")
		return
	}

	role, err := h.roleService.ResolveRole(userID)
	if err != nil {
		// Fail closed: report an unprivileged role, never an open door
		c.JSON(http.StatusOK, models.VerifyRoleResponse{Role: models.RoleGuest, Authorized: false})
		return
	}

	c.JSON(http.StatusOK, models.VerifyRoleResponse{Role: role, Authorized: role.IsOwnerPrivileged()})
}

// ChangePassword handles POST /api/v1/owner/change-password
// The current password is re-verified before the new one is hashed at the
// configured bcrypt cost.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	session, ok := middleware.GetSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "Authentication required"})
		return
	}

	user, err := h.userRepo.GetByEmail(session.Email)
	if err != nil {
		log.Printf("ERROR: Password change lookup failed for %s: %v", session.Email, err)
		respondError(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid_credentials", Message: "Invalid email or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid_credentials", Message: "Current password is incorrect"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), h.bcryptCost)
	if err != nil {
		log.Printf("ERROR: Failed to hash new password for %s: %v", user.Email, err)
		respondError(c, err)
		return
	}

	if err := h.userRepo.UpdatePassword(user.ID, string(hash)); err != nil {
		log.Printf("ERROR: Failed to update password for %s: %v", user.Email, err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
