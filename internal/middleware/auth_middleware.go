package middleware

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gamenest/cafe-booking-backend/internal/models"
	"github.com/gamenest/cafe-booking-backend/pkg/jwt"
)

// SessionContextKey is the key used to store the session in Gin context
const SessionContextKey = "session"

// AuthMiddleware creates a middleware that validates session tokens. An
// expired or missing session is treated identically to unauthenticated and
// forces re-authentication.
func AuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Printf("AUTH FAILED: Missing authorization header - Path: %s, IP: %s", c.Request.URL.Path, c.ClientIP())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Authorization header is required",
			})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			log.Printf("AUTH FAILED: Invalid auth format - Path: %s, IP: %s", c.Request.URL.Path, c.ClientIP())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Invalid authorization header format. Expected: Bearer <token>",
			})
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(parts[1])

		session, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			if jwtService.IsTokenExpired(tokenString) {
				log.Printf("AUTH FAILED: Session expired - Path: %s, IP: %s", c.Request.URL.Path, c.ClientIP())
				c.JSON(http.StatusUnauthorized, gin.H{
					"error":   "session_expired",
					"message": "Session has expired. Please sign in again.",
				})
			} else {
				log.Printf("AUTH FAILED: Invalid token - Path: %s, IP: %s, Error: %v", c.Request.URL.Path, c.ClientIP(), err)
				c.JSON(http.StatusUnauthorized, gin.H{
					"error":   "invalid_token",
					"message": "Invalid session token",
				})
			}
			c.Abort()
			return
		}

		// The JWT exp claim already enforces the window; this second check
		// keeps the session value object the single source of truth.
		if session.IsExpired(time.Now()) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "session_expired",
				"message": "Session has expired. Please sign in again.",
			})
			c.Abort()
			return
		}

		c.Set(SessionContextKey, *session)
		c.Next()
	}
}

// RequireOwnerPrivileged restricts a route to owner, admin or super_admin
func RequireOwnerPrivileged() gin.HandlerFunc {
	return requireRole(func(r models.Role) bool { return r.IsOwnerPrivileged() },
		"owner dashboard requires owner, admin or super_admin role")
}

// RequireAdmin restricts a route to admin or super_admin
func RequireAdmin() gin.HandlerFunc {
	return requireRole(func(r models.Role) bool { return r.IsAdmin() },
		"admin access requires admin or super_admin role")
}

func requireRole(allowed func(models.Role) bool, denyMessage string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, exists := GetSession(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Session not found. Auth middleware may not be applied.",
			})
			c.Abort()
			return
		}

		if !allowed(session.Role) {
			log.Printf("AUTH FAILED: Insufficient role %q - Path: %s, User: %s", session.Role, c.Request.URL.Path, session.UserID)
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": denyMessage,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetSession retrieves the authenticated session from Gin context
func GetSession(c *gin.Context) (models.Session, bool) {
	value, exists := c.Get(SessionContextKey)
	if !exists {
		return models.Session{}, false
	}
	session, ok := value.(models.Session)
	return session, ok
}
