// Package jwt issues and validates the platform's session tokens. A token
// carries a models.Session and is valid for exactly the session lifetime;
// an expired or unparseable token is treated the same as no token at all.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/gamenest/cafe-booking-backend/internal/models"
)

// Service signs and validates session tokens
type Service struct {
	secret []byte
}

// NewService creates a new token service
func NewService(secret string) *Service {
	return &Service{secret: []byte(secret)}
}

// sessionClaims is the JWT claim set carrying the session value object
type sessionClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// IssueSession signs a token for the session. Expiry is pinned to the
// session's fixed lifetime measured from issue time.
func (s *Service) IssueSession(session models.Session) (string, error) {
	claims := sessionClaims{
		Email: session.Email,
		Role:  string(session.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(session.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a token, returning the session it
// carries. Expired tokens fail with jwt.ErrTokenExpired.
func (s *Service) ValidateToken(tokenString string) (*models.Session, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid session token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("invalid subject in session token: %w", err)
	}

	session := &models.Session{
		UserID:   userID,
		Email:    claims.Email,
		Role:     models.NormalizeRole(claims.Role),
		IssuedAt: claims.IssuedAt.Time,
	}
	return session, nil
}

// IsTokenExpired reports whether a token failed validation purely because
// its session window has passed
func (s *Service) IsTokenExpired(tokenString string) bool {
	_, err := s.ValidateToken(tokenString)
	return errors.Is(err, jwt.ErrTokenExpired)
}

// RemainingLifetime returns how long the session has left, zero if expired
func RemainingLifetime(session models.Session, now time.Time) time.Duration {
	remaining := session.ExpiresAt().Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}
