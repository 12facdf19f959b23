package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamenest/cafe-booking-backend/internal/models"
)

func TestIssueAndValidate(t *testing.T) {
	svc := NewService("test-secret")
	session := models.Session{
		UserID:   uuid.New(),
		Email:    "owner@arcade.example",
		Role:     models.RoleOwner,
		IssuedAt: time.Now(),
	}

	token, err := svc.IssueSession(session)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, session.UserID, parsed.UserID)
	assert.Equal(t, session.Email, parsed.Email)
	assert.Equal(t, models.RoleOwner, parsed.Role)
	assert.WithinDuration(t, session.IssuedAt, parsed.IssuedAt, time.Second)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issuer := NewService("secret-a")
	validator := NewService("secret-b")

	token, err := issuer.IssueSession(models.Session{
		UserID:   uuid.New(),
		Role:     models.RoleOwner,
		IssuedAt: time.Now(),
	})
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := NewService("test-secret")

	// Issued past the full session window, so the token is already dead
	token, err := svc.IssueSession(models.Session{
		UserID:   uuid.New(),
		Role:     models.RoleOwner,
		IssuedAt: time.Now().Add(-models.SessionLifetime - time.Hour),
	})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwtlib.ErrTokenExpired)
	assert.True(t, svc.IsTokenExpired(token))
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := NewService("test-secret")

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
	assert.False(t, svc.IsTokenExpired("not.a.token"))
}

func TestValidateToken_UnknownRoleDegradesToGuest(t *testing.T) {
	svc := NewService("test-secret")

	token, err := svc.IssueSession(models.Session{
		UserID:   uuid.New(),
		Role:     models.Role("superuser"),
		IssuedAt: time.Now(),
	})
	require.NoError(t, err)

	parsed, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleGuest, parsed.Role)
}

func TestRemainingLifetime(t *testing.T) {
	now := time.Now()
	session := models.Session{IssuedAt: now.Add(-23 * time.Hour)}

	remaining := RemainingLifetime(session, now)
	assert.InDelta(t, time.Hour, remaining, float64(time.Second))

	expired := models.Session{IssuedAt: now.Add(-25 * time.Hour)}
	assert.Zero(t, RemainingLifetime(expired, now))
}
