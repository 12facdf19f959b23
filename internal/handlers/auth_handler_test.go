package handlers

import (
	"database/sql/driver"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/gamenest/cafe-booking-backend/internal/database"
	"github.com/gamenest/cafe-booking-backend/internal/middleware"
	"github.com/gamenest/cafe-booking-backend/internal/models"
)

// bcryptHashArg matches a stored hash that was produced at the expected
// cost and verifies against the expected plaintext.
type bcryptHashArg struct {
	password string
	cost     int
}

func (a bcryptHashArg) Match(v driver.Value) bool {
	hash, ok := v.(string)
	if !ok {
		return false
	}
	if cost, err := bcrypt.Cost([]byte(hash)); err != nil || cost != a.cost {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(a.password)) == nil
}

func setupChangePasswordTest(t *testing.T, userID uuid.UUID) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	sqlxDB := sqlx.NewDb(mockDB, "postgres")
	handler := NewAuthHandler(database.NewUserRepository(sqlxDB), nil, nil, nil, bcrypt.MinCost)

	router := gin.New()
	router.POST("/change-password", func(c *gin.Context) {
		c.Set(middleware.SessionContextKey, models.Session{
			UserID:   userID,
			Email:    "owner@example.com",
			Role:     models.RoleOwner,
			IssuedAt: time.Now(),
		})
	}, handler.ChangePassword)
	return router, mock
}

func userRow(userID uuid.UUID, passwordHash string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "email", "password_hash", "full_name", "role", "is_active",
		"last_login_at", "created_at", "updated_at",
	}).AddRow(userID, "owner@example.com", passwordHash, "Arjun Mehta", "owner", true, nil, now, now)
}

func TestChangePassword(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Success", func(t *testing.T) {
		userID := uuid.New()
		router, mock := setupChangePasswordTest(t, userID)

		currentHash, err := bcrypt.GenerateFromPassword([]byte("old-secret"), bcrypt.MinCost)
		require.NoError(t, err)

		mock.ExpectQuery(`SELECT (.+) FROM users WHERE email`).
			WithArgs("owner@example.com").
			WillReturnRows(userRow(userID, string(currentHash)))
		mock.ExpectExec(`UPDATE users SET password_hash`).
			WithArgs(bcryptHashArg{password: "new-secret", cost: bcrypt.MinCost}, sqlmock.AnyArg(), userID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		w := performRequest(router, http.MethodPost, "/change-password",
			[]byte(`{"current_password":"old-secret","new_password":"new-secret"}`))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Wrong Current Password", func(t *testing.T) {
		userID := uuid.New()
		router, mock := setupChangePasswordTest(t, userID)

		currentHash, err := bcrypt.GenerateFromPassword([]byte("old-secret"), bcrypt.MinCost)
		require.NoError(t, err)

		mock.ExpectQuery(`SELECT (.+) FROM users WHERE email`).
			WithArgs("owner@example.com").
			WillReturnRows(userRow(userID, string(currentHash)))

		w := performRequest(router, http.MethodPost, "/change-password",
			[]byte(`{"current_password":"guess","new_password":"new-secret"}`))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid_credentials")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Short New Password", func(t *testing.T) {
		router, mock := setupChangePasswordTest(t, uuid.New())

		w := performRequest(router, http.MethodPost, "/change-password",
			[]byte(`{"current_password":"old-secret","new_password":"abc"}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("No Session", func(t *testing.T) {
		mockDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		t.Cleanup(func() { mockDB.Close() })

		handler := NewAuthHandler(database.NewUserRepository(sqlx.NewDb(mockDB, "postgres")), nil, nil, nil, bcrypt.MinCost)
		router := gin.New()
		router.POST("/change-password", handler.ChangePassword)

		w := performRequest(router, http.MethodPost, "/change-password",
			[]byte(`{"current_password":"old-secret","new_password":"new-secret"}`))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
