package database

import (
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamenest/cafe-booking-backend/internal/models"
)

func TestRecordCollection(t *testing.T) {
	t.Run("First Collection", func(t *testing.T) {
		sqlxDB, mock := newMockDB(t)
		repo := NewCashDrawerRepository(sqlxDB)
		cafeID := uuid.New()

		mock.ExpectExec(`UPDATE cash_drawer_records`).
			WithArgs(5000.0, 500.0, sqlmock.AnyArg(), cafeID, "2026-03-14").
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.RecordCollection(cafeID, "2026-03-14", 5000, 500)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Second Collection Rejected", func(t *testing.T) {
		sqlxDB, mock := newMockDB(t)
		repo := NewCashDrawerRepository(sqlxDB)
		cafeID := uuid.New()

		// collected_at is already set, so the IS NULL predicate matches nothing
		mock.ExpectExec(`UPDATE cash_drawer_records`).
			WithArgs(5000.0, 500.0, sqlmock.AnyArg(), cafeID, "2026-03-14").
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.RecordCollection(cafeID, "2026-03-14", 5000, 500)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAddCashSale(t *testing.T) {
	t.Run("Open Drawer", func(t *testing.T) {
		sqlxDB, mock := newMockDB(t)
		repo := NewCashDrawerRepository(sqlxDB)
		cafeID := uuid.New()

		mock.ExpectExec(`UPDATE cash_drawer_records`).
			WithArgs(250.0, sqlmock.AnyArg(), cafeID, "2026-03-14").
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.AddCashSale(cafeID, "2026-03-14", 250)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Closed Drawer Rejected", func(t *testing.T) {
		sqlxDB, mock := newMockDB(t)
		repo := NewCashDrawerRepository(sqlxDB)
		cafeID := uuid.New()

		// closed_at is already set, so the IS NULL predicate matches nothing
		mock.ExpectExec(`UPDATE cash_drawer_records`).
			WithArgs(250.0, sqlmock.AnyArg(), cafeID, "2026-03-14").
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.AddCashSale(cafeID, "2026-03-14", 250)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRecordClosing(t *testing.T) {
	t.Run("First Close", func(t *testing.T) {
		sqlxDB, mock := newMockDB(t)
		repo := NewCashDrawerRepository(sqlxDB)
		cafeID := uuid.New()

		mock.ExpectExec(`UPDATE cash_drawer_records`).
			WithArgs(1450.0, sqlmock.AnyArg(), cafeID, "2026-03-14").
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.RecordClosing(cafeID, "2026-03-14", 1450)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Second Close Rejected", func(t *testing.T) {
		sqlxDB, mock := newMockDB(t)
		repo := NewCashDrawerRepository(sqlxDB)
		cafeID := uuid.New()

		mock.ExpectExec(`UPDATE cash_drawer_records`).
			WithArgs(1450.0, sqlmock.AnyArg(), cafeID, "2026-03-14").
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.RecordClosing(cafeID, "2026-03-14", 1450)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOpenDrawer(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		sqlxDB, mock := newMockDB(t)
		repo := NewCashDrawerRepository(sqlxDB)
		record := &models.CashDrawerRecord{
			ID:             uuid.New(),
			CafeID:         uuid.New(),
			DrawerDate:     "2026-03-14",
			OpeningBalance: 1000,
			CreatedAt:      time.Now(),
		}

		mock.ExpectExec(`INSERT INTO cash_drawer_records`).
			WithArgs(record.ID, record.CafeID, record.DrawerDate, record.OpeningBalance, record.CreatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Open(record)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate Day Rejected", func(t *testing.T) {
		sqlxDB, mock := newMockDB(t)
		repo := NewCashDrawerRepository(sqlxDB)
		record := &models.CashDrawerRecord{ID: uuid.New(), CafeID: uuid.New(), DrawerDate: "2026-03-14", CreatedAt: time.Now()}

		mock.ExpectExec(`INSERT INTO cash_drawer_records`).
			WillReturnError(fmt.Errorf("duplicate key value violates unique constraint"))

		err := repo.Open(record)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open cash drawer")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetByCafeDate_NotFound(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := NewCashDrawerRepository(sqlxDB)
	cafeID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM cash_drawer_records`).
		WithArgs(cafeID, "2026-03-14").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	record, err := repo.GetByCafeDate(cafeID, "2026-03-14")
	require.NoError(t, err)
	assert.Nil(t, record)
	assert.NoError(t, mock.ExpectationsWereMet())
}
