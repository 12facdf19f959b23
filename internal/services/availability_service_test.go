package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamenest/cafe-booking-backend/internal/apperrors"
	"github.com/gamenest/cafe-booking-backend/internal/models"
)

type fakeAvailabilityRepo struct {
	inventory map[string]int
	occupied  []models.OccupiedItem
	invErr    error
	occErr    error
}

func (f *fakeAvailabilityRepo) GetInventory(cafeID uuid.UUID, consoleType string) (int, error) {
	if f.invErr != nil {
		return 0, f.invErr
	}
	return f.inventory[consoleType], nil
}

func (f *fakeAvailabilityRepo) OccupiedItems(cafeID uuid.UUID, date, consoleType string) ([]models.OccupiedItem, error) {
	if f.occErr != nil {
		return nil, f.occErr
	}
	return f.occupied, nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestSlotAvailability_ArcadeOneScenario(t *testing.T) {
	// Café "Arcade One": 4 PS5 consoles, 3 already booked for the 17:00 hour
	repo := &fakeAvailabilityRepo{
		inventory: map[string]int{"ps5": 4},
		occupied: []models.OccupiedItem{
			{StartTime: "17:00", DurationMinutes: 60, Quantity: 3},
		},
	}
	svc := NewAvailabilityService(repo, testLogger())
	cafeID := uuid.New()

	available, err := svc.SlotAvailability(cafeID, "2026-03-14", "17:00", "ps5")
	require.NoError(t, err)
	assert.Equal(t, 1, available)

	// Two more PS5s in that slot must fail with a capacity error
	err = svc.CheckSelection(cafeID, "2026-03-14", "17:00", models.BookingSelection{
		ConsoleType: "ps5", Quantity: 2, DurationMinutes: 60,
	})
	var capErr *apperrors.CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, "ps5", capErr.ConsoleType)
	assert.Equal(t, 2, capErr.Requested)
	assert.Equal(t, 1, capErr.Available)

	// One more fits exactly, taking the slot to zero
	err = svc.CheckSelection(cafeID, "2026-03-14", "17:00", models.BookingSelection{
		ConsoleType: "ps5", Quantity: 1, DurationMinutes: 60,
	})
	require.NoError(t, err)

	repo.occupied = append(repo.occupied, models.OccupiedItem{StartTime: "17:00", DurationMinutes: 60, Quantity: 1})
	available, err = svc.SlotAvailability(cafeID, "2026-03-14", "17:00", "ps5")
	require.NoError(t, err)
	assert.Equal(t, 0, available)
}

func TestSlotAvailability_NeverNegative(t *testing.T) {
	repo := &fakeAvailabilityRepo{
		inventory: map[string]int{"xbox": 2},
		occupied: []models.OccupiedItem{
			{StartTime: "10:00", DurationMinutes: 30, Quantity: 5},
		},
	}
	svc := NewAvailabilityService(repo, testLogger())

	available, err := svc.SlotAvailability(uuid.New(), "2026-03-14", "10:00", "xbox")
	require.NoError(t, err)
	assert.Equal(t, 0, available, "availability must clamp at zero")
}

func TestSlotAvailability_OverlappingBookingConsumesBothSlots(t *testing.T) {
	// A 60-minute booking at 17:00 occupies 17:00 and 17:30 but not 18:00
	repo := &fakeAvailabilityRepo{
		inventory: map[string]int{"ps5": 3},
		occupied: []models.OccupiedItem{
			{StartTime: "17:00", DurationMinutes: 60, Quantity: 2},
		},
	}
	svc := NewAvailabilityService(repo, testLogger())
	cafeID := uuid.New()

	for slot, expected := range map[string]int{
		"16:30": 3,
		"17:00": 1,
		"17:30": 1,
		"18:00": 3,
	} {
		available, err := svc.SlotAvailability(cafeID, "2026-03-14", slot, "ps5")
		require.NoError(t, err)
		assert.Equal(t, expected, available, "slot %s", slot)
	}
}

func TestCheckSelection_ChecksEverySlotCovered(t *testing.T) {
	// The 17:30 slot is full, so a 60-minute request at 17:00 must fail even
	// though 17:00 itself has room.
	repo := &fakeAvailabilityRepo{
		inventory: map[string]int{"ps5": 2},
		occupied: []models.OccupiedItem{
			{StartTime: "17:30", DurationMinutes: 30, Quantity: 2},
		},
	}
	svc := NewAvailabilityService(repo, testLogger())

	err := svc.CheckSelection(uuid.New(), "2026-03-14", "17:00", models.BookingSelection{
		ConsoleType: "ps5", Quantity: 1, DurationMinutes: 60,
	})
	var capErr *apperrors.CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, 0, capErr.Available)
}

func TestCheckSelection_InvalidInput(t *testing.T) {
	svc := NewAvailabilityService(&fakeAvailabilityRepo{inventory: map[string]int{}}, testLogger())

	var validationErr *apperrors.ValidationError

	err := svc.CheckSelection(uuid.New(), "2026-03-14", "17:15", models.BookingSelection{
		ConsoleType: "ps5", Quantity: 1, DurationMinutes: 30,
	})
	assert.ErrorAs(t, err, &validationErr)

	err = svc.CheckSelection(uuid.New(), "2026-03-14", "17:00", models.BookingSelection{
		ConsoleType: "ps5", Quantity: 1, DurationMinutes: 45,
	})
	assert.ErrorAs(t, err, &validationErr)
}

func TestSlotAvailability_RepoErrorPropagates(t *testing.T) {
	repo := &fakeAvailabilityRepo{invErr: errors.New("connection reset")}
	svc := NewAvailabilityService(repo, testLogger())

	_, err := svc.SlotAvailability(uuid.New(), "2026-03-14", "17:00", "ps5")
	assert.Error(t, err)
}
