package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/gamenest/cafe-booking-backend/internal/apperrors"
	"github.com/gamenest/cafe-booking-backend/internal/models"
)

// AvailabilityRepo is the slice of the data layer the calculator reads
type AvailabilityRepo interface {
	GetInventory(cafeID uuid.UUID, consoleType string) (int, error)
	OccupiedItems(cafeID uuid.UUID, date, consoleType string) ([]models.OccupiedItem, error)
}

// AvailabilityService computes remaining console capacity per slot
type AvailabilityService struct {
	repo   AvailabilityRepo
	logger *logrus.Logger
}

// NewAvailabilityService creates a new availability service
func NewAvailabilityService(repo AvailabilityRepo, logger *logrus.Logger) *AvailabilityService {
	return &AvailabilityService{repo: repo, logger: logger}
}

// SlotAvailability returns the remaining units of a console type in the
// slot starting at slotTime. Availability is never negative; a booking
// occupies every slot its duration overlaps, not just its starting slot.
func (s *AvailabilityService) SlotAvailability(cafeID uuid.UUID, date, slotTime, consoleType string) (int, error) {
	slotMin, err := models.ParseSlot(slotTime)
	if err != nil {
		return 0, apperrors.NewValidation("slot", err.Error())
	}

	total, err := s.repo.GetInventory(cafeID, consoleType)
	if err != nil {
		return 0, fmt.Errorf("failed to load inventory: %w", err)
	}

	occupied, err := s.repo.OccupiedItems(cafeID, date, consoleType)
	if err != nil {
		return 0, fmt.Errorf("failed to load bookings: %w", err)
	}

	booked := 0
	for _, item := range occupied {
		startMin, err := models.ParseSlot(item.StartTime)
		if err != nil {
			// A stored booking off the slot grid should not exist; skip it
			// rather than poisoning every availability read.
			s.logger.WithFields(logrus.Fields{
				"cafe_id":    cafeID,
				"start_time": item.StartTime,
			}).Warn("Skipping booking with unparseable start time")
			continue
		}
		if models.SlotsOverlap(startMin, item.DurationMinutes, slotMin) {
			booked += item.Quantity
		}
	}

	available := total - booked
	if available < 0 {
		available = 0
	}
	return available, nil
}

// CheckSelection verifies a requested selection fits the remaining capacity
// of every slot the selection's duration covers. A request exactly at
// remaining capacity passes; one unit over fails with a CapacityError
// naming the console.
func (s *AvailabilityService) CheckSelection(cafeID uuid.UUID, date, startTime string, sel models.BookingSelection) error {
	startMin, err := models.ParseSlot(startTime)
	if err != nil {
		return apperrors.NewValidation("start_time", err.Error())
	}
	if sel.DurationMinutes <= 0 || sel.DurationMinutes%models.SlotMinutes != 0 {
		return apperrors.NewValidation("duration_minutes",
			fmt.Sprintf("duration must be a positive multiple of %d minutes", models.SlotMinutes))
	}

	minAvailable := -1
	for slotMin := startMin; slotMin < startMin+sel.DurationMinutes; slotMin += models.SlotMinutes {
		slot := fmt.Sprintf("%02d:%02d", slotMin/60, slotMin%60)
		available, err := s.SlotAvailability(cafeID, date, slot, sel.ConsoleType)
		if err != nil {
			return err
		}
		if minAvailable < 0 || available < minAvailable {
			minAvailable = available
		}
	}

	if sel.Quantity > minAvailable {
		return &apperrors.CapacityError{
			ConsoleType: sel.ConsoleType,
			Requested:   sel.Quantity,
			Available:   minAvailable,
		}
	}
	return nil
}
