package database

import (
	"github.com/google/uuid"

	"github.com/gamenest/cafe-booking-backend/internal/models"
)

// AvailabilityStore joins the two sides of an availability query: console
// inventory lives on cafes, booked quantities live on bookings.
type AvailabilityStore struct {
	cafes    *CafeRepository
	bookings *BookingRepository
}

// NewAvailabilityStore creates a new AvailabilityStore
func NewAvailabilityStore(cafes *CafeRepository, bookings *BookingRepository) *AvailabilityStore {
	return &AvailabilityStore{cafes: cafes, bookings: bookings}
}

// GetInventory returns the configured unit count for one console type.
func (s *AvailabilityStore) GetInventory(cafeID uuid.UUID, consoleType string) (int, error) {
	return s.cafes.GetInventory(cafeID, consoleType)
}

// OccupiedItems returns every non-cancelled booked line for a café, date and
// console type.
func (s *AvailabilityStore) OccupiedItems(cafeID uuid.UUID, date, consoleType string) ([]models.OccupiedItem, error) {
	return s.bookings.OccupiedItems(cafeID, date, consoleType)
}
