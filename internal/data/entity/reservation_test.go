package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidTimeSlot(t *testing.T) {
	for _, slot := range TimeSlots {
		assert.True(t, ValidTimeSlot(slot), slot)
	}

	for _, slot := range []string{"", "10:00", "14:00", "22:00", "18:15", "6pm"} {
		assert.False(t, ValidTimeSlot(slot), slot)
	}
}

func TestValidReservationStatus(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "completed", "cancelled"} {
		assert.True(t, ValidReservationStatus(s), s)
	}

	// "rejected" was retired from the status vocabulary
	for _, s := range []string{"rejected", "paid", "PENDING", ""} {
		assert.False(t, ValidReservationStatus(s), s)
	}
}

func TestReservationStartsAt(t *testing.T) {
	r := &Reservation{
		Date:     time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		TimeSlot: "18:30",
	}

	startsAt := r.StartsAt()
	assert.Equal(t, time.Date(2026, 9, 15, 18, 30, 0, 0, time.UTC), startsAt)
}
