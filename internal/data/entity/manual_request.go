package entity

import (
	"time"

	"github.com/google/uuid"
)

type ManualRequestStatus string

const (
	ManualRequestStatusOpen      ManualRequestStatus = "open"
	ManualRequestStatusContacted ManualRequestStatus = "contacted"
	ManualRequestStatusClosed    ManualRequestStatus = "closed"
)

func ValidManualRequestStatus(s string) bool {
	switch ManualRequestStatus(s) {
	case ManualRequestStatusOpen, ManualRequestStatusContacted, ManualRequestStatusClosed:
		return true
	}
	return false
}

// ManualRequest is the non-payment path for parties of 13 or more.
// These never touch the payment processor.
type ManualRequest struct {
	Base
	UserID       string              `db:"user_id"`
	RestaurantID uuid.UUID           `db:"restaurant_id"`
	Date         time.Time           `db:"date"`
	TimeSlot     string              `db:"time_slot"`
	PartySize    int                 `db:"party_size"`
	GuestName    string              `db:"guest_name"`
	GuestEmail   string              `db:"guest_email"`
	GuestPhone   string              `db:"guest_phone"`
	Notes        *string             `db:"notes"`
	Status       ManualRequestStatus `db:"status"`
}
