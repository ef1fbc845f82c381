package entity

import (
	"time"

	"github.com/google/uuid"
)

// ReservationStatus is the canonical status vocabulary. "rejected" from the old
// admin screens is folded into cancelled with a cancel reason.
type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCompleted ReservationStatus = "completed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

func ValidReservationStatus(s string) bool {
	switch ReservationStatus(s) {
	case ReservationStatusPending, ReservationStatusConfirmed,
		ReservationStatusCompleted, ReservationStatusCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusUnpaid   PaymentStatus = "unpaid"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
	PaymentStatusFailed   PaymentStatus = "failed"
)

// TimeSlots is the fixed list of bookable slots shown by the booking form
var TimeSlots = []string{
	"11:00", "11:30", "12:00", "12:30", "13:00", "13:30",
	"17:00", "17:30", "18:00", "18:30", "19:00", "19:30",
	"20:00", "20:30", "21:00",
}

func ValidTimeSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// Reservation rows are never physically deleted; status is the soft-delete marker.
type Reservation struct {
	Base
	Code          string            `db:"code"`
	UserID        string            `db:"user_id"` // Clerk subject id
	RestaurantID  uuid.UUID         `db:"restaurant_id"`
	Date          time.Time         `db:"date"`
	TimeSlot      string            `db:"time_slot"`
	PartySize     int               `db:"party_size"`
	GuestName     string            `db:"guest_name"`
	GuestEmail    string            `db:"guest_email"`
	GuestPhone    string            `db:"guest_phone"`
	Notes         *string           `db:"notes"`
	Status        ReservationStatus `db:"status"`
	PaymentStatus PaymentStatus     `db:"payment_status"`
	PaymentAmount *int64            `db:"payment_amount"` // JPY, no minor units
	PaymentOrder  *string           `db:"payment_order_id"`
	PaymentInfo   []byte            `db:"payment_info"` // serialized capture snapshot
	CancelReason  *string           `db:"cancel_reason"`
	PaidAt        *time.Time        `db:"paid_at"`
}

// StartsAt combines date and time slot into the moment the party is seated
func (r *Reservation) StartsAt() time.Time {
	t, err := time.Parse("15:04", r.TimeSlot)
	if err != nil {
		return r.Date
	}
	return time.Date(r.Date.Year(), r.Date.Month(), r.Date.Day(),
		t.Hour(), t.Minute(), 0, 0, r.Date.Location())
}
