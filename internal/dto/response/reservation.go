package response

import (
	"time"

	"resto-booking/internal/data/entity"
)

type ReservationResponse struct {
	ID             string                   `json:"id"`
	Code           string                   `json:"code"`
	UserID         string                   `json:"user_id"`
	RestaurantID   string                   `json:"restaurant_id"`
	RestaurantName string                   `json:"restaurant_name,omitempty"`
	Date           string                   `json:"date"`
	TimeSlot       string                   `json:"time_slot"`
	PartySize      int                      `json:"party_size"`
	GuestName      string                   `json:"guest_name"`
	GuestEmail     string                   `json:"guest_email"`
	GuestPhone     string                   `json:"guest_phone"`
	Notes          *string                  `json:"notes,omitempty"`
	Status         entity.ReservationStatus `json:"status"`
	PaymentStatus  entity.PaymentStatus     `json:"payment_status"`
	PaymentAmount  *int64                   `json:"payment_amount,omitempty"`
	CancelReason   *string                  `json:"cancel_reason,omitempty"`
	PaidAt         *time.Time               `json:"paid_at,omitempty"`
	CreatedAt      time.Time                `json:"created_at"`
}

func ReservationToResponse(r *entity.Reservation, restaurantName string) ReservationResponse {
	return ReservationResponse{
		ID:             r.ID.String(),
		Code:           r.Code,
		UserID:         r.UserID,
		RestaurantID:   r.RestaurantID.String(),
		RestaurantName: restaurantName,
		Date:           r.Date.Format("2006-01-02"),
		TimeSlot:       r.TimeSlot,
		PartySize:      r.PartySize,
		GuestName:      r.GuestName,
		GuestEmail:     r.GuestEmail,
		GuestPhone:     r.GuestPhone,
		Notes:          r.Notes,
		Status:         r.Status,
		PaymentStatus:  r.PaymentStatus,
		PaymentAmount:  r.PaymentAmount,
		CancelReason:   r.CancelReason,
		PaidAt:         r.PaidAt,
		CreatedAt:      r.CreatedAt,
	}
}

// CheckoutResponse is returned after phase 1 (order create); the guest still
// has to approve on the processor's hosted page
type CheckoutResponse struct {
	ReservationID string `json:"reservation_id"`
	OrderID       string `json:"order_id"`
	ApproveURL    string `json:"approve_url"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	PlanID        string `json:"plan_id"`
}

type PaymentCaptureResponse struct {
	ReservationID string    `json:"reservation_id"`
	TransactionID string    `json:"transaction_id"`
	OrderID       string    `json:"order_id"`
	Amount        int64     `json:"amount"`
	Currency      string    `json:"currency"`
	PaidAt        time.Time `json:"paid_at"`
}
