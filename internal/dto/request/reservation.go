package request

type CreateReservationRequest struct {
	RestaurantID string  `json:"restaurant_id" validate:"required,uuid4"`
	Date         string  `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlot     string  `json:"time_slot" validate:"required"`
	PartySize    int     `json:"party_size" validate:"required,min=1"`
	GuestName    string  `json:"guest_name" validate:"required,max=100"`
	GuestEmail   string  `json:"guest_email" validate:"required,email"`
	GuestPhone   string  `json:"guest_phone" validate:"required,numeric,min=8,max=15"`
	Notes        *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type CaptureReservationRequest struct {
	OrderID string `json:"order_id" validate:"required"`
}

type CancelReservationRequest struct {
	Reason string `json:"reason" validate:"required,max=300"`
}

type UpdateReservationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
}
