package request

type CreateManualRequestRequest struct {
	RestaurantID string  `json:"restaurant_id" validate:"required,uuid4"`
	Date         string  `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlot     string  `json:"time_slot" validate:"required"`
	PartySize    int     `json:"party_size" validate:"required,min=13,max=20"`
	GuestName    string  `json:"guest_name" validate:"required,max=100"`
	GuestEmail   string  `json:"guest_email" validate:"required,email"`
	GuestPhone   string  `json:"guest_phone" validate:"required,numeric,min=8,max=15"`
	Notes        *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type UpdateManualRequestStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open contacted closed"`
}
