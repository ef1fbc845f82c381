package response

import (
	"time"

	"resto-booking/internal/data/entity"
)

type ManualRequestResponse struct {
	ID           string                     `json:"id"`
	UserID       string                     `json:"user_id"`
	RestaurantID string                     `json:"restaurant_id"`
	Date         string                     `json:"date"`
	TimeSlot     string                     `json:"time_slot"`
	PartySize    int                        `json:"party_size"`
	GuestName    string                     `json:"guest_name"`
	GuestEmail   string                     `json:"guest_email"`
	GuestPhone   string                     `json:"guest_phone"`
	Notes        *string                    `json:"notes,omitempty"`
	Status       entity.ManualRequestStatus `json:"status"`
	CreatedAt    time.Time                  `json:"created_at"`
}

func ManualRequestToResponse(mr *entity.ManualRequest) ManualRequestResponse {
	return ManualRequestResponse{
		ID:           mr.ID.String(),
		UserID:       mr.UserID,
		RestaurantID: mr.RestaurantID.String(),
		Date:         mr.Date.Format("2006-01-02"),
		TimeSlot:     mr.TimeSlot,
		PartySize:    mr.PartySize,
		GuestName:    mr.GuestName,
		GuestEmail:   mr.GuestEmail,
		GuestPhone:   mr.GuestPhone,
		Notes:        mr.Notes,
		Status:       mr.Status,
		CreatedAt:    mr.CreatedAt,
	}
}
