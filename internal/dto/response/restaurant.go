package response

import (
	"time"

	"resto-booking/internal/data/entity"
)

type RestaurantResponse struct {
	ID             string                  `json:"id"`
	Name           string                  `json:"name"`
	Cuisine        string                  `json:"cuisine"`
	Address        string                  `json:"address"`
	Phone          string                  `json:"phone"`
	Description    *string                 `json:"description,omitempty"`
	OpenTime       string                  `json:"open_time"`
	CloseTime      string                  `json:"close_time"`
	HasParking     bool                    `json:"has_parking"`
	HasWifi        bool                    `json:"has_wifi"`
	HasPrivateRoom bool                    `json:"has_private_room"`
	SmokingAllowed bool                    `json:"smoking_allowed"`
	Status         entity.RestaurantStatus `json:"status"`
	Featured       bool                    `json:"featured"`
	ImageURL       *string                 `json:"image_url,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
}

func RestaurantToResponse(r *entity.Restaurant) RestaurantResponse {
	return RestaurantResponse{
		ID:             r.ID.String(),
		Name:           r.Name,
		Cuisine:        r.Cuisine,
		Address:        r.Address,
		Phone:          r.Phone,
		Description:    r.Description,
		OpenTime:       r.OpenTime,
		CloseTime:      r.CloseTime,
		HasParking:     r.HasParking,
		HasWifi:        r.HasWifi,
		HasPrivateRoom: r.HasPrivateRoom,
		SmokingAllowed: r.SmokingAllowed,
		Status:         r.Status,
		Featured:       r.Featured,
		ImageURL:       r.ImageURL,
		CreatedAt:      r.CreatedAt,
	}
}
