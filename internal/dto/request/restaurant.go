package request

type CreateRestaurantRequest struct {
	Name           string  `json:"name" validate:"required,max=150"`
	Cuisine        string  `json:"cuisine" validate:"required,max=50"`
	Address        string  `json:"address" validate:"required,max=300"`
	Phone          string  `json:"phone" validate:"required,numeric,min=8,max=15"`
	Description    *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	OpenTime       string  `json:"open_time" validate:"required"`
	CloseTime      string  `json:"close_time" validate:"required"`
	HasParking     bool    `json:"has_parking"`
	HasWifi        bool    `json:"has_wifi"`
	HasPrivateRoom bool    `json:"has_private_room"`
	SmokingAllowed bool    `json:"smoking_allowed"`
	ImageURL       *string `json:"image_url,omitempty" validate:"omitempty,url"`
}

type UpdateRestaurantRequest struct {
	Name           string  `json:"name" validate:"required,max=150"`
	Cuisine        string  `json:"cuisine" validate:"required,max=50"`
	Address        string  `json:"address" validate:"required,max=300"`
	Phone          string  `json:"phone" validate:"required,numeric,min=8,max=15"`
	Description    *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	OpenTime       string  `json:"open_time" validate:"required"`
	CloseTime      string  `json:"close_time" validate:"required"`
	HasParking     bool    `json:"has_parking"`
	HasWifi        bool    `json:"has_wifi"`
	HasPrivateRoom bool    `json:"has_private_room"`
	SmokingAllowed bool    `json:"smoking_allowed"`
	ImageURL       *string `json:"image_url,omitempty" validate:"omitempty,url"`
}

type UpdateRestaurantStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive pending"`
}

type SetFeaturedRequest struct {
	Featured bool `json:"featured"`
}
