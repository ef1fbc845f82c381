package entity

type RestaurantStatus string

const (
	RestaurantStatusActive   RestaurantStatus = "active"
	RestaurantStatusInactive RestaurantStatus = "inactive"
	RestaurantStatusPending  RestaurantStatus = "pending"
)

func ValidRestaurantStatus(s string) bool {
	switch RestaurantStatus(s) {
	case RestaurantStatusActive, RestaurantStatusInactive, RestaurantStatusPending:
		return true
	}
	return false
}

type Restaurant struct {
	Base
	Name           string           `db:"name"`
	Cuisine        string           `db:"cuisine"`
	Address        string           `db:"address"`
	Phone          string           `db:"phone"`
	Description    *string          `db:"description"`
	OpenTime       string           `db:"open_time"`
	CloseTime      string           `db:"close_time"`
	HasParking     bool             `db:"has_parking"`
	HasWifi        bool             `db:"has_wifi"`
	HasPrivateRoom bool             `db:"has_private_room"`
	SmokingAllowed bool             `db:"smoking_allowed"`
	Status         RestaurantStatus `db:"status"`
	Featured       bool             `db:"featured"`
	ImageURL       *string          `db:"image_url"`
}
