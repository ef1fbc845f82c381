package adaptor

import (
	"resto-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Reservation   *ReservationHandler
	Payment       *PaymentHandler
	Restaurant    *RestaurantHandler
	Review        *ReviewHandler
	ManualRequest *ManualRequestHandler
	Content       *ContentHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Reservation:   NewReservationHandler(service.Reservation, log),
		Payment:       NewPaymentHandler(service.Payment, log),
		Restaurant:    NewRestaurantHandler(service.Restaurant, log),
		Review:        NewReviewHandler(service.Review, log),
		ManualRequest: NewManualRequestHandler(service.ManualRequest, log),
		Content:       NewContentHandler(service.Content, log),
	}
}
