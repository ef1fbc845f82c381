package repository

import (
	"resto-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Reservation   ReservationRepository
	Payment       PaymentRepository
	Restaurant    RestaurantRepository
	Review        ReviewRepository
	ManualRequest ManualRequestRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Reservation:   NewReservationRepository(db, log),
		Payment:       NewPaymentRepository(db, log),
		Restaurant:    NewRestaurantRepository(db, log),
		Review:        NewReviewRepository(db, log),
		ManualRequest: NewManualRequestRepository(db, log),
	}
}
