package usecase

import (
	"context"
	"time"

	"resto-booking/internal/content"
	"resto-booking/internal/data/repository"
	"resto-booking/internal/payment"
	"resto-booking/pkg/utils"

	"go.uber.org/zap"
)

// Cache is the slice of the redis wrapper the services need. Kept as an
// interface so tests can run without redis.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Acquire(ctx context.Context, key, owner string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key, owner string) error
}

// PageFetcher is implemented by the CMS client
type PageFetcher interface {
	GetPage(ctx context.Context, slug string) (*content.Page, error)
}

type Service struct {
	Reservation   ReservationService
	Payment       PaymentService
	Restaurant    RestaurantService
	Review        ReviewService
	ManualRequest ManualRequestService
	Content       ContentService
}

func NewService(
	repo *repository.Repository,
	gateway payment.Gateway,
	cache Cache,
	cms PageFetcher,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	paymentSrv := NewPaymentService(repo, gateway, cache, config.PayPal.Currency, log)

	return &Service{
		Reservation:   NewReservationService(repo, paymentSrv, log),
		Payment:       paymentSrv,
		Restaurant:    NewRestaurantService(repo, log),
		Review:        NewReviewService(repo, log),
		ManualRequest: NewManualRequestService(repo, log),
		Content:       NewContentService(cms, cache, config.CMS.CacheTTL, log),
	}
}
