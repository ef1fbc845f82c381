// internal/wire/wire.go
package wire

import (
	"net/http"

	"resto-booking/internal/adaptor"
	"resto-booking/internal/data/repository"
	"resto-booking/internal/payment"
	"resto-booking/internal/usecase"
	"resto-booking/pkg/middleware"
	"resto-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired router
type App struct {
	Router *chi.Mux
}

// Wiring initializes all dependencies
func Wiring(
	repo *repository.Repository,
	gateway payment.Gateway,
	cache usecase.Cache,
	cms usecase.PageFetcher,
	config *utils.Config,
	logger *zap.Logger,
) (*App, error) {
	verifier, err := middleware.NewClerkVerifier(config.Clerk, logger)
	if err != nil {
		return nil, err
	}

	service := usecase.NewService(repo, gateway, cache, cms, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, verifier, logger)

	return &App{
		Router: router,
	}, nil
}

// setupRouter configures the Chi router
func setupRouter(
	handler *adaptor.Handler,
	verifier *middleware.ClerkVerifier,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireRestaurant(r, handler.Restaurant, handler.Review, verifier, logger)
	wireReservation(r, handler.Reservation, handler.Payment, verifier, logger)
	wireManualRequest(r, handler.ManualRequest, verifier, logger)
	wireContent(r, handler.Content)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
