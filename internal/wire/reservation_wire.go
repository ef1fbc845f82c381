package wire

import (
	"resto-booking/internal/adaptor"
	"resto-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReservation(
	r chi.Router,
	reservationHandler *adaptor.ReservationHandler,
	paymentHandler *adaptor.PaymentHandler,
	verifier *middleware.ClerkVerifier,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthClerk(verifier, log))

		// POST /api/reservations - Create reservation draft
		r.Post("/api/reservations", reservationHandler.CreateReservation)

		// GET /api/reservations - View own reservation history
		r.Get("/api/reservations", reservationHandler.GetUserReservations)

		// PUT /api/reservations/{id}/cancel - Cancel own reservation
		r.Put("/api/reservations/{id}/cancel", reservationHandler.CancelReservation)

		// POST /api/reservations/{id}/checkout - Create payment order
		r.Post("/api/reservations/{id}/checkout", paymentHandler.Checkout)

		// POST /api/reservations/{id}/capture - Capture approved payment
		r.Post("/api/reservations/{id}/capture", paymentHandler.Capture)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/reservations", func(r chi.Router) {
		r.Use(middleware.AuthClerk(verifier, log))
		r.Use(middleware.Admin(log))

		// GET /api/admin/reservations - List all reservations
		r.Get("/", reservationHandler.ListReservations)

		// GET /api/admin/reservations/stale - List abandoned unpaid drafts
		r.Get("/stale", reservationHandler.ListStaleDrafts)

		// GET /api/admin/reservations/{id} - View any reservation
		r.Get("/{id}", reservationHandler.GetReservationByID)

		// PUT /api/admin/reservations/{id}/status - Override reservation status
		r.Put("/{id}/status", reservationHandler.UpdateReservationStatus)

		// PUT /api/admin/reservations/{id}/cancel - Cancel any reservation
		r.Put("/{id}/cancel", reservationHandler.CancelReservation)
	})
}
