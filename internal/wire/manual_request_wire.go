package wire

import (
	"resto-booking/internal/adaptor"
	"resto-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireManualRequest(
	r chi.Router,
	manualRequestHandler *adaptor.ManualRequestHandler,
	verifier *middleware.ClerkVerifier,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthClerk(verifier, log))

		// POST /api/manual-requests - Request a table for 13-20 guests
		r.Post("/api/manual-requests", manualRequestHandler.CreateManualRequest)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/manual-requests", func(r chi.Router) {
		r.Use(middleware.AuthClerk(verifier, log))
		r.Use(middleware.Admin(log))

		// GET /api/admin/manual-requests - List manual requests
		r.Get("/", manualRequestHandler.ListManualRequests)

		// PUT /api/admin/manual-requests/{id}/status - Track follow-up progress
		r.Put("/{id}/status", manualRequestHandler.UpdateManualRequestStatus)
	})
}
