package wire

import (
	"resto-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireContent(r chi.Router, contentHandler *adaptor.ContentHandler) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/pages/{slug} - CMS-managed page (about, terms, faq)
	r.Get("/api/pages/{slug}", contentHandler.GetPage)

	// GET /api/price-plans - Reservation fee table by party size
	r.Get("/api/price-plans", contentHandler.GetPricePlans)
}
