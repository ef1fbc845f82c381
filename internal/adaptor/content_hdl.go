package adaptor

import (
	"net/http"
	"strings"

	"resto-booking/internal/pricing"
	"resto-booking/internal/usecase"
	"resto-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ContentHandler struct {
	service usecase.ContentService
	log     *zap.Logger
}

func NewContentHandler(service usecase.ContentService, log *zap.Logger) *ContentHandler {
	return &ContentHandler{
		service: service,
		log:     log.With(zap.String("handler", "content")),
	}
}

// GetPage handles GET /api/pages/{slug} (public)
func (h *ContentHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		utils.ResponseBadRequest(w, "Page slug is required", nil)
		return
	}

	page, err := h.service.GetPage(r.Context(), slug)
	if err != nil {
		h.handleServiceError(w, err, "get page")
		return
	}

	utils.ResponseSuccess(w, "success", page)
}

// GetPricePlans handles GET /api/price-plans (public). The plan table is
// compiled in; the frontend shows it next to the party-size picker.
func (h *ContentHandler) GetPricePlans(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "success", pricing.Plans())
}

// handleServiceError handles errors for content operations
func (h *ContentHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "invalid"):
		h.log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
