package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"resto-booking/internal/dto/request"
	"resto-booking/internal/usecase"
	"resto-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ManualRequestHandler struct {
	service usecase.ManualRequestService
	log     *zap.Logger
}

func NewManualRequestHandler(service usecase.ManualRequestService, log *zap.Logger) *ManualRequestHandler {
	return &ManualRequestHandler{
		service: service,
		log:     log.With(zap.String("handler", "manual_request")),
	}
}

// CreateManualRequest handles POST /api/manual-requests (protected)
func (h *ManualRequestHandler) CreateManualRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateManualRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	manualRequest, err := h.service.CreateManualRequest(r.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(w, err, "create manual request")
		return
	}

	utils.ResponseCreated(w, "success", manualRequest)
}

// ==================== ADMIN METHODS ====================

// ListManualRequests handles GET /api/admin/manual-requests (admin only)
func (h *ManualRequestHandler) ListManualRequests(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	requests, err := h.service.ListManualRequests(r.Context(), query.Get("status"), req)
	if err != nil {
		h.handleServiceError(w, err, "list manual requests")
		return
	}

	utils.ResponseSuccess(w, "success", requests)
}

// UpdateManualRequestStatus handles PUT /api/admin/manual-requests/{id}/status (admin only)
func (h *ManualRequestHandler) UpdateManualRequestStatus(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		utils.ResponseBadRequest(w, "Request ID is required", nil)
		return
	}

	var req request.UpdateManualRequestStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.UpdateManualRequestStatus(r.Context(), requestID, &req); err != nil {
		h.handleServiceError(w, err, "update manual request status")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// handleServiceError handles errors for manual request operations
func (h *ManualRequestHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"):
		h.log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "invalid"):
		h.log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "cannot"):
		h.log.Warn(operation+" failed - invalid state",
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
