package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"resto-booking/internal/dto/request"
	"resto-booking/internal/payment"
	"resto-booking/internal/usecase"
	"resto-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// Checkout handles POST /api/reservations/{id}/checkout (protected).
// Creates the processor order and returns the hosted approval URL.
func (h *PaymentHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	reservationID := chi.URLParam(r, "id")
	if reservationID == "" {
		utils.ResponseBadRequest(w, "Reservation ID is required", nil)
		return
	}

	checkout, err := h.service.Checkout(r.Context(), userID, reservationID)
	if err != nil {
		h.handleServiceError(w, err, "checkout")
		return
	}

	utils.ResponseSuccess(w, "success", checkout)
}

// Capture handles POST /api/reservations/{id}/capture (protected).
// Called after the guest approves the order on the processor's page.
func (h *PaymentHandler) Capture(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	reservationID := chi.URLParam(r, "id")
	if reservationID == "" {
		utils.ResponseBadRequest(w, "Reservation ID is required", nil)
		return
	}

	var req request.CaptureReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	capture, err := h.service.Capture(r.Context(), userID, reservationID, &req)
	if err != nil {
		// The charge went through but the record did not. The transaction id
		// must reach the guest so support can resolve it by hand.
		var notRecorded *payment.CaptureNotRecordedError
		if errors.As(err, &notRecorded) {
			h.log.Error("Capture recorded at processor but not persisted",
				zap.Error(err),
				zap.String("reservation_id", reservationID),
				zap.String("capture_id", notRecorded.CaptureID))
			utils.ResponseJSON(w, http.StatusInternalServerError, false,
				"Your payment was received but we could not confirm your reservation. "+
					"Please contact support with transaction ID "+notRecorded.CaptureID,
				map[string]string{"transaction_id": notRecorded.CaptureID}, nil)
			return
		}
		h.handleServiceError(w, err, "capture payment")
		return
	}

	utils.ResponseSuccess(w, "success", capture)
}

// handleServiceError handles errors for payment operations. Processor-side
// failures carry the classified kind so clients can decide whether a retry
// makes sense.
func (h *PaymentHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
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

	case strings.Contains(errMsg, "unauthorized"):
		h.log.Warn(operation+" failed - unauthorized",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseUnauthorized(w, errMsg)

	case strings.Contains(errMsg, "already paid"), strings.Contains(errMsg, "already in progress"):
		h.log.Warn(operation+" failed - duplicate attempt",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, errMsg)

	case strings.Contains(errMsg, "does not belong"):
		h.log.Warn(operation+" failed - order mismatch",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "cannot"):
		h.log.Warn(operation+" failed - invalid state",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "order create failed"), strings.Contains(errMsg, "capture failed"):
		kind := payment.Classify(err)
		h.log.Error(operation+" failed at processor",
			zap.Error(err),
			zap.String("operation", operation),
			zap.String("kind", string(kind)))
		utils.ResponseBadGateway(w, errMsg, map[string]string{"kind": string(kind)})

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
