package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"resto-booking/internal/data/entity"
	"resto-booking/internal/data/repository"
	"resto-booking/internal/dto/request"
	"resto-booking/internal/dto/response"
	"resto-booking/internal/payment"
	"resto-booking/internal/pricing"
	"resto-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	checkoutMarkerTTL = 30 * time.Minute
	captureLockTTL    = 2 * time.Minute
)

// PaymentService drives the three-phase processor handshake:
// order create → hosted approval → capture. Phase 2 happens entirely on the
// processor's side; this service only owns phases 1 and 3 plus refunds.
type PaymentService interface {
	Checkout(ctx context.Context, userID, reservationID string) (*response.CheckoutResponse, error)
	Capture(ctx context.Context, userID, reservationID string, req *request.CaptureReservationRequest) (*response.PaymentCaptureResponse, error)
	RefundReservation(ctx context.Context, reservation *entity.Reservation) error
}

type paymentService struct {
	repo     *repository.Repository
	gateway  payment.Gateway
	cache    Cache
	currency string
	log      *zap.Logger
}

func NewPaymentService(repo *repository.Repository, gateway payment.Gateway, cache Cache, currency string, log *zap.Logger) PaymentService {
	return &paymentService{
		repo:     repo,
		gateway:  gateway,
		cache:    cache,
		currency: currency,
		log:      log.With(zap.String("service", "payment")),
	}
}

func (s *paymentService) Checkout(ctx context.Context, userID, reservationID string) (*response.CheckoutResponse, error) {
	id, err := uuid.Parse(reservationID)
	if err != nil {
		return nil, fmt.Errorf("invalid reservation ID format %s: %w", reservationID, err)
	}

	reservation, err := s.repo.Reservation.FindByID(ctx, id)
	if err != nil || reservation == nil {
		return nil, fmt.Errorf("reservation %s not found", reservationID)
	}

	if reservation.UserID != userID {
		return nil, fmt.Errorf("unauthorized to pay for this reservation")
	}

	if reservation.PaymentStatus == entity.PaymentStatusPaid {
		return nil, fmt.Errorf("cannot checkout: reservation is already paid")
	}
	if reservation.Status != entity.ReservationStatusPending {
		return nil, fmt.Errorf("cannot checkout: reservation status is %s", reservation.Status)
	}

	plan, err := pricing.Resolve(reservation.PartySize)
	if err != nil {
		// Parties above the automated cap never reach this code path under
		// normal flow; the draft creation already routed them away
		return nil, fmt.Errorf("cannot checkout for party of %d: %w", reservation.PartySize, err)
	}

	restaurant, _ := s.repo.Restaurant.FindByID(ctx, reservation.RestaurantID)
	description := fmt.Sprintf("Reservation %s", reservation.Code)
	if restaurant != nil {
		description = fmt.Sprintf("Reservation %s at %s", reservation.Code, restaurant.Name)
	}

	order, err := s.gateway.CreateOrder(ctx, plan.Price, s.currency, description, reservation.Code)
	if err != nil {
		// Nothing is persisted on failure; the draft stays unpaid and the
		// guest can retry the whole sequence
		s.log.Error("Order create failed",
			zap.Error(err),
			zap.String("reservation_id", reservationID),
			zap.String("kind", string(payment.Classify(err))),
		)
		return nil, fmt.Errorf("payment order create failed: %w", err)
	}

	if err := s.repo.Reservation.SetPaymentOrder(ctx, id, order.OrderID); err != nil {
		return nil, fmt.Errorf("attach payment order: %w", err)
	}

	// Marker lets a returning visit detect an abandoned checkout
	if err := s.cache.Set(ctx, "pending_checkout:"+reservationID, order.OrderID, checkoutMarkerTTL); err != nil {
		s.log.Warn("Failed to set pending checkout marker", zap.Error(err))
	}

	s.log.Info("Checkout started",
		zap.String("reservation_id", reservationID),
		zap.String("order_id", order.OrderID),
		zap.Int64("amount", plan.Price),
		zap.String("plan_id", plan.ID),
	)

	return &response.CheckoutResponse{
		ReservationID: reservationID,
		OrderID:       order.OrderID,
		ApproveURL:    order.ApproveURL,
		Amount:        plan.Price,
		Currency:      s.currency,
		PlanID:        plan.ID,
	}, nil
}

func (s *paymentService) Capture(ctx context.Context, userID, reservationID string, req *request.CaptureReservationRequest) (*response.PaymentCaptureResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(reservationID)
	if err != nil {
		return nil, fmt.Errorf("invalid reservation ID format %s: %w", reservationID, err)
	}

	reservation, err := s.repo.Reservation.FindByID(ctx, id)
	if err != nil || reservation == nil {
		return nil, fmt.Errorf("reservation %s not found", reservationID)
	}

	if reservation.UserID != userID {
		return nil, fmt.Errorf("unauthorized to pay for this reservation")
	}

	// Re-submitting after a successful capture returns the recorded
	// transaction instead of charging again
	if reservation.PaymentStatus == entity.PaymentStatusPaid {
		return s.recordedCapture(ctx, reservation)
	}

	// Only an open draft may be captured; a cancelled reservation keeping a
	// stale order id must not be charged and confirmed
	if reservation.Status != entity.ReservationStatusPending {
		return nil, fmt.Errorf("cannot capture: reservation status is %s", reservation.Status)
	}

	if reservation.PaymentOrder == nil || *reservation.PaymentOrder != req.OrderID {
		return nil, fmt.Errorf("order %s does not belong to reservation %s", req.OrderID, reservationID)
	}

	// One capture at a time per reservation, even across tabs
	lockKey := "capture_lock:" + reservationID
	acquired, err := s.cache.Acquire(ctx, lockKey, req.OrderID, captureLockTTL)
	if err != nil {
		s.log.Warn("Capture lock unavailable, proceeding on database guard", zap.Error(err))
	} else if !acquired {
		return nil, fmt.Errorf("cannot capture: payment already in progress")
	} else {
		defer s.cache.Release(ctx, lockKey, req.OrderID)
	}

	capture, err := s.gateway.CaptureOrder(ctx, req.OrderID)
	if err != nil {
		s.log.Error("Capture failed",
			zap.Error(err),
			zap.String("reservation_id", reservationID),
			zap.String("order_id", req.OrderID),
			zap.String("kind", string(payment.Classify(err))),
		)
		return nil, fmt.Errorf("payment capture failed: %w", err)
	}

	snapshot, err := json.Marshal(capture)
	if err != nil {
		snapshot = nil
	}

	payerName := capture.PayerName
	payerEmail := capture.PayerEmail
	now := time.Now()
	txn := &entity.PaymentTransaction{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		ReservationID: id,
		Provider:      entity.PaymentProviderPayPal,
		OrderID:       capture.OrderID,
		CaptureID:     capture.CaptureID,
		Amount:        capture.Amount,
		Currency:      capture.Currency,
		CapturedAt:    capture.CapturedAt,
	}
	if payerName != "" {
		txn.PayerName = &payerName
	}
	if payerEmail != "" {
		txn.PayerEmail = &payerEmail
	}

	if err := s.repo.Payment.RecordCapture(ctx, txn, snapshot); err != nil {
		if errors.Is(err, repository.ErrAlreadyPaid) {
			// Lost the race to another capture; the first one stands
			return s.recordedCapture(ctx, reservation)
		}

		// The money moved but the write failed. The capture id must reach
		// the guest for manual follow-up; a generic error would lose it.
		s.log.Error("Capture succeeded but persistence failed",
			zap.Error(err),
			zap.String("reservation_id", reservationID),
			zap.String("capture_id", capture.CaptureID),
		)
		return nil, &payment.CaptureNotRecordedError{CaptureID: capture.CaptureID, Err: err}
	}

	if err := s.cache.Delete(ctx, "pending_checkout:"+reservationID); err != nil {
		s.log.Warn("Failed to clear pending checkout marker", zap.Error(err))
	}

	s.log.Info("Payment captured",
		zap.String("reservation_id", reservationID),
		zap.String("order_id", capture.OrderID),
		zap.String("capture_id", capture.CaptureID),
		zap.Int64("amount", capture.Amount),
	)

	return &response.PaymentCaptureResponse{
		ReservationID: reservationID,
		TransactionID: capture.CaptureID,
		OrderID:       capture.OrderID,
		Amount:        capture.Amount,
		Currency:      capture.Currency,
		PaidAt:        capture.CapturedAt,
	}, nil
}

// recordedCapture answers duplicate capture submissions from the ledger
func (s *paymentService) recordedCapture(ctx context.Context, reservation *entity.Reservation) (*response.PaymentCaptureResponse, error) {
	txn, err := s.repo.Payment.FindByReservationID(ctx, reservation.ID)
	if err != nil || txn == nil {
		return nil, fmt.Errorf("reservation %s is paid but its transaction was not found", reservation.ID.String())
	}

	return &response.PaymentCaptureResponse{
		ReservationID: reservation.ID.String(),
		TransactionID: txn.CaptureID,
		OrderID:       txn.OrderID,
		Amount:        txn.Amount,
		Currency:      txn.Currency,
		PaidAt:        txn.CapturedAt,
	}, nil
}

// refundAmount computes the refund for a cancelled reservation. The policy is
// a flat 100% of the captured amount; there is no tiered cancellation-window
// penalty.
func refundAmount(captured int64) int64 {
	return captured
}

func (s *paymentService) RefundReservation(ctx context.Context, reservation *entity.Reservation) error {
	txn, err := s.repo.Payment.FindByReservationID(ctx, reservation.ID)
	if err != nil {
		return fmt.Errorf("find transaction for reservation %s: %w", reservation.ID.String(), err)
	}
	if txn == nil {
		// Nothing was ever captured, nothing to refund
		return nil
	}
	if txn.RefundID != nil {
		s.log.Warn("Capture already refunded",
			zap.String("reservation_id", reservation.ID.String()),
			zap.String("capture_id", txn.CaptureID),
		)
		return nil
	}

	amount := refundAmount(txn.Amount)

	refund, err := s.gateway.RefundCapture(ctx, txn.CaptureID, amount, txn.Currency, "Reservation cancelled")
	if err != nil {
		return fmt.Errorf("refund capture %s: %w", txn.CaptureID, err)
	}

	if err := s.repo.Payment.MarkRefunded(ctx, txn.CaptureID, refund.RefundID, refund.RefundedAt); err != nil {
		s.log.Error("Refund issued but ledger update failed",
			zap.Error(err),
			zap.String("capture_id", txn.CaptureID),
			zap.String("refund_id", refund.RefundID),
		)
		return fmt.Errorf("record refund %s: %w", refund.RefundID, err)
	}

	s.log.Info("Refund issued",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("capture_id", txn.CaptureID),
		zap.String("refund_id", refund.RefundID),
		zap.Int64("amount", amount),
	)

	return nil
}
