package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resto-booking/internal/data/entity"
	"resto-booking/internal/data/repository"
	"resto-booking/internal/dto/request"
	"resto-booking/internal/dto/response"
	"resto-booking/internal/pricing"
	"resto-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrManualRequestRequired routes oversized parties to the manual flow
// instead of the paid flow.
var ErrManualRequestRequired = errors.New("party size requires a manual request")

// staleDraftCutoff is how long an unpaid draft may sit before the
// reconciliation listing picks it up
const staleDraftCutoff = 24 * time.Hour

// startOfToday returns the server's current calendar date at UTC midnight,
// matching how request dates parse. Truncating time.Now() to a 24h boundary
// would shift "today" by the server's timezone offset.
func startOfToday() time.Time {
	year, month, day := time.Now().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Refunder is the slice of the payment service the cancellation flow needs
type Refunder interface {
	RefundReservation(ctx context.Context, reservation *entity.Reservation) error
}

type ReservationService interface {
	CreateReservation(ctx context.Context, userID string, req *request.CreateReservationRequest) (*response.ReservationResponse, error)
	GetUserReservations(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReservationResponse], error)
	CancelReservation(ctx context.Context, userID, reservationID, reason string, isAdmin bool) error

	// Admin endpoints
	GetReservationByID(ctx context.Context, reservationID string) (*response.ReservationResponse, error)
	ListReservations(ctx context.Context, status string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReservationResponse], error)
	AdminUpdateStatus(ctx context.Context, reservationID string, req *request.UpdateReservationStatusRequest) error
	ListStaleDrafts(ctx context.Context) ([]response.ReservationResponse, error)
}

type reservationService struct {
	repo     *repository.Repository
	refunder Refunder
	log      *zap.Logger
}

func NewReservationService(repo *repository.Repository, refunder Refunder, log *zap.Logger) ReservationService {
	return &reservationService{
		repo:     repo,
		refunder: refunder,
		log:      log.With(zap.String("service", "reservation")),
	}
}

func (s *reservationService) CreateReservation(ctx context.Context, userID string, req *request.CreateReservationRequest) (*response.ReservationResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create reservation validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	restaurantID, err := uuid.Parse(req.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("invalid restaurant ID format %s: %w", req.RestaurantID, err)
	}

	// Party-size routing: 1-12 pays, 13-20 goes manual, 21+ must call
	if req.PartySize > pricing.MaxSelectablePartySize {
		return nil, fmt.Errorf("cannot book for party of %d, contact the restaurant directly", req.PartySize)
	}
	if req.PartySize > pricing.MaxAutomatedPartySize {
		return nil, fmt.Errorf("party of %d: %w", req.PartySize, ErrManualRequestRequired)
	}
	if _, err := pricing.Resolve(req.PartySize); err != nil {
		return nil, fmt.Errorf("invalid party size %d: %w", req.PartySize, err)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date format %s: %w", req.Date, err)
	}

	if date.Before(startOfToday()) {
		return nil, fmt.Errorf("cannot book for a past date")
	}

	if !entity.ValidTimeSlot(req.TimeSlot) {
		return nil, fmt.Errorf("invalid time slot %s", req.TimeSlot)
	}

	// Validate restaurant exists and takes bookings
	restaurant, err := s.repo.Restaurant.FindByID(ctx, restaurantID)
	if err != nil || restaurant == nil {
		return nil, fmt.Errorf("restaurant %s not found", req.RestaurantID)
	}
	if restaurant.Status != entity.RestaurantStatusActive {
		return nil, fmt.Errorf("restaurant %s is not accepting reservations", restaurant.Name)
	}

	// Draft first: the row exists before the payment processor is ever
	// contacted, so capture always has a stable target id
	now := time.Now()
	reservation := &entity.Reservation{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Code:          utils.GenerateReservationCode(),
		UserID:        userID,
		RestaurantID:  restaurantID,
		Date:          date,
		TimeSlot:      req.TimeSlot,
		PartySize:     req.PartySize,
		GuestName:     req.GuestName,
		GuestEmail:    req.GuestEmail,
		GuestPhone:    req.GuestPhone,
		Notes:         req.Notes,
		Status:        entity.ReservationStatusPending,
		PaymentStatus: entity.PaymentStatusUnpaid,
	}

	if err := s.repo.Reservation.Create(ctx, reservation); err != nil {
		s.log.Error("Failed to create reservation",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("restaurant_id", req.RestaurantID),
		)
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	s.log.Info("Reservation draft created",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("code", reservation.Code),
		zap.String("user_id", userID),
		zap.Int("party_size", req.PartySize),
	)

	resp := response.ReservationToResponse(reservation, restaurant.Name)
	return &resp, nil
}

func (s *reservationService) GetUserReservations(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReservationResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	reservations, err := s.repo.Reservation.FindByUserID(ctx, userID, limit, offset)
	if err != nil {
		s.log.Error("Failed to get user reservations",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("get user reservations: %w", err)
	}

	total, err := s.repo.Reservation.CountByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to count user reservations", zap.Error(err))
		return nil, fmt.Errorf("count user reservations: %w", err)
	}

	return response.NewPaginatedResponse(s.toResponses(ctx, reservations), req.Page, req.PerPage, total), nil
}

func (s *reservationService) CancelReservation(ctx context.Context, userID, reservationID, reason string, isAdmin bool) error {
	id, err := uuid.Parse(reservationID)
	if err != nil {
		return fmt.Errorf("invalid reservation ID format %s: %w", reservationID, err)
	}

	reservation, err := s.repo.Reservation.FindByID(ctx, id)
	if err != nil || reservation == nil {
		return fmt.Errorf("reservation %s not found", reservationID)
	}

	if !isAdmin && reservation.UserID != userID {
		return fmt.Errorf("unauthorized to cancel this reservation")
	}

	if reservation.Status == entity.ReservationStatusCancelled {
		return fmt.Errorf("cannot cancel: reservation is already cancelled")
	}

	// Cancellation is only allowed while the seating time is still ahead
	if !reservation.StartsAt().After(time.Now()) {
		return fmt.Errorf("cannot cancel a reservation whose date has passed")
	}

	wasPaid := reservation.PaymentStatus == entity.PaymentStatusPaid

	if err := s.repo.Reservation.Cancel(ctx, id, reason, wasPaid); err != nil {
		s.log.Error("Failed to cancel reservation",
			zap.Error(err),
			zap.String("reservation_id", reservationID),
		)
		return fmt.Errorf("cancel reservation %s: %w", reservationID, err)
	}

	s.log.Info("Reservation cancelled",
		zap.String("reservation_id", reservationID),
		zap.String("code", reservation.Code),
		zap.Bool("refund_due", wasPaid),
	)

	// Refund is always 100% of the captured amount. The row is already
	// marked refunded; a failed processor call is logged for manual
	// follow-up, not retried here.
	if wasPaid {
		if err := s.refunder.RefundReservation(ctx, reservation); err != nil {
			s.log.Error("Refund call failed after cancellation",
				zap.Error(err),
				zap.String("reservation_id", reservationID),
			)
		}
	}

	return nil
}

// ==================== ADMIN METHODS ====================

func (s *reservationService) GetReservationByID(ctx context.Context, reservationID string) (*response.ReservationResponse, error) {
	id, err := uuid.Parse(reservationID)
	if err != nil {
		return nil, fmt.Errorf("invalid reservation ID format %s: %w", reservationID, err)
	}

	reservation, err := s.repo.Reservation.FindByID(ctx, id)
	if err != nil || reservation == nil {
		return nil, fmt.Errorf("reservation %s not found", reservationID)
	}

	resp := response.ReservationToResponse(reservation, s.restaurantName(ctx, reservation.RestaurantID))
	return &resp, nil
}

func (s *reservationService) ListReservations(ctx context.Context, status string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReservationResponse], error) {
	if status != "" && !entity.ValidReservationStatus(status) {
		return nil, fmt.Errorf("invalid status filter %s", status)
	}

	reservations, err := s.repo.Reservation.FindAll(ctx, status, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list reservations", zap.Error(err), zap.String("status", status))
		return nil, fmt.Errorf("list reservations: %w", err)
	}

	total, err := s.repo.Reservation.CountAll(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("count reservations: %w", err)
	}

	return response.NewPaginatedResponse(s.toResponses(ctx, reservations), req.Page, req.PerPage, total), nil
}

// AdminUpdateStatus overwrites the status without a transition table; any
// canonical status may follow any other. This mirrors the moderation screens.
func (s *reservationService) AdminUpdateStatus(ctx context.Context, reservationID string, req *request.UpdateReservationStatusRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(reservationID)
	if err != nil {
		return fmt.Errorf("invalid reservation ID format %s: %w", reservationID, err)
	}

	reservation, err := s.repo.Reservation.FindByID(ctx, id)
	if err != nil || reservation == nil {
		return fmt.Errorf("reservation %s not found", reservationID)
	}

	if err := s.repo.Reservation.UpdateStatus(ctx, id, entity.ReservationStatus(req.Status)); err != nil {
		s.log.Error("Failed to update reservation status",
			zap.Error(err),
			zap.String("reservation_id", reservationID),
			zap.String("status", req.Status),
		)
		return fmt.Errorf("update reservation %s status: %w", reservationID, err)
	}

	s.log.Info("Reservation status overridden by admin",
		zap.String("reservation_id", reservationID),
		zap.String("from", string(reservation.Status)),
		zap.String("to", req.Status),
	)

	return nil
}

// ListStaleDrafts surfaces unpaid drafts older than the cutoff so the
// reconciliation job can resolve abandoned checkouts
func (s *reservationService) ListStaleDrafts(ctx context.Context) ([]response.ReservationResponse, error) {
	drafts, err := s.repo.Reservation.FindStaleDrafts(ctx, time.Now().Add(-staleDraftCutoff), 100)
	if err != nil {
		s.log.Error("Failed to list stale drafts", zap.Error(err))
		return nil, fmt.Errorf("list stale drafts: %w", err)
	}

	return s.toResponses(ctx, drafts), nil
}

// ==================== HELPER METHODS ====================

func (s *reservationService) restaurantName(ctx context.Context, restaurantID uuid.UUID) string {
	restaurant, _ := s.repo.Restaurant.FindByID(ctx, restaurantID)
	if restaurant == nil {
		return ""
	}
	return restaurant.Name
}

func (s *reservationService) toResponses(ctx context.Context, reservations []*entity.Reservation) []response.ReservationResponse {
	responses := make([]response.ReservationResponse, len(reservations))
	names := make(map[uuid.UUID]string)
	for i, reservation := range reservations {
		name, ok := names[reservation.RestaurantID]
		if !ok {
			name = s.restaurantName(ctx, reservation.RestaurantID)
			names[reservation.RestaurantID] = name
		}
		responses[i] = response.ReservationToResponse(reservation, name)
	}
	return responses
}
