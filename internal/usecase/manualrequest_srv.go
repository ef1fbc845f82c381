package usecase

import (
	"context"
	"fmt"
	"time"

	"resto-booking/internal/data/entity"
	"resto-booking/internal/data/repository"
	"resto-booking/internal/dto/request"
	"resto-booking/internal/dto/response"
	"resto-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ManualRequestService interface {
	CreateManualRequest(ctx context.Context, userID string, req *request.CreateManualRequestRequest) (*response.ManualRequestResponse, error)

	// Admin endpoints
	ListManualRequests(ctx context.Context, status string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ManualRequestResponse], error)
	UpdateManualRequestStatus(ctx context.Context, requestID string, req *request.UpdateManualRequestStatusRequest) error
}

type manualRequestService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewManualRequestService(repo *repository.Repository, log *zap.Logger) ManualRequestService {
	return &manualRequestService{
		repo: repo,
		log:  log.With(zap.String("service", "manual_request")),
	}
}

func (s *manualRequestService) CreateManualRequest(ctx context.Context, userID string, req *request.CreateManualRequestRequest) (*response.ManualRequestResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create manual request validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	restaurantID, err := uuid.Parse(req.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("invalid restaurant ID format %s: %w", req.RestaurantID, err)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date format %s: %w", req.Date, err)
	}

	if date.Before(startOfToday()) {
		return nil, fmt.Errorf("cannot request for a past date")
	}

	if !entity.ValidTimeSlot(req.TimeSlot) {
		return nil, fmt.Errorf("invalid time slot %s", req.TimeSlot)
	}

	restaurant, err := s.repo.Restaurant.FindByID(ctx, restaurantID)
	if err != nil || restaurant == nil {
		return nil, fmt.Errorf("restaurant %s not found", req.RestaurantID)
	}
	if restaurant.Status != entity.RestaurantStatusActive {
		return nil, fmt.Errorf("restaurant %s is not accepting reservations", restaurant.Name)
	}

	now := time.Now()
	mr := &entity.ManualRequest{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:       userID,
		RestaurantID: restaurantID,
		Date:         date,
		TimeSlot:     req.TimeSlot,
		PartySize:    req.PartySize,
		GuestName:    req.GuestName,
		GuestEmail:   req.GuestEmail,
		GuestPhone:   req.GuestPhone,
		Notes:        req.Notes,
		Status:       entity.ManualRequestStatusOpen,
	}

	if err := s.repo.ManualRequest.Create(ctx, mr); err != nil {
		return nil, fmt.Errorf("create manual request: %w", err)
	}

	s.log.Info("Manual request created",
		zap.String("request_id", mr.ID.String()),
		zap.String("user_id", userID),
		zap.Int("party_size", req.PartySize),
	)

	resp := response.ManualRequestToResponse(mr)
	return &resp, nil
}

// ==================== ADMIN METHODS ====================

func (s *manualRequestService) ListManualRequests(ctx context.Context, status string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ManualRequestResponse], error) {
	if status != "" && !entity.ValidManualRequestStatus(status) {
		return nil, fmt.Errorf("invalid status filter %s", status)
	}

	requests, err := s.repo.ManualRequest.FindAll(ctx, status, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list manual requests", zap.Error(err), zap.String("status", status))
		return nil, fmt.Errorf("list manual requests: %w", err)
	}

	total, err := s.repo.ManualRequest.Count(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("count manual requests: %w", err)
	}

	responses := make([]response.ManualRequestResponse, len(requests))
	for i, mr := range requests {
		responses[i] = response.ManualRequestToResponse(mr)
	}

	return response.NewPaginatedResponse(responses, req.Page, req.PerPage, total), nil
}

func (s *manualRequestService) UpdateManualRequestStatus(ctx context.Context, requestID string, req *request.UpdateManualRequestStatusRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(requestID)
	if err != nil {
		return fmt.Errorf("invalid request ID format %s: %w", requestID, err)
	}

	if err := s.repo.ManualRequest.UpdateStatus(ctx, id, entity.ManualRequestStatus(req.Status)); err != nil {
		return fmt.Errorf("update manual request %s status: %w", requestID, err)
	}

	s.log.Info("Manual request status updated",
		zap.String("request_id", requestID),
		zap.String("status", req.Status),
	)

	return nil
}
