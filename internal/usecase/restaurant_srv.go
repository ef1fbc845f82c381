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

type RestaurantService interface {
	GetRestaurantByID(ctx context.Context, restaurantID string) (*response.RestaurantResponse, error)
	ListRestaurants(ctx context.Context, cuisine string, featured *bool, req *request.PaginatedRequest) (*response.PaginatedResponse[response.RestaurantResponse], error)

	// Admin endpoints
	CreateRestaurant(ctx context.Context, req *request.CreateRestaurantRequest) (*response.RestaurantResponse, error)
	UpdateRestaurant(ctx context.Context, restaurantID string, req *request.UpdateRestaurantRequest) (*response.RestaurantResponse, error)
	UpdateRestaurantStatus(ctx context.Context, restaurantID string, req *request.UpdateRestaurantStatusRequest) error
	SetFeatured(ctx context.Context, restaurantID string, req *request.SetFeaturedRequest) error
	ListAllRestaurants(ctx context.Context, status string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.RestaurantResponse], error)
}

type restaurantService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewRestaurantService(repo *repository.Repository, log *zap.Logger) RestaurantService {
	return &restaurantService{
		repo: repo,
		log:  log.With(zap.String("service", "restaurant")),
	}
}

func (s *restaurantService) GetRestaurantByID(ctx context.Context, restaurantID string) (*response.RestaurantResponse, error) {
	id, err := uuid.Parse(restaurantID)
	if err != nil {
		return nil, fmt.Errorf("invalid restaurant ID format %s: %w", restaurantID, err)
	}

	restaurant, err := s.repo.Restaurant.FindByID(ctx, id)
	if err != nil || restaurant == nil {
		return nil, fmt.Errorf("restaurant %s not found", restaurantID)
	}

	resp := response.RestaurantToResponse(restaurant)
	return &resp, nil
}

// ListRestaurants is the public catalog; only active restaurants show up
func (s *restaurantService) ListRestaurants(ctx context.Context, cuisine string, featured *bool, req *request.PaginatedRequest) (*response.PaginatedResponse[response.RestaurantResponse], error) {
	filter := repository.RestaurantFilter{
		Status:   string(entity.RestaurantStatusActive),
		Cuisine:  cuisine,
		Featured: featured,
	}

	restaurants, err := s.repo.Restaurant.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list restaurants", zap.Error(err), zap.String("cuisine", cuisine))
		return nil, fmt.Errorf("list restaurants: %w", err)
	}

	total, err := s.repo.Restaurant.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count restaurants: %w", err)
	}

	return response.NewPaginatedResponse(toRestaurantResponses(restaurants), req.Page, req.PerPage, total), nil
}

// ==================== ADMIN METHODS ====================

func (s *restaurantService) CreateRestaurant(ctx context.Context, req *request.CreateRestaurantRequest) (*response.RestaurantResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create restaurant validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	restaurant := &entity.Restaurant{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:           req.Name,
		Cuisine:        req.Cuisine,
		Address:        req.Address,
		Phone:          req.Phone,
		Description:    req.Description,
		OpenTime:       req.OpenTime,
		CloseTime:      req.CloseTime,
		HasParking:     req.HasParking,
		HasWifi:        req.HasWifi,
		HasPrivateRoom: req.HasPrivateRoom,
		SmokingAllowed: req.SmokingAllowed,
		Status:         entity.RestaurantStatusPending,
		ImageURL:       req.ImageURL,
	}

	if err := s.repo.Restaurant.Create(ctx, restaurant); err != nil {
		return nil, fmt.Errorf("create restaurant: %w", err)
	}

	s.log.Info("Restaurant created",
		zap.String("restaurant_id", restaurant.ID.String()),
		zap.String("name", restaurant.Name),
	)

	resp := response.RestaurantToResponse(restaurant)
	return &resp, nil
}

func (s *restaurantService) UpdateRestaurant(ctx context.Context, restaurantID string, req *request.UpdateRestaurantRequest) (*response.RestaurantResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(restaurantID)
	if err != nil {
		return nil, fmt.Errorf("invalid restaurant ID format %s: %w", restaurantID, err)
	}

	restaurant, err := s.repo.Restaurant.FindByID(ctx, id)
	if err != nil || restaurant == nil {
		return nil, fmt.Errorf("restaurant %s not found", restaurantID)
	}

	restaurant.Name = req.Name
	restaurant.Cuisine = req.Cuisine
	restaurant.Address = req.Address
	restaurant.Phone = req.Phone
	restaurant.Description = req.Description
	restaurant.OpenTime = req.OpenTime
	restaurant.CloseTime = req.CloseTime
	restaurant.HasParking = req.HasParking
	restaurant.HasWifi = req.HasWifi
	restaurant.HasPrivateRoom = req.HasPrivateRoom
	restaurant.SmokingAllowed = req.SmokingAllowed
	restaurant.ImageURL = req.ImageURL
	restaurant.UpdatedAt = time.Now()

	if err := s.repo.Restaurant.Update(ctx, restaurant); err != nil {
		return nil, fmt.Errorf("update restaurant %s: %w", restaurantID, err)
	}

	s.log.Info("Restaurant updated", zap.String("restaurant_id", restaurantID))

	resp := response.RestaurantToResponse(restaurant)
	return &resp, nil
}

func (s *restaurantService) UpdateRestaurantStatus(ctx context.Context, restaurantID string, req *request.UpdateRestaurantStatusRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(restaurantID)
	if err != nil {
		return fmt.Errorf("invalid restaurant ID format %s: %w", restaurantID, err)
	}

	if err := s.repo.Restaurant.UpdateStatus(ctx, id, entity.RestaurantStatus(req.Status)); err != nil {
		return fmt.Errorf("update restaurant %s status: %w", restaurantID, err)
	}

	s.log.Info("Restaurant status updated",
		zap.String("restaurant_id", restaurantID),
		zap.String("status", req.Status),
	)

	return nil
}

func (s *restaurantService) SetFeatured(ctx context.Context, restaurantID string, req *request.SetFeaturedRequest) error {
	id, err := uuid.Parse(restaurantID)
	if err != nil {
		return fmt.Errorf("invalid restaurant ID format %s: %w", restaurantID, err)
	}

	if err := s.repo.Restaurant.SetFeatured(ctx, id, req.Featured); err != nil {
		return fmt.Errorf("set restaurant %s featured: %w", restaurantID, err)
	}

	s.log.Info("Restaurant featured flag updated",
		zap.String("restaurant_id", restaurantID),
		zap.Bool("featured", req.Featured),
	)

	return nil
}

// ListAllRestaurants lets admins see every status, including pending listings
func (s *restaurantService) ListAllRestaurants(ctx context.Context, status string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.RestaurantResponse], error) {
	if status != "" && !entity.ValidRestaurantStatus(status) {
		return nil, fmt.Errorf("invalid status filter %s", status)
	}

	filter := repository.RestaurantFilter{Status: status}

	restaurants, err := s.repo.Restaurant.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list all restaurants", zap.Error(err), zap.String("status", status))
		return nil, fmt.Errorf("list restaurants: %w", err)
	}

	total, err := s.repo.Restaurant.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count restaurants: %w", err)
	}

	return response.NewPaginatedResponse(toRestaurantResponses(restaurants), req.Page, req.PerPage, total), nil
}

func toRestaurantResponses(restaurants []*entity.Restaurant) []response.RestaurantResponse {
	responses := make([]response.RestaurantResponse, len(restaurants))
	for i, restaurant := range restaurants {
		responses[i] = response.RestaurantToResponse(restaurant)
	}
	return responses
}
