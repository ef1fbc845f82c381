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

type ReviewService interface {
	CreateReview(ctx context.Context, userID, restaurantID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	GetRestaurantReviews(ctx context.Context, restaurantID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	GetRestaurantReviewStats(ctx context.Context, restaurantID string) (*response.RestaurantReviewStats, error)
	UpdateReview(ctx context.Context, userID, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, userID, reviewID string, isAdmin bool) error
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) CreateReview(ctx context.Context, userID, restaurantID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	restID, err := uuid.Parse(restaurantID)
	if err != nil {
		return nil, fmt.Errorf("invalid restaurant ID format %s: %w", restaurantID, err)
	}

	restaurant, err := s.repo.Restaurant.FindByID(ctx, restID)
	if err != nil || restaurant == nil {
		return nil, fmt.Errorf("restaurant %s not found", restaurantID)
	}

	// One review per guest per restaurant
	existing, err := s.repo.Review.FindByUserAndRestaurant(ctx, userID, restID)
	if err != nil {
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("cannot review: you already reviewed this restaurant")
	}

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:       userID,
		RestaurantID: restID,
		Rating:       req.Rating,
		Comment:      req.Comment,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("restaurant_id", restaurantID),
		zap.Int("rating", req.Rating),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) GetRestaurantReviews(ctx context.Context, restaurantID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	restID, err := uuid.Parse(restaurantID)
	if err != nil {
		return nil, fmt.Errorf("invalid restaurant ID format %s: %w", restaurantID, err)
	}

	reviews, err := s.repo.Review.FindByRestaurantID(ctx, restID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list reviews", zap.Error(err), zap.String("restaurant_id", restaurantID))
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	total, err := s.repo.Review.CountByRestaurantID(ctx, restID)
	if err != nil {
		return nil, fmt.Errorf("count reviews: %w", err)
	}

	responses := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		responses[i] = response.ReviewToResponse(review)
	}

	return response.NewPaginatedResponse(responses, req.Page, req.PerPage, total), nil
}

func (s *reviewService) GetRestaurantReviewStats(ctx context.Context, restaurantID string) (*response.RestaurantReviewStats, error) {
	restID, err := uuid.Parse(restaurantID)
	if err != nil {
		return nil, fmt.Errorf("invalid restaurant ID format %s: %w", restaurantID, err)
	}

	average, err := s.repo.Review.AverageRating(ctx, restID)
	if err != nil {
		return nil, fmt.Errorf("average rating: %w", err)
	}

	count, err := s.repo.Review.CountByRestaurantID(ctx, restID)
	if err != nil {
		return nil, fmt.Errorf("count reviews: %w", err)
	}

	return &response.RestaurantReviewStats{
		AverageRating: average,
		ReviewCount:   count,
	}, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, userID, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, fmt.Errorf("invalid review ID format %s: %w", reviewID, err)
	}

	review, err := s.repo.Review.FindByID(ctx, id)
	if err != nil || review == nil {
		return nil, fmt.Errorf("review %s not found", reviewID)
	}

	if review.UserID != userID {
		return nil, fmt.Errorf("unauthorized to update this review")
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		review.Comment = req.Comment
	}

	if err := s.repo.Review.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("update review %s: %w", reviewID, err)
	}

	s.log.Info("Review updated", zap.String("review_id", reviewID))

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, userID, reviewID string, isAdmin bool) error {
	id, err := uuid.Parse(reviewID)
	if err != nil {
		return fmt.Errorf("invalid review ID format %s: %w", reviewID, err)
	}

	review, err := s.repo.Review.FindByID(ctx, id)
	if err != nil || review == nil {
		return fmt.Errorf("review %s not found", reviewID)
	}

	if !isAdmin && review.UserID != userID {
		return fmt.Errorf("unauthorized to delete this review")
	}

	if err := s.repo.Review.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete review %s: %w", reviewID, err)
	}

	s.log.Info("Review deleted",
		zap.String("review_id", reviewID),
		zap.Bool("by_admin", isAdmin),
	)

	return nil
}
