package repository

import (
	"context"
	"fmt"

	"resto-booking/internal/data/entity"
	"resto-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	FindByUserAndRestaurant(ctx context.Context, userID string, restaurantID uuid.UUID) (*entity.Review, error)
	FindByRestaurantID(ctx context.Context, restaurantID uuid.UUID, limit, offset int) ([]*entity.Review, error)
	CountByRestaurantID(ctx context.Context, restaurantID uuid.UUID) (int64, error)
	AverageRating(ctx context.Context, restaurantID uuid.UUID) (float64, error)
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

func scanReview(row pgx.Row) (*entity.Review, error) {
	var review entity.Review
	err := row.Scan(
		&review.ID,
		&review.UserID,
		&review.RestaurantID,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, user_id, restaurant_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.UserID,
		review.RestaurantID,
		review.Rating,
		review.Comment,
		review.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("user_id", review.UserID),
			zap.String("restaurant_id", review.RestaurantID.String()),
		)
		return fmt.Errorf("create review: %w", err)
	}

	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	query := `
		SELECT id, user_id, restaurant_id, rating, comment, created_at
		FROM reviews WHERE id = $1
	`

	review, err := scanReview(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by ID",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return nil, fmt.Errorf("find review by ID %s: %w", id.String(), err)
	}

	return review, nil
}

func (r *reviewRepository) FindByUserAndRestaurant(ctx context.Context, userID string, restaurantID uuid.UUID) (*entity.Review, error) {
	query := `
		SELECT id, user_id, restaurant_id, rating, comment, created_at
		FROM reviews WHERE user_id = $1 AND restaurant_id = $2
	`

	review, err := scanReview(r.db.QueryRow(ctx, query, userID, restaurantID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by user and restaurant",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("restaurant_id", restaurantID.String()),
		)
		return nil, fmt.Errorf("find review by user %s and restaurant %s: %w", userID, restaurantID.String(), err)
	}

	return review, nil
}

func (r *reviewRepository) FindByRestaurantID(ctx context.Context, restaurantID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	query := `
		SELECT id, user_id, restaurant_id, rating, comment, created_at
		FROM reviews
		WHERE restaurant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, restaurantID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reviews by restaurant ID",
			zap.Error(err),
			zap.String("restaurant_id", restaurantID.String()),
		)
		return nil, fmt.Errorf("find reviews by restaurant ID %s: %w", restaurantID.String(), err)
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, review)
	}

	return reviews, nil
}

func (r *reviewRepository) CountByRestaurantID(ctx context.Context, restaurantID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM reviews WHERE restaurant_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, restaurantID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count reviews", zap.Error(err),
			zap.String("restaurant_id", restaurantID.String()))
		return 0, fmt.Errorf("count reviews for restaurant %s: %w", restaurantID.String(), err)
	}

	return count, nil
}

func (r *reviewRepository) AverageRating(ctx context.Context, restaurantID uuid.UUID) (float64, error) {
	query := `SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE restaurant_id = $1`

	var avg float64
	err := r.db.QueryRow(ctx, query, restaurantID).Scan(&avg)
	if err != nil {
		r.log.Error("Failed to compute average rating", zap.Error(err),
			zap.String("restaurant_id", restaurantID.String()))
		return 0, fmt.Errorf("average rating for restaurant %s: %w", restaurantID.String(), err)
	}

	return avg, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	query := `UPDATE reviews SET rating = $2, comment = $3 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, review.ID, review.Rating, review.Comment)
	if err != nil {
		r.log.Error("Failed to update review",
			zap.Error(err),
			zap.String("review_id", review.ID.String()),
		)
		return fmt.Errorf("update review %s: %w", review.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("review %s not found", review.ID.String())
	}

	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM reviews WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return fmt.Errorf("delete review %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("review %s not found", id.String())
	}

	return nil
}
