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

type RestaurantFilter struct {
	Status   string
	Cuisine  string
	Featured *bool
}

type RestaurantRepository interface {
	Create(ctx context.Context, restaurant *entity.Restaurant) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Restaurant, error)
	FindAll(ctx context.Context, filter RestaurantFilter, limit, offset int) ([]*entity.Restaurant, error)
	Count(ctx context.Context, filter RestaurantFilter) (int64, error)
	Update(ctx context.Context, restaurant *entity.Restaurant) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.RestaurantStatus) error
	SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error
}

type restaurantRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRestaurantRepository(db database.PgxIface, log *zap.Logger) RestaurantRepository {
	return &restaurantRepository{
		db:  db,
		log: log.With(zap.String("repository", "restaurant")),
	}
}

const restaurantColumns = `
	id, name, cuisine, address, phone, description, open_time, close_time,
	has_parking, has_wifi, has_private_room, smoking_allowed, status, featured,
	image_url, created_at, updated_at
`

func scanRestaurant(row pgx.Row) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	err := row.Scan(
		&rest.ID,
		&rest.Name,
		&rest.Cuisine,
		&rest.Address,
		&rest.Phone,
		&rest.Description,
		&rest.OpenTime,
		&rest.CloseTime,
		&rest.HasParking,
		&rest.HasWifi,
		&rest.HasPrivateRoom,
		&rest.SmokingAllowed,
		&rest.Status,
		&rest.Featured,
		&rest.ImageURL,
		&rest.CreatedAt,
		&rest.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *restaurantRepository) Create(ctx context.Context, restaurant *entity.Restaurant) error {
	query := `
		INSERT INTO restaurants (id, name, cuisine, address, phone, description, open_time, close_time,
			has_parking, has_wifi, has_private_room, smoking_allowed, status, featured, image_url,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := r.db.Exec(ctx, query,
		restaurant.ID,
		restaurant.Name,
		restaurant.Cuisine,
		restaurant.Address,
		restaurant.Phone,
		restaurant.Description,
		restaurant.OpenTime,
		restaurant.CloseTime,
		restaurant.HasParking,
		restaurant.HasWifi,
		restaurant.HasPrivateRoom,
		restaurant.SmokingAllowed,
		restaurant.Status,
		restaurant.Featured,
		restaurant.ImageURL,
		restaurant.CreatedAt,
		restaurant.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create restaurant",
			zap.Error(err),
			zap.String("name", restaurant.Name),
		)
		return fmt.Errorf("create restaurant %s: %w", restaurant.Name, err)
	}

	return nil
}

func (r *restaurantRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = $1`

	restaurant, err := scanRestaurant(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find restaurant by ID",
			zap.Error(err),
			zap.String("restaurant_id", id.String()),
		)
		return nil, fmt.Errorf("find restaurant by ID %s: %w", id.String(), err)
	}

	return restaurant, nil
}

func (r *restaurantRepository) FindAll(ctx context.Context, filter RestaurantFilter, limit, offset int) ([]*entity.Restaurant, error) {
	query := `
		SELECT ` + restaurantColumns + `
		FROM restaurants
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR cuisine = $2)
		  AND ($3::boolean IS NULL OR featured = $3)
		ORDER BY featured DESC, name
		LIMIT $4 OFFSET $5
	`

	rows, err := r.db.Query(ctx, query, filter.Status, filter.Cuisine, filter.Featured, limit, offset)
	if err != nil {
		r.log.Error("Failed to list restaurants",
			zap.Error(err),
			zap.String("status", filter.Status),
			zap.String("cuisine", filter.Cuisine),
		)
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	defer rows.Close()

	var restaurants []*entity.Restaurant
	for rows.Next() {
		restaurant, err := scanRestaurant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan restaurant row: %w", err)
		}
		restaurants = append(restaurants, restaurant)
	}

	return restaurants, nil
}

func (r *restaurantRepository) Count(ctx context.Context, filter RestaurantFilter) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM restaurants
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR cuisine = $2)
		  AND ($3::boolean IS NULL OR featured = $3)
	`

	var count int64
	err := r.db.QueryRow(ctx, query, filter.Status, filter.Cuisine, filter.Featured).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count restaurants", zap.Error(err))
		return 0, fmt.Errorf("count restaurants: %w", err)
	}

	return count, nil
}

func (r *restaurantRepository) Update(ctx context.Context, restaurant *entity.Restaurant) error {
	query := `
		UPDATE restaurants
		SET name = $2, cuisine = $3, address = $4, phone = $5, description = $6,
		    open_time = $7, close_time = $8, has_parking = $9, has_wifi = $10,
		    has_private_room = $11, smoking_allowed = $12, image_url = $13, updated_at = $14
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		restaurant.ID,
		restaurant.Name,
		restaurant.Cuisine,
		restaurant.Address,
		restaurant.Phone,
		restaurant.Description,
		restaurant.OpenTime,
		restaurant.CloseTime,
		restaurant.HasParking,
		restaurant.HasWifi,
		restaurant.HasPrivateRoom,
		restaurant.SmokingAllowed,
		restaurant.ImageURL,
		restaurant.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update restaurant",
			zap.Error(err),
			zap.String("restaurant_id", restaurant.ID.String()),
		)
		return fmt.Errorf("update restaurant %s: %w", restaurant.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("restaurant %s not found", restaurant.ID.String())
	}

	return nil
}

func (r *restaurantRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.RestaurantStatus) error {
	query := `UPDATE restaurants SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update restaurant status",
			zap.Error(err),
			zap.String("restaurant_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update restaurant %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("restaurant %s not found", id.String())
	}

	return nil
}

func (r *restaurantRepository) SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error {
	query := `UPDATE restaurants SET featured = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, featured)
	if err != nil {
		r.log.Error("Failed to set restaurant featured flag",
			zap.Error(err),
			zap.String("restaurant_id", id.String()),
		)
		return fmt.Errorf("set restaurant %s featured: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("restaurant %s not found", id.String())
	}

	return nil
}
