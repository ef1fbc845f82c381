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

type ManualRequestRepository interface {
	Create(ctx context.Context, request *entity.ManualRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ManualRequest, error)
	FindAll(ctx context.Context, status string, limit, offset int) ([]*entity.ManualRequest, error)
	Count(ctx context.Context, status string) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ManualRequestStatus) error
}

type manualRequestRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewManualRequestRepository(db database.PgxIface, log *zap.Logger) ManualRequestRepository {
	return &manualRequestRepository{
		db:  db,
		log: log.With(zap.String("repository", "manual_request")),
	}
}

const manualRequestColumns = `
	id, user_id, restaurant_id, date, time_slot, party_size,
	guest_name, guest_email, guest_phone, notes, status, created_at, updated_at
`

func scanManualRequest(row pgx.Row) (*entity.ManualRequest, error) {
	var mr entity.ManualRequest
	err := row.Scan(
		&mr.ID,
		&mr.UserID,
		&mr.RestaurantID,
		&mr.Date,
		&mr.TimeSlot,
		&mr.PartySize,
		&mr.GuestName,
		&mr.GuestEmail,
		&mr.GuestPhone,
		&mr.Notes,
		&mr.Status,
		&mr.CreatedAt,
		&mr.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &mr, nil
}

func (r *manualRequestRepository) Create(ctx context.Context, request *entity.ManualRequest) error {
	query := `
		INSERT INTO manual_requests (id, user_id, restaurant_id, date, time_slot, party_size,
			guest_name, guest_email, guest_phone, notes, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		request.ID,
		request.UserID,
		request.RestaurantID,
		request.Date,
		request.TimeSlot,
		request.PartySize,
		request.GuestName,
		request.GuestEmail,
		request.GuestPhone,
		request.Notes,
		request.Status,
		request.CreatedAt,
		request.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create manual request",
			zap.Error(err),
			zap.String("user_id", request.UserID),
			zap.Int("party_size", request.PartySize),
		)
		return fmt.Errorf("create manual request: %w", err)
	}

	return nil
}

func (r *manualRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ManualRequest, error) {
	query := `SELECT ` + manualRequestColumns + ` FROM manual_requests WHERE id = $1`

	request, err := scanManualRequest(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find manual request by ID",
			zap.Error(err),
			zap.String("request_id", id.String()),
		)
		return nil, fmt.Errorf("find manual request by ID %s: %w", id.String(), err)
	}

	return request, nil
}

func (r *manualRequestRepository) FindAll(ctx context.Context, status string, limit, offset int) ([]*entity.ManualRequest, error) {
	query := `
		SELECT ` + manualRequestColumns + `
		FROM manual_requests
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, status, limit, offset)
	if err != nil {
		r.log.Error("Failed to list manual requests", zap.Error(err), zap.String("status", status))
		return nil, fmt.Errorf("list manual requests: %w", err)
	}
	defer rows.Close()

	var requests []*entity.ManualRequest
	for rows.Next() {
		request, err := scanManualRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan manual request row: %w", err)
		}
		requests = append(requests, request)
	}

	return requests, nil
}

func (r *manualRequestRepository) Count(ctx context.Context, status string) (int64, error) {
	query := `SELECT COUNT(*) FROM manual_requests WHERE ($1 = '' OR status = $1)`

	var count int64
	err := r.db.QueryRow(ctx, query, status).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count manual requests", zap.Error(err))
		return 0, fmt.Errorf("count manual requests: %w", err)
	}

	return count, nil
}

func (r *manualRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ManualRequestStatus) error {
	query := `UPDATE manual_requests SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update manual request status",
			zap.Error(err),
			zap.String("request_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update manual request %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("manual request %s not found", id.String())
	}

	return nil
}
