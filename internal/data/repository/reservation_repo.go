package repository

import (
	"context"
	"fmt"
	"time"

	"resto-booking/internal/data/entity"
	"resto-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReservationRepository interface {
	Create(ctx context.Context, reservation *entity.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)
	FindByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Reservation, error)
	CountByUserID(ctx context.Context, userID string) (int64, error)
	FindAll(ctx context.Context, status string, limit, offset int) ([]*entity.Reservation, error)
	CountAll(ctx context.Context, status string) (int64, error)

	// Payment bookkeeping
	SetPaymentOrder(ctx context.Context, id uuid.UUID, orderID string) error

	// Lifecycle
	Cancel(ctx context.Context, id uuid.UUID, reason string, markRefunded bool) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ReservationStatus) error

	// Drafts that never completed payment, input for reconciliation
	FindStaleDrafts(ctx context.Context, olderThan time.Time, limit int) ([]*entity.Reservation, error)
}

type reservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

const reservationColumns = `
	id, code, user_id, restaurant_id, date, time_slot, party_size,
	guest_name, guest_email, guest_phone, notes, status, payment_status,
	payment_amount, payment_order_id, payment_info, cancel_reason, paid_at,
	created_at, updated_at
`

func scanReservation(row pgx.Row) (*entity.Reservation, error) {
	var r entity.Reservation
	err := row.Scan(
		&r.ID,
		&r.Code,
		&r.UserID,
		&r.RestaurantID,
		&r.Date,
		&r.TimeSlot,
		&r.PartySize,
		&r.GuestName,
		&r.GuestEmail,
		&r.GuestPhone,
		&r.Notes,
		&r.Status,
		&r.PaymentStatus,
		&r.PaymentAmount,
		&r.PaymentOrder,
		&r.PaymentInfo,
		&r.CancelReason,
		&r.PaidAt,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *reservationRepository) Create(ctx context.Context, reservation *entity.Reservation) error {
	query := `
		INSERT INTO reservations (id, code, user_id, restaurant_id, date, time_slot, party_size,
			guest_name, guest_email, guest_phone, notes, status, payment_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.Exec(ctx, query,
		reservation.ID,
		reservation.Code,
		reservation.UserID,
		reservation.RestaurantID,
		reservation.Date,
		reservation.TimeSlot,
		reservation.PartySize,
		reservation.GuestName,
		reservation.GuestEmail,
		reservation.GuestPhone,
		reservation.Notes,
		reservation.Status,
		reservation.PaymentStatus,
		reservation.CreatedAt,
		reservation.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create reservation",
			zap.Error(err),
			zap.String("code", reservation.Code),
			zap.String("user_id", reservation.UserID),
		)
		return fmt.Errorf("create reservation %s: %w", reservation.Code, err)
	}

	return nil
}

func (r *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	reservation, err := scanReservation(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation by ID",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return nil, fmt.Errorf("find reservation by ID %s: %w", id.String(), err)
	}

	return reservation, nil
}

func (r *reservationRepository) FindByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reservations by user ID",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find reservations by user ID %s: %w", userID, err)
	}
	defer rows.Close()

	return collectReservations(rows)
}

func (r *reservationRepository) CountByUserID(ctx context.Context, userID string) (int64, error) {
	query := `SELECT COUNT(*) FROM reservations WHERE user_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count reservations by user ID",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return 0, fmt.Errorf("count reservations by user ID %s: %w", userID, err)
	}

	return count, nil
}

func (r *reservationRepository) FindAll(ctx context.Context, status string, limit, offset int) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, status, limit, offset)
	if err != nil {
		r.log.Error("Failed to list reservations",
			zap.Error(err),
			zap.String("status", status),
		)
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()

	return collectReservations(rows)
}

func (r *reservationRepository) CountAll(ctx context.Context, status string) (int64, error) {
	query := `SELECT COUNT(*) FROM reservations WHERE ($1 = '' OR status = $1)`

	var count int64
	err := r.db.QueryRow(ctx, query, status).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count reservations", zap.Error(err), zap.String("status", status))
		return 0, fmt.Errorf("count reservations: %w", err)
	}

	return count, nil
}

func (r *reservationRepository) SetPaymentOrder(ctx context.Context, id uuid.UUID, orderID string) error {
	query := `
		UPDATE reservations
		SET payment_order_id = $2, updated_at = NOW()
		WHERE id = $1 AND payment_status = 'unpaid'
	`

	result, err := r.db.Exec(ctx, query, id, orderID)
	if err != nil {
		r.log.Error("Failed to set payment order",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
			zap.String("order_id", orderID),
		)
		return fmt.Errorf("set payment order for reservation %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reservation %s not found or not unpaid", id.String())
	}

	return nil
}

func (r *reservationRepository) Cancel(ctx context.Context, id uuid.UUID, reason string, markRefunded bool) error {
	// Refund marking is optimistic: the row is flagged refunded before the
	// processor call resolves. The ledger records whether it actually did.
	query := `
		UPDATE reservations
		SET status = 'cancelled',
		    cancel_reason = $2,
		    payment_status = CASE WHEN $3 THEN 'refunded' ELSE payment_status END,
		    updated_at = NOW()
		WHERE id = $1 AND status <> 'cancelled'
	`

	result, err := r.db.Exec(ctx, query, id, reason, markRefunded)
	if err != nil {
		r.log.Error("Failed to cancel reservation",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return fmt.Errorf("cancel reservation %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reservation %s not found or already cancelled", id.String())
	}

	return nil
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ReservationStatus) error {
	query := `UPDATE reservations SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update reservation status",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update reservation %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reservation %s not found", id.String())
	}

	return nil
}

func (r *reservationRepository) FindStaleDrafts(ctx context.Context, olderThan time.Time, limit int) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE status = 'pending' AND payment_status = 'unpaid' AND created_at < $1
		ORDER BY created_at
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, olderThan, limit)
	if err != nil {
		r.log.Error("Failed to find stale drafts", zap.Error(err))
		return nil, fmt.Errorf("find stale drafts: %w", err)
	}
	defer rows.Close()

	return collectReservations(rows)
}

func collectReservations(rows pgx.Rows) ([]*entity.Reservation, error) {
	var reservations []*entity.Reservation
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		reservations = append(reservations, reservation)
	}
	return reservations, nil
}
