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

type PaymentRepository interface {
	// RecordCapture writes the ledger row and flips the reservation to paid
	// in one transaction. Returns ErrAlreadyPaid if a capture was recorded
	// before; the first capture always wins.
	RecordCapture(ctx context.Context, txn *entity.PaymentTransaction, snapshot []byte) error

	FindByReservationID(ctx context.Context, reservationID uuid.UUID) (*entity.PaymentTransaction, error)
	MarkRefunded(ctx context.Context, captureID, refundID string, refundedAt time.Time) error
}

type paymentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentRepository(db database.PgxIface, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

func (r *paymentRepository) RecordCapture(ctx context.Context, txn *entity.PaymentTransaction, snapshot []byte) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin capture transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	updateQuery := `
		UPDATE reservations
		SET payment_status = 'paid',
		    status = 'confirmed',
		    payment_amount = $2,
		    payment_info = $3,
		    paid_at = $4,
		    updated_at = NOW()
		WHERE id = $1 AND payment_status <> 'paid'
	`

	result, err := tx.Exec(ctx, updateQuery,
		txn.ReservationID,
		txn.Amount,
		snapshot,
		txn.CapturedAt,
	)
	if err != nil {
		r.log.Error("Failed to mark reservation paid",
			zap.Error(err),
			zap.String("reservation_id", txn.ReservationID.String()),
			zap.String("capture_id", txn.CaptureID),
		)
		return fmt.Errorf("mark reservation %s paid: %w", txn.ReservationID.String(), err)
	}

	if result.RowsAffected() == 0 {
		r.log.Warn("Capture already recorded for reservation",
			zap.String("reservation_id", txn.ReservationID.String()),
			zap.String("capture_id", txn.CaptureID),
		)
		return ErrAlreadyPaid
	}

	insertQuery := `
		INSERT INTO payment_transactions (id, reservation_id, provider, order_id, capture_id,
			amount, currency, payer_name, payer_email, captured_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = tx.Exec(ctx, insertQuery,
		txn.ID,
		txn.ReservationID,
		txn.Provider,
		txn.OrderID,
		txn.CaptureID,
		txn.Amount,
		txn.Currency,
		txn.PayerName,
		txn.PayerEmail,
		txn.CapturedAt,
		txn.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to insert payment transaction",
			zap.Error(err),
			zap.String("capture_id", txn.CaptureID),
		)
		return fmt.Errorf("insert payment transaction %s: %w", txn.CaptureID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit capture transaction: %w", err)
	}

	return nil
}

func (r *paymentRepository) FindByReservationID(ctx context.Context, reservationID uuid.UUID) (*entity.PaymentTransaction, error) {
	query := `
		SELECT id, reservation_id, provider, order_id, capture_id, amount, currency,
		       payer_name, payer_email, captured_at, refund_id, refunded_at, created_at
		FROM payment_transactions
		WHERE reservation_id = $1
		ORDER BY captured_at DESC
		LIMIT 1
	`

	var txn entity.PaymentTransaction
	err := r.db.QueryRow(ctx, query, reservationID).Scan(
		&txn.ID,
		&txn.ReservationID,
		&txn.Provider,
		&txn.OrderID,
		&txn.CaptureID,
		&txn.Amount,
		&txn.Currency,
		&txn.PayerName,
		&txn.PayerEmail,
		&txn.CapturedAt,
		&txn.RefundID,
		&txn.RefundedAt,
		&txn.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment transaction by reservation ID",
			zap.Error(err),
			zap.String("reservation_id", reservationID.String()),
		)
		return nil, fmt.Errorf("find payment transaction by reservation ID %s: %w", reservationID.String(), err)
	}

	return &txn, nil
}

func (r *paymentRepository) MarkRefunded(ctx context.Context, captureID, refundID string, refundedAt time.Time) error {
	query := `
		UPDATE payment_transactions
		SET refund_id = $2, refunded_at = $3
		WHERE capture_id = $1 AND refund_id IS NULL
	`

	result, err := r.db.Exec(ctx, query, captureID, refundID, refundedAt)
	if err != nil {
		r.log.Error("Failed to mark capture refunded",
			zap.Error(err),
			zap.String("capture_id", captureID),
			zap.String("refund_id", refundID),
		)
		return fmt.Errorf("mark capture %s refunded: %w", captureID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("capture %s not found or already refunded", captureID)
	}

	return nil
}
