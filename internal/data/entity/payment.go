package entity

import (
	"time"

	"github.com/google/uuid"
)

const PaymentProviderPayPal = "paypal"

// PaymentTransaction is the ledger row for one external processor transaction.
// At most one successful capture exists per reservation; a refund reverses
// exactly that capture.
type PaymentTransaction struct {
	BaseSimple
	ReservationID uuid.UUID  `db:"reservation_id"`
	Provider      string     `db:"provider"`
	OrderID       string     `db:"order_id"`
	CaptureID     string     `db:"capture_id"`
	Amount        int64      `db:"amount"`
	Currency      string     `db:"currency"`
	PayerName     *string    `db:"payer_name"`
	PayerEmail    *string    `db:"payer_email"`
	CapturedAt    time.Time  `db:"captured_at"`
	RefundID      *string    `db:"refund_id"`
	RefundedAt    *time.Time `db:"refunded_at"`
}
