package payment

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"resto-booking/pkg/utils"

	"github.com/plutov/paypal/v4"
	"go.uber.org/zap"
)

var (
	ErrGatewayInit    = errors.New("failed to initialize payment gateway")
	ErrOrderNotFound  = errors.New("payment order not found")
	ErrCaptureEmpty   = errors.New("capture response contained no captures")
	ErrRefundRejected = errors.New("refund rejected by processor")
)

// OrderResult is the phase-1 output: an order the guest still has to approve
type OrderResult struct {
	OrderID    string
	ApproveURL string
}

// CaptureResult is the transaction snapshot persisted against the reservation
type CaptureResult struct {
	OrderID    string
	CaptureID  string
	Amount     int64
	Currency   string
	PayerName  string
	PayerEmail string
	CapturedAt time.Time
}

type RefundResult struct {
	RefundID   string
	Status     string
	RefundedAt time.Time
}

// Gateway drives the processor's order-create / capture / refund REST surface.
// The interface exists so the orchestrator can be tested with a mock.
type Gateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, description, invoiceID string) (*OrderResult, error)
	CaptureOrder(ctx context.Context, orderID string) (*CaptureResult, error)
	RefundCapture(ctx context.Context, captureID string, amount int64, currency, reason string) (*RefundResult, error)
}

type paypalGateway struct {
	client *paypal.Client
	log    *zap.Logger
}

func NewPayPalGateway(config utils.PayPalConfig, logger *zap.Logger) (Gateway, error) {
	if config.ClientID == "" || config.Secret == "" {
		return nil, ErrGatewayInit
	}

	client, err := paypal.NewClient(config.ClientID, config.Secret, config.APIBase)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayInit, err)
	}

	if _, err := client.GetAccessToken(context.Background()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayInit, err)
	}

	logger.Info("PayPal client initialized", zap.String("api_base", config.APIBase))

	return &paypalGateway{
		client: client,
		log:    logger.With(zap.String("gateway", "paypal")),
	}, nil
}

// formatAmount renders a JPY amount; yen has no minor units
func formatAmount(amount int64, currency string) string {
	if currency == "JPY" {
		return strconv.FormatInt(amount, 10)
	}
	return fmt.Sprintf("%d.00", amount)
}

// parseAmount reads a processor amount string into whole currency units.
// Every order this service creates is a whole amount (formatAmount), so a
// capture carrying non-zero minor units cannot match anything we charged and
// must not be silently truncated.
func parseAmount(value string) (int64, error) {
	whole, frac, _ := strings.Cut(value, ".")
	amount, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", value, err)
	}
	if strings.Trim(frac, "0") != "" {
		return 0, fmt.Errorf("amount %q carries minor units, expected a whole amount", value)
	}
	return amount, nil
}

func (g *paypalGateway) CreateOrder(ctx context.Context, amount int64, currency, description, invoiceID string) (*OrderResult, error) {
	units := []paypal.PurchaseUnitRequest{
		{
			ReferenceID: invoiceID,
			InvoiceID:   invoiceID,
			Description: description,
			Amount: &paypal.PurchaseUnitAmount{
				Currency: currency,
				Value:    formatAmount(amount, currency),
			},
		},
	}

	order, err := g.client.CreateOrder(ctx, paypal.OrderIntentCapture, units, nil, nil)
	if err != nil {
		g.log.Error("Failed to create order",
			zap.Error(err),
			zap.String("invoice_id", invoiceID),
			zap.Int64("amount", amount),
		)
		return nil, fmt.Errorf("create order for %s: %w", invoiceID, err)
	}

	result := &OrderResult{OrderID: order.ID}
	for _, link := range order.Links {
		if link.Rel == "approve" {
			result.ApproveURL = link.Href
		}
	}

	g.log.Info("Order created",
		zap.String("order_id", order.ID),
		zap.String("invoice_id", invoiceID),
		zap.Int64("amount", amount),
		zap.String("currency", currency),
	)

	return result, nil
}

func (g *paypalGateway) CaptureOrder(ctx context.Context, orderID string) (*CaptureResult, error) {
	resp, err := g.client.CaptureOrder(ctx, orderID, paypal.CaptureOrderRequest{})
	if err != nil {
		g.log.Error("Failed to capture order",
			zap.Error(err),
			zap.String("order_id", orderID),
		)
		return nil, fmt.Errorf("capture order %s: %w", orderID, err)
	}

	if len(resp.PurchaseUnits) == 0 ||
		resp.PurchaseUnits[0].Payments == nil ||
		len(resp.PurchaseUnits[0].Payments.Captures) == 0 {
		return nil, fmt.Errorf("capture order %s: %w", orderID, ErrCaptureEmpty)
	}

	capture := resp.PurchaseUnits[0].Payments.Captures[0]

	result := &CaptureResult{
		OrderID:    resp.ID,
		CaptureID:  capture.ID,
		CapturedAt: time.Now(),
	}

	if capture.Amount != nil {
		amount, err := parseAmount(capture.Amount.Value)
		if err != nil {
			return nil, fmt.Errorf("captured amount for order %s: %w", orderID, err)
		}
		result.Amount = amount
		result.Currency = capture.Amount.Currency
	}

	if resp.Payer != nil {
		result.PayerEmail = resp.Payer.EmailAddress
		if resp.Payer.Name != nil {
			result.PayerName = resp.Payer.Name.GivenName + " " + resp.Payer.Name.Surname
		}
	}

	g.log.Info("Order captured",
		zap.String("order_id", orderID),
		zap.String("capture_id", result.CaptureID),
		zap.Int64("amount", result.Amount),
	)

	return result, nil
}

func (g *paypalGateway) RefundCapture(ctx context.Context, captureID string, amount int64, currency, reason string) (*RefundResult, error) {
	resp, err := g.client.RefundCapture(ctx, captureID, paypal.RefundCaptureRequest{
		Amount: &paypal.Money{
			Currency: currency,
			Value:    formatAmount(amount, currency),
		},
		NoteToPayer: reason,
	})
	if err != nil {
		g.log.Error("Failed to refund capture",
			zap.Error(err),
			zap.String("capture_id", captureID),
			zap.Int64("amount", amount),
		)
		return nil, fmt.Errorf("refund capture %s: %w", captureID, err)
	}

	if resp.Status != "COMPLETED" && resp.Status != "PENDING" {
		return nil, fmt.Errorf("refund capture %s status %s: %w", captureID, resp.Status, ErrRefundRejected)
	}

	g.log.Info("Capture refunded",
		zap.String("capture_id", captureID),
		zap.String("refund_id", resp.ID),
		zap.Int64("amount", amount),
	)

	return &RefundResult{
		RefundID:   resp.ID,
		Status:     resp.Status,
		RefundedAt: time.Now(),
	}, nil
}
