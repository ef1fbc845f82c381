package usecase

import (
	"context"
	"testing"
	"time"

	"resto-booking/internal/data/entity"
	"resto-booking/internal/data/repository"
	"resto-booking/internal/dto/request"
	"resto-booking/internal/payment"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newPaymentServiceForTest(resRepo *MockReservationRepo, payRepo *MockPaymentRepo, restRepo *MockRestaurantRepo, gateway *MockGateway, cache *MockCache) PaymentService {
	repo := &repository.Repository{
		Reservation: resRepo,
		Payment:     payRepo,
		Restaurant:  restRepo,
	}
	return NewPaymentService(repo, gateway, cache, "JPY", zap.NewNop())
}

func newPayableReservation(userID string, partySize int) *entity.Reservation {
	return &entity.Reservation{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Code:          "RSV-20260901-120000-0042",
		UserID:        userID,
		RestaurantID:  uuid.New(),
		Date:          time.Now().AddDate(0, 0, 7),
		TimeSlot:      "18:00",
		PartySize:     partySize,
		GuestName:     "Taro Yamada",
		GuestEmail:    "taro@example.com",
		GuestPhone:    "09012345678",
		Status:        entity.ReservationStatusPending,
		PaymentStatus: entity.PaymentStatusUnpaid,
	}
}

func TestCheckoutCreatesOrder(t *testing.T) {
	resRepo := new(MockReservationRepo)
	restRepo := new(MockRestaurantRepo)
	gateway := new(MockGateway)
	cache := new(MockCache)

	reservation := newPayableReservation("user_2abc", 2)

	resRepo.On("FindByID", mock.Anything, reservation.ID).Return(reservation, nil)
	restRepo.On("FindByID", mock.Anything, reservation.RestaurantID).Return(newTestRestaurant(entity.RestaurantStatusActive), nil)
	gateway.On("CreateOrder", mock.Anything, int64(1000), "JPY", mock.AnythingOfType("string"), reservation.Code).
		Return(&payment.OrderResult{OrderID: "5O190127TN364715T", ApproveURL: "https://www.sandbox.paypal.com/checkoutnow?token=5O190127TN364715T"}, nil)
	resRepo.On("SetPaymentOrder", mock.Anything, reservation.ID, "5O190127TN364715T").Return(nil)
	cache.On("Set", mock.Anything, "pending_checkout:"+reservation.ID.String(), "5O190127TN364715T", mock.AnythingOfType("time.Duration")).Return(nil)

	service := newPaymentServiceForTest(resRepo, new(MockPaymentRepo), restRepo, gateway, cache)

	resp, err := service.Checkout(context.Background(), "user_2abc", reservation.ID.String())
	require.NoError(t, err)

	assert.Equal(t, "5O190127TN364715T", resp.OrderID)
	assert.Equal(t, int64(1000), resp.Amount)
	assert.Equal(t, "JPY", resp.Currency)
	assert.Equal(t, "standard", resp.PlanID)
	assert.NotEmpty(t, resp.ApproveURL)

	resRepo.AssertExpectations(t)
	gateway.AssertExpectations(t)
}

func TestCheckoutGroupPartyFee(t *testing.T) {
	resRepo := new(MockReservationRepo)
	restRepo := new(MockRestaurantRepo)
	gateway := new(MockGateway)
	cache := new(MockCache)

	reservation := newPayableReservation("user_2abc", 8)

	resRepo.On("FindByID", mock.Anything, reservation.ID).Return(reservation, nil)
	restRepo.On("FindByID", mock.Anything, reservation.RestaurantID).Return(newTestRestaurant(entity.RestaurantStatusActive), nil)
	gateway.On("CreateOrder", mock.Anything, int64(2000), "JPY", mock.AnythingOfType("string"), reservation.Code).
		Return(&payment.OrderResult{OrderID: "ORD-2000"}, nil)
	resRepo.On("SetPaymentOrder", mock.Anything, reservation.ID, "ORD-2000").Return(nil)
	cache.On("Set", mock.Anything, mock.AnythingOfType("string"), "ORD-2000", mock.AnythingOfType("time.Duration")).Return(nil)

	service := newPaymentServiceForTest(resRepo, new(MockPaymentRepo), restRepo, gateway, cache)

	resp, err := service.Checkout(context.Background(), "user_2abc", reservation.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(2000), resp.Amount)
	assert.Equal(t, "group", resp.PlanID)
}

func TestCheckoutFailureLeavesDraftUntouched(t *testing.T) {
	resRepo := new(MockReservationRepo)
	restRepo := new(MockRestaurantRepo)
	gateway := new(MockGateway)

	reservation := newPayableReservation("user_2abc", 2)

	resRepo.On("FindByID", mock.Anything, reservation.ID).Return(reservation, nil)
	restRepo.On("FindByID", mock.Anything, reservation.RestaurantID).Return(newTestRestaurant(entity.RestaurantStatusActive), nil)
	gateway.On("CreateOrder", mock.Anything, int64(1000), "JPY", mock.AnythingOfType("string"), reservation.Code).
		Return(nil, assert.AnError)

	service := newPaymentServiceForTest(resRepo, new(MockPaymentRepo), restRepo, gateway, new(MockCache))

	resp, err := service.Checkout(context.Background(), "user_2abc", reservation.ID.String())
	assert.Nil(t, resp)
	assert.ErrorContains(t, err, "payment order create failed")

	// Nothing is written against the draft on a failed order create
	resRepo.AssertNotCalled(t, "SetPaymentOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckoutOwnership(t *testing.T) {
	resRepo := new(MockReservationRepo)
	reservation := newPayableReservation("user_2abc", 2)

	resRepo.On("FindByID", mock.Anything, reservation.ID).Return(reservation, nil)

	service := newPaymentServiceForTest(resRepo, new(MockPaymentRepo), new(MockRestaurantRepo), new(MockGateway), new(MockCache))

	resp, err := service.Checkout(context.Background(), "user_2other", reservation.ID.String())
	assert.Nil(t, resp)
	assert.ErrorContains(t, err, "unauthorized")
}

func TestCheckoutAlreadyPaid(t *testing.T) {
	resRepo := new(MockReservationRepo)
	reservation := newPayableReservation("user_2abc", 2)
	reservation.PaymentStatus = entity.PaymentStatusPaid

	resRepo.On("FindByID", mock.Anything, reservation.ID).Return(reservation, nil)

	service := newPaymentServiceForTest(resRepo, new(MockPaymentRepo), new(MockRestaurantRepo), new(MockGateway), new(MockCache))

	resp, err := service.Checkout(context.Background(), "user_2abc", reservation.ID.String())
	assert.Nil(t, resp)
	assert.ErrorContains(t, err, "already paid")
}

func TestCaptureSuccess(t *testing.T) {
	resRepo := new(MockReservationRepo)
	payRepo := new(MockPaymentRepo)
	gateway := new(MockGateway)
	cache := new(MockCache)

	reservation := newPayableReservation("user_2abc", 2)
	orderID := "5O190127TN364715T"
	reservation.PaymentOrder = &orderID

	capturedAt := time.Now()
	resRepo.On("FindByID", mock.Anything, reservation.ID).Return(reservation, nil)
	cache.On("Acquire", mock.Anything, "capture_lock:"+reservation.ID.String(), orderID, mock.AnythingOfType("time.Duration")).Return(true, nil)
	cache.On("Release", mock.Anything, "capture_lock:"+reservation.ID.String(), orderID).Return(nil)
	gateway.On("CaptureOrder", mock.Anything, orderID).Return(&payment.CaptureResult{
		OrderID:    orderID,
		CaptureID:  "3C679366HH908993F",
		Amount:     1000,
		Currency:   "JPY",
		PayerName:  "Taro Yamada",
		PayerEmail: "taro@example.com",
		CapturedAt: capturedAt,
	}, nil)
	payRepo.On("RecordCapture", mock.Anything, mock.AnythingOfType("*entity.PaymentTransaction"), mock.Anything).Return(nil)
	cache.On("Delete", mock.Anything, "pending_checkout:"+reservation.ID.String()).Return(nil)

	service := newPaymentServiceForTest(resRepo, payRepo, new(MockRestaurantRepo), gateway, cache)

	resp, err := service.Capture(context.Background(), "user_2abc", reservation.ID.String(), &request.CaptureReservationRequest{OrderID: orderID})
	require.NoError(t, err)

	assert.Equal(t, "3C679366HH908993F", resp.TransactionID)
	assert.Equal(t, int64(1000), resp.Amount)
	assert.Equal(t, "JPY", resp.Currency)

	// The persisted ledger row carries the processor's snapshot values
	var recorded *entity.PaymentTransaction
	for _, call := range payRepo.Calls {
		if call.Method == "RecordCapture" {
			recorded = call.Arguments.Get(1).(*entity.PaymentTransaction)
		}
	}
	require.NotNil(t, recorded)
	assert.Equal(t, reservation.ID, recorded.ReservationID)
	assert.Equal(t, entity.PaymentProviderPayPal, recorded.Provider)
	assert.Equal(t, int64(1000), recorded.Amount)
	require.NotNil(t, recorded.PayerEmail)
	assert.Equal(t, "taro@example.com", *recorded.PayerEmail)
}

func TestCaptureAlreadyPaidIsIdempotent(t *testing.T) {
	resRepo := new(MockReservationRepo)
	payRepo := new(MockPaymentRepo)
	gateway := new(MockGateway)

	reservation := newPayableReservation("user_2abc", 2)
	orderID := "5O190127TN364715T"
	reservation.PaymentOrder = &orderID
	reservation.PaymentStatus = entity.PaymentStatusPaid

	resRepo.On("FindByID", mock.Anything, reservation.ID).Return(reservation, nil)
	payRepo.On("FindByReservationID", mock.Anything, reservation.ID).Return(&entity.PaymentTransaction{
		BaseSimple:    entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		ReservationID: reservation.ID,
		Provider:      entity.PaymentProviderPayPal,
		OrderID:       orderID,
		CaptureID:     "3C679366HH908993F",
		Amount:        1000,
		Currency:      "JPY",
		CapturedAt:    time.Now(),
	}, nil)

	service := newPaymentServiceForTest(resRepo, payRepo, new(MockRestaurantRepo), gateway, new(MockCache))

	// Re-submitting the same capture returns the recorded transaction and
	// never reaches the processor again
	resp, err := service.Capture(context.Background(), "user_2abc", reservation.ID.String(), &request.CaptureReservationRequest{OrderID: orderID})
	require.NoError(t, err)
	assert.Equal(t, "3C679366HH908993F", resp.TransactionID)

	gateway.AssertNotCalled(t, "CaptureOrder", mock.Anything, mock.Anything)
}

func TestCaptureCancelledReservationRejected(t *testing.T) {
	resRepo := new(MockReservationRepo)
	payRepo := new(MockPaymentRepo)
	gateway := new(MockGateway)

	reservation := newPayableReservation("user_2abc", 2)
	orderID := "5O190127TN364715T"
	reservation.PaymentOrder = &orderID
	reservation.Status = entity.ReservationStatusCancelled

	resRepo.On("FindByID", mock.Anything, reservation.ID).Return(reservation, nil)

	service := newPaymentServiceForTest(resRepo, payRepo, new(MockRestaurantRepo), gateway, new(MockCache))

	// A cancelled draft keeps its order id, but capturing it would charge the
	// guest and flip the row back to confirmed
	resp, err := service.Capture(context.Background(), "user_2abc", reservation.ID.String(), &request.CaptureReservationRequest{OrderID: orderID})
	assert.Nil(t, resp)
	assert.ErrorContains(t, err, "cannot capture")

	gateway.AssertNotCalled(t, "CaptureOrder", mock.Anything, mock.Anything)
	payRepo.AssertNotCalled(t, "RecordCapture", mock.Anything, mock.Anything, mock.Anything)
}

func TestCaptureOrderMismatch(t *testing.T) {
	resRepo := new(MockReservationRepo)
	reservation := newPayableReservation("user_2abc", 2)
	orderID := "ORD-REAL"
	reservation.PaymentOrder = &orderID

	resRepo.On("FindByID", mock.Anything, reservation.ID).Return(reservation, nil)

	service := newPaymentServiceForTest(resRepo, new(MockPaymentRepo), new(MockRestaurantRepo), new(MockGateway), new(MockCache))

	resp, err := service.Capture(context.Background(), "user_2abc", reservation.ID.String(), &request.CaptureReservationRequest{OrderID: "ORD-FORGED"})
	assert.Nil(t, resp)
	assert.ErrorContains(t, err, "does not belong")
}

func TestCaptureLockHeld(t *testing.T) {
	resRepo := new(MockReservationRepo)
	gateway := new(MockGateway)
	cache := new(MockCache)

	reservation := newPayableReservation("user_2abc", 2)
	orderID := "5O190127TN364715T"
	reservation.PaymentOrder = &orderID

	resRepo.On("FindByID", mock.Anything, reservation.ID).Return(reservation, nil)
	cache.On("Acquire", mock.Anything, mock.AnythingOfType("string"), orderID, mock.AnythingOfType("time.Duration")).Return(false, nil)

	service := newPaymentServiceForTest(resRepo, new(MockPaymentRepo), new(MockRestaurantRepo), gateway, cache)

	resp, err := service.Capture(context.Background(), "user_2abc", reservation.ID.String(), &request.CaptureReservationRequest{OrderID: orderID})
	assert.Nil(t, resp)
	assert.ErrorContains(t, err, "already in progress")

	gateway.AssertNotCalled(t, "CaptureOrder", mock.Anything, mock.Anything)
}

func TestCaptureRecordRaceReturnsFirstCapture(t *testing.T) {
	resRepo := new(MockReservationRepo)
	payRepo := new(MockPaymentRepo)
	gateway := new(MockGateway)
	cache := new(MockCache)

	reservation := newPayableReservation("user_2abc", 2)
	orderID := "5O190127TN364715T"
	reservation.PaymentOrder = &orderID

	resRepo.On("FindByID", mock.Anything, reservation.ID).Return(reservation, nil)
	cache.On("Acquire", mock.Anything, mock.AnythingOfType("string"), orderID, mock.AnythingOfType("time.Duration")).Return(true, nil)
	cache.On("Release", mock.Anything, mock.AnythingOfType("string"), orderID).Return(nil)
	gateway.On("CaptureOrder", mock.Anything, orderID).Return(&payment.CaptureResult{
		OrderID: orderID, CaptureID: "CAP-LOSER", Amount: 1000, Currency: "JPY", CapturedAt: time.Now(),
	}, nil)
	payRepo.On("RecordCapture", mock.Anything, mock.Anything, mock.Anything).Return(repository.ErrAlreadyPaid)
	payRepo.On("FindByReservationID", mock.Anything, reservation.ID).Return(&entity.PaymentTransaction{
		BaseSimple:    entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		ReservationID: reservation.ID,
		OrderID:       orderID,
		CaptureID:     "CAP-WINNER",
		Amount:        1000,
		Currency:      "JPY",
		CapturedAt:    time.Now(),
	}, nil)

	service := newPaymentServiceForTest(resRepo, payRepo, new(MockRestaurantRepo), gateway, cache)

	resp, err := service.Capture(context.Background(), "user_2abc", reservation.ID.String(), &request.CaptureReservationRequest{OrderID: orderID})
	require.NoError(t, err)
	assert.Equal(t, "CAP-WINNER", resp.TransactionID)
}

func TestCapturePersistFailureSurfacesTransactionID(t *testing.T) {
	resRepo := new(MockReservationRepo)
	payRepo := new(MockPaymentRepo)
	gateway := new(MockGateway)
	cache := new(MockCache)

	reservation := newPayableReservation("user_2abc", 2)
	orderID := "5O190127TN364715T"
	reservation.PaymentOrder = &orderID

	resRepo.On("FindByID", mock.Anything, reservation.ID).Return(reservation, nil)
	cache.On("Acquire", mock.Anything, mock.AnythingOfType("string"), orderID, mock.AnythingOfType("time.Duration")).Return(true, nil)
	cache.On("Release", mock.Anything, mock.AnythingOfType("string"), orderID).Return(nil)
	gateway.On("CaptureOrder", mock.Anything, orderID).Return(&payment.CaptureResult{
		OrderID: orderID, CaptureID: "3C679366HH908993F", Amount: 1000, Currency: "JPY", CapturedAt: time.Now(),
	}, nil)
	payRepo.On("RecordCapture", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	service := newPaymentServiceForTest(resRepo, payRepo, new(MockRestaurantRepo), gateway, cache)

	resp, err := service.Capture(context.Background(), "user_2abc", reservation.ID.String(), &request.CaptureReservationRequest{OrderID: orderID})
	assert.Nil(t, resp)

	// The guest-facing error must carry the processor transaction id for
	// manual reconciliation
	var notRecorded *payment.CaptureNotRecordedError
	require.ErrorAs(t, err, &notRecorded)
	assert.Equal(t, "3C679366HH908993F", notRecorded.CaptureID)
}

func TestRefundReservationFullAmount(t *testing.T) {
	payRepo := new(MockPaymentRepo)
	gateway := new(MockGateway)

	reservation := newPayableReservation("user_2abc", 2)
	refundedAt := time.Now()

	payRepo.On("FindByReservationID", mock.Anything, reservation.ID).Return(&entity.PaymentTransaction{
		BaseSimple:    entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		ReservationID: reservation.ID,
		CaptureID:     "3C679366HH908993F",
		Amount:        2000,
		Currency:      "JPY",
		CapturedAt:    time.Now().Add(-time.Hour),
	}, nil)
	// Refund is always the full captured amount
	gateway.On("RefundCapture", mock.Anything, "3C679366HH908993F", int64(2000), "JPY", mock.AnythingOfType("string")).
		Return(&payment.RefundResult{RefundID: "REF-001", Status: "COMPLETED", RefundedAt: refundedAt}, nil)
	payRepo.On("MarkRefunded", mock.Anything, "3C679366HH908993F", "REF-001", refundedAt).Return(nil)

	service := newPaymentServiceForTest(new(MockReservationRepo), payRepo, new(MockRestaurantRepo), gateway, new(MockCache))

	err := service.RefundReservation(context.Background(), reservation)
	require.NoError(t, err)

	gateway.AssertExpectations(t)
	payRepo.AssertExpectations(t)
}

func TestRefundReservationNothingCaptured(t *testing.T) {
	payRepo := new(MockPaymentRepo)
	gateway := new(MockGateway)

	reservation := newPayableReservation("user_2abc", 2)
	payRepo.On("FindByReservationID", mock.Anything, reservation.ID).Return(nil, nil)

	service := newPaymentServiceForTest(new(MockReservationRepo), payRepo, new(MockRestaurantRepo), gateway, new(MockCache))

	err := service.RefundReservation(context.Background(), reservation)
	require.NoError(t, err)
	gateway.AssertNotCalled(t, "RefundCapture", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRefundReservationAlreadyRefunded(t *testing.T) {
	payRepo := new(MockPaymentRepo)
	gateway := new(MockGateway)

	reservation := newPayableReservation("user_2abc", 2)
	refundID := "REF-OLD"
	payRepo.On("FindByReservationID", mock.Anything, reservation.ID).Return(&entity.PaymentTransaction{
		BaseSimple:    entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		ReservationID: reservation.ID,
		CaptureID:     "3C679366HH908993F",
		Amount:        1000,
		Currency:      "JPY",
		CapturedAt:    time.Now().Add(-time.Hour),
		RefundID:      &refundID,
	}, nil)

	service := newPaymentServiceForTest(new(MockReservationRepo), payRepo, new(MockRestaurantRepo), gateway, new(MockCache))

	err := service.RefundReservation(context.Background(), reservation)
	require.NoError(t, err)
	gateway.AssertNotCalled(t, "RefundCapture", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRefundAmountIsFlatHundredPercent(t *testing.T) {
	for _, captured := range []int64{1000, 2000, 3000} {
		assert.Equal(t, captured, refundAmount(captured))
	}
}
