package usecase

import (
	"context"
	"time"

	"resto-booking/internal/content"
	"resto-booking/internal/data/entity"
	"resto-booking/internal/data/repository"
	"resto-booking/internal/payment"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockReservationRepo implements repository.ReservationRepository
type MockReservationRepo struct {
	mock.Mock
}

func (m *MockReservationRepo) Create(ctx context.Context, reservation *entity.Reservation) error {
	args := m.Called(ctx, reservation)
	return args.Error(0)
}

func (m *MockReservationRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Reservation), args.Error(1)
}

func (m *MockReservationRepo) FindByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Reservation, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Reservation), args.Error(1)
}

func (m *MockReservationRepo) CountByUserID(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReservationRepo) FindAll(ctx context.Context, status string, limit, offset int) ([]*entity.Reservation, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Reservation), args.Error(1)
}

func (m *MockReservationRepo) CountAll(ctx context.Context, status string) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReservationRepo) SetPaymentOrder(ctx context.Context, id uuid.UUID, orderID string) error {
	args := m.Called(ctx, id, orderID)
	return args.Error(0)
}

func (m *MockReservationRepo) Cancel(ctx context.Context, id uuid.UUID, reason string, markRefunded bool) error {
	args := m.Called(ctx, id, reason, markRefunded)
	return args.Error(0)
}

func (m *MockReservationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ReservationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockReservationRepo) FindStaleDrafts(ctx context.Context, olderThan time.Time, limit int) ([]*entity.Reservation, error) {
	args := m.Called(ctx, olderThan, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Reservation), args.Error(1)
}

// MockPaymentRepo implements repository.PaymentRepository
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) RecordCapture(ctx context.Context, txn *entity.PaymentTransaction, snapshot []byte) error {
	args := m.Called(ctx, txn, snapshot)
	return args.Error(0)
}

func (m *MockPaymentRepo) FindByReservationID(ctx context.Context, reservationID uuid.UUID) (*entity.PaymentTransaction, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PaymentTransaction), args.Error(1)
}

func (m *MockPaymentRepo) MarkRefunded(ctx context.Context, captureID, refundID string, refundedAt time.Time) error {
	args := m.Called(ctx, captureID, refundID, refundedAt)
	return args.Error(0)
}

// MockRestaurantRepo implements repository.RestaurantRepository
type MockRestaurantRepo struct {
	mock.Mock
}

func (m *MockRestaurantRepo) Create(ctx context.Context, restaurant *entity.Restaurant) error {
	args := m.Called(ctx, restaurant)
	return args.Error(0)
}

func (m *MockRestaurantRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Restaurant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Restaurant), args.Error(1)
}

func (m *MockRestaurantRepo) FindAll(ctx context.Context, filter repository.RestaurantFilter, limit, offset int) ([]*entity.Restaurant, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Restaurant), args.Error(1)
}

func (m *MockRestaurantRepo) Count(ctx context.Context, filter repository.RestaurantFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRestaurantRepo) Update(ctx context.Context, restaurant *entity.Restaurant) error {
	args := m.Called(ctx, restaurant)
	return args.Error(0)
}

func (m *MockRestaurantRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.RestaurantStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockRestaurantRepo) SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error {
	args := m.Called(ctx, id, featured)
	return args.Error(0)
}

// MockManualRequestRepo implements repository.ManualRequestRepository
type MockManualRequestRepo struct {
	mock.Mock
}

func (m *MockManualRequestRepo) Create(ctx context.Context, request *entity.ManualRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockManualRequestRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.ManualRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ManualRequest), args.Error(1)
}

func (m *MockManualRequestRepo) FindAll(ctx context.Context, status string, limit, offset int) ([]*entity.ManualRequest, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.ManualRequest), args.Error(1)
}

func (m *MockManualRequestRepo) Count(ctx context.Context, status string) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockManualRequestRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ManualRequestStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockGateway implements payment.Gateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateOrder(ctx context.Context, amount int64, currency, description, invoiceID string) (*payment.OrderResult, error) {
	args := m.Called(ctx, amount, currency, description, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.OrderResult), args.Error(1)
}

func (m *MockGateway) CaptureOrder(ctx context.Context, orderID string) (*payment.CaptureResult, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.CaptureResult), args.Error(1)
}

func (m *MockGateway) RefundCapture(ctx context.Context, captureID string, amount int64, currency, reason string) (*payment.RefundResult, error) {
	args := m.Called(ctx, captureID, amount, currency, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.RefundResult), args.Error(1)
}

// MockCache implements the Cache interface without redis
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Acquire(ctx context.Context, key, owner string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, owner, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Release(ctx context.Context, key, owner string) error {
	args := m.Called(ctx, key, owner)
	return args.Error(0)
}

// MockRefunder implements the Refunder interface
type MockRefunder struct {
	mock.Mock
}

func (m *MockRefunder) RefundReservation(ctx context.Context, reservation *entity.Reservation) error {
	args := m.Called(ctx, reservation)
	return args.Error(0)
}

// MockPageFetcher implements the PageFetcher interface
type MockPageFetcher struct {
	mock.Mock
}

func (m *MockPageFetcher) GetPage(ctx context.Context, slug string) (*content.Page, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*content.Page), args.Error(1)
}
