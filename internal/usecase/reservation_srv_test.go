package usecase

import (
	"context"
	"testing"
	"time"

	"resto-booking/internal/data/entity"
	"resto-booking/internal/data/repository"
	"resto-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRestaurant(status entity.RestaurantStatus) *entity.Restaurant {
	return &entity.Restaurant{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:      "Sakura Tei",
		Cuisine:   "japanese",
		Address:   "Shibuya, Tokyo",
		Phone:     "0312345678",
		OpenTime:  "11:00",
		CloseTime: "21:00",
		Status:    status,
	}
}

func validCreateRequest(restaurantID uuid.UUID, partySize int) *request.CreateReservationRequest {
	return &request.CreateReservationRequest{
		RestaurantID: restaurantID.String(),
		Date:         time.Now().AddDate(0, 0, 7).Format("2006-01-02"),
		TimeSlot:     "18:00",
		PartySize:    partySize,
		GuestName:    "Taro Yamada",
		GuestEmail:   "taro@example.com",
		GuestPhone:   "09012345678",
	}
}

func newReservationFixture(userID string, status entity.ReservationStatus, paymentStatus entity.PaymentStatus, startsIn time.Duration) *entity.Reservation {
	start := time.Now().Add(startsIn)
	return &entity.Reservation{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now().Add(-time.Hour),
			UpdatedAt: time.Now().Add(-time.Hour),
		},
		Code:          "RSV-20260901-120000-0001",
		UserID:        userID,
		RestaurantID:  uuid.New(),
		Date:          time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location()),
		TimeSlot:      start.Format("15:04"),
		PartySize:     2,
		GuestName:     "Taro Yamada",
		GuestEmail:    "taro@example.com",
		GuestPhone:    "09012345678",
		Status:        status,
		PaymentStatus: paymentStatus,
	}
}

func newReservationServiceForTest(resRepo *MockReservationRepo, restRepo *MockRestaurantRepo, refunder *MockRefunder) ReservationService {
	repo := &repository.Repository{
		Reservation: resRepo,
		Restaurant:  restRepo,
	}
	return NewReservationService(repo, refunder, zap.NewNop())
}

func TestCreateReservationDraft(t *testing.T) {
	resRepo := new(MockReservationRepo)
	restRepo := new(MockRestaurantRepo)
	restaurant := newTestRestaurant(entity.RestaurantStatusActive)

	restRepo.On("FindByID", mock.Anything, restaurant.ID).Return(restaurant, nil)
	resRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Reservation")).Return(nil)

	service := newReservationServiceForTest(resRepo, restRepo, new(MockRefunder))

	resp, err := service.CreateReservation(context.Background(), "user_2abc", validCreateRequest(restaurant.ID, 4))
	require.NoError(t, err)

	// Draft exists before any payment activity
	assert.Equal(t, string(entity.ReservationStatusPending), string(resp.Status))
	assert.Equal(t, string(entity.PaymentStatusUnpaid), string(resp.PaymentStatus))
	assert.Equal(t, "Sakura Tei", resp.RestaurantName)

	created := resRepo.Calls[0].Arguments.Get(1).(*entity.Reservation)
	assert.Equal(t, "user_2abc", created.UserID)
	assert.NotEmpty(t, created.Code)
	assert.Nil(t, created.PaymentOrder)
}

func TestCreateReservationPastDateRejected(t *testing.T) {
	restaurant := newTestRestaurant(entity.RestaurantStatusActive)
	service := newReservationServiceForTest(new(MockReservationRepo), new(MockRestaurantRepo), new(MockRefunder))

	req := validCreateRequest(restaurant.ID, 2)
	req.Date = time.Now().AddDate(0, 0, -1).Format("2006-01-02")

	resp, err := service.CreateReservation(context.Background(), "user_2abc", req)
	assert.Nil(t, resp)
	assert.ErrorContains(t, err, "past date")
}

func TestCreateReservationTodayAccepted(t *testing.T) {
	resRepo := new(MockReservationRepo)
	restRepo := new(MockRestaurantRepo)
	restaurant := newTestRestaurant(entity.RestaurantStatusActive)

	restRepo.On("FindByID", mock.Anything, restaurant.ID).Return(restaurant, nil)
	resRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Reservation")).Return(nil)

	service := newReservationServiceForTest(resRepo, restRepo, new(MockRefunder))

	// Same-day bookings stay valid all day regardless of the server's
	// timezone offset from UTC
	req := validCreateRequest(restaurant.ID, 2)
	req.Date = time.Now().Format("2006-01-02")

	resp, err := service.CreateReservation(context.Background(), "user_2abc", req)
	require.NoError(t, err)
	assert.Equal(t, string(entity.ReservationStatusPending), string(resp.Status))
}

func TestCreateReservationInvalidTimeSlot(t *testing.T) {
	restaurant := newTestRestaurant(entity.RestaurantStatusActive)
	service := newReservationServiceForTest(new(MockReservationRepo), new(MockRestaurantRepo), new(MockRefunder))

	req := validCreateRequest(restaurant.ID, 2)
	req.TimeSlot = "03:00"

	resp, err := service.CreateReservation(context.Background(), "user_2abc", req)
	assert.Nil(t, resp)
	assert.ErrorContains(t, err, "invalid time slot")
}

func TestCreateReservationLargePartyRoutedToManual(t *testing.T) {
	restaurant := newTestRestaurant(entity.RestaurantStatusActive)
	resRepo := new(MockReservationRepo)
	service := newReservationServiceForTest(resRepo, new(MockRestaurantRepo), new(MockRefunder))

	for _, size := range []int{13, 20} {
		resp, err := service.CreateReservation(context.Background(), "user_2abc", validCreateRequest(restaurant.ID, size))
		assert.Nil(t, resp, "party size %d", size)
		assert.ErrorIs(t, err, ErrManualRequestRequired, "party size %d", size)
	}

	// No draft is ever written for manual-path parties
	resRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateReservationOversizedPartyRejected(t *testing.T) {
	restaurant := newTestRestaurant(entity.RestaurantStatusActive)
	service := newReservationServiceForTest(new(MockReservationRepo), new(MockRestaurantRepo), new(MockRefunder))

	resp, err := service.CreateReservation(context.Background(), "user_2abc", validCreateRequest(restaurant.ID, 21))
	assert.Nil(t, resp)
	assert.ErrorContains(t, err, "contact the restaurant directly")
	assert.NotErrorIs(t, err, ErrManualRequestRequired)
}

func TestCreateReservationInactiveRestaurant(t *testing.T) {
	resRepo := new(MockReservationRepo)
	restRepo := new(MockRestaurantRepo)
	restaurant := newTestRestaurant(entity.RestaurantStatusInactive)

	restRepo.On("FindByID", mock.Anything, restaurant.ID).Return(restaurant, nil)

	service := newReservationServiceForTest(resRepo, restRepo, new(MockRefunder))

	resp, err := service.CreateReservation(context.Background(), "user_2abc", validCreateRequest(restaurant.ID, 2))
	assert.Nil(t, resp)
	assert.ErrorContains(t, err, "not accepting reservations")
	resRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCancelReservationFutureDate(t *testing.T) {
	resRepo := new(MockReservationRepo)
	refunder := new(MockRefunder)
	reservation := newReservationFixture("user_2abc", entity.ReservationStatusConfirmed, entity.PaymentStatusPaid, 48*time.Hour)

	resRepo.On("FindByID", mock.Anything, reservation.ID).Return(reservation, nil)
	resRepo.On("Cancel", mock.Anything, reservation.ID, "change of plans", true).Return(nil)
	refunder.On("RefundReservation", mock.Anything, reservation).Return(nil)

	service := newReservationServiceForTest(resRepo, new(MockRestaurantRepo), refunder)

	err := service.CancelReservation(context.Background(), "user_2abc", reservation.ID.String(), "change of plans", false)
	require.NoError(t, err)

	resRepo.AssertExpectations(t)
	refunder.AssertExpectations(t)
}

func TestCancelReservationPastDateRejected(t *testing.T) {
	resRepo := new(MockReservationRepo)
	reservation := newReservationFixture("user_2abc", entity.ReservationStatusConfirmed, entity.PaymentStatusPaid, -48*time.Hour)

	resRepo.On("FindByID", mock.Anything, reservation.ID).Return(reservation, nil)

	service := newReservationServiceForTest(resRepo, new(MockRestaurantRepo), new(MockRefunder))

	err := service.CancelReservation(context.Background(), "user_2abc", reservation.ID.String(), "too late", false)
	assert.ErrorContains(t, err, "date has passed")
	resRepo.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelReservationAlreadyCancelled(t *testing.T) {
	resRepo := new(MockReservationRepo)
	reservation := newReservationFixture("user_2abc", entity.ReservationStatusCancelled, entity.PaymentStatusRefunded, 48*time.Hour)

	resRepo.On("FindByID", mock.Anything, reservation.ID).Return(reservation, nil)

	service := newReservationServiceForTest(resRepo, new(MockRestaurantRepo), new(MockRefunder))

	err := service.CancelReservation(context.Background(), "user_2abc", reservation.ID.String(), "again", false)
	assert.ErrorContains(t, err, "already cancelled")
}

func TestCancelReservationOwnership(t *testing.T) {
	resRepo := new(MockReservationRepo)
	reservation := newReservationFixture("user_2abc", entity.ReservationStatusConfirmed, entity.PaymentStatusPaid, 48*time.Hour)

	resRepo.On("FindByID", mock.Anything, reservation.ID).Return(reservation, nil)

	service := newReservationServiceForTest(resRepo, new(MockRestaurantRepo), new(MockRefunder))

	err := service.CancelReservation(context.Background(), "user_2other", reservation.ID.String(), "not mine", false)
	assert.ErrorContains(t, err, "unauthorized")
}

func TestCancelReservationAdminBypassesOwnership(t *testing.T) {
	resRepo := new(MockReservationRepo)
	refunder := new(MockRefunder)
	reservation := newReservationFixture("user_2abc", entity.ReservationStatusConfirmed, entity.PaymentStatusPaid, 48*time.Hour)

	resRepo.On("FindByID", mock.Anything, reservation.ID).Return(reservation, nil)
	resRepo.On("Cancel", mock.Anything, reservation.ID, "admin cancel", true).Return(nil)
	refunder.On("RefundReservation", mock.Anything, reservation).Return(nil)

	service := newReservationServiceForTest(resRepo, new(MockRestaurantRepo), refunder)

	err := service.CancelReservation(context.Background(), "user_2admin", reservation.ID.String(), "admin cancel", true)
	require.NoError(t, err)
}

func TestCancelReservationUnpaidSkipsRefund(t *testing.T) {
	resRepo := new(MockReservationRepo)
	refunder := new(MockRefunder)
	reservation := newReservationFixture("user_2abc", entity.ReservationStatusPending, entity.PaymentStatusUnpaid, 48*time.Hour)

	resRepo.On("FindByID", mock.Anything, reservation.ID).Return(reservation, nil)
	resRepo.On("Cancel", mock.Anything, reservation.ID, "never paid", false).Return(nil)

	service := newReservationServiceForTest(resRepo, new(MockRestaurantRepo), refunder)

	err := service.CancelReservation(context.Background(), "user_2abc", reservation.ID.String(), "never paid", false)
	require.NoError(t, err)

	refunder.AssertNotCalled(t, "RefundReservation", mock.Anything, mock.Anything)
}

func TestCancelReservationRefundFailureDoesNotFailCancel(t *testing.T) {
	resRepo := new(MockReservationRepo)
	refunder := new(MockRefunder)
	reservation := newReservationFixture("user_2abc", entity.ReservationStatusConfirmed, entity.PaymentStatusPaid, 48*time.Hour)

	resRepo.On("FindByID", mock.Anything, reservation.ID).Return(reservation, nil)
	resRepo.On("Cancel", mock.Anything, reservation.ID, "refund will fail", true).Return(nil)
	refunder.On("RefundReservation", mock.Anything, reservation).Return(assert.AnError)

	service := newReservationServiceForTest(resRepo, new(MockRestaurantRepo), refunder)

	// The cancellation stands even when the refund call fails; the failure is
	// left for manual follow-up
	err := service.CancelReservation(context.Background(), "user_2abc", reservation.ID.String(), "refund will fail", false)
	require.NoError(t, err)
}

func TestAdminUpdateStatusUnrestricted(t *testing.T) {
	resRepo := new(MockReservationRepo)
	reservation := newReservationFixture("user_2abc", entity.ReservationStatusCancelled, entity.PaymentStatusRefunded, 48*time.Hour)

	resRepo.On("FindByID", mock.Anything, reservation.ID).Return(reservation, nil)
	resRepo.On("UpdateStatus", mock.Anything, reservation.ID, entity.ReservationStatusConfirmed).Return(nil)

	service := newReservationServiceForTest(resRepo, new(MockRestaurantRepo), new(MockRefunder))

	// cancelled → confirmed is allowed for admins, there is no transition table
	err := service.AdminUpdateStatus(context.Background(), reservation.ID.String(), &request.UpdateReservationStatusRequest{Status: "confirmed"})
	require.NoError(t, err)
	resRepo.AssertExpectations(t)
}

func TestListReservationsRejectsUnknownStatus(t *testing.T) {
	service := newReservationServiceForTest(new(MockReservationRepo), new(MockRestaurantRepo), new(MockRefunder))

	resp, err := service.ListReservations(context.Background(), "rejected", &request.PaginatedRequest{Page: 1, PerPage: 10})
	assert.Nil(t, resp)
	assert.ErrorContains(t, err, "invalid status filter")
}

func TestListStaleDrafts(t *testing.T) {
	resRepo := new(MockReservationRepo)
	restRepo := new(MockRestaurantRepo)
	draft := newReservationFixture("user_2abc", entity.ReservationStatusPending, entity.PaymentStatusUnpaid, 48*time.Hour)
	draft.CreatedAt = time.Now().Add(-30 * time.Hour)

	resRepo.On("FindStaleDrafts", mock.Anything, mock.AnythingOfType("time.Time"), 100).
		Return([]*entity.Reservation{draft}, nil)
	restRepo.On("FindByID", mock.Anything, draft.RestaurantID).Return(newTestRestaurant(entity.RestaurantStatusActive), nil)

	service := newReservationServiceForTest(resRepo, restRepo, new(MockRefunder))

	drafts, err := service.ListStaleDrafts(context.Background())
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, draft.ID.String(), drafts[0].ID)

	cutoff := resRepo.Calls[0].Arguments.Get(1).(time.Time)
	assert.WithinDuration(t, time.Now().Add(-24*time.Hour), cutoff, time.Minute)
}
