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

func newManualRequestServiceForTest(mrRepo *MockManualRequestRepo, restRepo *MockRestaurantRepo) ManualRequestService {
	repo := &repository.Repository{
		ManualRequest: mrRepo,
		Restaurant:    restRepo,
	}
	return NewManualRequestService(repo, zap.NewNop())
}

func validManualRequest(restaurantID uuid.UUID) *request.CreateManualRequestRequest {
	return &request.CreateManualRequestRequest{
		RestaurantID: restaurantID.String(),
		Date:         time.Now().AddDate(0, 0, 7).Format("2006-01-02"),
		TimeSlot:     "18:00",
		PartySize:    15,
		GuestName:    "Taro Yamada",
		GuestEmail:   "taro@example.com",
		GuestPhone:   "09012345678",
	}
}

func TestCreateManualRequestOpen(t *testing.T) {
	mrRepo := new(MockManualRequestRepo)
	restRepo := new(MockRestaurantRepo)
	restaurant := newTestRestaurant(entity.RestaurantStatusActive)

	restRepo.On("FindByID", mock.Anything, restaurant.ID).Return(restaurant, nil)
	mrRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.ManualRequest")).Return(nil)

	service := newManualRequestServiceForTest(mrRepo, restRepo)

	resp, err := service.CreateManualRequest(context.Background(), "user_2abc", validManualRequest(restaurant.ID))
	require.NoError(t, err)
	assert.Equal(t, string(entity.ManualRequestStatusOpen), string(resp.Status))

	created := mrRepo.Calls[0].Arguments.Get(1).(*entity.ManualRequest)
	assert.Equal(t, "user_2abc", created.UserID)
	assert.Equal(t, 15, created.PartySize)
}

func TestCreateManualRequestTodayAccepted(t *testing.T) {
	mrRepo := new(MockManualRequestRepo)
	restRepo := new(MockRestaurantRepo)
	restaurant := newTestRestaurant(entity.RestaurantStatusActive)

	restRepo.On("FindByID", mock.Anything, restaurant.ID).Return(restaurant, nil)
	mrRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.ManualRequest")).Return(nil)

	service := newManualRequestServiceForTest(mrRepo, restRepo)

	// Same-day requests stay valid all day regardless of the server's
	// timezone offset from UTC
	req := validManualRequest(restaurant.ID)
	req.Date = time.Now().Format("2006-01-02")

	_, err := service.CreateManualRequest(context.Background(), "user_2abc", req)
	require.NoError(t, err)
}

func TestCreateManualRequestPastDateRejected(t *testing.T) {
	restaurant := newTestRestaurant(entity.RestaurantStatusActive)
	service := newManualRequestServiceForTest(new(MockManualRequestRepo), new(MockRestaurantRepo))

	req := validManualRequest(restaurant.ID)
	req.Date = time.Now().AddDate(0, 0, -1).Format("2006-01-02")

	resp, err := service.CreateManualRequest(context.Background(), "user_2abc", req)
	assert.Nil(t, resp)
	assert.ErrorContains(t, err, "past date")
}
