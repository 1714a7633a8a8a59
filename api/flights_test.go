package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) List(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func sampleFlight() domain.Flight {
	return domain.Flight{
		ID:                1,
		DepartureCity:     "Moscow",
		ArrivalCity:       "Saint Petersburg",
		Route:             "MOW-SPB",
		Description:       "Morning departure",
		DepartureDatetime: time.Date(2024, 5, 10, 10, 0, 0, 0, time.UTC),
		ArrivalDatetime:   time.Date(2024, 5, 10, 11, 30, 0, 0, time.UTC),
		PriceCents:        350000,
	}
}

func newFlightRouter(service *MockFlightUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewFlightHandler(service).Register(router.Group("/flights"))
	return router
}

func TestFlightHandler_List(t *testing.T) {
	mockService := &MockFlightUseCase{}
	router := newFlightRouter(mockService)

	mockService.On("List", mock.Anything).Return([]domain.Flight{sampleFlight()}, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/flights", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 1)
	assert.Equal(t, "MOW-SPB", resp[0]["route"])
	assert.Equal(t, float64(350000), resp[0]["price_cents"])
	assert.Equal(t, "2024-05-10T10:00:00Z", resp[0]["departure_datetime"])

	mockService.AssertExpectations(t)
}

func TestFlightHandler_List_Empty(t *testing.T) {
	mockService := &MockFlightUseCase{}
	router := newFlightRouter(mockService)

	mockService.On("List", mock.Anything).Return([]domain.Flight{}, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/flights", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestFlightHandler_Get_WithDuration(t *testing.T) {
	mockService := &MockFlightUseCase{}
	router := newFlightRouter(mockService)

	flight := sampleFlight()
	mockService.On("GetByID", mock.Anything, int64(1)).Return(&flight, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/flights/1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(1), resp["duration_hours"])
	assert.Equal(t, float64(30), resp["duration_minutes"])
	assert.Equal(t, "Saint Petersburg", resp["arrival_city"])

	mockService.AssertExpectations(t)
}

func TestFlightHandler_Get_NotFound(t *testing.T) {
	mockService := &MockFlightUseCase{}
	router := newFlightRouter(mockService)

	mockService.On("GetByID", mock.Anything, int64(99)).Return(nil, domain.ErrFlightNotFound).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/flights/99", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFlightHandler_Get_InvalidID(t *testing.T) {
	mockService := &MockFlightUseCase{}
	router := newFlightRouter(mockService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/flights/abc", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "GetByID")
}
