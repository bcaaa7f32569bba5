package list

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/subscription-hub/internal/models"
)

// MockService реализует интерфейс list.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, userID int) ([]*models.SubscriptionInfo, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SubscriptionInfo), args.Error(1)
}

func TestListHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	endDate := "2027-01-15"

	tests := []struct {
		name           string
		userID         string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "успешное получение подписок",
			userID: "1",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, 1).Return([]*models.SubscriptionInfo{
					{
						SubscriptionID: 10,
						ServiceID:      2,
						ServiceName:    "Premium Support",
						Active:         true,
						StartDate:      "2026-01-15",
						EndDate:        &endDate,
					},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"service_name":"Premium Support"`,
		},
		{
			name:   "пустой список подписок",
			userID: "2",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, 2).Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"subscriptions":[]`,
		},
		{
			name:           "некорректный id в url",
			userID:         "abc",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"failed to decode id from url"}`,
		},
		{
			name:   "ошибка сервиса",
			userID: "1",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, 1).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not list subscriptions"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/users/"+tt.userID+"/subscriptions", nil)

			// Устанавливаем URL параметры для chi
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.userID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
