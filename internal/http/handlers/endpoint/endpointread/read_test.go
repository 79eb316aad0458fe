package endpointread

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/criartebr/stream-panel/internal/lib/apperr"
	"github.com/criartebr/stream-panel/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Get(ctx context.Context, id string) (*models.Endpoint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Endpoint), args.Error(1)
}

func TestReadHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "known endpoint",
			setupMock: func(m *MockService) {
				m.On("Get", mock.Anything, "ep-1").
					Return(&models.Endpoint{ID: "ep-1", Title: "Main", URL: "http://cdn.example.com", Active: true}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"title":"Main"`,
		},
		{
			name: "missing endpoint",
			setupMock: func(m *MockService) {
				m.On("Get", mock.Anything, "ep-1").
					Return(nil, apperr.New(apperr.NotFound, "endpoint not found"))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"endpoint not found"`,
		},
		{
			name: "storage failure",
			setupMock: func(m *MockService) {
				m.On("Get", mock.Anything, "ep-1").
					Return(nil, assert.AnError)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not read endpoint"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/endpoints/ep-1", nil)
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", "ep-1")
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
