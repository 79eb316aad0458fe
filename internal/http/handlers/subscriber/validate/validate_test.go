package validate

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/criartebr/stream-panel/internal/lib/apperr"
	"github.com/criartebr/stream-panel/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) ValidateAccess(ctx context.Context, id string) (models.ProbeResult, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.ProbeResult), args.Error(1)
}

func TestValidateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "reachable playlist",
			setupMock: func(m *MockService) {
				m.On("ValidateAccess", mock.Anything, "sub-1").
					Return(models.ProbeResult{Reachable: true}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"reachable":true`,
		},
		{
			name: "unreachable playlist is still 200",
			setupMock: func(m *MockService) {
				m.On("ValidateAccess", mock.Anything, "sub-1").
					Return(models.ProbeResult{Reachable: false, Detail: "HTTP 403"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"detail":"HTTP 403"`,
		},
		{
			name: "missing subscriber",
			setupMock: func(m *MockService) {
				m.On("ValidateAccess", mock.Anything, "sub-1").
					Return(models.ProbeResult{}, apperr.New(apperr.NotFound, "subscriber not found"))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"subscriber not found"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			router := chi.NewRouter()
			router.Post("/subscribers/{id}/validate-access", New(logger, mockService).ServeHTTP)

			req := httptest.NewRequest(http.MethodPost, "/subscribers/sub-1/validate-access", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
