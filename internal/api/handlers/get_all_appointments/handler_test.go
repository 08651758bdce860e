package get_all_appointments

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockService struct {
	result []*domain.Appointment
	err    error
}

func (m *mockService) GetAll(ctx context.Context) ([]*domain.Appointment, error) {
	return m.result, m.err
}

func TestHandle(t *testing.T) {
	start := time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC)
	svc := &mockService{result: []*domain.Appointment{
		{ID: 1, StartTime: start, EndTime: start, CreatedAt: start},
		{ID: 2, StartTime: start.AddDate(0, 0, 1), EndTime: start.AddDate(0, 0, 1), CreatedAt: start},
	}}

	w := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/appointments", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":2`)

	w = httptest.NewRecorder()
	NewHandler(&mockService{err: errors.New("db down")}, nopLogger{}).
		Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/appointments", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
