package appointments_page

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func (m *mockService) GetByDay(ctx context.Context, day time.Time) ([]*domain.Appointment, error) {
	return m.result, m.err
}

func (m *mockService) GetUpcoming(ctx context.Context) ([]*domain.Appointment, error) {
	return m.result, m.err
}

func sample() []*domain.Appointment {
	start := time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC)
	return []*domain.Appointment{{
		ID:          1,
		FirstName:   "Jane",
		LastName:    "<Doe>",
		PhoneNumber: "555-123-4567",
		Make:        "Honda",
		Model:       "Civic",
		Year:        "2018",
		Services:    "oil_change, tire_rotation",
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
	}}
}

func TestHandleUpcoming(t *testing.T) {
	h := NewHandler(&mockService{result: sample()}, time.UTC, nopLogger{})

	w := httptest.NewRecorder()
	h.HandleUpcoming(w, httptest.NewRequest(http.MethodGet, "/appointments", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))

	body := w.Body.String()
	assert.Contains(t, body, "Upcoming appointments")
	assert.Contains(t, body, "09:00 - 10:00")
	assert.Contains(t, body, "2018 Honda Civic")
	assert.Contains(t, body, "oil change, tire rotation")
	assert.Contains(t, body, "Jane &lt;Doe&gt;")
}

func TestHandleDay(t *testing.T) {
	h := NewHandler(&mockService{result: []*domain.Appointment{}}, time.UTC, nopLogger{})

	r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/appointments/2026-10-21", nil),
		map[string]string{"date": "2026-10-21"})
	w := httptest.NewRecorder()
	h.HandleDay(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Appointments on 2026-10-21")
	assert.Contains(t, w.Body.String(), "No appointments.")
}

func TestHandle_Errors(t *testing.T) {
	h := NewHandler(&mockService{err: errors.New("db down")}, time.UTC, nopLogger{})

	w := httptest.NewRecorder()
	h.HandleUpcoming(w, httptest.NewRequest(http.MethodGet, "/appointments", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/appointments/x", nil), map[string]string{"date": "x"})
	w = httptest.NewRecorder()
	h.HandleDay(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
