package get_appointments_by_day

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockService struct {
	gotDay time.Time
	result []*domain.Appointment
	err    error
}

func (m *mockService) GetByDay(ctx context.Context, day time.Time) ([]*domain.Appointment, error) {
	m.gotDay = day
	return m.result, m.err
}

func serve(h *Handler, date string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/day/"+date, nil)
	r = mux.SetURLVars(r, map[string]string{"date": date})
	w := httptest.NewRecorder()
	h.Handle(w, r)
	return w
}

func TestHandle(t *testing.T) {
	start := time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC)
	svc := &mockService{result: []*domain.Appointment{
		{ID: 3, FirstName: "Jane", Services: "oil_change", StartTime: start, EndTime: start.Add(30 * time.Minute)},
	}}

	w := serve(NewHandler(svc, time.UTC, nopLogger{}), "2026-10-20T15:30:00Z")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, svc.gotDay.Equal(time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)))

	var resp handlers.AppointmentsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "2026-10-20T09:30:00Z", resp.Appointments[0].EndTime)
}

func TestHandle_EmptyDayReturnsEmptyList(t *testing.T) {
	w := serve(NewHandler(&mockService{result: []*domain.Appointment{}}, time.UTC, nopLogger{}), "2026-10-21")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"appointments":[],"count":0}`, w.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	w := serve(NewHandler(&mockService{}, time.UTC, nopLogger{}), "yesterday")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(NewHandler(&mockService{err: errors.New("db down")}, time.UTC, nopLogger{}), "2026-10-20")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
