package validator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type fakeDayReader struct {
	appointments []*domain.Appointment
	err          error
	calls        int
	lastDay      time.Time
}

func (f *fakeDayReader) GetByDay(ctx context.Context, day time.Time) ([]*domain.Appointment, error) {
	f.calls++
	f.lastDay = day
	return f.appointments, f.err
}

func at(hour, minute int) time.Time {
	return time.Date(2026, 10, 20, hour, minute, 0, 0, time.UTC)
}

func complete() *domain.Appointment {
	return &domain.Appointment{
		FirstName:   "Jane",
		LastName:    "Doe",
		PhoneNumber: "555-123-4567",
		Make:        "Honda",
		Model:       "Civic",
		Year:        "2018",
		Services:    "oil_change",
		StartTime:   at(9, 0),
		EndTime:     at(9, 30),
	}
}

func TestValidateFields_FirstMissingFieldWins(t *testing.T) {
	v := New(&fakeDayReader{}, Policy{RequireVehicle: true}, time.UTC)

	tests := []struct {
		name   string
		mutate func(a *domain.Appointment)
		field  string
	}{
		{"first name", func(a *domain.Appointment) { a.FirstName = "" }, domain.FieldFirstName},
		{"first and last name", func(a *domain.Appointment) { a.FirstName = ""; a.LastName = "" }, domain.FieldFirstName},
		{"last name", func(a *domain.Appointment) { a.LastName = "" }, domain.FieldLastName},
		{"phone", func(a *domain.Appointment) { a.PhoneNumber = "" }, domain.FieldPhoneNumber},
		{"make", func(a *domain.Appointment) { a.Make = "" }, domain.FieldMake},
		{"model and services", func(a *domain.Appointment) { a.Model = ""; a.Services = "" }, domain.FieldModel},
		{"year", func(a *domain.Appointment) { a.Year = "" }, domain.FieldYear},
		{"services", func(a *domain.Appointment) { a.Services = "" }, domain.FieldServices},
		{"start time", func(a *domain.Appointment) { a.StartTime = time.Time{} }, domain.FieldStartTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := complete()
			tt.mutate(a)

			err := v.ValidateFields(a)
			require.ErrorIs(t, err, ErrFieldMissing)

			var fieldErr *FieldError
			require.True(t, errors.As(err, &fieldErr))
			assert.Equal(t, tt.field, fieldErr.Field)
			assert.Equal(t, tt.field+" cannot be blank", err.Error())
		})
	}
}

func TestValidateFields_VehicleOptional(t *testing.T) {
	v := New(&fakeDayReader{}, Policy{RequireVehicle: false}, time.UTC)

	a := complete()
	a.Make, a.Model, a.Year = "", "", ""
	assert.NoError(t, v.ValidateFields(a))

	a.Year = "20188"
	assert.NoError(t, v.ValidateFields(a))

	a.Year = "201888"
	err := v.ValidateFields(a)
	assert.ErrorIs(t, err, ErrFieldTooLong)
}

func TestValidateFields_TooLong(t *testing.T) {
	v := New(&fakeDayReader{}, Policy{}, time.UTC)

	a := complete()
	a.LastName = strings.Repeat("x", domain.MaxNameLength+1)

	err := v.ValidateFields(a)
	require.ErrorIs(t, err, ErrFieldTooLong)
	assert.Equal(t, "last_name is too long", err.Error())
}

func TestValidateFields_SuppliedEndTimeRequired(t *testing.T) {
	v := New(&fakeDayReader{}, Policy{EndTimeMode: domain.EndTimeSupplied}, time.UTC)

	a := complete()
	a.EndTime = time.Time{}

	var fieldErr *FieldError
	require.True(t, errors.As(v.ValidateFields(a), &fieldErr))
	assert.Equal(t, domain.FieldEndTime, fieldErr.Field)
}

func TestValidate_MissingFieldDoesNotReadStorage(t *testing.T) {
	repo := &fakeDayReader{}
	v := New(repo, Policy{}, time.UTC)

	a := complete()
	a.FirstName = ""

	err := v.Validate(context.Background(), a)
	assert.ErrorIs(t, err, ErrFieldMissing)
	assert.Equal(t, 0, repo.calls)
}

func TestCheckSchedule(t *testing.T) {
	existing := []*domain.Appointment{{ID: 7, StartTime: at(9, 0), EndTime: at(9, 30)}}

	tests := []struct {
		name       string
		start, end time.Time
		wantErr    error
	}{
		{"overlapping", at(9, 15), at(9, 45), ErrSchedulingConflict},
		{"same slot", at(9, 0), at(9, 30), ErrSchedulingConflict},
		{"adjacent after", at(9, 30), at(10, 0), nil},
		{"adjacent before", at(8, 30), at(9, 0), nil},
		{"end before start", at(10, 0), at(9, 0), ErrInvalidTimeRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New(&fakeDayReader{appointments: existing}, Policy{}, time.UTC)

			a := complete()
			a.StartTime, a.EndTime = tt.start, tt.end

			err := v.CheckSchedule(context.Background(), a)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCheckSchedule_QueriesDayInConfiguredZone(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	repo := &fakeDayReader{}
	v := New(repo, Policy{}, loc)

	a := complete()
	a.StartTime = time.Date(2026, 10, 20, 22, 0, 0, 0, time.UTC)
	a.EndTime = a.StartTime.Add(30 * time.Minute)

	require.NoError(t, v.CheckSchedule(context.Background(), a))
	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, loc, repo.lastDay.Location())
	assert.Equal(t, 21, repo.lastDay.Day())
}

func TestCheckSchedule_StorageError(t *testing.T) {
	v := New(&fakeDayReader{err: errors.New("db down")}, Policy{}, time.UTC)

	err := v.CheckSchedule(context.Background(), complete())
	assert.ErrorIs(t, err, ErrStorage)
}

func TestCheckSchedule_SuppliedEndTimeSkipsConflicts(t *testing.T) {
	repo := &fakeDayReader{appointments: []*domain.Appointment{{ID: 1, StartTime: at(9, 0), EndTime: at(9, 30)}}}
	v := New(repo, Policy{EndTimeMode: domain.EndTimeSupplied}, time.UTC)

	assert.NoError(t, v.CheckSchedule(context.Background(), complete()))
	assert.Equal(t, 0, repo.calls)
}
