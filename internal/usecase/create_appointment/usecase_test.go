package create_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
	"github.com/m04kA/SMC-AppointmentService/internal/service/validator"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// memoryRepository хранит записи в памяти, реализует и запись, и чтение дня
type memoryRepository struct {
	appointments []*domain.Appointment
	nextID       int64
	createErr    error
	lockedDays   []string
	calls        []string
}

func (m *memoryRepository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.nextID++
	a.ID = m.nextID
	stored := *a
	m.appointments = append(m.appointments, &stored)
	return a, nil
}

func (m *memoryRepository) LockDay(ctx context.Context, day time.Time) error {
	m.lockedDays = append(m.lockedDays, day.Format(domain.DateFormat))
	m.calls = append(m.calls, "lock")
	return nil
}

func (m *memoryRepository) GetByDay(ctx context.Context, day time.Time) ([]*domain.Appointment, error) {
	m.calls = append(m.calls, "read "+day.Format(domain.DateFormat))
	dayStart, dayEnd := domain.DayBounds(day, day.Location())
	out := make([]*domain.Appointment, 0)
	for _, a := range m.appointments {
		if !a.StartTime.Before(dayStart) && a.StartTime.Before(dayEnd) {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type countingMetrics struct {
	outcomes map[string]int
}

func (c *countingMetrics) IncAppointment(outcome string) {
	if c.outcomes == nil {
		c.outcomes = map[string]int{}
	}
	c.outcomes[outcome]++
}

type fixture struct {
	uc      *UseCase
	repo    *memoryRepository
	tx      *fakeTxManager
	metrics *countingMetrics
}

func newFixture(t *testing.T, policy validator.Policy, opts Options) *fixture {
	t.Helper()

	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	cat, err := catalog.New([]catalog.Entry{
		{Slug: "oil_change", Minutes: 30},
		{Slug: "tire_rotation", Minutes: 30},
	})
	require.NoError(t, err)

	repo := &memoryRepository{}
	tx := &fakeTxManager{}
	m := &countingMetrics{}
	policy.EndTimeMode = opts.EndTimeMode

	uc := NewUseCase(
		repo,
		validator.New(repo, policy, loc),
		catalog.NewCalculator(cat, false),
		tx,
		m,
		opts,
		nopLogger{},
	)

	return &fixture{uc: uc, repo: repo, tx: tx, metrics: m}
}

func at(hour, minute int) time.Time {
	return time.Date(2026, 10, 20, hour, minute, 0, 0, time.UTC)
}

func request(start time.Time, services string) *Request {
	return &Request{
		FirstName:   "Jane",
		LastName:    "Doe",
		PhoneNumber: "555-123-4567",
		Services:    services,
		StartTime:   start,
	}
}

func TestExecute_DerivesEndTime(t *testing.T) {
	f := newFixture(t, validator.Policy{}, Options{SerializeBookings: true})

	resp, err := f.uc.Execute(context.Background(), request(at(9, 0), "Oil Change, tire rotation"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.True(t, resp.EndTime.Equal(at(10, 0)))
	assert.Equal(t, "oil_change, tire_rotation", resp.Services)
	assert.Equal(t, 1, f.tx.calls)
	assert.Equal(t, []string{"2026-10-20"}, f.repo.lockedDays)
	assert.Equal(t, 1, f.metrics.outcomes["created"])
}

func TestExecute_IgnoresClientEndTimeWhenDerived(t *testing.T) {
	f := newFixture(t, validator.Policy{}, Options{})

	req := request(at(9, 0), "oil_change")
	bogus := at(17, 0)
	req.EndTime = &bogus

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.EndTime.Equal(at(9, 30)))
}

func TestExecute_ConflictScenario(t *testing.T) {
	f := newFixture(t, validator.Policy{}, Options{SerializeBookings: true})
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, request(at(9, 0), "oil_change"))
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, request(at(9, 15), "oil_change"))
	require.ErrorIs(t, err, ErrSchedulingConflict)
	assert.Len(t, f.repo.appointments, 1, "conflicting booking must not be persisted")

	resp, err := f.uc.Execute(ctx, request(at(9, 30), "oil_change"))
	require.NoError(t, err)
	assert.True(t, resp.EndTime.Equal(at(10, 0)))
	assert.Len(t, f.repo.appointments, 2)

	assert.Equal(t, 2, f.metrics.outcomes["created"])
	assert.Equal(t, 1, f.metrics.outcomes["conflict"])
}

func TestExecute_OtherDayDoesNotConflict(t *testing.T) {
	f := newFixture(t, validator.Policy{}, Options{})
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, request(at(9, 0), "oil_change"))
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, request(at(9, 0).AddDate(0, 0, 1), "oil_change"))
	require.NoError(t, err)
	assert.Equal(t, 0, f.tx.calls, "no transaction when serialization is disabled")
}

func TestExecute_MissingFirstName(t *testing.T) {
	f := newFixture(t, validator.Policy{}, Options{SerializeBookings: true})

	req := request(at(9, 0), "oil_change")
	req.FirstName = "   "

	_, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrFieldMissing)

	var fieldErr *FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, domain.FieldFirstName, fieldErr.Field)
	assert.Empty(t, f.repo.appointments)
	assert.Equal(t, 0, f.tx.calls)
}

func TestExecute_VehicleRequired(t *testing.T) {
	f := newFixture(t, validator.Policy{RequireVehicle: true}, Options{})

	_, err := f.uc.Execute(context.Background(), request(at(9, 0), "oil_change"))
	var fieldErr *FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, domain.FieldMake, fieldErr.Field)

	req := request(at(9, 0), "oil_change")
	req.Make, req.Model, req.Year = "Honda", "Civic", "2018"
	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Civic", resp.Model)
}

func TestExecute_ZeroDurationAccepted(t *testing.T) {
	f := newFixture(t, validator.Policy{}, Options{})

	resp, err := f.uc.Execute(context.Background(), request(at(11, 0), "detailing"))
	require.NoError(t, err)
	assert.True(t, resp.EndTime.Equal(resp.StartTime))
}

func TestExecute_StrictUnknownService(t *testing.T) {
	cat := catalog.MustDefault()
	repo := &memoryRepository{}
	uc := NewUseCase(
		repo,
		validator.New(repo, validator.Policy{}, time.UTC),
		catalog.NewCalculator(cat, true),
		&fakeTxManager{},
		nil,
		Options{},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), request(at(9, 0), "oil change, detailing"))
	require.ErrorIs(t, err, ErrUnknownService)
	assert.Empty(t, repo.appointments)
}

func TestExecute_SuppliedEndTime(t *testing.T) {
	f := newFixture(t, validator.Policy{}, Options{EndTimeMode: domain.EndTimeSupplied})
	ctx := context.Background()

	req := request(at(9, 0), "oil_change")
	end := at(12, 0)
	req.EndTime = &end

	resp, err := f.uc.Execute(ctx, req)
	require.NoError(t, err)
	assert.True(t, resp.EndTime.Equal(end))

	// без проверки пересечений
	_, err = f.uc.Execute(ctx, req)
	require.NoError(t, err)

	req.EndTime = nil
	_, err = f.uc.Execute(ctx, req)
	var fieldErr *FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, domain.FieldEndTime, fieldErr.Field)

	backwards := at(8, 0)
	req.EndTime = &backwards
	_, err = f.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestExecute_StorageErrorIsReported(t *testing.T) {
	f := newFixture(t, validator.Policy{}, Options{SerializeBookings: true})
	f.repo.createErr = errors.New("appointment.repository: failed to execute query")

	resp, err := f.uc.Execute(context.Background(), request(at(9, 0), "oil_change"))
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrStorage)
	assert.Equal(t, 1, f.metrics.outcomes["error"])
}

func TestExecute_LocksDayInServiceZone(t *testing.T) {
	f := newFixture(t, validator.Policy{}, Options{SerializeBookings: true})

	// 22:00 at UTC-5 is 03:00 UTC on the next day
	start := time.Date(2026, 10, 20, 22, 0, 0, 0, time.FixedZone("UTC-5", -5*60*60))

	_, err := f.uc.Execute(context.Background(), request(start, "oil_change"))
	require.NoError(t, err)

	assert.Equal(t, []string{"2026-10-21"}, f.repo.lockedDays)
	assert.Equal(t, []string{"lock", "read 2026-10-21"}, f.repo.calls,
		"locked day and checked day must be the same calendar day")
}

func TestExecute_DifferentOffsetsShareDayLock(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	f := newFixture(t, validator.Policy{}, Options{SerializeBookings: true, Location: loc})
	ctx := context.Background()

	first := time.Date(2026, 10, 20, 9, 0, 0, 0, loc)
	_, err := f.uc.Execute(ctx, request(first, "oil_change"))
	require.NoError(t, err)

	// тот же момент, но со смещением клиента UTC-5
	_, err = f.uc.Execute(ctx, request(first.In(time.FixedZone("UTC-5", -5*60*60)), "oil_change"))
	require.ErrorIs(t, err, ErrSchedulingConflict)

	assert.Equal(t, []string{"2026-10-20", "2026-10-20"}, f.repo.lockedDays)
}

func TestExecute_LockCheckAndInsertShareOneTransaction(t *testing.T) {
	f := newFixture(t, validator.Policy{}, Options{SerializeBookings: true})
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, request(at(9, 0), "oil_change"))
	require.NoError(t, err)

	// конфликт после ожидания блокировки остается конфликтом, а не ошибкой хранилища
	_, err = f.uc.Execute(ctx, request(at(9, 15), "oil_change"))
	require.ErrorIs(t, err, ErrSchedulingConflict)
	assert.NotErrorIs(t, err, ErrStorage)

	assert.Equal(t, 2, f.tx.calls)
	assert.Equal(t, []string{"lock", "read 2026-10-20", "lock", "read 2026-10-20"}, f.repo.calls)
	assert.Equal(t, 1, f.metrics.outcomes["conflict"])
}
