package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с записями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateTable создает таблицу и индекс по start_time, если их еще нет.
// Безопасно вызывать при каждом старте
func (r *Repository) CreateTable(ctx context.Context) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, createTableQuery); err != nil {
		return fmt.Errorf("%w: CreateTable - create table: %v", ErrExecQuery, err)
	}

	if _, err := executor.ExecContext(ctx, createIndexQuery); err != nil {
		return fmt.Errorf("%w: CreateTable - create index: %v", ErrExecQuery, err)
	}

	return nil
}

// Create сохраняет запись одним INSERT и заполняет ID и CreatedAt.
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"first_name",
			"last_name",
			"phone_number",
			"make",
			"model",
			"year",
			"services",
			"start_time",
			"end_time",
		).
		Values(
			appointment.FirstName,
			appointment.LastName,
			appointment.PhoneNumber,
			appointment.Make,
			appointment.Model,
			appointment.Year,
			appointment.Services,
			appointment.StartTime,
			appointment.EndTime,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appointment.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appointment.CreatedAt = createdAt.Time

	return appointment, nil
}

// GetByDay возвращает записи, начинающиеся в календарный день day.
// Границы дня берутся в таймзоне day.Location().
// Внутри транзакции строки блокируются (FOR UPDATE)
func (r *Repository) GetByDay(ctx context.Context, day time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	dayStart, dayEnd := domain.DayBounds(day, day.Location())

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.GtOrEq{"start_time": dayStart}).
		Where(squirrel.Lt{"start_time": dayEnd}).
		OrderBy("start_time ASC", "id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDay - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// GetAll возвращает все записи без фильтрации (для диагностики)
func (r *Repository) GetAll(ctx context.Context) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		OrderBy("start_time ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// GetUpcoming возвращает записи, начинающиеся не раньше from
func (r *Repository) GetUpcoming(ctx context.Context, from time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.GtOrEq{"start_time": from}).
		OrderBy("start_time ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetUpcoming - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetUpcoming - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// LockDay берет advisory-блокировку на календарный день до конца текущей транзакции.
// Ключ это дата day в ее таймзоне, поэтому передавать нужно начало дня в таймзоне сервиса.
// Параллельные записи на один день выполняются последовательно
func (r *Repository) LockDay(ctx context.Context, day time.Time) error {
	tx, ok := dbmetrics.TxFromContext(ctx)
	if !ok {
		return fmt.Errorf("%w: LockDay - called outside of transaction", ErrTransaction)
	}

	if _, err := tx.ExecContext(ctx, lockDayQuery, day.Format(domain.DateFormat)); err != nil {
		return fmt.Errorf("%w: LockDay - acquire lock: %v", ErrExecQuery, err)
	}

	return nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func (r *Repository) scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		var appointment domain.Appointment
		var createdAt sql.NullTime

		err := rows.Scan(
			&appointment.ID,
			&appointment.FirstName,
			&appointment.LastName,
			&appointment.PhoneNumber,
			&appointment.Make,
			&appointment.Model,
			&appointment.Year,
			&appointment.Services,
			&appointment.StartTime,
			&appointment.EndTime,
			&createdAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}

		appointment.CreatedAt = createdAt.Time

		appointments = append(appointments, &appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
