package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
	"github.com/m04kA/SMC-AppointmentService/internal/service/validator"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
)

// UseCase use case для создания записи
type UseCase struct {
	repo       AppointmentRepository
	validator  Validator
	calculator DurationCalculator
	txManager  TransactionManager
	metrics    Metrics
	opts       Options
	logger     Logger
}

// NewUseCase создает новый экземпляр use case.
// metrics может быть nil
func NewUseCase(
	repo AppointmentRepository,
	validator Validator,
	calculator DurationCalculator,
	txManager TransactionManager,
	metrics Metrics,
	opts Options,
	logger Logger,
) *UseCase {
	if !opts.EndTimeMode.IsValid() {
		opts.EndTimeMode = domain.EndTimeDerived
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &UseCase{
		repo:       repo,
		validator:  validator,
		calculator: calculator,
		txManager:  txManager,
		metrics:    metrics,
		opts:       opts,
		logger:     logger,
	}
}

// Execute выполняет use case создания записи:
// время окончания -> обязательные поля -> проверка пересечений в рамках дня -> вставка
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	appointment := uc.buildAppointment(req)

	uc.logger.Info("CreateAppointment: name=%s %s, services=%q, start=%s",
		appointment.FirstName, appointment.LastName, appointment.Services, appointment.StartTime.Format(domain.LocalTimeFormat))

	// 1. Обязательные поля, до любых обращений к БД
	if err := uc.validator.ValidateFields(appointment); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		uc.count(metrics.OutcomeInvalid)
		return nil, uc.translate(err)
	}

	// 2. Время окончания из услуг
	if uc.opts.EndTimeMode == domain.EndTimeDerived {
		end, err := uc.calculator.EndTime(appointment.StartTime, appointment.Services)
		if err != nil {
			uc.logger.Warn("CreateAppointment: failed to compute end time: %v", err)
			uc.count(metrics.OutcomeInvalid)
			return nil, uc.translate(err)
		}
		appointment.EndTime = end

		if unknown := uc.calculator.Unknown(appointment.Services); len(unknown) > 0 {
			uc.logger.Warn("CreateAppointment: skipping unknown services %v", unknown)
		}
		if end.Equal(appointment.StartTime) {
			uc.logger.Warn("CreateAppointment: no known services in %q, appointment has zero duration", appointment.Services)
		}
	}

	// 3. Проверка пересечений и вставка
	book := func(ctx context.Context) error {
		if uc.opts.SerializeBookings {
			// ключ блокировки это календарный день в таймзоне сервиса, а не в смещении клиента
			if err := uc.repo.LockDay(ctx, domain.StartOfDay(appointment.StartTime, uc.opts.Location)); err != nil {
				return err
			}
		}

		if err := uc.validator.CheckSchedule(ctx, appointment); err != nil {
			return err
		}

		created, err := uc.repo.Create(ctx, appointment)
		if err != nil {
			return err
		}
		appointment = created
		return nil
	}

	var err error
	if uc.opts.SerializeBookings {
		err = uc.txManager.Do(ctx, book)
	} else {
		err = book(ctx)
	}

	if err != nil {
		err = uc.translate(err)
		switch {
		case errors.Is(err, ErrSchedulingConflict):
			uc.logger.Warn("CreateAppointment: %v", err)
			uc.count(metrics.OutcomeConflict)
		case errors.Is(err, ErrStorage):
			uc.logger.Error("CreateAppointment: failed to save appointment: %v", err)
			uc.count(metrics.OutcomeError)
		default:
			uc.logger.Warn("CreateAppointment: rejected: %v", err)
			uc.count(metrics.OutcomeInvalid)
		}
		return nil, err
	}

	uc.count(metrics.OutcomeCreated)
	uc.logger.Info("CreateAppointment: successfully created appointment id=%d (%s - %s)",
		appointment.ID, appointment.StartTime.Format(domain.LocalTimeFormat), appointment.EndTime.Format(domain.LocalTimeFormat))

	return fromDomain(appointment), nil
}

// buildAppointment собирает запись из запроса; услуги сохраняются в нормализованном виде
func (uc *UseCase) buildAppointment(req *Request) *domain.Appointment {
	appointment := &domain.Appointment{
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		Make:        strings.TrimSpace(req.Make),
		Model:       strings.TrimSpace(req.Model),
		Year:        strings.TrimSpace(req.Year),
		Services:    catalog.Canonical(req.Services),
		StartTime:   req.StartTime,
	}

	if uc.opts.EndTimeMode == domain.EndTimeSupplied && req.EndTime != nil {
		appointment.EndTime = *req.EndTime
	}

	return appointment
}

// translate переводит ошибки нижних слоев в ошибки use case
func (uc *UseCase) translate(err error) error {
	var fieldErr *validator.FieldError
	switch {
	case errors.As(err, &fieldErr):
		if errors.Is(fieldErr.Err, validator.ErrFieldTooLong) {
			return &FieldError{Field: fieldErr.Field, Err: ErrFieldTooLong}
		}
		return &FieldError{Field: fieldErr.Field, Err: ErrFieldMissing}
	case errors.Is(err, validator.ErrSchedulingConflict):
		return fmt.Errorf("%w: %v", ErrSchedulingConflict, err)
	case errors.Is(err, validator.ErrInvalidTimeRange):
		return ErrInvalidTimeRange
	case errors.Is(err, catalog.ErrUnknownService):
		return fmt.Errorf("%w: %v", ErrUnknownService, err)
	default:
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
}

func (uc *UseCase) count(outcome string) {
	if uc.metrics != nil {
		uc.metrics.IncAppointment(outcome)
	}
}
