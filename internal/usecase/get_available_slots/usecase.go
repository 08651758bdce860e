package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
)

// UseCase use case для получения свободных слотов на день
type UseCase struct {
	repo         AppointmentRepository
	calculator   DurationCalculator
	hours        WorkingHours
	loc          *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	repo AppointmentRepository,
	calculator DurationCalculator,
	hours WorkingHours,
	loc *time.Location,
	logger Logger,
) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &UseCase{
		repo:         repo,
		calculator:   calculator,
		hours:        hours,
		loc:          loc,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	dayStart := domain.StartOfDay(req.Date, uc.loc)
	uc.logger.Info("GetAvailableSlots: date=%s, services=%q", dayStart.Format(domain.DateFormat), req.Services)

	// 2. Длительность по услугам. Без услуг слот равен шагу сетки
	end, err := uc.calculator.EndTime(dayStart, req.Services)
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownService) {
			uc.logger.Warn("GetAvailableSlots: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrUnknownService, err)
		}
		return nil, fmt.Errorf("%w: failed to compute duration: %v", ErrInternal, err)
	}

	step := time.Duration(uc.hours.StepMinutes) * time.Minute
	duration := end.Sub(dayStart)
	if duration == 0 {
		duration = step
	}

	// 3. Рабочие часы на этот день
	open, err := uc.hours.OpenTime.On(dayStart)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid open time: %v", ErrInternal, err)
	}
	closeAt, err := uc.hours.CloseTime.On(dayStart)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid close time: %v", ErrInternal, err)
	}

	// 4. Существующие записи дня
	existing, err := uc.repo.GetByDay(ctx, dayStart)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	slots := generateSlots(open, closeAt, duration, step, uc.timeProvider.Now(), existing)

	uc.logger.Info("GetAvailableSlots: %d free slots on %s for %s",
		len(slots), dayStart.Format(domain.DateFormat), duration)

	return &Response{
		Date:            dayStart,
		DurationMinutes: int(duration / time.Minute),
		Slots:           slots,
	}, nil
}
