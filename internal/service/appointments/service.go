package appointments

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Service сервис чтения записей: по дню, все, предстоящие.
// Календарный день и "сегодня" считаются в таймзоне loc
type Service struct {
	repo         AppointmentRepository
	timeProvider TimeProvider
	loc          *time.Location
	logger       Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(repo AppointmentRepository, loc *time.Location, logger Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		repo:         repo,
		timeProvider: &RealTimeProvider{},
		loc:          loc,
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Location таймзона календарных дней
func (s *Service) Location() *time.Location {
	return s.loc
}

// GetByDay записи, начинающиеся в календарный день day
func (s *Service) GetByDay(ctx context.Context, day time.Time) ([]*domain.Appointment, error) {
	if day.IsZero() {
		return nil, fmt.Errorf("%w: day is required", ErrInvalidInput)
	}

	dayStart := domain.StartOfDay(day, s.loc)
	s.logger.Info("GetByDay: fetching appointments for %s", dayStart.Format(domain.DateFormat))

	appointments, err := s.repo.GetByDay(ctx, dayStart)
	if err != nil {
		s.logger.Error("GetByDay: repository error for %s: %v", dayStart.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: GetByDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByDay: found %d appointments for %s", len(appointments), dayStart.Format(domain.DateFormat))
	return s.inLocation(appointments), nil
}

// GetAll все записи (для диагностики)
func (s *Service) GetAll(ctx context.Context) ([]*domain.Appointment, error) {
	appointments, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("GetAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAll - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAll: found %d appointments", len(appointments))
	return s.inLocation(appointments), nil
}

// GetUpcoming записи начиная с сегодняшнего дня (включительно)
func (s *Service) GetUpcoming(ctx context.Context) ([]*domain.Appointment, error) {
	today := domain.StartOfDay(s.timeProvider.Now(), s.loc)

	appointments, err := s.repo.GetUpcoming(ctx, today)
	if err != nil {
		s.logger.Error("GetUpcoming: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetUpcoming - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUpcoming: found %d appointments since %s", len(appointments), today.Format(domain.DateFormat))
	return s.inLocation(appointments), nil
}

// inLocation переводит время записей в таймзону сервиса для отображения
func (s *Service) inLocation(appointments []*domain.Appointment) []*domain.Appointment {
	for _, a := range appointments {
		a.StartTime = a.StartTime.In(s.loc)
		a.EndTime = a.EndTime.In(s.loc)
	}
	return appointments
}
