package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	LockDay(ctx context.Context, day time.Time) error
}

// Validator проверка полей и расписания
type Validator interface {
	ValidateFields(appointment *domain.Appointment) error
	CheckSchedule(ctx context.Context, appointment *domain.Appointment) error
}

// DurationCalculator расчет времени окончания по услугам
type DurationCalculator interface {
	EndTime(start time.Time, services string) (time.Time, error)
	Unknown(services string) []string
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчик результатов записи
type Metrics interface {
	IncAppointment(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
