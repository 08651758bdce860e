package validator

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// DayReader чтение записей календарного дня
type DayReader interface {
	GetByDay(ctx context.Context, day time.Time) ([]*domain.Appointment, error)
}

// Policy какие поля обязательны и откуда берется время окончания
type Policy struct {
	RequireVehicle bool
	EndTimeMode    domain.EndTimeMode
}
