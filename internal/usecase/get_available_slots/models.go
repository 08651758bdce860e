package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// WorkingHours рабочие часы и шаг сетки слотов
type WorkingHours struct {
	OpenTime    types.TimeString
	CloseTime   types.TimeString
	StepMinutes int
}

// Request модель запроса свободных слотов
type Request struct {
	Date     time.Time // день (учитывается только дата)
	Services string    // услуги через запятую, определяют длительность
}

// Slot свободный интервал
type Slot struct {
	StartTime time.Time
	EndTime   time.Time
}

// Response модель ответа со свободными слотами
type Response struct {
	Date            time.Time
	DurationMinutes int
	Slots           []Slot
}
