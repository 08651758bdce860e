package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// generateSlots генерирует начала слотов с шагом step от open до close,
// оставляя только те, что целиком помещаются до закрытия, не начинаются в прошлом
// и не пересекаются с существующими записями
func generateSlots(
	open, close time.Time,
	duration, step time.Duration,
	now time.Time,
	existing []*domain.Appointment,
) []Slot {
	slots := make([]Slot, 0)
	if step <= 0 {
		return slots
	}

	for start := open; !start.Add(duration).After(close); start = start.Add(step) {
		// Шаг 1: слоты в прошлом пропускаем
		if start.Before(now) {
			continue
		}

		// Шаг 2: слот не должен пересекаться с уже созданными записями
		candidate := domain.Interval{Start: start, End: start.Add(duration)}
		if domain.FindConflict(candidate, existing) != nil {
			continue
		}

		slots = append(slots, Slot{StartTime: candidate.Start, EndTime: candidate.End})
	}

	return slots
}
