package domain

import "time"

// Interval полуинтервал времени [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps проверяет пересечение полуинтервалов.
// Касание границ (a.End == b.Start) пересечением не считается
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// IsValid true, если конец не раньше начала
func (i Interval) IsValid() bool {
	return !i.End.Before(i.Start)
}

// FindConflict возвращает первую запись, пересекающуюся с candidate, или nil
func FindConflict(candidate Interval, existing []*Appointment) *Appointment {
	for _, a := range existing {
		if a == nil {
			continue
		}
		if candidate.Overlaps(a.Interval()) {
			return a
		}
	}
	return nil
}

// DayBounds границы календарного дня t в таймзоне loc: [00:00, 00:00 следующего дня)
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// StartOfDay начало календарного дня t в таймзоне loc
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	start, _ := DayBounds(t, loc)
	return start
}
