package domain

import "time"

// Appointment запись клиента на обслуживание автомобиля
type Appointment struct {
	ID          int64
	FirstName   string
	LastName    string
	PhoneNumber string // XXX-XXX-XXXX, формат строго не проверяется

	// Данные автомобиля, обязательны только при RequireVehicle
	Make  string
	Model string
	Year  string

	Services  string // идентификаторы услуг через запятую
	StartTime time.Time
	EndTime   time.Time

	CreatedAt time.Time
}

// Interval полуинтервал [StartTime, EndTime) записи
func (a *Appointment) Interval() Interval {
	return Interval{Start: a.StartTime, End: a.EndTime}
}

// Duration длительность записи
func (a *Appointment) Duration() time.Duration {
	return a.EndTime.Sub(a.StartTime)
}

// HasVehicle true, если указаны все данные автомобиля
func (a *Appointment) HasVehicle() bool {
	return a.Make != "" && a.Model != "" && a.Year != ""
}
