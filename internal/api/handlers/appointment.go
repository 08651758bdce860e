package handlers

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AppointmentResponse полная запись в ответах списков
type AppointmentResponse struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Make        string `json:"make"`
	Model       string `json:"model"`
	Year        string `json:"year"`
	Services    string `json:"services"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	CreatedAt   string `json:"created_at"`
}

// AppointmentsResponse список записей
type AppointmentsResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Count        int                   `json:"count"`
}

// FromDomainList конвертирует записи в HTTP response
func FromDomainList(appointments []*domain.Appointment) *AppointmentsResponse {
	items := make([]AppointmentResponse, len(appointments))
	for i, a := range appointments {
		items[i] = AppointmentResponse{
			ID:          a.ID,
			FirstName:   a.FirstName,
			LastName:    a.LastName,
			PhoneNumber: a.PhoneNumber,
			Make:        a.Make,
			Model:       a.Model,
			Year:        a.Year,
			Services:    a.Services,
			StartTime:   a.StartTime.Format(time.RFC3339),
			EndTime:     a.EndTime.Format(time.RFC3339),
			CreatedAt:   a.CreatedAt.Format(time.RFC3339),
		}
	}

	return &AppointmentsResponse{
		Appointments: items,
		Count:        len(items),
	}
}
