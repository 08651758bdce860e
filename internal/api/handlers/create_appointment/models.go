package create_appointment

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

const maxFormMemory = 1 << 20

// CreateAppointmentRequest HTTP request model. Поля формы совпадают с JSON-ключами
type CreateAppointmentRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Make        string `json:"make,omitempty"`
	Model       string `json:"model,omitempty"`
	Year        string `json:"year,omitempty"`
	Services    string `json:"services"`
	StartTime   string `json:"start_time"`         // RFC3339 или "2026-10-20T09:00"
	EndTime     string `json:"end_time,omitempty"` // только при end_time_mode = "supplied"
}

// AppointmentResponse HTTP response model
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

// decodeRequest читает тело как JSON или как форму, в зависимости от Content-Type
func decodeRequest(r *http.Request) (*CreateAppointmentRequest, error) {
	if !handlers.IsForm(r) {
		var req CreateAppointmentRequest
		if err := handlers.DecodeJSON(r, &req); err != nil {
			return nil, err
		}
		return &req, nil
	}

	if err := r.ParseMultipartForm(maxFormMemory); err != nil && err != http.ErrNotMultipart {
		return nil, err
	}

	return &CreateAppointmentRequest{
		FirstName:   r.PostFormValue(domain.FieldFirstName),
		LastName:    r.PostFormValue(domain.FieldLastName),
		PhoneNumber: r.PostFormValue(domain.FieldPhoneNumber),
		Make:        r.PostFormValue(domain.FieldMake),
		Model:       r.PostFormValue(domain.FieldModel),
		Year:        r.PostFormValue(domain.FieldYear),
		Services:    r.PostFormValue(domain.FieldServices),
		StartTime:   r.PostFormValue(domain.FieldStartTime),
		EndTime:     r.PostFormValue(domain.FieldEndTime),
	}, nil
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Пустое время начала остается нулевым и отклоняется валидатором как незаполненное поле
func (r *CreateAppointmentRequest) ToUseCaseRequest(loc *time.Location) (*createAppointment.Request, error) {
	start, err := handlers.ParseTimestamp(r.StartTime, loc)
	if err != nil {
		return nil, err
	}

	req := &createAppointment.Request{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		PhoneNumber: r.PhoneNumber,
		Make:        r.Make,
		Model:       r.Model,
		Year:        r.Year,
		Services:    r.Services,
		StartTime:   start,
	}

	if r.EndTime != "" {
		end, err := handlers.ParseTimestamp(r.EndTime, loc)
		if err != nil {
			return nil, err
		}
		req.EndTime = &end
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response, loc *time.Location) *AppointmentResponse {
	return &AppointmentResponse{
		ID:          resp.ID,
		FirstName:   resp.FirstName,
		LastName:    resp.LastName,
		PhoneNumber: resp.PhoneNumber,
		Make:        resp.Make,
		Model:       resp.Model,
		Year:        resp.Year,
		Services:    resp.Services,
		StartTime:   resp.StartTime.In(loc).Format(time.RFC3339),
		EndTime:     resp.EndTime.In(loc).Format(time.RFC3339),
		CreatedAt:   resp.CreatedAt.In(loc).Format(time.RFC3339),
	}
}
