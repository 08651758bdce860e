package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Options настройки записи
type Options struct {
	EndTimeMode domain.EndTimeMode

	// SerializeBookings выполняет проверку пересечений и вставку в одной транзакции
	// (READ COMMITTED) под advisory-блокировкой дня. Каждый запрос после блокировки видит
	// закоммиченные записи победителя. При false проверка и вставка идут отдельными запросами,
	// и две параллельные записи на одно время могут пройти обе
	SerializeBookings bool

	// Location таймзона календарного дня, та же, что у валидатора. По умолчанию UTC
	Location *time.Location
}

// Request модель запроса на создание записи
type Request struct {
	FirstName   string
	LastName    string
	PhoneNumber string
	Make        string
	Model       string
	Year        string
	Services    string     // услуги через запятую
	StartTime   time.Time  // время начала
	EndTime     *time.Time // учитывается только при EndTimeSupplied
}

// Response модель ответа с созданной записью
type Response struct {
	ID          int64
	FirstName   string
	LastName    string
	PhoneNumber string
	Make        string
	Model       string
	Year        string
	Services    string
	StartTime   time.Time
	EndTime     time.Time
	CreatedAt   time.Time
}

func fromDomain(a *domain.Appointment) *Response {
	return &Response{
		ID:          a.ID,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		PhoneNumber: a.PhoneNumber,
		Make:        a.Make,
		Model:       a.Model,
		Year:        a.Year,
		Services:    a.Services,
		StartTime:   a.StartTime,
		EndTime:     a.EndTime,
		CreatedAt:   a.CreatedAt,
	}
}
