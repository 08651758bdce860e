package get_appointments_by_day

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD или метка времени ISO 8601"

type Handler struct {
	service AppointmentService
	loc     *time.Location
	logger  Logger
}

func NewHandler(service AppointmentService, loc *time.Location, logger Logger) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		service: service,
		loc:     loc,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments/day/{date}
// date: YYYY-MM-DD или любая метка времени, учитывается только дата
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := mux.Vars(r)["date"]

	day, err := handlers.ParseDay(dateStr, h.loc)
	if err != nil {
		h.logger.Warn("GET /appointments/day/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	appointments, err := h.service.GetByDay(r.Context(), day)
	if err != nil {
		h.logger.Error("GET /appointments/day/{date} - Failed to get appointments: date=%s, error=%v",
			day.Format(domain.DateFormat), err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /appointments/day/{date} - Appointments retrieved successfully: date=%s, count=%d",
		day.Format(domain.DateFormat), len(appointments))
	handlers.RespondJSON(w, http.StatusOK, handlers.FromDomainList(appointments))
}
