package get_upcoming_appointments

import (
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments/upcoming
// Записи начиная с начала текущего дня
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.service.GetUpcoming(r.Context())
	if err != nil {
		h.logger.Error("GET /appointments/upcoming - Failed to get appointments: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /appointments/upcoming - Appointments retrieved successfully: count=%d", len(appointments))
	handlers.RespondJSON(w, http.StatusOK, handlers.FromDomainList(appointments))
}
