package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
)

const (
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgUnknownService = "неизвестная услуга"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	loc     *time.Location
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, loc *time.Location, logger Logger) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		useCase: useCase,
		loc:     loc,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments/day/{date}/available-slots
// Query params: services (optional, через запятую)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	day, err := handlers.ParseDay(mux.Vars(r)["date"], h.loc)
	if err != nil {
		h.logger.Warn("GET /appointments/day/{date}/available-slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	services := r.URL.Query().Get("services")

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		Date:     day,
		Services: services,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrUnknownService):
			h.logger.Warn("GET /appointments/day/{date}/available-slots - Unknown service: services=%q", services)
			handlers.RespondBadRequest(w, msgUnknownService)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /appointments/day/{date}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /appointments/day/{date}/available-slots - Failed to get slots: date=%s, error=%v",
				day.Format(domain.DateFormat), err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments/day/{date}/available-slots - Slots retrieved successfully: date=%s, slots_count=%d",
		day.Format(domain.DateFormat), len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, services))
}
