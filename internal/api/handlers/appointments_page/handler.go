package appointments_page

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"

//go:embed templates/appointments.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/appointments.html"))

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

// HandleUpcoming GET /appointments
func (h *Handler) HandleUpcoming(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.service.GetUpcoming(r.Context())
	if err != nil {
		h.logger.Error("GET /appointments (html) - Failed to get appointments: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.render(w, pageData{Title: "Upcoming appointments", Rows: toRows(appointments, h.loc)})
}

// HandleDay GET /appointments/{date}
func (h *Handler) HandleDay(w http.ResponseWriter, r *http.Request) {
	day, err := handlers.ParseDay(mux.Vars(r)["date"], h.loc)
	if err != nil {
		h.logger.Warn("GET /appointments/{date} (html) - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	appointments, err := h.service.GetByDay(r.Context(), day)
	if err != nil {
		h.logger.Error("GET /appointments/{date} (html) - Failed to get appointments: date=%s, error=%v",
			day.Format(domain.DateFormat), err)
		handlers.RespondInternalError(w)
		return
	}

	h.render(w, pageData{
		Title: "Appointments on " + day.Format(domain.DateFormat),
		Rows:  toRows(appointments, h.loc),
	})
}

// render рендерит страницу в буфер, чтобы при ошибке шаблона не отдать половину HTML
func (h *Handler) render(w http.ResponseWriter, data pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		h.logger.Error("appointments page - Failed to render template: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
	h.logger.Info("appointments page - Rendered %d rows", len(data.Rows))
}
