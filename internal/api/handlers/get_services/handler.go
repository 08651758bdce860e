package get_services

import (
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

// ServiceResponse услуга каталога
type ServiceResponse struct {
	Slug    string `json:"slug"`
	Name    string `json:"name"`
	Minutes int    `json:"minutes"`
}

type Handler struct {
	catalog Catalog
	logger  Logger
}

func NewHandler(catalog Catalog, logger Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  logger,
	}
}

// Handle GET /api/v1/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	entries := h.catalog.Entries()

	response := make([]ServiceResponse, len(entries))
	for i, e := range entries {
		response[i] = ServiceResponse{Slug: e.Slug, Name: e.Name, Minutes: e.Minutes}
	}

	h.logger.Info("GET /services - Catalog retrieved: count=%d", len(response))
	handlers.RespondJSON(w, http.StatusOK, response)
}
