package appointments_page

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
)

// pageData данные шаблона
type pageData struct {
	Title string
	Rows  []row
}

// row краткая строка таблицы
type row struct {
	Date     string
	From     string
	To       string
	Customer string
	Phone    string
	Vehicle  string
	Services string
}

func toRows(appointments []*domain.Appointment, loc *time.Location) []row {
	rows := make([]row, len(appointments))
	for i, a := range appointments {
		start := a.StartTime.In(loc)

		services := catalog.Parse(a.Services)
		for j, s := range services {
			services[j] = catalog.HumanName(s)
		}

		rows[i] = row{
			Date:     start.Format(domain.DateFormat),
			From:     start.Format(domain.TimeFormat),
			To:       a.EndTime.In(loc).Format(domain.TimeFormat),
			Customer: strings.TrimSpace(a.FirstName + " " + a.LastName),
			Phone:    a.PhoneNumber,
			Vehicle:  strings.TrimSpace(strings.Join([]string{a.Year, a.Make, a.Model}, " ")),
			Services: strings.Join(services, ", "),
		}
	}
	return rows
}
