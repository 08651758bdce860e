package get_services

import (
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
)

type Catalog interface {
	Entries() []catalog.Entry
}

type Logger interface {
	Info(format string, v ...interface{})
}
