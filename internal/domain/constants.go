package domain

// EndTimeMode откуда берется время окончания записи
type EndTimeMode string

const (
	// EndTimeDerived время окончания считается из услуг, проверка пересечений включена
	EndTimeDerived EndTimeMode = "derived"
	// EndTimeSupplied время окончания приходит от клиента, проверка пересечений не выполняется
	EndTimeSupplied EndTimeMode = "supplied"
)

// IsValid проверяет, что режим известен
func (m EndTimeMode) IsValid() bool {
	return m == EndTimeDerived || m == EndTimeSupplied
}

// Названия полей записи (совпадают с колонками таблицы)
const (
	FieldFirstName   = "first_name"
	FieldLastName    = "last_name"
	FieldPhoneNumber = "phone_number"
	FieldMake        = "make"
	FieldModel       = "model"
	FieldYear        = "year"
	FieldServices    = "services"
	FieldStartTime   = "start_time"
	FieldEndTime     = "end_time"
)

// Значения по умолчанию
const (
	DefaultTimezone        = "UTC"
	DefaultOpenTime        = "08:00"
	DefaultCloseTime       = "18:00"
	DefaultSlotStepMinutes = 15
)

// Ограничения
const (
	MaxNameLength  = 100
	MaxPhoneLength = 20
	MaxMakeLength  = 50
	MaxModelLength = 100
	MaxYearLength  = 5
	MinSlotStep    = 5
	MaxSlotStep    = 240
)

// Форматы даты и времени
const (
	DateFormat      = "2006-01-02"
	TimeFormat      = "15:04"
	LocalTimeFormat = "2006-01-02T15:04:05"
)
