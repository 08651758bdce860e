package create_appointment

import (
	"errors"
	"fmt"
)

var (
	// ErrFieldMissing возвращается, когда обязательное поле не заполнено
	ErrFieldMissing = errors.New("create_appointment: required field is blank")

	// ErrFieldTooLong возвращается, когда поле длиннее допустимого
	ErrFieldTooLong = errors.New("create_appointment: field is too long")

	// ErrSchedulingConflict возвращается, когда время занято другой записью того же дня
	ErrSchedulingConflict = errors.New("create_appointment: time slot already in use")

	// ErrUnknownService возвращается в строгом режиме для услуги не из каталога
	ErrUnknownService = errors.New("create_appointment: unknown service")

	// ErrInvalidTimeRange возвращается, когда окончание раньше начала
	ErrInvalidTimeRange = errors.New("create_appointment: end_time is before start_time")

	// ErrStorage возвращается при ошибках чтения/записи хранилища. Запись не сохранена
	ErrStorage = errors.New("create_appointment: storage error")
)

// FieldError ошибка конкретного поля запроса
type FieldError struct {
	Field string
	Err   error // ErrFieldMissing или ErrFieldTooLong
}

func (e *FieldError) Error() string {
	if errors.Is(e.Err, ErrFieldTooLong) {
		return fmt.Sprintf("%s is too long", e.Field)
	}
	return fmt.Sprintf("%s cannot be blank", e.Field)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
