package validator

import (
	"errors"
	"fmt"
)

var (
	// ErrFieldMissing возвращается, когда обязательное поле не заполнено
	ErrFieldMissing = errors.New("validator: required field is blank")

	// ErrFieldTooLong возвращается, когда поле длиннее допустимого
	ErrFieldTooLong = errors.New("validator: field is too long")

	// ErrSchedulingConflict возвращается, когда время пересекается с другой записью того же дня
	ErrSchedulingConflict = errors.New("validator: time slot already in use")

	// ErrInvalidTimeRange возвращается, когда окончание раньше начала
	ErrInvalidTimeRange = errors.New("validator: end_time is before start_time")

	// ErrStorage возвращается, когда не удалось прочитать записи дня
	ErrStorage = errors.New("validator: failed to read appointments")
)

// FieldError ошибка конкретного поля. errors.Is работает с ErrFieldMissing / ErrFieldTooLong
type FieldError struct {
	Field string
	Err   error
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
