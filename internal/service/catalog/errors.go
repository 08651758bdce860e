package catalog

import "errors"

var (
	// ErrInvalidEntry возвращается при некорректной записи каталога
	ErrInvalidEntry = errors.New("catalog: invalid entry")

	// ErrDuplicateSlug возвращается, когда идентификатор услуги встречается дважды
	ErrDuplicateSlug = errors.New("catalog: duplicate service slug")

	// ErrUnknownService возвращается в строгом режиме для услуги, которой нет в каталоге
	ErrUnknownService = errors.New("catalog: unknown service")
)
