package handlers

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrInvalidTimestamp строка не является поддерживаемой меткой времени
	ErrInvalidTimestamp = errors.New("handlers: invalid timestamp")

	// ErrInvalidDay строка не является датой или меткой времени
	ErrInvalidDay = errors.New("handlers: invalid day")
)

// localLayouts форматы без смещения, интерпретируются в таймзоне сервиса
var localLayouts = []string{
	domain.LocalTimeFormat,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseTimestamp принимает RFC3339 или YYYY-MM-DDTHH:MM[:SS] в таймзоне loc
func ParseTimestamp(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, value)
}

// ParseDay принимает YYYY-MM-DD или любую метку времени, из которой берется дата
func ParseDay(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.ParseInLocation(domain.DateFormat, value, loc); err == nil {
		return t, nil
	}

	t, err := ParseTimestamp(value, loc)
	if err != nil || t.IsZero() {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDay, value)
	}
	return domain.StartOfDay(t, loc), nil
}

// IsForm true для тел application/x-www-form-urlencoded и multipart/form-data
func IsForm(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == "application/x-www-form-urlencoded" || mediaType == "multipart/form-data"
}
