package catalog

import (
	"fmt"
	"regexp"
	"strings"
)

var whitespace = regexp.MustCompile(`\s+`)

// Entry услуга каталога
type Entry struct {
	Slug    string // нормализованный идентификатор, например "oil_change"
	Name    string // название для людей, например "Oil Change"
	Minutes int    // длительность в минутах
}

// Catalog неизменяемый справочник услуг. Создается один раз при старте и передается зависимостям
type Catalog struct {
	entries []Entry
	bySlug  map[string]int
}

// New создает каталог. Порядок entries сохраняется
func New(entries []Entry) (*Catalog, error) {
	c := &Catalog{
		entries: make([]Entry, 0, len(entries)),
		bySlug:  make(map[string]int, len(entries)),
	}

	for _, e := range entries {
		slug := Normalize(e.Slug)
		if slug == "" {
			return nil, fmt.Errorf("%w: empty slug", ErrInvalidEntry)
		}
		if e.Minutes <= 0 {
			return nil, fmt.Errorf("%w: %s must have positive duration, got %d", ErrInvalidEntry, slug, e.Minutes)
		}
		if _, ok := c.bySlug[slug]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSlug, slug)
		}

		name := strings.TrimSpace(e.Name)
		if name == "" {
			name = HumanName(slug)
		}

		c.bySlug[slug] = len(c.entries)
		c.entries = append(c.entries, Entry{Slug: slug, Name: name, Minutes: e.Minutes})
	}

	return c, nil
}

// MustDefault каталог по умолчанию
func MustDefault() *Catalog {
	c, err := New(DefaultEntries())
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup возвращает длительность услуги в минутах
func (c *Catalog) Lookup(slug string) (int, bool) {
	idx, ok := c.bySlug[slug]
	if !ok {
		return 0, false
	}
	return c.entries[idx].Minutes, true
}

// Entries копия записей в порядке каталога
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len количество услуг
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Normalize приводит название услуги к идентификатору: "Oil  Change " -> "oil_change"
func Normalize(token string) string {
	token = strings.ToLower(strings.TrimSpace(token))
	return whitespace.ReplaceAllString(token, "_")
}

// HumanName обратное преобразование для отображения: "oil_change" -> "oil change"
func HumanName(slug string) string {
	return strings.ReplaceAll(slug, "_", " ")
}

// DefaultEntries встроенный каталог, используется, если в конфиге услуги не заданы
func DefaultEntries() []Entry {
	return []Entry{
		{Slug: "oil_change", Name: "Oil Change", Minutes: 30},
		{Slug: "tire_rotation", Name: "Tire Rotation", Minutes: 30},
		{Slug: "brake_inspection", Name: "Brake Inspection", Minutes: 45},
		{Slug: "brake_pad_replacement", Name: "Brake Pad Replacement", Minutes: 90},
		{Slug: "wheel_alignment", Name: "Wheel Alignment", Minutes: 60},
		{Slug: "battery_replacement", Name: "Battery Replacement", Minutes: 30},
		{Slug: "air_filter_replacement", Name: "Air Filter Replacement", Minutes: 15},
		{Slug: "coolant_flush", Name: "Coolant Flush", Minutes: 45},
		{Slug: "transmission_service", Name: "Transmission Service", Minutes: 120},
		{Slug: "state_inspection", Name: "State Inspection", Minutes: 30},
	}
}
