package catalog

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var separator = regexp.MustCompile(`\s*,\s*`)

// Calculator считает время окончания записи по списку услуг
type Calculator struct {
	catalog *Catalog
	strict  bool
}

// NewCalculator создает калькулятор.
// В нестрогом режиме неизвестные услуги молча пропускаются, в строгом возвращается ErrUnknownService
func NewCalculator(catalog *Catalog, strict bool) *Calculator {
	return &Calculator{catalog: catalog, strict: strict}
}

// Parse разбивает строку услуг по запятым и нормализует каждую
func Parse(services string) []string {
	services = strings.TrimSpace(services)
	if services == "" {
		return nil
	}

	tokens := make([]string, 0)
	for _, raw := range separator.Split(services, -1) {
		if token := Normalize(raw); token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// Canonical строка услуг в нормализованном виде: "Oil Change,  tire rotation" -> "oil_change, tire_rotation"
func Canonical(services string) string {
	return strings.Join(Parse(services), ", ")
}

// Duration суммарная длительность услуг.
// Обходит каталог по порядку и добавляет длительность за каждое вхождение услуги в список
func (c *Calculator) Duration(services string) (time.Duration, error) {
	tokens := Parse(services)

	if c.strict {
		for _, token := range tokens {
			if _, ok := c.catalog.Lookup(token); !ok {
				return 0, fmt.Errorf("%w: %s", ErrUnknownService, token)
			}
		}
	}

	total := 0
	for _, entry := range c.catalog.entries {
		for _, token := range tokens {
			if token == entry.Slug {
				total += entry.Minutes
			}
		}
	}

	return time.Duration(total) * time.Minute, nil
}

// EndTime время окончания: start + сумма длительностей услуг.
// Если ни одна услуга не распознана, возвращает start
func (c *Calculator) EndTime(start time.Time, services string) (time.Time, error) {
	d, err := c.Duration(services)
	if err != nil {
		return time.Time{}, err
	}
	return start.Add(d), nil
}

// Unknown список услуг, которых нет в каталоге
func (c *Calculator) Unknown(services string) []string {
	unknown := make([]string, 0)
	for _, token := range Parse(services) {
		if _, ok := c.catalog.Lookup(token); !ok {
			unknown = append(unknown, token)
		}
	}
	return unknown
}
