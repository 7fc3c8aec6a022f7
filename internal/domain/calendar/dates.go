package calendar

import (
	"strings"
	"time"
)

const dateOnlyLayout = "2006-01-02"

// Layouts aceptados para timestamps completos. Los que no traen zona se leen como UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// NormalizeDate convierte la fecha recibida del cliente a un instante UTC.
//
// Una fecha sin hora ("2024-03-01") se guarda como medianoche UTC de ese día. Lo mismo
// un timestamp a las 00:00:00.000 sin zona o en UTC ("...T00:00:00Z").
// Un timestamp con offset distinto de cero es un instante: se pasa a UTC tal cual,
// aunque su hora escrita sea medianoche.
func NormalizeDate(field, raw string) (time.Time, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return time.Time{}, &InvalidDateError{Field: field}
	}

	if t, err := time.Parse(dateOnlyLayout, v); err == nil {
		return t.UTC(), nil
	}

	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, v)
		if err != nil {
			continue
		}
		if _, off := t.Zone(); off == 0 && isMidnight(t) {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
		return t.UTC(), nil
	}

	return time.Time{}, &InvalidDateError{Field: field, Value: v}
}

func isMidnight(t time.Time) bool {
	h, m, s := t.Clock()
	return h == 0 && m == 0 && s == 0 && t.Nanosecond() == 0
}

// FormatDate es el formato de salida de la API (ISO-8601 UTC con milisegundos).
func FormatDate(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
