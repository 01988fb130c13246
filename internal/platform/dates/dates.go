// Package dates concentra la aritmética de calendario del dominio.
// Todas las fechas del dominio son días de calendario: medianoche UTC.
package dates

import (
	"errors"
	"math"
	"strings"
	"time"
)

const Layout = "2006-01-02"

var ErrInvalidDate = errors.New("date must be YYYY-MM-DD")

// Day normaliza t a medianoche UTC conservando el día de calendario de t.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddDays suma días de calendario (no 24h), así los cambios de horario no corren la fecha.
func AddDays(t time.Time, days int) time.Time {
	return Day(t).AddDate(0, 0, days)
}

// AddWeeks suma semanas fraccionarias redondeando al día más cercano (7.5 semanas => 53 días).
func AddWeeks(t time.Time, weeks float64) time.Time {
	return AddDays(t, WeeksToDays(weeks))
}

func WeeksToDays(weeks float64) int {
	return int(math.Round(weeks * 7))
}

func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}

// DaysBetween devuelve b - a en días de calendario.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// ParseOptional devuelve nil para "" (campo no enviado).
func ParseOptional(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := Parse(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func Format(t time.Time) string {
	return Day(t).Format(Layout)
}

func FormatPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := Format(*t)
	return &s
}
