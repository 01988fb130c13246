package litters

import (
	"sort"
	"strings"
	"time"

	"kennel-records/internal/domain/events"
	"kennel-records/internal/platform/dates"
)

// GestationDays: fecha esperada de parto = fecha de cubrición + 60 días.
const GestationDays = 60

// DefaultStudName se usa cuando la camada no tiene nombre de macho.
const DefaultStudName = "Rüde"

// Milestone es una fila de la tabla de eventos posteriores al parto.
// Notes admite {dam} y {stud}.
type Milestone struct {
	Weeks float64
	Type  events.EventType
	Title string
	Notes string
	Color string // vacío = color por defecto del tipo
}

// Days es el desplazamiento en días desde el parto: round(weeks * 7).
func (m Milestone) Days() int {
	return dates.WeeksToDays(m.Weeks)
}

// BirthSchedule es la única fuente de verdad del calendario post-parto.
var BirthSchedule = []Milestone{
	{Weeks: 0, Type: events.EventTypeBirth, Title: "Geburt", Notes: "Wurf von {dam} und {stud} geboren"},

	{Weeks: 3, Type: events.EventTypeDeworming, Title: "1. Entwurmung", Notes: "Welpen von {dam}: Entwurmung in der 3. Woche"},
	{Weeks: 5, Type: events.EventTypeDeworming, Title: "2. Entwurmung", Notes: "Welpen von {dam}: Entwurmung in der 5. Woche"},
	{Weeks: 7, Type: events.EventTypeDeworming, Title: "3. Entwurmung", Notes: "Welpen von {dam}: Entwurmung in der 7. Woche"},
	{Weeks: 11, Type: events.EventTypeDeworming, Title: "4. Entwurmung", Notes: "Entwurmung in der 11. Woche (neue Besitzer informieren)"},

	{Weeks: 7.5, Type: events.EventTypeVaccination, Title: "Erstimpfung & Chip", Notes: "Grundimmunisierung und Mikrochip der Welpen von {dam}", Color: "#0891b2"},
	{Weeks: 12, Type: events.EventTypeVaccination, Title: "Zweitimpfung", Notes: "Zweite Impfung (neue Besitzer erinnern)"},
	{Weeks: 16, Type: events.EventTypeVaccination, Title: "Drittimpfung (Tollwut)", Notes: "Dritte Impfung inkl. Tollwut (neue Besitzer erinnern)"},

	{Weeks: 8, Type: events.EventTypeInspection, Title: "Wurfabnahme", Notes: "Wurfabnahme durch den Zuchtwart"},
	{Weeks: 9, Type: events.EventTypeHandover, Title: "Welpenabgabe", Notes: "Abgabe der Welpen von {dam} an die neuen Besitzer"},

	{Weeks: 6, Type: events.EventTypeSocialization, Title: "Sozialisierung", Notes: "Welpen an Geräusche, Besuch und Umgebung gewöhnen"},
	{Weeks: 8, Type: events.EventTypePhotos, Title: "Welpenfotos", Notes: "Fotos für Käufer und Homepage machen"},
	{Weeks: 9, Type: events.EventTypePaperwork, Title: "Papiere vorbereiten", Notes: "Kaufverträge, Impfpässe und Ahnentafeln bereitlegen"},
}

// PlannedEvent es una fila de la tabla ya resuelta contra una fecha de parto.
type PlannedEvent struct {
	Date  time.Time
	Type  events.EventType
	Title string
	Notes string
	Color string
}

// ScheduleFor resuelve la tabla contra birthDate. Orden: fecha, luego orden de la tabla.
// Cada fecha se calcula directamente desde birthDate.
func ScheduleFor(birthDate time.Time, damName, studName string) []PlannedEvent {
	r := noteReplacer(damName, studName)

	out := make([]PlannedEvent, 0, len(BirthSchedule))
	for _, m := range BirthSchedule {
		color := m.Color
		if color == "" {
			color = m.Type.Color()
		}
		out = append(out, PlannedEvent{
			Date:  dates.AddDays(birthDate, m.Days()),
			Type:  m.Type,
			Title: m.Title,
			Notes: r.Replace(m.Notes),
			Color: color,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// ExpectedBirth = breedingDate + 60 días.
func ExpectedBirth(breedingDate time.Time) time.Time {
	return dates.AddDays(breedingDate, GestationDays)
}

func expectedBirthTitle(damName, studName string) string {
	return "Geburt erwartet: " + damName + " × " + studOrDefault(studName)
}

func expectedBirthNotes(damName, studName string, breedingDate time.Time) string {
	return "Erwarteter Wurftermin von " + damName + " (Verpaarung mit " + studOrDefault(studName) +
		" am " + dates.Format(breedingDate) + ")"
}

func studOrDefault(stud string) string {
	if s := strings.TrimSpace(stud); s != "" {
		return s
	}
	return DefaultStudName
}

func noteReplacer(damName, studName string) *strings.Replacer {
	return strings.NewReplacer("{dam}", damName, "{stud}", studOrDefault(studName))
}
