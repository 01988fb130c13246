package events

type EventType string

const (
	EventTypeHeatStart     EventType = "heat_start"
	EventTypeBreeding      EventType = "breeding"
	EventTypeUltrasound    EventType = "ultrasound"
	EventTypeBirthExpected EventType = "birth_expected"
	EventTypeBirth         EventType = "birth"
	EventTypeDeworming     EventType = "deworming"
	EventTypeVaccination   EventType = "vaccination"
	EventTypeChipping      EventType = "chipping"
	EventTypeInspection    EventType = "inspection"
	EventTypeHandover      EventType = "handover"
	EventTypeSocialization EventType = "socialization"
	EventTypePhotos        EventType = "photos"
	EventTypePaperwork     EventType = "paperwork"
	EventTypeReminder      EventType = "reminder"
	EventTypeOther         EventType = "other"
)

// AllTypes en el orden en que se muestran en el calendario.
var AllTypes = []EventType{
	EventTypeHeatStart,
	EventTypeBreeding,
	EventTypeUltrasound,
	EventTypeBirthExpected,
	EventTypeBirth,
	EventTypeDeworming,
	EventTypeVaccination,
	EventTypeChipping,
	EventTypeInspection,
	EventTypeHandover,
	EventTypeSocialization,
	EventTypePhotos,
	EventTypePaperwork,
	EventTypeReminder,
	EventTypeOther,
}

func (t EventType) Valid() bool {
	_, ok := defaultColors[t]
	return ok
}

// Color por defecto en el calendario cuando el evento no trae uno propio.
func (t EventType) Color() string {
	if c, ok := defaultColors[t]; ok {
		return c
	}
	return defaultColors[EventTypeOther]
}

var defaultColors = map[EventType]string{
	EventTypeHeatStart:     "#e11d48",
	EventTypeBreeding:      "#db2777",
	EventTypeUltrasound:    "#7c3aed",
	EventTypeBirthExpected: "#9333ea",
	EventTypeBirth:         "#16a34a",
	EventTypeDeworming:     "#ca8a04",
	EventTypeVaccination:   "#2563eb",
	EventTypeChipping:      "#0891b2",
	EventTypeInspection:    "#ea580c",
	EventTypeHandover:      "#059669",
	EventTypeSocialization: "#65a30d",
	EventTypePhotos:        "#0d9488",
	EventTypePaperwork:     "#475569",
	EventTypeReminder:      "#64748b",
	EventTypeOther:         "#6b7280",
}
