package events

import "time"

// BreedingEvent es una entrada fechada del calendario de cría.
//
// RelatedLitterID y SourceHeatCycleID son referencias no propietarias: se usan
// para filtrar y para limpiar eventos derivados, nunca para ownership.
type BreedingEvent struct {
	ID    string
	DogID string

	Type EventType
	Date time.Time

	Title string
	Notes string
	Color string

	Completed bool

	RelatedLitterID   string
	SourceHeatCycleID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Derived indica si el evento fue generado por una regla (ciclo o camada).
func (e BreedingEvent) Derived() bool {
	return e.RelatedLitterID != "" || e.SourceHeatCycleID != ""
}
