package heats

import (
	"time"

	"kennel-records/internal/platform/dates"
)

const (
	// Ventana fértil: días 9 a 14 (inclusive) desde el inicio del celo.
	FertileStartOffsetDays = 9
	FertileEndOffsetDays   = 14

	// Heurística fija para el próximo celo (no usa el promedio del perro).
	PredictedIntervalDays = 180

	// Separación mínima entre celos consecutivos.
	MinSpacingMonths = 6
)

type FertileWindow struct {
	StartDate time.Time
	EndDate   time.Time
}

// FertileWindowFor calcula la ventana fértil a partir del inicio del celo.
func FertileWindowFor(start time.Time) FertileWindow {
	return FertileWindow{
		StartDate: dates.AddDays(start, FertileStartOffsetDays),
		EndDate:   dates.AddDays(start, FertileEndOffsetDays),
	}
}

// HeatCycle pertenece a una hembra (DogID es referencia, no ownership).
type HeatCycle struct {
	ID    string
	DogID string

	StartDate time.Time
	EndDate   *time.Time

	// Fertile se calcula al cargar el ciclo; nil si no se pidió.
	Fertile *FertileWindow

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Summary agrupa los accesores derivados que consume la UI.
type Summary struct {
	DogID            string
	Count            int
	Last             *HeatCycle
	PredictedNext    *time.Time
	AverageCycleDays *float64
}
