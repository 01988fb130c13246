package litters

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status es derivado: planned hasta que se registra el parto, luego born (sin vuelta atrás).
type Status string

const (
	StatusPlanned Status = "planned"
	StatusBorn    Status = "born"
)

type PuppyGender string

const (
	PuppyMale   PuppyGender = "male"
	PuppyFemale PuppyGender = "female"
)

func (g PuppyGender) Valid() bool {
	return g == PuppyMale || g == PuppyFemale
}

type PuppyStatus string

const (
	PuppyAvailable PuppyStatus = "available"
	PuppyReserved  PuppyStatus = "reserved"
	PuppySold      PuppyStatus = "sold"
	PuppyKept      PuppyStatus = "kept"
)

func (s PuppyStatus) Valid() bool {
	switch s {
	case PuppyAvailable, PuppyReserved, PuppySold, PuppyKept:
		return true
	}
	return false
}

// Puppy vive dentro de la camada (ownership por contención).
type Puppy struct {
	ID       string
	LitterID string

	Name             string
	Gender           PuppyGender
	Color            string
	Markings         string
	BirthWeightGrams int
	ChipNumber       string

	Status    PuppyStatus
	OwnerName string
	Price     decimal.Decimal

	Notes string
}

type Litter struct {
	ID    string
	DogID string // madre (dam)

	StudName string

	BreedingDate time.Time
	BirthDate    *time.Time

	PuppyCount int
	Males      int
	Females    int

	Notes   string
	Puppies []Puppy

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (l Litter) Status() Status {
	if l.BirthDate != nil {
		return StatusBorn
	}
	return StatusPlanned
}

// Stats resume el rendimiento de las camadas.
type Stats struct {
	Total       int
	Planned     int
	Born        int
	Overdue     int // planned con fecha esperada vencida
	Puppies     int
	SuccessRate *float64 // born / (born + overdue); nil si no hay base
}
