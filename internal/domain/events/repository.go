package events

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, e BreedingEvent) error
	Update(ctx context.Context, e BreedingEvent) error
	GetByID(ctx context.Context, id string) (BreedingEvent, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]BreedingEvent, error)
}

// ListFilter: campos vacíos/nil no filtran. Orden: fecha ascendente.
type ListFilter struct {
	DogID             string
	Types             []EventType
	From              *time.Time
	To                *time.Time
	RelatedLitterID   string
	SourceHeatCycleID string
	Limit             int
}

const (
	DefaultLimit = 200
	MaxLimit     = 1000
)

// Matches aplica el filtro en memoria (lo usan el adapter memory y los tests).
func (f ListFilter) Matches(e BreedingEvent) bool {
	if f.DogID != "" && e.DogID != f.DogID {
		return false
	}
	if f.RelatedLitterID != "" && e.RelatedLitterID != f.RelatedLitterID {
		return false
	}
	if f.SourceHeatCycleID != "" && e.SourceHeatCycleID != f.SourceHeatCycleID {
		return false
	}
	if len(f.Types) > 0 {
		ok := false
		for _, t := range f.Types {
			if e.Type == t {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if f.From != nil && e.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && e.Date.After(*f.To) {
		return false
	}
	return true
}

func (f ListFilter) EffectiveLimit() int {
	switch {
	case f.Limit <= 0:
		return DefaultLimit
	case f.Limit > MaxLimit:
		return MaxLimit
	default:
		return f.Limit
	}
}
