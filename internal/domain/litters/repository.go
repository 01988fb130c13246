package litters

import "context"

type Repository interface {
	Create(ctx context.Context, l Litter) error
	Update(ctx context.Context, l Litter) error
	GetByID(ctx context.Context, id string) (Litter, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]Litter, error)
}

// ListFilter: vacío no filtra. Orden: BreedingDate descendente (más reciente primero).
type ListFilter struct {
	DogID  string
	Status Status
}

func (f ListFilter) Matches(l Litter) bool {
	if f.DogID != "" && l.DogID != f.DogID {
		return false
	}
	if f.Status != "" && l.Status() != f.Status {
		return false
	}
	return true
}
