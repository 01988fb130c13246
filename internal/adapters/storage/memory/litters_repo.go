package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"kennel-records/internal/domain/litters"
)

type litterRepo struct {
	mu   sync.RWMutex
	byID map[string]litters.Litter
}

func NewLitterRepo() litters.Repository {
	return &litterRepo{
		byID: make(map[string]litters.Litter),
	}
}

func (r *litterRepo) Create(ctx context.Context, l litters.Litter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if l.ID == "" {
		return errors.New("litter id required")
	}
	if _, exists := r.byID[l.ID]; exists {
		return errors.New("litter already exists")
	}
	r.byID[l.ID] = cloneLitter(l)
	return nil
}

func (r *litterRepo) Update(ctx context.Context, l litters.Litter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[l.ID]; !ok {
		return litters.ErrNotFound
	}
	r.byID[l.ID] = cloneLitter(l)
	return nil
}

func (r *litterRepo) GetByID(ctx context.Context, id string) (litters.Litter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.byID[id]
	if !ok {
		return litters.Litter{}, litters.ErrNotFound
	}
	return cloneLitter(l), nil
}

func (r *litterRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return litters.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *litterRepo) List(ctx context.Context, filter litters.ListFilter) ([]litters.Litter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]litters.Litter, 0)
	for _, l := range r.byID {
		if filter.Matches(l) {
			out = append(out, cloneLitter(l))
		}
	}

	// Más reciente primero
	sort.Slice(out, func(i, j int) bool {
		if !out[i].BreedingDate.Equal(out[j].BreedingDate) {
			return out[i].BreedingDate.After(out[j].BreedingDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func cloneLitter(l litters.Litter) litters.Litter {
	pups := make([]litters.Puppy, len(l.Puppies))
	copy(pups, l.Puppies)
	l.Puppies = pups
	if l.BirthDate != nil {
		bd := *l.BirthDate
		l.BirthDate = &bd
	}
	return l
}
