package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"kennel-records/internal/domain/heats"
)

type heatRepo struct {
	mu   sync.RWMutex
	byID map[string]heats.HeatCycle
}

func NewHeatRepo() heats.Repository {
	return &heatRepo{
		byID: make(map[string]heats.HeatCycle),
	}
}

func (r *heatRepo) Create(ctx context.Context, c heats.HeatCycle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID == "" {
		return errors.New("heat cycle id required")
	}
	if _, exists := r.byID[c.ID]; exists {
		return errors.New("heat cycle already exists")
	}
	r.byID[c.ID] = c
	return nil
}

func (r *heatRepo) Update(ctx context.Context, c heats.HeatCycle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[c.ID]; !ok {
		return heats.ErrNotFound
	}
	r.byID[c.ID] = c
	return nil
}

func (r *heatRepo) GetByID(ctx context.Context, id string) (heats.HeatCycle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return heats.HeatCycle{}, heats.ErrNotFound
	}
	return c, nil
}

func (r *heatRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return heats.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *heatRepo) ListByDog(ctx context.Context, dogID string) ([]heats.HeatCycle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]heats.HeatCycle, 0)
	for _, c := range r.byID {
		if c.DogID == dogID {
			out = append(out, c)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
