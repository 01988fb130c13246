package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"kennel-records/internal/domain/events"
)

type eventRepo struct {
	mu   sync.RWMutex
	byID map[string]events.BreedingEvent
}

func NewEventRepo() events.Repository {
	return &eventRepo{
		byID: make(map[string]events.BreedingEvent),
	}
}

func (r *eventRepo) Create(ctx context.Context, e events.BreedingEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.ID == "" {
		return errors.New("event id required")
	}
	if _, exists := r.byID[e.ID]; exists {
		return errors.New("event already exists")
	}

	r.byID[e.ID] = e
	return nil
}

func (r *eventRepo) Update(ctx context.Context, e events.BreedingEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[e.ID]; !ok {
		return events.ErrNotFound
	}
	r.byID[e.ID] = e
	return nil
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (events.BreedingEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return events.BreedingEvent{}, events.ErrNotFound
	}
	return e, nil
}

func (r *eventRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return events.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *eventRepo) List(ctx context.Context, filter events.ListFilter) ([]events.BreedingEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]events.BreedingEvent, 0)
	for _, e := range r.byID {
		if filter.Matches(e) {
			out = append(out, e)
		}
	}

	// Orden por fecha asc; created_at e id desempatan
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})

	if limit := filter.EffectiveLimit(); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
