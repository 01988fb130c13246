package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kennel-records/internal/domain/deps"
	"kennel-records/internal/domain/dogs"
	"kennel-records/internal/platform/dates"
	"kennel-records/internal/platform/ids"
	"kennel-records/internal/platform/metrics"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("event not found")
	ErrDogNotFound  = errors.New("dog not found")
)

// DogReader es lo único que events necesita de dogs.
type DogReader interface {
	GetByID(ctx context.Context, id string) (dogs.Dog, error)
}

type Service struct {
	repo Repository
	dogs DogReader
	d    deps.Deps
}

func NewService(repo Repository, dogReader DogReader, d deps.Deps) *Service {
	return &Service{
		repo: repo,
		dogs: dogReader,
		d:    d.Defaults(),
	}
}

type CreateInput struct {
	DogID     string
	Type      EventType
	Date      time.Time
	Title     string
	Notes     string
	Color     string
	Completed bool

	RelatedLitterID   string
	SourceHeatCycleID string
}

func (in CreateInput) validate() error {
	if strings.TrimSpace(in.DogID) == "" {
		return fmt.Errorf("%w: dog_id is required", ErrInvalidInput)
	}
	if !in.Type.Valid() {
		return fmt.Errorf("%w: unknown event type %q", ErrInvalidInput, in.Type)
	}
	if in.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}

// Create agrega un evento manual. Valida que el perro exista.
func (s *Service) Create(ctx context.Context, in CreateInput) (BreedingEvent, error) {
	if err := in.validate(); err != nil {
		metrics.Rejected("event", "invalid_input")
		return BreedingEvent{}, err
	}
	if _, err := s.dogs.GetByID(ctx, in.DogID); err != nil {
		metrics.Rejected("event", "dog_not_found")
		return BreedingEvent{}, fmt.Errorf("%w: %s", ErrDogNotFound, in.DogID)
	}

	e, err := s.insert(ctx, in)
	if err != nil {
		return BreedingEvent{}, err
	}
	metrics.Operation("event", "create")
	return e, nil
}

// Derive agrega un evento generado por una regla de heats/litters.
// El llamador ya validó el perro y tiene tomado su lock.
func (s *Service) Derive(ctx context.Context, in CreateInput) (BreedingEvent, error) {
	if err := in.validate(); err != nil {
		return BreedingEvent{}, err
	}
	e, err := s.insert(ctx, in)
	if err != nil {
		return BreedingEvent{}, err
	}
	metrics.Derived(string(e.Type))
	return e, nil
}

func (s *Service) insert(ctx context.Context, in CreateInput) (BreedingEvent, error) {
	now := s.d.Now()

	color := strings.TrimSpace(in.Color)
	if color == "" {
		color = in.Type.Color()
	}

	e := BreedingEvent{
		ID:                s.d.IDs.New(ids.PrefixEvent),
		DogID:             strings.TrimSpace(in.DogID),
		Type:              in.Type,
		Date:              dates.Day(in.Date),
		Title:             strings.TrimSpace(in.Title),
		Notes:             strings.TrimSpace(in.Notes),
		Color:             color,
		Completed:         in.Completed,
		RelatedLitterID:   in.RelatedLitterID,
		SourceHeatCycleID: in.SourceHeatCycleID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return BreedingEvent{}, err
	}
	return e, nil
}

type UpdateInput struct {
	Type      EventType
	Date      time.Time
	Title     string
	Notes     string
	Color     string
	Completed bool
}

// Update reemplaza los campos editables. Los vínculos (litter/ciclo) no cambian.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (BreedingEvent, error) {
	if !in.Type.Valid() {
		return BreedingEvent{}, fmt.Errorf("%w: unknown event type %q", ErrInvalidInput, in.Type)
	}
	if in.Date.IsZero() {
		return BreedingEvent{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	e, err := s.GetByID(ctx, id)
	if err != nil {
		return BreedingEvent{}, err
	}

	e.Type = in.Type
	e.Date = dates.Day(in.Date)
	e.Title = strings.TrimSpace(in.Title)
	e.Notes = strings.TrimSpace(in.Notes)
	e.Color = strings.TrimSpace(in.Color)
	if e.Color == "" {
		e.Color = e.Type.Color()
	}
	e.Completed = in.Completed

	saved, err := s.Replace(ctx, e)
	if err != nil {
		return BreedingEvent{}, err
	}
	metrics.Operation("event", "update")
	return saved, nil
}

// Replace guarda e tal cual (lo usan las reglas de sincronización).
func (s *Service) Replace(ctx context.Context, e BreedingEvent) (BreedingEvent, error) {
	e.Date = dates.Day(e.Date)
	e.UpdatedAt = s.d.Now()
	if err := s.repo.Update(ctx, e); err != nil {
		return BreedingEvent{}, err
	}
	return e, nil
}

func (s *Service) Remove(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	metrics.Operation("event", "delete")
	return nil
}

func (s *Service) GetByID(ctx context.Context, id string) (BreedingEvent, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return BreedingEvent{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]BreedingEvent, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) ListByLitter(ctx context.Context, litterID string) ([]BreedingEvent, error) {
	if strings.TrimSpace(litterID) == "" {
		return nil, nil
	}
	return s.repo.List(ctx, ListFilter{RelatedLitterID: litterID, Limit: MaxLimit})
}

func (s *Service) ListBySource(ctx context.Context, heatCycleID string) ([]BreedingEvent, error) {
	if strings.TrimSpace(heatCycleID) == "" {
		return nil, nil
	}
	return s.repo.List(ctx, ListFilter{SourceHeatCycleID: heatCycleID, Limit: MaxLimit})
}

// RemoveByLitter borra todos los eventos vinculados a la camada. Idempotente.
func (s *Service) RemoveByLitter(ctx context.Context, litterID string) (int, error) {
	items, err := s.ListByLitter(ctx, litterID)
	if err != nil {
		return 0, err
	}
	return s.removeAll(ctx, items)
}

// RemoveBySource borra los eventos derivados de un ciclo de celo. Idempotente.
func (s *Service) RemoveBySource(ctx context.Context, heatCycleID string) (int, error) {
	items, err := s.ListBySource(ctx, heatCycleID)
	if err != nil {
		return 0, err
	}
	return s.removeAll(ctx, items)
}

func (s *Service) removeAll(ctx context.Context, items []BreedingEvent) (int, error) {
	n := 0
	for _, e := range items {
		if err := s.repo.Delete(ctx, e.ID); err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return n, err
		}
		n++
	}
	return n, nil
}
