package heats

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kennel-records/internal/domain/deps"
	"kennel-records/internal/domain/dogs"
	"kennel-records/internal/domain/events"
	"kennel-records/internal/platform/dates"
	"kennel-records/internal/platform/ids"
	"kennel-records/internal/platform/metrics"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("heat cycle not found")
	ErrDogNotFound  = errors.New("dog not found")
	ErrNotFemale    = errors.New("heat cycles can only be recorded for female dogs")
	ErrTooSoon      = errors.New("heat cycle spacing below minimum")
)

// SpacingError es la advertencia de separación mínima. errors.Is(err, ErrTooSoon) == true.
type SpacingError struct {
	Neighbor time.Time
	Days     int
}

func (e *SpacingError) Error() string {
	return fmt.Sprintf(
		"heat cycle is %d days away from the cycle on %s; minimum spacing is %d months",
		e.Days, dates.Format(e.Neighbor), MinSpacingMonths,
	)
}

func (e *SpacingError) Unwrap() error { return ErrTooSoon }

type DogReader interface {
	GetByID(ctx context.Context, id string) (dogs.Dog, error)
}

type Service struct {
	repo   Repository
	events *events.Service
	dogs   DogReader
	d      deps.Deps
}

func NewService(repo Repository, eventsSvc *events.Service, dogReader DogReader, d deps.Deps) *Service {
	return &Service{
		repo:   repo,
		events: eventsSvc,
		dogs:   dogReader,
		d:      d.Defaults(),
	}
}

type AddInput struct {
	DogID            string
	StartDate        time.Time
	EndDate          *time.Time
	CalculateFertile bool
	Notes            string

	// Force registra el ciclo aunque no respete la separación mínima.
	Force bool
}

// Add registra un ciclo y genera sus eventos: siempre "heat_start" y,
// si se pidió, "Fruchtbare Tage" al inicio de la ventana fértil.
func (s *Service) Add(ctx context.Context, in AddInput) (HeatCycle, error) {
	if err := validateDates(in.DogID, in.StartDate, in.EndDate); err != nil {
		metrics.Rejected("heat_cycle", "invalid_input")
		return HeatCycle{}, err
	}

	unlock := s.d.Locks.Lock(in.DogID)
	defer unlock()

	dog, err := s.female(ctx, in.DogID)
	if err != nil {
		return HeatCycle{}, err
	}

	start := dates.Day(in.StartDate)

	existing, err := s.repo.ListByDog(ctx, dog.ID)
	if err != nil {
		return HeatCycle{}, err
	}
	if !in.Force {
		if err := checkSpacing(existing, start); err != nil {
			metrics.Rejected("heat_cycle", "spacing")
			return HeatCycle{}, err
		}
	}

	now := s.d.Now()
	c := HeatCycle{
		ID:        s.d.IDs.New(ids.PrefixHeatCycle),
		DogID:     dog.ID,
		StartDate: start,
		EndDate:   dayPtr(in.EndDate),
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.CalculateFertile {
		w := FertileWindowFor(start)
		c.Fertile = &w
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return HeatCycle{}, err
	}

	if err := s.syncEvents(ctx, dog, c); err != nil {
		// rollback best-effort: no dejar un ciclo sin su evento de inicio
		_, _ = s.events.RemoveBySource(ctx, c.ID)
		_ = s.repo.Delete(ctx, c.ID)
		return HeatCycle{}, err
	}

	metrics.Operation("heat_cycle", "create")
	s.d.Log.Info("heat cycle recorded", map[string]any{
		"dog_id":        dog.ID,
		"heat_cycle_id": c.ID,
		"start_date":    dates.Format(start),
		"fertile":       c.Fertile != nil,
		"forced":        in.Force,
	})
	return c, nil
}

type UpdateInput struct {
	StartDate        time.Time
	EndDate          *time.Time
	CalculateFertile bool
	Notes            string
}

// Update reemplaza el ciclo y re-sincroniza sus eventos vinculados por SourceHeatCycleID.
// La regla de separación mínima no se aplica al editar.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (HeatCycle, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return HeatCycle{}, err
	}
	if err := validateDates(current.DogID, in.StartDate, in.EndDate); err != nil {
		return HeatCycle{}, err
	}

	unlock := s.d.Locks.Lock(current.DogID)
	defer unlock()

	// releer con el lock tomado
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return HeatCycle{}, err
	}
	dog, err := s.dogs.GetByID(ctx, c.DogID)
	if err != nil {
		return HeatCycle{}, fmt.Errorf("%w: %s", ErrDogNotFound, c.DogID)
	}

	c.StartDate = dates.Day(in.StartDate)
	c.EndDate = dayPtr(in.EndDate)
	c.Notes = strings.TrimSpace(in.Notes)
	c.Fertile = nil
	if in.CalculateFertile {
		w := FertileWindowFor(c.StartDate)
		c.Fertile = &w
	}
	c.UpdatedAt = s.d.Now()

	if err := s.repo.Update(ctx, c); err != nil {
		return HeatCycle{}, err
	}
	if err := s.syncEvents(ctx, dog, c); err != nil {
		return HeatCycle{}, err
	}

	metrics.Operation("heat_cycle", "update")
	return c, nil
}

// Remove borra el ciclo y todos sus eventos derivados.
func (s *Service) Remove(ctx context.Context, id string) error {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	unlock := s.d.Locks.Lock(current.DogID)
	defer unlock()

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	n, err := s.events.RemoveBySource(ctx, id)
	if err != nil {
		return err
	}

	metrics.Operation("heat_cycle", "delete")
	s.d.Log.Info("heat cycle removed", map[string]any{"heat_cycle_id": id, "events_removed": n})
	return nil
}

func (s *Service) GetByID(ctx context.Context, id string) (HeatCycle, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return HeatCycle{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByDog(ctx context.Context, dogID string) ([]HeatCycle, error) {
	return s.repo.ListByDog(ctx, dogID)
}

// Last devuelve el ciclo más reciente del perro (ErrNotFound si no tiene).
func (s *Service) Last(ctx context.Context, dogID string) (HeatCycle, error) {
	items, err := s.repo.ListByDog(ctx, dogID)
	if err != nil {
		return HeatCycle{}, err
	}
	if len(items) == 0 {
		return HeatCycle{}, ErrNotFound
	}
	return items[len(items)-1], nil
}

// PredictedNext = inicio del último celo + 180 días.
func (s *Service) PredictedNext(ctx context.Context, dogID string) (time.Time, error) {
	last, err := s.Last(ctx, dogID)
	if err != nil {
		return time.Time{}, err
	}
	return dates.AddDays(last.StartDate, PredictedIntervalDays), nil
}

func (s *Service) Summary(ctx context.Context, dogID string) (Summary, error) {
	if _, err := s.dogs.GetByID(ctx, dogID); err != nil {
		return Summary{}, fmt.Errorf("%w: %s", ErrDogNotFound, dogID)
	}

	items, err := s.repo.ListByDog(ctx, dogID)
	if err != nil {
		return Summary{}, err
	}
	return summarize(dogID, items), nil
}

func summarize(dogID string, items []HeatCycle) Summary {
	out := Summary{DogID: dogID, Count: len(items)}
	if len(items) == 0 {
		return out
	}

	last := items[len(items)-1]
	next := dates.AddDays(last.StartDate, PredictedIntervalDays)
	out.Last = &last
	out.PredictedNext = &next

	if avg, ok := AverageCycleLength(items); ok {
		out.AverageCycleDays = &avg
	}
	return out
}

// AverageCycleLength promedia los días entre inicios consecutivos (items ordenados).
// Es solo informativo: la predicción usa la heurística fija de 180 días.
func AverageCycleLength(items []HeatCycle) (float64, bool) {
	if len(items) < 2 {
		return 0, false
	}
	total := 0
	for i := 1; i < len(items); i++ {
		total += dates.DaysBetween(items[i-1].StartDate, items[i].StartDate)
	}
	return float64(total) / float64(len(items)-1), true
}

func (s *Service) female(ctx context.Context, dogID string) (dogs.Dog, error) {
	dog, err := s.dogs.GetByID(ctx, dogID)
	if err != nil {
		metrics.Rejected("heat_cycle", "dog_not_found")
		return dogs.Dog{}, fmt.Errorf("%w: %s", ErrDogNotFound, dogID)
	}
	if !dog.IsFemale() {
		metrics.Rejected("heat_cycle", "not_female")
		return dogs.Dog{}, ErrNotFemale
	}
	return dog, nil
}

// syncEvents deja el calendario del ciclo consistente con el registro:
// un "heat_start" en StartDate y, si hay ventana fértil, un evento en su inicio.
func (s *Service) syncEvents(ctx context.Context, dog dogs.Dog, c HeatCycle) error {
	linked, err := s.events.ListBySource(ctx, c.ID)
	if err != nil {
		return err
	}

	var heatEv, fertileEv *events.BreedingEvent
	for i := range linked {
		switch linked[i].Type {
		case events.EventTypeHeatStart:
			heatEv = &linked[i]
		case events.EventTypeBreeding:
			fertileEv = &linked[i]
		}
	}

	heatTitle := "Läufigkeit: " + dog.Name
	if heatEv == nil {
		if _, err := s.events.Derive(ctx, events.CreateInput{
			DogID:             dog.ID,
			Type:              events.EventTypeHeatStart,
			Date:              c.StartDate,
			Title:             heatTitle,
			Notes:             c.Notes,
			SourceHeatCycleID: c.ID,
		}); err != nil {
			return err
		}
	} else {
		heatEv.Date = c.StartDate
		heatEv.Title = heatTitle
		heatEv.Notes = c.Notes
		if _, err := s.events.Replace(ctx, *heatEv); err != nil {
			return err
		}
	}

	switch {
	case c.Fertile == nil && fertileEv != nil:
		return s.events.Remove(ctx, fertileEv.ID)
	case c.Fertile != nil && fertileEv == nil:
		_, err := s.events.Derive(ctx, events.CreateInput{
			DogID:             dog.ID,
			Type:              events.EventTypeBreeding,
			Date:              c.Fertile.StartDate,
			Title:             "Fruchtbare Tage: " + dog.Name,
			Notes:             fertileNotes(*c.Fertile),
			SourceHeatCycleID: c.ID,
		})
		return err
	case c.Fertile != nil && fertileEv != nil:
		fertileEv.Date = c.Fertile.StartDate
		fertileEv.Notes = fertileNotes(*c.Fertile)
		_, err := s.events.Replace(ctx, *fertileEv)
		return err
	}
	return nil
}

func fertileNotes(w FertileWindow) string {
	return fmt.Sprintf("Fruchtbares Fenster %s bis %s", dates.Format(w.StartDate), dates.Format(w.EndDate))
}

// checkSpacing rechaza un inicio a menos de MinSpacingMonths de cualquier ciclo existente.
func checkSpacing(existing []HeatCycle, start time.Time) error {
	for _, c := range existing {
		lo := c.StartDate.AddDate(0, -MinSpacingMonths, 0)
		hi := c.StartDate.AddDate(0, MinSpacingMonths, 0)
		if start.After(lo) && start.Before(hi) {
			days := dates.DaysBetween(c.StartDate, start)
			if days < 0 {
				days = -days
			}
			return &SpacingError{Neighbor: c.StartDate, Days: days}
		}
	}
	return nil
}

func validateDates(dogID string, start time.Time, end *time.Time) error {
	if strings.TrimSpace(dogID) == "" {
		return fmt.Errorf("%w: dog_id is required", ErrInvalidInput)
	}
	if start.IsZero() {
		return fmt.Errorf("%w: start_date is required", ErrInvalidInput)
	}
	if end != nil && dates.Day(*end).Before(dates.Day(start)) {
		return fmt.Errorf("%w: end_date before start_date", ErrInvalidInput)
	}
	return nil
}

func dayPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := dates.Day(*t)
	return &d
}
