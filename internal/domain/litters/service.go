package litters

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"kennel-records/internal/domain/deps"
	"kennel-records/internal/domain/dogs"
	"kennel-records/internal/domain/events"
	"kennel-records/internal/platform/dates"
	"kennel-records/internal/platform/ids"
	"kennel-records/internal/platform/metrics"
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrNotFound             = errors.New("litter not found")
	ErrPuppyNotFound        = errors.New("puppy not found")
	ErrDogNotFound          = errors.New("dog not found")
	ErrNotFemale            = errors.New("the dam of a litter must be a female dog")
	ErrBirthAlreadyRecorded = errors.New("birth already recorded for this litter")
	ErrBirthNotRecorded     = errors.New("birth not recorded yet for this litter")
	ErrPuppyCountMismatch   = errors.New("males + females exceed puppy count")
)

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
	DogID        string
	StudName     string
	BreedingDate time.Time
	PuppyCount   int
	Males        int
	Females      int
	Notes        string
}

// Add crea la camada planificada y su único evento "birth_expected" (cubrición + 60 días).
func (s *Service) Add(ctx context.Context, in AddInput) (Litter, error) {
	if strings.TrimSpace(in.DogID) == "" {
		return Litter{}, fmt.Errorf("%w: dog_id is required", ErrInvalidInput)
	}
	if in.BreedingDate.IsZero() {
		return Litter{}, fmt.Errorf("%w: breeding_date is required", ErrInvalidInput)
	}
	if err := checkCounts(in.PuppyCount, in.Males, in.Females); err != nil {
		metrics.Rejected("litter", "puppy_counts")
		return Litter{}, err
	}

	unlock := s.d.Locks.Lock(in.DogID)
	defer unlock()

	dam, err := s.dam(ctx, in.DogID)
	if err != nil {
		return Litter{}, err
	}

	now := s.d.Now()
	l := Litter{
		ID:           s.d.IDs.New(ids.PrefixLitter),
		DogID:        dam.ID,
		StudName:     strings.TrimSpace(in.StudName),
		BreedingDate: dates.Day(in.BreedingDate),
		PuppyCount:   in.PuppyCount,
		Males:        in.Males,
		Females:      in.Females,
		Notes:        strings.TrimSpace(in.Notes),
		Puppies:      []Puppy{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return Litter{}, err
	}

	if err := s.syncExpectedBirth(ctx, dam, l); err != nil {
		_, _ = s.events.RemoveByLitter(ctx, l.ID)
		_ = s.repo.Delete(ctx, l.ID)
		return Litter{}, err
	}

	metrics.Operation("litter", "create")
	s.d.Log.Info("litter planned", map[string]any{
		"dog_id":         dam.ID,
		"litter_id":      l.ID,
		"breeding_date":  dates.Format(l.BreedingDate),
		"expected_birth": dates.Format(ExpectedBirth(l.BreedingDate)),
	})
	return l, nil
}

type UpdateInput struct {
	StudName     string
	BreedingDate time.Time
	// BirthDate solo corrige un parto ya registrado; nil lo conserva.
	BirthDate  *time.Time
	PuppyCount int
	Males      int
	Females    int
	Notes      string
}

// Update reemplaza la camada. Si cambia la cubrición, mueve el "birth_expected";
// si se corrige el parto, desplaza todos los eventos post-parto vinculados.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Litter, error) {
	if in.BreedingDate.IsZero() {
		return Litter{}, fmt.Errorf("%w: breeding_date is required", ErrInvalidInput)
	}
	if err := checkCounts(in.PuppyCount, in.Males, in.Females); err != nil {
		metrics.Rejected("litter", "puppy_counts")
		return Litter{}, err
	}

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Litter{}, err
	}

	unlock := s.d.Locks.Lock(current.DogID)
	defer unlock()

	l, err := s.GetByID(ctx, id)
	if err != nil {
		return Litter{}, err
	}
	if in.BirthDate != nil && l.BirthDate == nil {
		return Litter{}, fmt.Errorf("%w: %v", ErrBirthNotRecorded, "record the birth instead of setting birth_date")
	}
	if in.BirthDate != nil && dates.Day(*in.BirthDate).Before(dates.Day(in.BreedingDate)) {
		return Litter{}, fmt.Errorf("%w: birth_date before breeding_date", ErrInvalidInput)
	}

	dam, err := s.dam(ctx, l.DogID)
	if err != nil {
		return Litter{}, err
	}

	shift := 0
	if in.BirthDate != nil {
		shift = dates.DaysBetween(*l.BirthDate, *in.BirthDate)
		bd := dates.Day(*in.BirthDate)
		l.BirthDate = &bd
	}

	l.StudName = strings.TrimSpace(in.StudName)
	l.BreedingDate = dates.Day(in.BreedingDate)
	l.PuppyCount = in.PuppyCount
	l.Males = in.Males
	l.Females = in.Females
	l.Notes = strings.TrimSpace(in.Notes)
	l.UpdatedAt = s.d.Now()

	if err := s.repo.Update(ctx, l); err != nil {
		return Litter{}, err
	}
	if err := s.syncExpectedBirth(ctx, dam, l); err != nil {
		return Litter{}, err
	}
	if shift != 0 {
		if err := s.shiftBirthEvents(ctx, l.ID, shift); err != nil {
			return Litter{}, err
		}
	}

	metrics.Operation("litter", "update")
	return l, nil
}

// Remove borra la camada y todos los eventos con RelatedLitterID == id.
// Borrar una camada inexistente no es error (idempotente).
func (s *Service) Remove(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}

	l, err := s.repo.GetByID(ctx, id)
	switch {
	case errors.Is(err, ErrNotFound):
		_, err := s.events.RemoveByLitter(ctx, id)
		return err
	case err != nil:
		return err
	}

	unlock := s.d.Locks.Lock(l.DogID)
	defer unlock()

	if err := s.repo.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	n, err := s.events.RemoveByLitter(ctx, id)
	if err != nil {
		return err
	}

	metrics.Operation("litter", "delete")
	s.d.Log.Info("litter removed", map[string]any{"litter_id": id, "events_removed": n})
	return nil
}

type BirthInput struct {
	BirthDate time.Time
	// nil = conservar el valor actual de la camada
	PuppyCount *int
	Males      *int
	Females    *int
	Notes      *string
}

// RecordBirth pasa la camada a born y genera el calendario post-parto desde BirthSchedule.
func (s *Service) RecordBirth(ctx context.Context, litterID string, in BirthInput) (Litter, []events.BreedingEvent, error) {
	if in.BirthDate.IsZero() {
		return Litter{}, nil, fmt.Errorf("%w: birth_date is required", ErrInvalidInput)
	}

	current, err := s.GetByID(ctx, litterID)
	if err != nil {
		return Litter{}, nil, err
	}

	unlock := s.d.Locks.Lock(current.DogID)
	defer unlock()

	l, err := s.GetByID(ctx, litterID)
	if err != nil {
		return Litter{}, nil, err
	}
	if l.Status() == StatusBorn {
		metrics.Rejected("litter", "birth_already_recorded")
		return Litter{}, nil, ErrBirthAlreadyRecorded
	}

	birth := dates.Day(in.BirthDate)
	if birth.Before(l.BreedingDate) {
		return Litter{}, nil, fmt.Errorf("%w: birth_date before breeding_date", ErrInvalidInput)
	}

	dam, err := s.dam(ctx, l.DogID)
	if err != nil {
		return Litter{}, nil, err
	}

	previous := l
	l.BirthDate = &birth
	if in.PuppyCount != nil {
		l.PuppyCount = *in.PuppyCount
	}
	if in.Males != nil {
		l.Males = *in.Males
	}
	if in.Females != nil {
		l.Females = *in.Females
	}
	if in.Notes != nil {
		l.Notes = strings.TrimSpace(*in.Notes)
	}
	if err := checkCounts(l.PuppyCount, l.Males, l.Females); err != nil {
		metrics.Rejected("litter", "puppy_counts")
		return Litter{}, nil, err
	}
	l.UpdatedAt = s.d.Now()

	if err := s.repo.Update(ctx, l); err != nil {
		return Litter{}, nil, err
	}

	created := make([]events.BreedingEvent, 0, len(BirthSchedule))
	for _, p := range ScheduleFor(birth, dam.Name, l.StudName) {
		notes := p.Notes
		if p.Type == events.EventTypeBirth {
			notes = birthNotes(notes, l)
		}

		e, err := s.events.Derive(ctx, events.CreateInput{
			DogID:           l.DogID,
			Type:            p.Type,
			Date:            p.Date,
			Title:           p.Title,
			Notes:           notes,
			Color:           p.Color,
			RelatedLitterID: l.ID,
		})
		if err != nil {
			s.rollbackBirth(ctx, previous, created)
			return Litter{}, nil, err
		}
		created = append(created, e)
	}

	metrics.Operation("litter", "record_birth")
	s.d.Log.Info("birth recorded", map[string]any{
		"litter_id":      l.ID,
		"dog_id":         l.DogID,
		"birth_date":     dates.Format(birth),
		"puppy_count":    l.PuppyCount,
		"events_created": len(created),
	})
	return l, created, nil
}

func (s *Service) rollbackBirth(ctx context.Context, previous Litter, created []events.BreedingEvent) {
	for _, e := range created {
		_ = s.events.Remove(ctx, e.ID)
	}
	if err := s.repo.Update(ctx, previous); err != nil {
		s.d.Log.Error("birth rollback failed", map[string]any{"litter_id": previous.ID, "error": err.Error()})
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (Litter, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Litter{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Litter, error) {
	return s.repo.List(ctx, filter)
}

// Stats: la tasa de éxito cuenta como base las camadas nacidas más las planificadas
// cuya fecha esperada ya pasó (las futuras todavía no cuentan).
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	items, err := s.repo.List(ctx, ListFilter{})
	if err != nil {
		return Stats{}, err
	}
	return computeStats(items, dates.Day(s.d.Now())), nil
}

func computeStats(items []Litter, today time.Time) Stats {
	st := Stats{Total: len(items)}
	for _, l := range items {
		if l.Status() == StatusBorn {
			st.Born++
			st.Puppies += l.PuppyCount
			continue
		}
		st.Planned++
		if ExpectedBirth(l.BreedingDate).Before(today) {
			st.Overdue++
		}
	}
	if base := st.Born + st.Overdue; base > 0 {
		rate := float64(st.Born) / float64(base)
		st.SuccessRate = &rate
	}
	return st
}

type PuppyInput struct {
	Name             string
	Gender           PuppyGender
	Color            string
	Markings         string
	BirthWeightGrams int
	ChipNumber       string
	Status           PuppyStatus
	OwnerName        string
	Price            decimal.Decimal
	Notes            string
}

func (in PuppyInput) validate() error {
	if !in.Gender.Valid() {
		return fmt.Errorf("%w: puppy gender must be male or female", ErrInvalidInput)
	}
	if in.Status != "" && !in.Status.Valid() {
		return fmt.Errorf("%w: unknown puppy status %q", ErrInvalidInput, in.Status)
	}
	if in.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if in.BirthWeightGrams < 0 {
		return fmt.Errorf("%w: birth weight must not be negative", ErrInvalidInput)
	}
	return nil
}

// AddPuppy agrega un cachorro; solo después de registrar el parto.
func (s *Service) AddPuppy(ctx context.Context, litterID string, in PuppyInput) (Puppy, error) {
	if err := in.validate(); err != nil {
		return Puppy{}, err
	}

	var out Puppy
	err := s.mutatePuppies(ctx, litterID, func(l *Litter) error {
		if l.Status() != StatusBorn {
			return ErrBirthNotRecorded
		}
		out = newPuppy(s.d.IDs.New(ids.PrefixPuppy), l.ID, in)
		l.Puppies = append(l.Puppies, out)
		return nil
	})
	if err != nil {
		return Puppy{}, err
	}

	metrics.Operation("puppy", "create")
	return out, nil
}

func (s *Service) UpdatePuppy(ctx context.Context, litterID, puppyID string, in PuppyInput) (Puppy, error) {
	if err := in.validate(); err != nil {
		return Puppy{}, err
	}

	var out Puppy
	err := s.mutatePuppies(ctx, litterID, func(l *Litter) error {
		for i := range l.Puppies {
			if l.Puppies[i].ID == puppyID {
				out = newPuppy(puppyID, l.ID, in)
				l.Puppies[i] = out
				return nil
			}
		}
		return ErrPuppyNotFound
	})
	if err != nil {
		return Puppy{}, err
	}

	metrics.Operation("puppy", "update")
	return out, nil
}

func (s *Service) RemovePuppy(ctx context.Context, litterID, puppyID string) error {
	err := s.mutatePuppies(ctx, litterID, func(l *Litter) error {
		for i := range l.Puppies {
			if l.Puppies[i].ID == puppyID {
				l.Puppies = append(l.Puppies[:i], l.Puppies[i+1:]...)
				return nil
			}
		}
		return ErrPuppyNotFound
	})
	if err != nil {
		return err
	}

	metrics.Operation("puppy", "delete")
	return nil
}

func (s *Service) mutatePuppies(ctx context.Context, litterID string, fn func(l *Litter) error) error {
	current, err := s.GetByID(ctx, litterID)
	if err != nil {
		return err
	}

	unlock := s.d.Locks.Lock(current.DogID)
	defer unlock()

	l, err := s.GetByID(ctx, litterID)
	if err != nil {
		return err
	}
	if err := fn(&l); err != nil {
		return err
	}
	l.UpdatedAt = s.d.Now()
	return s.repo.Update(ctx, l)
}

func newPuppy(id, litterID string, in PuppyInput) Puppy {
	status := in.Status
	if status == "" {
		status = PuppyAvailable
	}
	return Puppy{
		ID:               id,
		LitterID:         litterID,
		Name:             strings.TrimSpace(in.Name),
		Gender:           in.Gender,
		Color:            strings.TrimSpace(in.Color),
		Markings:         strings.TrimSpace(in.Markings),
		BirthWeightGrams: in.BirthWeightGrams,
		ChipNumber:       strings.TrimSpace(in.ChipNumber),
		Status:           status,
		OwnerName:        strings.TrimSpace(in.OwnerName),
		Price:            in.Price,
		Notes:            strings.TrimSpace(in.Notes),
	}
}

func (s *Service) dam(ctx context.Context, dogID string) (dogs.Dog, error) {
	dog, err := s.dogs.GetByID(ctx, dogID)
	if err != nil {
		metrics.Rejected("litter", "dog_not_found")
		return dogs.Dog{}, fmt.Errorf("%w: %s", ErrDogNotFound, dogID)
	}
	if !dog.IsFemale() {
		metrics.Rejected("litter", "not_female")
		return dogs.Dog{}, ErrNotFemale
	}
	return dog, nil
}

// syncExpectedBirth garantiza exactamente un "birth_expected" vinculado a la camada,
// fechado en cubrición + 60 días.
func (s *Service) syncExpectedBirth(ctx context.Context, dam dogs.Dog, l Litter) error {
	linked, err := s.events.ListByLitter(ctx, l.ID)
	if err != nil {
		return err
	}

	var expected []events.BreedingEvent
	for _, e := range linked {
		if e.Type == events.EventTypeBirthExpected {
			expected = append(expected, e)
		}
	}

	date := ExpectedBirth(l.BreedingDate)
	title := expectedBirthTitle(dam.Name, l.StudName)
	notes := expectedBirthNotes(dam.Name, l.StudName, l.BreedingDate)

	if len(expected) == 0 {
		_, err := s.events.Derive(ctx, events.CreateInput{
			DogID:           l.DogID,
			Type:            events.EventTypeBirthExpected,
			Date:            date,
			Title:           title,
			Notes:           notes,
			RelatedLitterID: l.ID,
		})
		return err
	}

	keep := expected[0]
	if !dates.SameDay(keep.Date, date) || keep.Title != title || keep.Notes != notes {
		keep.Date = date
		keep.Title = title
		keep.Notes = notes
		if _, err := s.events.Replace(ctx, keep); err != nil {
			return err
		}
	}
	for _, dup := range expected[1:] {
		if err := s.events.Remove(ctx, dup.ID); err != nil && !errors.Is(err, events.ErrNotFound) {
			return err
		}
	}
	return nil
}

// shiftBirthEvents corre `days` todos los eventos de la camada salvo el "birth_expected".
func (s *Service) shiftBirthEvents(ctx context.Context, litterID string, days int) error {
	linked, err := s.events.ListByLitter(ctx, litterID)
	if err != nil {
		return err
	}
	for _, e := range linked {
		if e.Type == events.EventTypeBirthExpected {
			continue
		}
		e.Date = dates.AddDays(e.Date, days)
		if _, err := s.events.Replace(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func checkCounts(total, males, females int) error {
	if total < 0 || males < 0 || females < 0 {
		return fmt.Errorf("%w: puppy counts must not be negative", ErrInvalidInput)
	}
	if total > 0 && males+females > total {
		return ErrPuppyCountMismatch
	}
	return nil
}

func birthNotes(base string, l Litter) string {
	if l.PuppyCount <= 0 {
		return base
	}
	return fmt.Sprintf("%s: %d Welpen (%d Rüden, %d Hündinnen)", base, l.PuppyCount, l.Males, l.Females)
}
