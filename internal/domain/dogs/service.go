package dogs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kennel-records/internal/domain/deps"
	"kennel-records/internal/platform/dates"
	"kennel-records/internal/platform/ids"
	"kennel-records/internal/platform/metrics"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("dog not found")
	ErrDocNotFound  = errors.New("document not found")
)

type Service struct {
	repo Repository
	d    deps.Deps
}

func NewService(repo Repository, d deps.Deps) *Service {
	return &Service{
		repo: repo,
		d:    d.Defaults(),
	}
}

// Input es el perfil completo; Update reemplaza todos los campos editables.
type Input struct {
	Name               string
	Breed              string
	BirthDate          *time.Time
	Gender             Gender
	Color              string
	ChipNumber         string
	RegistrationNumber string
	HealthInfo         string
	Pedigree           string
	BreedingHistory    string
	Notes              string
}

func (in Input) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !in.Gender.Valid() {
		return fmt.Errorf("%w: gender must be male or female", ErrInvalidInput)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, in Input) (Dog, error) {
	if err := in.validate(); err != nil {
		metrics.Rejected("dog", "invalid_input")
		return Dog{}, err
	}

	now := s.d.Now()
	d := Dog{
		ID:        s.d.IDs.New(ids.PrefixDog),
		Documents: []Document{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	apply(&d, in)

	if err := s.repo.Create(ctx, d); err != nil {
		return Dog{}, err
	}

	metrics.Operation("dog", "create")
	s.d.Log.Info("dog created", map[string]any{"dog_id": d.ID, "gender": string(d.Gender)})
	return d, nil
}

func (s *Service) Update(ctx context.Context, id string, in Input) (Dog, error) {
	if err := in.validate(); err != nil {
		metrics.Rejected("dog", "invalid_input")
		return Dog{}, err
	}

	unlock := s.d.Locks.Lock(id)
	defer unlock()

	d, err := s.GetByID(ctx, id)
	if err != nil {
		return Dog{}, err
	}

	apply(&d, in)
	d.UpdatedAt = s.d.Now()

	if err := s.repo.Update(ctx, d); err != nil {
		return Dog{}, err
	}

	metrics.Operation("dog", "update")
	return d, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Dog, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Dog{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Dog, error) {
	return s.repo.List(ctx, filter)
}

type DocumentInput struct {
	Name     string
	Category DocumentCategory
	FileRef  string
	FileType string
	Size     int64
	Date     *time.Time // default: hoy
}

// AddDocument registra metadata de un archivo subido.
// El id es "{dogId}-doc-{n}" con n secuencial por perro (no se reutiliza).
func (s *Service) AddDocument(ctx context.Context, dogID string, in DocumentInput) (Document, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Document{}, fmt.Errorf("%w: document name is required", ErrInvalidInput)
	}

	unlock := s.d.Locks.Lock(dogID)
	defer unlock()

	d, err := s.GetByID(ctx, dogID)
	if err != nil {
		return Document{}, err
	}

	cat := in.Category
	if cat == "" {
		cat = DocumentOther
	}
	date := dates.Day(s.d.Now())
	if in.Date != nil {
		date = dates.Day(*in.Date)
	}

	d.DocumentSeq++
	doc := Document{
		ID:       ids.DocumentID(d.ID, d.DocumentSeq),
		DogID:    d.ID,
		Name:     strings.TrimSpace(in.Name),
		Category: cat,
		FileRef:  strings.TrimSpace(in.FileRef),
		FileType: strings.TrimSpace(in.FileType),
		Size:     in.Size,
		Date:     date,
	}
	d.Documents = append(d.Documents, doc)
	d.UpdatedAt = s.d.Now()

	if err := s.repo.Update(ctx, d); err != nil {
		return Document{}, err
	}

	metrics.Operation("document", "create")
	return doc, nil
}

func (s *Service) RemoveDocument(ctx context.Context, dogID, docID string) error {
	unlock := s.d.Locks.Lock(dogID)
	defer unlock()

	d, err := s.GetByID(ctx, dogID)
	if err != nil {
		return err
	}

	kept := make([]Document, 0, len(d.Documents))
	found := false
	for _, doc := range d.Documents {
		if doc.ID == docID {
			found = true
			continue
		}
		kept = append(kept, doc)
	}
	if !found {
		return ErrDocNotFound
	}

	d.Documents = kept
	d.UpdatedAt = s.d.Now()
	if err := s.repo.Update(ctx, d); err != nil {
		return err
	}

	metrics.Operation("document", "delete")
	return nil
}

func apply(d *Dog, in Input) {
	d.Name = strings.TrimSpace(in.Name)
	d.Breed = strings.TrimSpace(in.Breed)
	d.Gender = in.Gender
	d.Color = strings.TrimSpace(in.Color)
	d.ChipNumber = strings.TrimSpace(in.ChipNumber)
	d.RegistrationNumber = strings.TrimSpace(in.RegistrationNumber)
	d.HealthInfo = strings.TrimSpace(in.HealthInfo)
	d.Pedigree = strings.TrimSpace(in.Pedigree)
	d.BreedingHistory = strings.TrimSpace(in.BreedingHistory)
	d.Notes = strings.TrimSpace(in.Notes)

	if in.BirthDate != nil {
		bd := dates.Day(*in.BirthDate)
		d.BirthDate = &bd
	} else {
		d.BirthDate = nil
	}
}
