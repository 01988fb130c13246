package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"kennel-records/internal/domain/dogs"
)

type dogRepo struct {
	mu   sync.RWMutex
	byID map[string]dogs.Dog
}

func NewDogRepo() dogs.Repository {
	return &dogRepo{
		byID: make(map[string]dogs.Dog),
	}
}

func (r *dogRepo) Create(ctx context.Context, d dogs.Dog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(d.ID) == "" {
		return errors.New("dog id required")
	}
	if _, exists := r.byID[d.ID]; exists {
		return errors.New("dog already exists")
	}
	r.byID[d.ID] = cloneDog(d)
	return nil
}

func (r *dogRepo) Update(ctx context.Context, d dogs.Dog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(d.ID) == "" {
		return errors.New("dog id required")
	}
	if _, exists := r.byID[d.ID]; !exists {
		return dogs.ErrNotFound
	}
	r.byID[d.ID] = cloneDog(d)
	return nil
}

func (r *dogRepo) GetByID(ctx context.Context, id string) (dogs.Dog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byID[id]
	if !ok {
		return dogs.Dog{}, dogs.ErrNotFound
	}
	return cloneDog(d), nil
}

func (r *dogRepo) List(ctx context.Context, filter dogs.ListFilter) ([]dogs.Dog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]dogs.Dog, 0, len(r.byID))
	for _, d := range r.byID {
		if filter.Gender != "" && d.Gender != filter.Gender {
			continue
		}
		out = append(out, cloneDog(d))
	}

	// Orden por nombre; id desempata
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// cloneDog evita que el llamador comparta el slice de documentos con el store.
func cloneDog(d dogs.Dog) dogs.Dog {
	docs := make([]dogs.Document, len(d.Documents))
	copy(docs, d.Documents)
	d.Documents = docs
	if d.BirthDate != nil {
		bd := *d.BirthDate
		d.BirthDate = &bd
	}
	return d
}
