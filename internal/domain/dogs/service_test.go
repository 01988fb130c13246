package dogs

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"kennel-records/internal/domain/deps"
	"kennel-records/internal/platform/ids"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Dog
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Dog{}}
}

func (r *testRepo) Create(ctx context.Context, d Dog) error {
	if _, ok := r.byID[d.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[d.ID] = d
	return nil
}

func (r *testRepo) Update(ctx context.Context, d Dog) error {
	if _, ok := r.byID[d.ID]; !ok {
		return ErrNotFound
	}
	r.byID[d.ID] = d
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Dog, error) {
	d, ok := r.byID[id]
	if !ok {
		return Dog{}, ErrNotFound
	}
	docs := make([]Document, len(d.Documents))
	copy(docs, d.Documents)
	d.Documents = docs
	return d, nil
}

func (r *testRepo) List(ctx context.Context, filter ListFilter) ([]Dog, error) {
	out := make([]Dog, 0)
	for _, d := range r.byID {
		if filter.Gender != "" && d.Gender != filter.Gender {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func newTestService() *Service {
	return NewService(newTestRepo(), deps.Deps{
		IDs: ids.NewSequence(),
		Now: func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC) },
	})
}

// -------------------------
// Tests
// -------------------------

func TestCreate_Validation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, Input{Name: "  ", Gender: GenderFemale}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty name, got %v", err)
	}
	if _, err := svc.Create(ctx, Input{Name: "Luna", Gender: "unknown"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad gender, got %v", err)
	}

	d, err := svc.Create(ctx, Input{Name: " Luna ", Gender: GenderFemale})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Name != "Luna" {
		t.Fatalf("expected trimmed name, got %q", d.Name)
	}
	if d.ID != "dog-1" {
		t.Fatalf("expected sequence id dog-1, got %q", d.ID)
	}
	if !d.IsFemale() {
		t.Fatalf("expected female")
	}
}

func TestUpdate_ReplacesProfileKeepsDocuments(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	birth := time.Date(2021, 3, 14, 15, 0, 0, 0, time.UTC)
	d, err := svc.Create(ctx, Input{Name: "Luna", Gender: GenderFemale, Breed: "Labrador", BirthDate: &birth})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.AddDocument(ctx, d.ID, DocumentInput{Name: "Ahnentafel.pdf", Category: DocumentPedigree}); err != nil {
		t.Fatalf("add document: %v", err)
	}

	updated, err := svc.Update(ctx, d.ID, Input{Name: "Luna", Gender: GenderFemale, Color: "gelb"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Breed != "" || updated.BirthDate != nil {
		t.Fatalf("expected wholesale replace, got breed=%q birth=%v", updated.Breed, updated.BirthDate)
	}
	if len(updated.Documents) != 1 {
		t.Fatalf("expected documents kept, got %d", len(updated.Documents))
	}

	if _, err := svc.Update(ctx, "dog-404", Input{Name: "X", Gender: GenderMale}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDocuments_IDsNeverReused(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	d, err := svc.Create(ctx, Input{Name: "Luna", Gender: GenderFemale})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	first, err := svc.AddDocument(ctx, d.ID, DocumentInput{Name: "a.pdf"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	second, err := svc.AddDocument(ctx, d.ID, DocumentInput{Name: "b.pdf"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if first.ID != "dog-1-doc-1" || second.ID != "dog-1-doc-2" {
		t.Fatalf("unexpected ids %q %q", first.ID, second.ID)
	}
	if first.Category != DocumentOther {
		t.Fatalf("expected default category other, got %q", first.Category)
	}
	if first.Date.Format("2006-01-02") != "2025-06-01" {
		t.Fatalf("expected default date today, got %s", first.Date)
	}

	if err := svc.RemoveDocument(ctx, d.ID, second.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	third, err := svc.AddDocument(ctx, d.ID, DocumentInput{Name: "c.pdf"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if third.ID != "dog-1-doc-3" {
		t.Fatalf("expected dog-1-doc-3 after removal, got %q", third.ID)
	}

	if err := svc.RemoveDocument(ctx, d.ID, second.ID); !errors.Is(err, ErrDocNotFound) {
		t.Fatalf("expected ErrDocNotFound, got %v", err)
	}
	if _, err := svc.AddDocument(ctx, d.ID, DocumentInput{Name: ""}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	got, err := svc.GetByID(ctx, d.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Documents) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(got.Documents))
	}
}

func TestList_GenderFilter(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	for _, in := range []Input{
		{Name: "Luna", Gender: GenderFemale},
		{Name: "Max", Gender: GenderMale},
		{Name: "Bella", Gender: GenderFemale},
	} {
		if _, err := svc.Create(ctx, in); err != nil {
			t.Fatalf("create %s: %v", in.Name, err)
		}
	}

	females, err := svc.List(ctx, ListFilter{Gender: GenderFemale})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(females) != 2 || females[0].Name != "Bella" {
		t.Fatalf("unexpected females: %+v", females)
	}
}
