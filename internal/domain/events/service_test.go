package events

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kennel-records/internal/domain/deps"
	"kennel-records/internal/domain/dogs"
	"kennel-records/internal/platform/ids"
)

// -------------------------
// Fakes
// -------------------------

type fakeDogs map[string]dogs.Dog

func (f fakeDogs) GetByID(ctx context.Context, id string) (dogs.Dog, error) {
	d, ok := f[id]
	if !ok {
		return dogs.Dog{}, dogs.ErrNotFound
	}
	return d, nil
}

type testRepo struct {
	byID map[string]BreedingEvent
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]BreedingEvent{}}
}

func (r *testRepo) Create(ctx context.Context, e BreedingEvent) error {
	if _, ok := r.byID[e.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[e.ID] = e
	return nil
}

func (r *testRepo) Update(ctx context.Context, e BreedingEvent) error {
	if _, ok := r.byID[e.ID]; !ok {
		return ErrNotFound
	}
	r.byID[e.ID] = e
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (BreedingEvent, error) {
	e, ok := r.byID[id]
	if !ok {
		return BreedingEvent{}, ErrNotFound
	}
	return e, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) List(ctx context.Context, filter ListFilter) ([]BreedingEvent, error) {
	out := make([]BreedingEvent, 0)
	for _, e := range r.byID {
		if filter.Matches(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	if limit := filter.EffectiveLimit(); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(newTestRepo(), fakeDogs{
		"dog-1": {ID: "dog-1", Name: "Luna", Gender: dogs.GenderFemale},
	}, deps.Deps{IDs: ids.NewSequence()})
}

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

// -------------------------
// Tests
// -------------------------

func TestCreate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{DogID: "dog-1", Type: "party", Date: d(2025, 1, 1)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, CreateInput{DogID: "dog-1", Type: EventTypeReminder})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, CreateInput{DogID: "dog-9", Type: EventTypeReminder, Date: d(2025, 1, 1)})
	assert.ErrorIs(t, err, ErrDogNotFound)

	// hora del día se descarta
	e, err := svc.Create(ctx, CreateInput{
		DogID: "dog-1",
		Type:  EventTypeUltrasound,
		Date:  time.Date(2025, 3, 20, 18, 45, 0, 0, time.UTC),
		Title: " Ultraschall ",
	})
	require.NoError(t, err)
	assert.Equal(t, "be-1", e.ID)
	assert.Equal(t, d(2025, 3, 20), e.Date)
	assert.Equal(t, "Ultraschall", e.Title)
	assert.Equal(t, EventTypeUltrasound.Color(), e.Color)
	assert.False(t, e.Derived())
}

func TestUpdate_KeepsLinks(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	e, err := svc.Derive(ctx, CreateInput{
		DogID:           "dog-1",
		Type:            EventTypeDeworming,
		Date:            d(2025, 3, 26),
		RelatedLitterID: "lit-1",
	})
	require.NoError(t, err)
	assert.True(t, e.Derived())

	updated, err := svc.Update(ctx, e.ID, UpdateInput{
		Type:      EventTypeDeworming,
		Date:      d(2025, 3, 27),
		Title:     "1. Entwurmung",
		Completed: true,
		Color:     "#000000",
	})
	require.NoError(t, err)
	assert.Equal(t, "lit-1", updated.RelatedLitterID)
	assert.True(t, updated.Completed)
	assert.Equal(t, "#000000", updated.Color)

	_, err = svc.Update(ctx, "be-404", UpdateInput{Type: EventTypeOther, Date: d(2025, 1, 1)})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList_Filters(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	seed := []CreateInput{
		{DogID: "dog-1", Type: EventTypeVaccination, Date: d(2025, 5, 28)},
		{DogID: "dog-1", Type: EventTypeDeworming, Date: d(2025, 3, 26), RelatedLitterID: "lit-1"},
		{DogID: "dog-1", Type: EventTypeHeatStart, Date: d(2025, 4, 5), SourceHeatCycleID: "hc-1"},
		{DogID: "dog-2", Type: EventTypeDeworming, Date: d(2025, 4, 1)},
	}
	for _, in := range seed {
		_, err := svc.Derive(ctx, in)
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, d(2025, 3, 26), all[0].Date)
	assert.Equal(t, d(2025, 5, 28), all[3].Date)

	worm, err := svc.List(ctx, ListFilter{Types: []EventType{EventTypeDeworming}})
	require.NoError(t, err)
	assert.Len(t, worm, 2)

	from, to := d(2025, 4, 1), d(2025, 4, 5)
	ranged, err := svc.List(ctx, ListFilter{DogID: "dog-1", From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, EventTypeHeatStart, ranged[0].Type)

	limited, err := svc.List(ctx, ListFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	bySource, err := svc.ListBySource(ctx, "hc-1")
	require.NoError(t, err)
	assert.Len(t, bySource, 1)

	none, err := svc.ListByLitter(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRemoveByLitter_Idempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Derive(ctx, CreateInput{
			DogID:           "dog-1",
			Type:            EventTypeReminder,
			Date:            d(2025, 4, 1+i),
			RelatedLitterID: "lit-1",
		})
		require.NoError(t, err)
	}
	keep, err := svc.Derive(ctx, CreateInput{DogID: "dog-1", Type: EventTypeReminder, Date: d(2025, 4, 1), RelatedLitterID: "lit-2"})
	require.NoError(t, err)

	n, err := svc.RemoveByLitter(ctx, "lit-1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = svc.RemoveByLitter(ctx, "lit-1")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, err = svc.GetByID(ctx, keep.ID)
	assert.NoError(t, err)

	assert.ErrorIs(t, svc.Remove(ctx, "be-404"), ErrNotFound)
}

func TestListFilter_EffectiveLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, ListFilter{}.EffectiveLimit())
	assert.Equal(t, MaxLimit, ListFilter{Limit: 5000}.EffectiveLimit())
	assert.Equal(t, 10, ListFilter{Limit: 10}.EffectiveLimit())
}
