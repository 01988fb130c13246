package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kennel-records/internal/domain/dogs"
	"kennel-records/internal/domain/events"
	"kennel-records/internal/domain/heats"
	"kennel-records/internal/domain/litters"
	"kennel-records/internal/platform/dates"
	"kennel-records/internal/platform/ids"
	"kennel-records/internal/store"
)

var fixedNow = time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)

func newStore(t *testing.T) *store.Store {
	t.Helper()
	return store.NewInMemory(store.Options{
		IDs: ids.NewSequence(),
		Now: func() time.Time { return fixedNow },
	})
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := dates.Parse(s)
	require.NoError(t, err)
	return d
}

func addDog(t *testing.T, st *store.Store, name string, g dogs.Gender) dogs.Dog {
	t.Helper()
	d, err := st.Dogs.Create(context.Background(), dogs.Input{Name: name, Gender: g, Breed: "Labrador Retriever"})
	require.NoError(t, err)
	return d
}

func formatAll(items []events.BreedingEvent) []string {
	out := make([]string, 0, len(items))
	for _, e := range items {
		out = append(out, dates.Format(e.Date))
	}
	return out
}

func TestLunaScenario(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	luna := addDog(t, st, "Luna", dogs.GenderFemale)

	// celo con ventana fértil
	c, err := st.Heats.Add(ctx, heats.AddInput{
		DogID:            luna.ID,
		StartDate:        day(t, "2025-04-05"),
		CalculateFertile: true,
	})
	require.NoError(t, err)
	require.NotNil(t, c.Fertile)
	assert.Equal(t, "2025-04-14", dates.Format(c.Fertile.StartDate))
	assert.Equal(t, "2025-04-19", dates.Format(c.Fertile.EndDate))

	heatEvents, err := st.Events.ListBySource(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-04-05", "2025-04-14"}, formatAll(heatEvents))

	// camada planificada
	l, err := st.Litters.Add(ctx, litters.AddInput{DogID: luna.ID, BreedingDate: day(t, "2025-01-01")})
	require.NoError(t, err)
	assert.Equal(t, litters.StatusPlanned, l.Status())

	linked, err := st.Events.ListByLitter(ctx, l.ID)
	require.NoError(t, err)
	require.Len(t, linked, 1)
	assert.Equal(t, events.EventTypeBirthExpected, linked[0].Type)
	assert.Equal(t, "2025-03-02", dates.Format(linked[0].Date))
	assert.Contains(t, linked[0].Title, "Rüde")

	// parto
	born, created, err := st.Litters.RecordBirth(ctx, l.ID, litters.BirthInput{BirthDate: day(t, "2025-03-05")})
	require.NoError(t, err)
	assert.Equal(t, litters.StatusBorn, born.Status())
	assert.Len(t, created, len(litters.BirthSchedule))

	byType := map[events.EventType][]string{}
	for _, e := range created {
		assert.Equal(t, l.ID, e.RelatedLitterID)
		byType[e.Type] = append(byType[e.Type], dates.Format(e.Date))
	}
	assert.Contains(t, byType[events.EventTypeDeworming], "2025-03-26")
	assert.Equal(t, []string{"2025-05-07"}, byType[events.EventTypeHandover])

	// borrar camada
	require.NoError(t, st.Litters.Remove(ctx, l.ID))
	linked, err = st.Events.ListByLitter(ctx, l.ID)
	require.NoError(t, err)
	assert.Empty(t, linked)

	// idempotente
	require.NoError(t, st.Litters.Remove(ctx, l.ID))

	// los eventos del celo no se tocan
	heatEvents, err = st.Events.ListBySource(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, heatEvents, 2)
}

func TestSeed_LoadsDemoData(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	rep, err := st.Seed(ctx)
	require.NoError(t, err)
	assert.False(t, rep.Skipped)
	assert.Equal(t, 3, rep.Dogs)
	assert.Equal(t, 3, rep.Heats)
	assert.Equal(t, 2, rep.Litters)
	assert.Equal(t, 2, rep.Events)

	all, err := st.Events.List(ctx, events.ListFilter{Limit: events.MaxLimit})
	require.NoError(t, err)
	// 3 celos con fértil (6) + 2 birth_expected + 13 post-parto + 2 manuales
	assert.Len(t, all, 23)

	females, err := st.Dogs.List(ctx, dogs.ListFilter{Gender: dogs.GenderFemale})
	require.NoError(t, err)
	require.Len(t, females, 2)
	assert.Equal(t, "Bella", females[0].Name)
	assert.Equal(t, "Luna", females[1].Name)
	assert.Len(t, females[1].Documents, 2)

	// segunda vez no duplica
	rep, err = st.Seed(ctx)
	require.NoError(t, err)
	assert.True(t, rep.Skipped)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	_, err := st.Seed(ctx)
	require.NoError(t, err)

	s, err := st.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, s.Dogs)
	assert.Equal(t, 2, s.Females)
	assert.Equal(t, 1, s.Males)

	assert.Equal(t, 2, s.Litters.Total)
	assert.Equal(t, 1, s.Litters.Born)
	assert.Equal(t, 1, s.Litters.Planned)
	assert.Equal(t, 1, s.Litters.Overdue) // B-Wurf esperado 2025-04-22
	assert.Equal(t, 5, s.Litters.Puppies)
	require.NotNil(t, s.Litters.SuccessRate)
	assert.InDelta(t, 0.5, *s.Litters.SuccessRate, 1e-9)

	today := dates.Day(fixedNow)
	limit := dates.AddDays(today, store.UpcomingWindowDays)
	for _, e := range s.Upcoming {
		assert.False(t, e.Date.Before(today), e.Title)
		assert.False(t, e.Date.After(limit), e.Title)
	}
}

func TestReferentialErrors(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	rex := addDog(t, st, "Max", dogs.GenderMale)

	_, err := st.Heats.Add(ctx, heats.AddInput{DogID: "dog-missing", StartDate: day(t, "2025-04-05")})
	assert.ErrorIs(t, err, heats.ErrDogNotFound)

	_, err = st.Heats.Add(ctx, heats.AddInput{DogID: rex.ID, StartDate: day(t, "2025-04-05")})
	assert.ErrorIs(t, err, heats.ErrNotFemale)

	_, err = st.Litters.Add(ctx, litters.AddInput{DogID: rex.ID, BreedingDate: day(t, "2025-01-01")})
	assert.ErrorIs(t, err, litters.ErrNotFemale)

	_, err = st.Events.Create(ctx, events.CreateInput{DogID: "dog-missing", Type: events.EventTypeOther, Date: day(t, "2025-01-01")})
	assert.ErrorIs(t, err, events.ErrDogNotFound)

	all, err := st.Events.List(ctx, events.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestIDsUniqueUnderSequence(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	luna := addDog(t, st, "Luna", dogs.GenderFemale)

	seen := map[string]bool{luna.ID: true}
	for i := 0; i < 20; i++ {
		e, err := st.Events.Create(ctx, events.CreateInput{
			DogID: luna.ID,
			Type:  events.EventTypeReminder,
			Date:  day(t, "2025-01-01"),
		})
		require.NoError(t, err)
		require.False(t, seen[e.ID], "duplicate id %s", e.ID)
		seen[e.ID] = true
	}
	assert.True(t, errors.Is(st.Events.Remove(ctx, "be-unknown"), events.ErrNotFound))
}
