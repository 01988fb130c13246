package heats_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mem "kennel-records/internal/adapters/storage/memory"
	"kennel-records/internal/domain/deps"
	"kennel-records/internal/domain/dogs"
	"kennel-records/internal/domain/events"
	"kennel-records/internal/domain/heats"
	"kennel-records/internal/platform/dates"
	"kennel-records/internal/platform/ids"
)

type fixture struct {
	events *events.Service
	heats  *heats.Service
	luna   dogs.Dog
	male   dogs.Dog
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()

	d := deps.Deps{IDs: ids.NewSequence()}.Defaults()
	dogsSvc := dogs.NewService(mem.NewDogRepo(), d)
	eventsSvc := events.NewService(mem.NewEventRepo(), dogsSvc, d)

	luna, err := dogsSvc.Create(ctx, dogs.Input{Name: "Luna", Gender: dogs.GenderFemale})
	require.NoError(t, err)
	male, err := dogsSvc.Create(ctx, dogs.Input{Name: "Max", Gender: dogs.GenderMale})
	require.NoError(t, err)

	return fixture{
		events: eventsSvc,
		heats:  heats.NewService(mem.NewHeatRepo(), eventsSvc, dogsSvc, d),
		luna:   luna,
		male:   male,
	}
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := dates.Parse(s)
	require.NoError(t, err)
	return d
}

func (f fixture) add(t *testing.T, start string, fertile bool) heats.HeatCycle {
	t.Helper()
	c, err := f.heats.Add(context.Background(), heats.AddInput{
		DogID:            f.luna.ID,
		StartDate:        day(t, start),
		CalculateFertile: fertile,
	})
	require.NoError(t, err)
	return c
}

func (f fixture) linked(t *testing.T, cycleID string) map[events.EventType]events.BreedingEvent {
	t.Helper()
	items, err := f.events.ListBySource(context.Background(), cycleID)
	require.NoError(t, err)

	out := make(map[events.EventType]events.BreedingEvent, len(items))
	for _, e := range items {
		out[e.Type] = e
	}
	require.Len(t, out, len(items), "duplicate event type for cycle")
	return out
}

func TestFertileWindowFor(t *testing.T) {
	w := heats.FertileWindowFor(time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "2025-04-14", dates.Format(w.StartDate))
	assert.Equal(t, "2025-04-19", dates.Format(w.EndDate))
}

func TestAdd_WithFertileWindow(t *testing.T) {
	f := newFixture(t)
	c := f.add(t, "2025-04-05", true)

	require.NotNil(t, c.Fertile)
	assert.Equal(t, "2025-04-14", dates.Format(c.Fertile.StartDate))
	assert.Equal(t, "2025-04-19", dates.Format(c.Fertile.EndDate))

	ev := f.linked(t, c.ID)
	require.Len(t, ev, 2)
	assert.Equal(t, "2025-04-05", dates.Format(ev[events.EventTypeHeatStart].Date))
	assert.Equal(t, "2025-04-14", dates.Format(ev[events.EventTypeBreeding].Date))
	assert.Contains(t, ev[events.EventTypeBreeding].Title, "Fruchtbare Tage")
	assert.Equal(t, f.luna.ID, ev[events.EventTypeHeatStart].DogID)
}

func TestAdd_WithoutFertileWindow(t *testing.T) {
	f := newFixture(t)
	c := f.add(t, "2025-04-05", false)

	assert.Nil(t, c.Fertile)
	ev := f.linked(t, c.ID)
	require.Len(t, ev, 1)
	_, ok := ev[events.EventTypeHeatStart]
	assert.True(t, ok)
}

func TestAdd_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.heats.Add(ctx, heats.AddInput{DogID: f.male.ID, StartDate: day(t, "2025-04-05")})
	assert.ErrorIs(t, err, heats.ErrNotFemale)

	_, err = f.heats.Add(ctx, heats.AddInput{DogID: "dog-404", StartDate: day(t, "2025-04-05")})
	assert.ErrorIs(t, err, heats.ErrDogNotFound)

	end := day(t, "2025-04-01")
	_, err = f.heats.Add(ctx, heats.AddInput{DogID: f.luna.ID, StartDate: day(t, "2025-04-05"), EndDate: &end})
	assert.ErrorIs(t, err, heats.ErrInvalidInput)

	_, err = f.heats.Add(ctx, heats.AddInput{DogID: f.luna.ID})
	assert.ErrorIs(t, err, heats.ErrInvalidInput)

	all, err := f.events.List(ctx, events.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestAdd_MinimumSpacing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.add(t, "2025-04-05", false)

	_, err := f.heats.Add(ctx, heats.AddInput{DogID: f.luna.ID, StartDate: day(t, "2025-08-01")})
	require.ErrorIs(t, err, heats.ErrTooSoon)

	var se *heats.SpacingError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 118, se.Days)
	assert.Equal(t, "2025-04-05", dates.Format(se.Neighbor))

	// también hacia atrás
	_, err = f.heats.Add(ctx, heats.AddInput{DogID: f.luna.ID, StartDate: day(t, "2024-12-01")})
	assert.ErrorIs(t, err, heats.ErrTooSoon)

	// exactamente 6 meses antes está permitido
	f.add(t, "2024-10-05", false)

	// force salta la regla
	forced, err := f.heats.Add(ctx, heats.AddInput{DogID: f.luna.ID, StartDate: day(t, "2025-08-01"), Force: true})
	require.NoError(t, err)
	assert.Len(t, f.linked(t, forced.ID), 1)

	items, err := f.heats.ListByDog(ctx, f.luna.ID)
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestUpdate_ResyncsOwnEventsOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.add(t, "2024-10-01", true)
	second := f.add(t, "2025-04-05", true)

	// editar no aplica la separación mínima
	updated, err := f.heats.Update(ctx, second.ID, heats.UpdateInput{
		StartDate:        day(t, "2025-01-10"),
		CalculateFertile: true,
		Notes:            "verschoben",
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-01-19", dates.Format(updated.Fertile.StartDate))

	ev := f.linked(t, second.ID)
	assert.Equal(t, "2025-01-10", dates.Format(ev[events.EventTypeHeatStart].Date))
	assert.Equal(t, "verschoben", ev[events.EventTypeHeatStart].Notes)
	assert.Equal(t, "2025-01-19", dates.Format(ev[events.EventTypeBreeding].Date))

	untouched := f.linked(t, first.ID)
	assert.Equal(t, "2024-10-01", dates.Format(untouched[events.EventTypeHeatStart].Date))
	assert.Equal(t, "2024-10-10", dates.Format(untouched[events.EventTypeBreeding].Date))
}

func TestUpdate_TogglesFertileEvent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.add(t, "2025-04-05", true)

	off, err := f.heats.Update(ctx, c.ID, heats.UpdateInput{StartDate: day(t, "2025-04-05")})
	require.NoError(t, err)
	assert.Nil(t, off.Fertile)
	assert.Len(t, f.linked(t, c.ID), 1)

	_, err = f.heats.Update(ctx, c.ID, heats.UpdateInput{StartDate: day(t, "2025-04-05"), CalculateFertile: true})
	require.NoError(t, err)
	assert.Len(t, f.linked(t, c.ID), 2)

	_, err = f.heats.Update(ctx, "hc-404", heats.UpdateInput{StartDate: day(t, "2025-04-05")})
	assert.ErrorIs(t, err, heats.ErrNotFound)
}

func TestRemove_DeletesLinkedEvents(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.add(t, "2025-04-05", true)
	other := f.add(t, "2024-09-01", false)

	require.NoError(t, f.heats.Remove(ctx, c.ID))
	assert.Empty(t, f.linked(t, c.ID))
	assert.Len(t, f.linked(t, other.ID), 1)

	assert.ErrorIs(t, f.heats.Remove(ctx, c.ID), heats.ErrNotFound)
}

func TestSummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.heats.PredictedNext(ctx, f.luna.ID)
	assert.ErrorIs(t, err, heats.ErrNotFound)

	empty, err := f.heats.Summary(ctx, f.luna.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Count)
	assert.Nil(t, empty.Last)
	assert.Nil(t, empty.PredictedNext)

	f.add(t, "2024-10-01", false)
	last := f.add(t, "2025-04-05", false)

	next, err := f.heats.PredictedNext(ctx, f.luna.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-10-02", dates.Format(next))

	sum, err := f.heats.Summary(ctx, f.luna.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Count)
	require.NotNil(t, sum.Last)
	assert.Equal(t, last.ID, sum.Last.ID)
	require.NotNil(t, sum.AverageCycleDays)
	assert.InDelta(t, 186.0, *sum.AverageCycleDays, 1e-9)

	_, err = f.heats.Summary(ctx, "dog-404")
	assert.ErrorIs(t, err, heats.ErrDogNotFound)
}
