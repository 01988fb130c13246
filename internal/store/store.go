// Package store arma el Breeding Record Store: los cuatro servicios de dominio
// sobre repositorios compartidos, con un único generador de ids, reloj, logger
// y lock por perro.
package store

import (
	"context"
	"database/sql"
	"time"

	mem "kennel-records/internal/adapters/storage/memory"
	pg "kennel-records/internal/adapters/storage/postgres"
	"kennel-records/internal/domain/deps"
	"kennel-records/internal/domain/dogs"
	"kennel-records/internal/domain/events"
	"kennel-records/internal/domain/heats"
	"kennel-records/internal/domain/litters"
	"kennel-records/internal/platform/dates"
	"kennel-records/internal/platform/ids"
	"kennel-records/internal/platform/keylock"
	"kennel-records/internal/platform/logger"
)

type Repositories struct {
	Dogs    dogs.Repository
	Events  events.Repository
	Heats   heats.Repository
	Litters litters.Repository
}

type Options struct {
	IDs ids.Generator    // default UUID
	Log logger.Logger    // default Nop
	Now func() time.Time // default time.Now
}

type Store struct {
	Dogs    *dogs.Service
	Events  *events.Service
	Heats   *heats.Service
	Litters *litters.Service

	d deps.Deps
}

func New(repos Repositories, opts Options) *Store {
	d := deps.Deps{
		IDs:   opts.IDs,
		Locks: keylock.New(),
		Log:   opts.Log,
		Now:   opts.Now,
	}.Defaults()

	dogsSvc := dogs.NewService(repos.Dogs, d)
	eventsSvc := events.NewService(repos.Events, dogsSvc, d)

	return &Store{
		Dogs:    dogsSvc,
		Events:  eventsSvc,
		Heats:   heats.NewService(repos.Heats, eventsSvc, dogsSvc, d),
		Litters: litters.NewService(repos.Litters, eventsSvc, dogsSvc, d),
		d:       d,
	}
}

func NewInMemory(opts Options) *Store {
	return New(Repositories{
		Dogs:    mem.NewDogRepo(),
		Events:  mem.NewEventRepo(),
		Heats:   mem.NewHeatRepo(),
		Litters: mem.NewLitterRepo(),
	}, opts)
}

func NewPostgres(db *sql.DB, opts Options) *Store {
	return New(Repositories{
		Dogs:    pg.NewDogsRepo(db),
		Events:  pg.NewEventsRepo(db),
		Heats:   pg.NewHeatsRepo(db),
		Litters: pg.NewLittersRepo(db),
	}, opts)
}

// UpcomingWindowDays es el horizonte de "próximos eventos" en Stats.
const UpcomingWindowDays = 30

const upcomingLimit = 10

type Stats struct {
	Dogs    int
	Females int
	Males   int

	Litters litters.Stats

	// Upcoming: eventos no completados entre hoy y hoy + 30 días.
	Upcoming []events.BreedingEvent
}

func (s *Store) Stats(ctx context.Context) (Stats, error) {
	all, err := s.Dogs.List(ctx, dogs.ListFilter{})
	if err != nil {
		return Stats{}, err
	}

	out := Stats{Dogs: len(all)}
	for _, d := range all {
		if d.IsFemale() {
			out.Females++
		} else {
			out.Males++
		}
	}

	if out.Litters, err = s.Litters.Stats(ctx); err != nil {
		return Stats{}, err
	}

	today := dates.Day(s.d.Now())
	until := dates.AddDays(today, UpcomingWindowDays)
	items, err := s.Events.List(ctx, events.ListFilter{From: &today, To: &until, Limit: events.MaxLimit})
	if err != nil {
		return Stats{}, err
	}

	out.Upcoming = make([]events.BreedingEvent, 0, upcomingLimit)
	for _, e := range items {
		if e.Completed {
			continue
		}
		out.Upcoming = append(out.Upcoming, e)
		if len(out.Upcoming) == upcomingLimit {
			break
		}
	}
	return out, nil
}
