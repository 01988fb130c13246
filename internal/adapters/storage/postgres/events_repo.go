package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"kennel-records/internal/domain/events"
)

type EventsRepo struct {
	db *sql.DB
}

func NewEventsRepo(db *sql.DB) *EventsRepo {
	return &EventsRepo{db: db}
}

const eventColumns = `
	id, dog_id,
	type, date,
	title, notes, color, completed,
	related_litter_id, source_heat_cycle_id,
	created_at, updated_at`

func (r *EventsRepo) Create(ctx context.Context, e events.BreedingEvent) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO breeding_events (`+eventColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		e.ID,
		e.DogID,
		string(e.Type),
		e.Date,
		e.Title,
		e.Notes,
		e.Color,
		e.Completed,
		e.RelatedLitterID,
		e.SourceHeatCycleID,
		e.CreatedAt,
		e.UpdatedAt,
	)
	return err
}

func (r *EventsRepo) Update(ctx context.Context, e events.BreedingEvent) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE breeding_events
		SET
			type = $2,
			date = $3,
			title = $4,
			notes = $5,
			color = $6,
			completed = $7,
			updated_at = $8
		WHERE id = $1
	`,
		e.ID,
		string(e.Type),
		e.Date,
		e.Title,
		e.Notes,
		e.Color,
		e.Completed,
		e.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return events.ErrNotFound
	}
	return nil
}

func (r *EventsRepo) GetByID(ctx context.Context, id string) (events.BreedingEvent, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return events.BreedingEvent{}, events.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM breeding_events WHERE id = $1`, id)
	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return events.BreedingEvent{}, events.ErrNotFound
		}
		return events.BreedingEvent{}, err
	}
	return e, nil
}

func (r *EventsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM breeding_events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return events.ErrNotFound
	}
	return nil
}

func (r *EventsRepo) List(ctx context.Context, filter events.ListFilter) ([]events.BreedingEvent, error) {
	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + eventColumns + ` FROM breeding_events WHERE TRUE`)

	args := []any{}
	argN := 1

	if filter.DogID != "" {
		sb.WriteString(fmt.Sprintf(" AND dog_id = $%d", argN))
		args = append(args, filter.DogID)
		argN++
	}
	if filter.RelatedLitterID != "" {
		sb.WriteString(fmt.Sprintf(" AND related_litter_id = $%d", argN))
		args = append(args, filter.RelatedLitterID)
		argN++
	}
	if filter.SourceHeatCycleID != "" {
		sb.WriteString(fmt.Sprintf(" AND source_heat_cycle_id = $%d", argN))
		args = append(args, filter.SourceHeatCycleID)
		argN++
	}

	// types filter
	if len(filter.Types) > 0 {
		placeholders := make([]string, 0, len(filter.Types))
		for _, t := range filter.Types {
			placeholders = append(placeholders, fmt.Sprintf("$%d", argN))
			args = append(args, string(t))
			argN++
		}
		sb.WriteString(" AND type IN (" + strings.Join(placeholders, ",") + ")")
	}

	// from/to (inclusive, por día)
	if filter.From != nil {
		sb.WriteString(fmt.Sprintf(" AND date >= $%d", argN))
		args = append(args, *filter.From)
		argN++
	}
	if filter.To != nil {
		sb.WriteString(fmt.Sprintf(" AND date <= $%d", argN))
		args = append(args, *filter.To)
		argN++
	}

	sb.WriteString(" ORDER BY date ASC, created_at ASC, id ASC")
	sb.WriteString(fmt.Sprintf(" LIMIT $%d", argN))
	args = append(args, filter.EffectiveLimit())

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]events.BreedingEvent, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}

	return out, rows.Err()
}

func scanEvent(s scanner) (events.BreedingEvent, error) {
	var e events.BreedingEvent
	var typ string
	if err := s.Scan(
		&e.ID,
		&e.DogID,
		&typ,
		&e.Date,
		&e.Title,
		&e.Notes,
		&e.Color,
		&e.Completed,
		&e.RelatedLitterID,
		&e.SourceHeatCycleID,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return events.BreedingEvent{}, err
	}
	e.Type = events.EventType(typ)
	e.Date = toDay(e.Date)
	return e, nil
}
