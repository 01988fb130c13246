package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"kennel-records/internal/domain/heats"
)

type HeatsRepo struct {
	db *sql.DB
}

func NewHeatsRepo(db *sql.DB) *HeatsRepo {
	return &HeatsRepo{db: db}
}

const heatColumns = `
	id, dog_id, start_date, end_date,
	fertile_start, fertile_end, notes,
	created_at, updated_at`

func (r *HeatsRepo) Create(ctx context.Context, c heats.HeatCycle) error {
	fs, fe := fertileColumns(c.Fertile)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO heat_cycles (`+heatColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		c.ID,
		c.DogID,
		c.StartDate,
		toNullDate(c.EndDate),
		fs,
		fe,
		c.Notes,
		c.CreatedAt,
		c.UpdatedAt,
	)
	return err
}

func (r *HeatsRepo) Update(ctx context.Context, c heats.HeatCycle) error {
	fs, fe := fertileColumns(c.Fertile)
	res, err := r.db.ExecContext(ctx, `
		UPDATE heat_cycles
		SET
			start_date = $2,
			end_date = $3,
			fertile_start = $4,
			fertile_end = $5,
			notes = $6,
			updated_at = $7
		WHERE id = $1
	`,
		c.ID,
		c.StartDate,
		toNullDate(c.EndDate),
		fs,
		fe,
		c.Notes,
		c.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return heats.ErrNotFound
	}
	return nil
}

func (r *HeatsRepo) GetByID(ctx context.Context, id string) (heats.HeatCycle, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return heats.HeatCycle{}, heats.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+heatColumns+` FROM heat_cycles WHERE id = $1`, id)
	c, err := scanHeat(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return heats.HeatCycle{}, heats.ErrNotFound
		}
		return heats.HeatCycle{}, err
	}
	return c, nil
}

func (r *HeatsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM heat_cycles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return heats.ErrNotFound
	}
	return nil
}

func (r *HeatsRepo) ListByDog(ctx context.Context, dogID string) ([]heats.HeatCycle, error) {
	dogID = strings.TrimSpace(dogID)
	if dogID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+heatColumns+`
		FROM heat_cycles
		WHERE dog_id = $1
		ORDER BY start_date ASC, id ASC
	`, dogID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]heats.HeatCycle, 0)
	for rows.Next() {
		c, err := scanHeat(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func fertileColumns(w *heats.FertileWindow) (sql.NullTime, sql.NullTime) {
	if w == nil {
		return sql.NullTime{}, sql.NullTime{}
	}
	return sql.NullTime{Time: w.StartDate, Valid: true}, sql.NullTime{Time: w.EndDate, Valid: true}
}

func scanHeat(s scanner) (heats.HeatCycle, error) {
	var c heats.HeatCycle
	var end, fs, fe sql.NullTime
	if err := s.Scan(
		&c.ID,
		&c.DogID,
		&c.StartDate,
		&end,
		&fs,
		&fe,
		&c.Notes,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return heats.HeatCycle{}, err
	}
	c.StartDate = toDay(c.StartDate)
	c.EndDate = fromNullDate(end)
	if fs.Valid && fe.Valid {
		c.Fertile = &heats.FertileWindow{
			StartDate: *fromNullDate(fs),
			EndDate:   *fromNullDate(fe),
		}
	}
	return c, nil
}
