package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"kennel-records/internal/domain/litters"
)

type LittersRepo struct {
	db *sql.DB
}

func NewLittersRepo(db *sql.DB) *LittersRepo {
	return &LittersRepo{db: db}
}

const litterColumns = `
	id, dog_id, stud_name,
	breeding_date, birth_date,
	puppy_count, males, females,
	notes, created_at, updated_at`

func (r *LittersRepo) Create(ctx context.Context, l litters.Litter) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO litters (`+litterColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		l.ID,
		l.DogID,
		l.StudName,
		l.BreedingDate,
		toNullDate(l.BirthDate),
		l.PuppyCount,
		l.Males,
		l.Females,
		l.Notes,
		l.CreatedAt,
		l.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if err := replacePuppies(ctx, tx, l); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *LittersRepo) Update(ctx context.Context, l litters.Litter) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		UPDATE litters
		SET
			stud_name = $2,
			breeding_date = $3,
			birth_date = $4,
			puppy_count = $5,
			males = $6,
			females = $7,
			notes = $8,
			updated_at = $9
		WHERE id = $1
	`,
		l.ID,
		l.StudName,
		l.BreedingDate,
		toNullDate(l.BirthDate),
		l.PuppyCount,
		l.Males,
		l.Females,
		l.Notes,
		l.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return litters.ErrNotFound
	}
	if err := replacePuppies(ctx, tx, l); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *LittersRepo) GetByID(ctx context.Context, id string) (litters.Litter, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return litters.Litter{}, litters.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+litterColumns+` FROM litters WHERE id = $1`, id)
	l, err := scanLitter(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return litters.Litter{}, litters.ErrNotFound
		}
		return litters.Litter{}, err
	}

	pups, err := r.puppies(ctx, []string{l.ID})
	if err != nil {
		return litters.Litter{}, err
	}
	l.Puppies = orEmpty(pups[l.ID])
	return l, nil
}

// Delete: los cachorros se borran por ON DELETE CASCADE.
func (r *LittersRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM litters WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return litters.ErrNotFound
	}
	return nil
}

func (r *LittersRepo) List(ctx context.Context, filter litters.ListFilter) ([]litters.Litter, error) {
	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + litterColumns + ` FROM litters WHERE TRUE`)

	args := []any{}
	argN := 1
	if filter.DogID != "" {
		sb.WriteString(fmt.Sprintf(" AND dog_id = $%d", argN))
		args = append(args, filter.DogID)
		argN++
	}
	switch filter.Status {
	case litters.StatusBorn:
		sb.WriteString(" AND birth_date IS NOT NULL")
	case litters.StatusPlanned:
		sb.WriteString(" AND birth_date IS NULL")
	}
	sb.WriteString(" ORDER BY breeding_date DESC, id ASC")

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]litters.Litter, 0)
	idsList := make([]string, 0)
	for rows.Next() {
		l, err := scanLitter(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
		idsList = append(idsList, l.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	pups, err := r.puppies(ctx, idsList)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Puppies = orEmpty(pups[out[i].ID])
	}
	return out, nil
}

func (r *LittersRepo) puppies(ctx context.Context, litterIDs []string) (map[string][]litters.Puppy, error) {
	out := make(map[string][]litters.Puppy, len(litterIDs))
	if len(litterIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, litter_id, name, gender, color, markings,
			birth_weight_grams, chip_number, status, owner_name, price, notes
		FROM puppies
		WHERE litter_id = ANY($1)
		ORDER BY litter_id, position ASC
	`, litterIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p litters.Puppy
		var gender, status string
		if err := rows.Scan(
			&p.ID,
			&p.LitterID,
			&p.Name,
			&gender,
			&p.Color,
			&p.Markings,
			&p.BirthWeightGrams,
			&p.ChipNumber,
			&status,
			&p.OwnerName,
			&p.Price,
			&p.Notes,
		); err != nil {
			return nil, err
		}
		p.Gender = litters.PuppyGender(gender)
		p.Status = litters.PuppyStatus(status)
		out[p.LitterID] = append(out[p.LitterID], p)
	}
	return out, rows.Err()
}

func replacePuppies(ctx context.Context, tx *sql.Tx, l litters.Litter) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM puppies WHERE litter_id = $1`, l.ID); err != nil {
		return err
	}
	for i, p := range l.Puppies {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO puppies (
				id, litter_id, position, name, gender, color, markings,
				birth_weight_grams, chip_number, status, owner_name, price, notes
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		`,
			p.ID,
			l.ID,
			i,
			p.Name,
			string(p.Gender),
			p.Color,
			p.Markings,
			p.BirthWeightGrams,
			p.ChipNumber,
			string(p.Status),
			p.OwnerName,
			p.Price,
			p.Notes,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func scanLitter(s scanner) (litters.Litter, error) {
	var l litters.Litter
	var birth sql.NullTime
	if err := s.Scan(
		&l.ID,
		&l.DogID,
		&l.StudName,
		&l.BreedingDate,
		&birth,
		&l.PuppyCount,
		&l.Males,
		&l.Females,
		&l.Notes,
		&l.CreatedAt,
		&l.UpdatedAt,
	); err != nil {
		return litters.Litter{}, err
	}
	l.BreedingDate = toDay(l.BreedingDate)
	l.BirthDate = fromNullDate(birth)
	return l, nil
}

func orEmpty(p []litters.Puppy) []litters.Puppy {
	if p == nil {
		return []litters.Puppy{}
	}
	return p
}
