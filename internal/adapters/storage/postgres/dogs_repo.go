package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"kennel-records/internal/domain/dogs"
)

type DogsRepo struct {
	db *sql.DB
}

func NewDogsRepo(db *sql.DB) *DogsRepo {
	return &DogsRepo{db: db}
}

const dogColumns = `
	id, name, breed, birth_date, gender, color,
	chip_number, registration_number,
	health_info, pedigree, breeding_history, notes,
	document_seq, created_at, updated_at`

func (r *DogsRepo) Create(ctx context.Context, d dogs.Dog) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO dogs (`+dogColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`,
		d.ID,
		d.Name,
		d.Breed,
		toNullDate(d.BirthDate),
		string(d.Gender),
		d.Color,
		d.ChipNumber,
		d.RegistrationNumber,
		d.HealthInfo,
		d.Pedigree,
		d.BreedingHistory,
		d.Notes,
		d.DocumentSeq,
		d.CreatedAt,
		d.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if err := replaceDocuments(ctx, tx, d); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *DogsRepo) Update(ctx context.Context, d dogs.Dog) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		UPDATE dogs
		SET
			name = $2,
			breed = $3,
			birth_date = $4,
			gender = $5,
			color = $6,
			chip_number = $7,
			registration_number = $8,
			health_info = $9,
			pedigree = $10,
			breeding_history = $11,
			notes = $12,
			document_seq = $13,
			updated_at = $14
		WHERE id = $1
	`,
		d.ID,
		d.Name,
		d.Breed,
		toNullDate(d.BirthDate),
		string(d.Gender),
		d.Color,
		d.ChipNumber,
		d.RegistrationNumber,
		d.HealthInfo,
		d.Pedigree,
		d.BreedingHistory,
		d.Notes,
		d.DocumentSeq,
		d.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return dogs.ErrNotFound
	}
	if err := replaceDocuments(ctx, tx, d); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *DogsRepo) GetByID(ctx context.Context, id string) (dogs.Dog, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return dogs.Dog{}, dogs.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+dogColumns+` FROM dogs WHERE id = $1`, id)
	d, err := scanDog(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dogs.Dog{}, dogs.ErrNotFound
		}
		return dogs.Dog{}, err
	}

	docs, err := r.documents(ctx, []string{d.ID})
	if err != nil {
		return dogs.Dog{}, err
	}
	d.Documents = docs[d.ID]
	if d.Documents == nil {
		d.Documents = []dogs.Document{}
	}
	return d, nil
}

func (r *DogsRepo) List(ctx context.Context, filter dogs.ListFilter) ([]dogs.Dog, error) {
	q := `SELECT ` + dogColumns + ` FROM dogs`
	args := []any{}
	if filter.Gender != "" {
		q += ` WHERE gender = $1`
		args = append(args, string(filter.Gender))
	}
	q += ` ORDER BY name ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]dogs.Dog, 0)
	idsList := make([]string, 0)
	for rows.Next() {
		d, err := scanDog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
		idsList = append(idsList, d.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	docs, err := r.documents(ctx, idsList)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Documents = docs[out[i].ID]
		if out[i].Documents == nil {
			out[i].Documents = []dogs.Document{}
		}
	}
	return out, nil
}

func (r *DogsRepo) documents(ctx context.Context, dogIDs []string) (map[string][]dogs.Document, error) {
	out := make(map[string][]dogs.Document, len(dogIDs))
	if len(dogIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, dog_id, name, category, file_ref, file_type, size, date
		FROM dog_documents
		WHERE dog_id = ANY($1)
		ORDER BY dog_id, position ASC
	`, dogIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var doc dogs.Document
		var cat string
		if err := rows.Scan(
			&doc.ID,
			&doc.DogID,
			&doc.Name,
			&cat,
			&doc.FileRef,
			&doc.FileType,
			&doc.Size,
			&doc.Date,
		); err != nil {
			return nil, err
		}
		doc.Category = dogs.DocumentCategory(cat)
		doc.Date = toDay(doc.Date)
		out[doc.DogID] = append(out[doc.DogID], doc)
	}
	return out, rows.Err()
}

// replaceDocuments reescribe la lista embebida completa (los documentos viven dentro del perro).
func replaceDocuments(ctx context.Context, tx *sql.Tx, d dogs.Dog) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM dog_documents WHERE dog_id = $1`, d.ID); err != nil {
		return err
	}
	for i, doc := range d.Documents {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO dog_documents (id, dog_id, position, name, category, file_ref, file_type, size, date)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		`,
			doc.ID,
			d.ID,
			i,
			doc.Name,
			string(doc.Category),
			doc.FileRef,
			doc.FileType,
			doc.Size,
			doc.Date,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func scanDog(s scanner) (dogs.Dog, error) {
	var d dogs.Dog
	var bd sql.NullTime
	var gender string
	if err := s.Scan(
		&d.ID,
		&d.Name,
		&d.Breed,
		&bd,
		&gender,
		&d.Color,
		&d.ChipNumber,
		&d.RegistrationNumber,
		&d.HealthInfo,
		&d.Pedigree,
		&d.BreedingHistory,
		&d.Notes,
		&d.DocumentSeq,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return dogs.Dog{}, err
	}
	d.Gender = dogs.Gender(gender)
	d.BirthDate = fromNullDate(bd)
	return d, nil
}
