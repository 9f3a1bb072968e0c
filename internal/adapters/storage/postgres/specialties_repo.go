package postgres

import (
	"context"
	"database/sql"
	"errors"

	"clinic-appointments/internal/domain/specialties"
)

type specialtiesRepo struct {
	db *sql.DB
}

func NewSpecialtiesRepo(db *sql.DB) specialties.Repository {
	return &specialtiesRepo{db: db}
}

// Upsert inserta la especialidad si no existe. Si ya existe conserva el
// nombre registrado, igual que el adapter en memoria.
func (r *specialtiesRepo) Upsert(ctx context.Context, sp specialties.Specialty) error {
	const q = `
		INSERT INTO specialties (id, name)
		VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING`

	_, err := r.db.ExecContext(ctx, q, sp.ID, sp.Name)
	return err
}

func (r *specialtiesRepo) GetByID(ctx context.Context, id string) (specialties.Specialty, error) {
	const q = `SELECT id, name FROM specialties WHERE id = $1`

	var sp specialties.Specialty
	err := r.db.QueryRowContext(ctx, q, id).Scan(&sp.ID, &sp.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return specialties.Specialty{}, specialties.ErrNotFound
	}
	if err != nil {
		return specialties.Specialty{}, err
	}
	return sp, nil
}

func (r *specialtiesRepo) List(ctx context.Context) ([]specialties.Specialty, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM specialties ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]specialties.Specialty, 0)
	for rows.Next() {
		var sp specialties.Specialty
		if err := rows.Scan(&sp.ID, &sp.Name); err != nil {
			return nil, err
		}
		out = append(out, sp)
	}
	return out, rows.Err()
}

func (r *specialtiesRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM specialties WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return specialties.ErrNotFound
	}
	return nil
}
