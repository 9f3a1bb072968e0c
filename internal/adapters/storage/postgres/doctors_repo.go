package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"clinic-appointments/internal/domain/doctors"
)

type doctorsRepo struct {
	db *sql.DB
}

func NewDoctorsRepo(db *sql.DB) doctors.Repository {
	return &doctorsRepo{db: db}
}

func (r *doctorsRepo) Create(ctx context.Context, d doctors.Doctor) error {
	const q = `
		INSERT INTO doctors (id, name, specialty, days, slots)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, q,
		d.ID, d.Name, d.Specialty, joinList(d.Days), joinList(d.Slots))
	return err
}

func (r *doctorsRepo) GetByID(ctx context.Context, id string) (doctors.Doctor, error) {
	const q = `
		SELECT id, name, specialty, days, slots
		FROM doctors
		WHERE id = $1`

	return scanDoctor(r.db.QueryRowContext(ctx, q, id))
}

func (r *doctorsRepo) List(ctx context.Context) ([]doctors.Doctor, error) {
	const q = `
		SELECT id, name, specialty, days, slots
		FROM doctors
		ORDER BY name`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]doctors.Doctor, 0)
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *doctorsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return doctors.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDoctor(row rowScanner) (doctors.Doctor, error) {
	var d doctors.Doctor
	var days, slots string

	err := row.Scan(&d.ID, &d.Name, &d.Specialty, &days, &slots)
	if errors.Is(err, sql.ErrNoRows) {
		return doctors.Doctor{}, doctors.ErrNotFound
	}
	if err != nil {
		return doctors.Doctor{}, err
	}

	d.Days = splitList(days)
	d.Slots = splitList(slots)
	return d, nil
}

// joinList/splitList serializan listas ordenadas como texto separado por coma.
// Los valores del dominio (códigos de día, horas "HH:MM") nunca contienen coma.
func joinList(items []string) string {
	return strings.Join(items, ",")
}

func splitList(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}
