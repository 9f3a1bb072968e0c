package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"clinic-appointments/internal/domain/appointments"
)

// uniqueViolation es el código SQLSTATE de Postgres para violación de
// índice único.
const uniqueViolation = "23505"

type appointmentsRepo struct {
	db           *sql.DB
	pollInterval time.Duration
}

// NewAppointmentsRepo crea el repositorio de citas. pollInterval controla la
// cadencia de los ticks de Watch; con cero se usan 5 segundos.
func NewAppointmentsRepo(db *sql.DB, pollInterval time.Duration) appointments.Repository {
	if pollInterval <= 0 {
		pollInterval = 5 * time.Second
	}
	return &appointmentsRepo{db: db, pollInterval: pollInterval}
}

func (r *appointmentsRepo) Create(ctx context.Context, a appointments.Appointment) error {
	const q = `
		INSERT INTO appointments (id, patient_id, doctor_id, specialty, date, time, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, q,
		a.ID, a.PatientID, a.DoctorID, a.Specialty, a.Date, a.Time, string(a.Status))
	return mapSlotConflict(err)
}

func (r *appointmentsRepo) Update(ctx context.Context, a appointments.Appointment) error {
	const q = `
		UPDATE appointments
		SET patient_id = $2, doctor_id = $3, specialty = $4, date = $5, time = $6, status = $7
		WHERE id = $1`

	res, err := r.db.ExecContext(ctx, q,
		a.ID, a.PatientID, a.DoctorID, a.Specialty, a.Date, a.Time, string(a.Status))
	if err != nil {
		return mapSlotConflict(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return appointments.ErrNotFound
	}
	return nil
}

func (r *appointmentsRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	const q = `
		SELECT id, patient_id, doctor_id, specialty, date, time, status
		FROM appointments
		WHERE id = $1`

	return scanAppointment(r.db.QueryRowContext(ctx, q, id))
}

func (r *appointmentsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return appointments.ErrNotFound
	}
	return nil
}

func (r *appointmentsRepo) ListByPatient(ctx context.Context, patientID string) ([]appointments.Appointment, error) {
	const q = `
		SELECT id, patient_id, doctor_id, specialty, date, time, status
		FROM appointments
		WHERE patient_id = $1
		ORDER BY date, time`

	return r.queryAppointments(ctx, q, patientID)
}

func (r *appointmentsRepo) ListAll(ctx context.Context) ([]appointments.Appointment, error) {
	const q = `
		SELECT id, patient_id, doctor_id, specialty, date, time, status
		FROM appointments
		ORDER BY date, time`

	return r.queryAppointments(ctx, q)
}

func (r *appointmentsRepo) ListByDoctorDate(ctx context.Context, doctorID, date string) ([]appointments.Appointment, error) {
	const q = `
		SELECT id, patient_id, doctor_id, specialty, date, time, status
		FROM appointments
		WHERE doctor_id = $1 AND date = $2
		ORDER BY time`

	return r.queryAppointments(ctx, q, doctorID, date)
}

func (r *appointmentsRepo) ExistsAt(ctx context.Context, doctorID, date, hhmm, excludeID string) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE doctor_id = $1 AND date = $2 AND time = $3 AND id <> $4
		)`

	var exists bool
	err := r.db.QueryRowContext(ctx, q, doctorID, date, hhmm, excludeID).Scan(&exists)
	return exists, err
}

func (r *appointmentsRepo) ExistsForDoctor(ctx context.Context, doctorID string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM appointments WHERE doctor_id = $1)`

	var exists bool
	err := r.db.QueryRowContext(ctx, q, doctorID).Scan(&exists)
	return exists, err
}

func (r *appointmentsRepo) ExistsForSpecialty(ctx context.Context, specialty string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM appointments WHERE specialty = $1)`

	var exists bool
	err := r.db.QueryRowContext(ctx, q, specialty).Scan(&exists)
	return exists, err
}

// Watch emite un tick por intervalo de polling. A diferencia del adapter en
// memoria los ticks no están atados a mutaciones: el consumidor relee el
// resultado completo en cada tick, así que un tick de más solo cuesta una
// consulta.
func (r *appointmentsRepo) Watch(ctx context.Context) <-chan struct{} {
	ch := make(chan struct{}, 1)

	go func() {
		defer close(ch)

		t := time.NewTicker(r.pollInterval)
		defer t.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				select {
				case ch <- struct{}{}:
				default:
				}
			}
		}
	}()

	return ch
}

func (r *appointmentsRepo) queryAppointments(ctx context.Context, q string, args ...any) ([]appointments.Appointment, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]appointments.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAppointment(row rowScanner) (appointments.Appointment, error) {
	var a appointments.Appointment
	var status string

	err := row.Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.Specialty, &a.Date, &a.Time, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return appointments.Appointment{}, appointments.ErrNotFound
	}
	if err != nil {
		return appointments.Appointment{}, err
	}

	a.Status = appointments.Status(status)
	return a, nil
}

// mapSlotConflict traduce la violación del índice único (doctor_id, date,
// time) al error de dominio. Es el cierre real de la carrera
// chequeo-y-escritura: dos reservas concurrentes pueden pasar ambas el
// chequeo previo, pero solo una inserta.
func mapSlotConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return appointments.ErrSlotTaken
	}
	return err
}
