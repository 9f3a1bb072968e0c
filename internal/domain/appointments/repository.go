package appointments

import "context"

// Repository es el contrato sobre la colección de citas del document store.
//
// Create y Update son los que imponen la unicidad de (doctorId, date, time)
// del lado del store: el servicio hace igualmente su chequeo previo
// (best-effort, dos round-trips), pero la última palabra la tiene el adapter
// (índice único en Postgres; mutex en memoria).
type Repository interface {
	Create(ctx context.Context, a Appointment) error
	Update(ctx context.Context, a Appointment) error
	GetByID(ctx context.Context, id string) (Appointment, error)
	Delete(ctx context.Context, id string) error

	ListByPatient(ctx context.Context, patientID string) ([]Appointment, error)
	ListAll(ctx context.Context) ([]Appointment, error)

	// ListByDoctorDate filtra por (doctorId, date), la consulta del resolver
	// de disponibilidad.
	ListByDoctorDate(ctx context.Context, doctorID, date string) ([]Appointment, error)

	// ExistsAt reporta si hay una cita en (doctorId, date, time), ignorando
	// excludeID si no es vacío.
	ExistsAt(ctx context.Context, doctorID, date, hhmm, excludeID string) (bool, error)

	ExistsForDoctor(ctx context.Context, doctorID string) (bool, error)
	ExistsForSpecialty(ctx context.Context, specialty string) (bool, error)

	// Watch entrega un tick por cada cambio en la colección hasta que ctx
	// termine. El consumidor relee el resultado completo en cada tick.
	Watch(ctx context.Context) <-chan struct{}
}
