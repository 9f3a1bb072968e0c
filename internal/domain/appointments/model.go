package appointments

// Status modela el ciclo de vida de una cita.
// @Enum Pendiente, Confirmada
type Status string

const (
	StatusPendiente  Status = "Pendiente"
	StatusConfirmada Status = "Confirmada"
)

// Appointment es una cita agendada: un paciente, un médico, una fecha
// calendario (sin hora) y un horario "HH:MM" tomado de la grilla del médico.
// La especialidad se copia del formulario al agendar y no se revalida después
// (si la cita se reagenda con un médico de otra especialidad, divergen).
type Appointment struct {
	ID string

	PatientID string
	DoctorID  string
	Specialty string

	Date string // "YYYY-MM-DD"
	Time string // "HH:MM"

	Status Status
}

// Actor identifica a quien ejecuta una operación sobre citas.
type Actor struct {
	UserID string
	Admin  bool
}
