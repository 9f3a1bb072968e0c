package appointments

import (
	"context"
	"errors"
	"strings"

	"clinic-appointments/internal/domain/doctors"
	"clinic-appointments/internal/domain/users"
	"clinic-appointments/internal/schedule"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("appointment not found")
	ErrSlotTaken    = errors.New("slot already taken")
	ErrForbidden    = errors.New("forbidden")
	ErrBadState     = errors.New("appointment is not pending")
)

// DoctorDirectory resuelve médicos para validar disponibilidad y enriquecer
// listados con nombres. Lo implementa doctors.Service.
type DoctorDirectory interface {
	GetByID(ctx context.Context, id string) (doctors.Doctor, error)
	List(ctx context.Context, specialty string) ([]doctors.Doctor, error)
}

// UserDirectory resuelve nombres de pacientes para la vista de admin.
type UserDirectory interface {
	GetByUID(ctx context.Context, uid string) (users.User, error)
}

type Service struct {
	repo    Repository
	doctors DoctorDirectory
	users   UserDirectory
}

func NewService(repo Repository, docs DoctorDirectory, userDir UserDirectory) *Service {
	return &Service{
		repo:    repo,
		doctors: docs,
		users:   userDir,
	}
}

// FreeSlots calcula la disponibilidad de un médico para una fecha.
// Si el médico no atiende ese día de la semana el resultado es vacío,
// independientemente de la ocupación. excludeID (opcional) omite una cita
// del cómputo de ocupados; se usa al reagendar para no bloquear el horario
// que la propia cita ya ocupa.
func (s *Service) FreeSlots(ctx context.Context, doctorID, dateISO, excludeID string) ([]string, error) {
	doctorID = strings.TrimSpace(doctorID)
	if doctorID == "" {
		return nil, ErrInvalidInput
	}

	doc, err := s.doctors.GetByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	dayCode, err := schedule.WeekdayCode(dateISO)
	if err != nil {
		return nil, ErrInvalidInput
	}

	if !doc.WorksOn(dayCode) {
		return []string{}, nil
	}

	existing, err := s.repo.ListByDoctorDate(ctx, doc.ID, dateISO)
	if err != nil {
		return nil, err
	}

	taken := make([]string, 0, len(existing))
	for _, a := range existing {
		if excludeID != "" && a.ID == excludeID {
			continue
		}
		taken = append(taken, a.Time)
	}

	return schedule.Free(doc.Slots, taken), nil
}

type BookInput struct {
	DoctorID  string
	Specialty string
	Date      string // "YYYY-MM-DD"
	Time      string // "HH:MM"
}

// Book agenda una cita nueva en estado Pendiente.
//
// Reverifica la colisión justo antes de insertar. El chequeo y el insert son
// dos viajes separados sin transacción: el adapter de storage respalda la
// unicidad de (doctorId, date, time) por su cuenta y también devuelve
// ErrSlotTaken si dos reservas concurrentes pasaron ambas el chequeo.
func (s *Service) Book(ctx context.Context, patientID string, in BookInput) (Appointment, error) {
	patientID = strings.TrimSpace(patientID)
	doctorID := strings.TrimSpace(in.DoctorID)
	specialty := strings.TrimSpace(in.Specialty)
	date := strings.TrimSpace(in.Date)
	hhmm := strings.TrimSpace(in.Time)

	if patientID == "" || doctorID == "" || specialty == "" || date == "" || hhmm == "" {
		return Appointment{}, ErrInvalidInput
	}

	free, err := s.FreeSlots(ctx, doctorID, date, "")
	if err != nil {
		if errors.Is(err, doctors.ErrNotFound) {
			// Reservar contra un médico inexistente es input inválido.
			return Appointment{}, ErrInvalidInput
		}
		return Appointment{}, err
	}
	if !schedule.Contains(free, hhmm) {
		// Cubre horario fuera de la grilla, día no laborable y slot ocupado.
		taken, err := s.repo.ExistsAt(ctx, doctorID, date, hhmm, "")
		if err != nil {
			return Appointment{}, err
		}
		if taken {
			return Appointment{}, ErrSlotTaken
		}
		return Appointment{}, ErrInvalidInput
	}

	a := Appointment{
		ID:        uuid.NewString(),
		PatientID: patientID,
		DoctorID:  doctorID,
		Specialty: specialty,
		Date:      date,
		Time:      hhmm,
		Status:    StatusPendiente,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

type RescheduleInput struct {
	DoctorID string
	Date     string
	Time     string
}

// Reschedule mueve una cita Pendiente a otro médico/fecha/horario.
// La colisión excluye a la propia cita: reagendar sobre su horario actual
// es válido. Solo cambia doctorId/date/time; status y specialty quedan
// intactos (la especialidad almacenada puede divergir del nuevo médico).
func (s *Service) Reschedule(ctx context.Context, id string, actor Actor, in RescheduleInput) (Appointment, error) {
	doctorID := strings.TrimSpace(in.DoctorID)
	date := strings.TrimSpace(in.Date)
	hhmm := strings.TrimSpace(in.Time)

	if doctorID == "" || date == "" || hhmm == "" {
		return Appointment{}, ErrInvalidInput
	}

	a, err := s.get(ctx, id)
	if err != nil {
		return Appointment{}, err
	}

	if !actor.Admin && a.PatientID != actor.UserID {
		return Appointment{}, ErrForbidden
	}
	if a.Status != StatusPendiente {
		return Appointment{}, ErrBadState
	}

	free, err := s.FreeSlots(ctx, doctorID, date, a.ID)
	if err != nil {
		if errors.Is(err, doctors.ErrNotFound) {
			return Appointment{}, ErrInvalidInput
		}
		return Appointment{}, err
	}
	if !schedule.Contains(free, hhmm) {
		taken, err := s.repo.ExistsAt(ctx, doctorID, date, hhmm, a.ID)
		if err != nil {
			return Appointment{}, err
		}
		if taken {
			return Appointment{}, ErrSlotTaken
		}
		return Appointment{}, ErrInvalidInput
	}

	a.DoctorID = doctorID
	a.Date = date
	a.Time = hhmm

	if err := s.repo.Update(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

// Confirm pasa la cita a Confirmada, sin precondición de estado.
// Las rutas de admin son las únicas que lo exponen.
func (s *Service) Confirm(ctx context.Context, id string) (Appointment, error) {
	a, err := s.get(ctx, id)
	if err != nil {
		return Appointment{}, err
	}

	a.Status = StatusConfirmada
	if err := s.repo.Update(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

// Delete cancela (borra) una cita. El paciente solo puede borrar las suyas;
// el admin, cualquiera. Sin precondición de estado.
func (s *Service) Delete(ctx context.Context, id string, actor Actor) error {
	a, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if !actor.Admin && a.PatientID != actor.UserID {
		return ErrForbidden
	}

	return s.repo.Delete(ctx, a.ID)
}

func (s *Service) get(ctx context.Context, id string) (Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Appointment{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// ExistsForDoctor implementa el guard de borrado de médicos.
func (s *Service) ExistsForDoctor(ctx context.Context, doctorID string) (bool, error) {
	return s.repo.ExistsForDoctor(ctx, doctorID)
}

// ExistsForSpecialty implementa el guard de borrado de especialidades.
func (s *Service) ExistsForSpecialty(ctx context.Context, specialty string) (bool, error) {
	return s.repo.ExistsForSpecialty(ctx, specialty)
}
