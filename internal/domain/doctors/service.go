package doctors

import (
	"context"
	"errors"
	"strings"

	"clinic-appointments/internal/schedule"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("doctor not found")
	ErrHasAppointments = errors.New("doctor has appointments")
)

// AppointmentChecker responde si existen citas que referencian a un médico.
// Lo implementa el servicio de citas; acá solo interesa el guard de borrado.
type AppointmentChecker interface {
	ExistsForDoctor(ctx context.Context, doctorID string) (bool, error)
}

// SpecialtyCatalog asegura que la especialidad exista en el catálogo.
// Al crear un médico se hace upsert de su especialidad, igual que el alta
// original de médicos.
type SpecialtyCatalog interface {
	Ensure(ctx context.Context, name string) error
}

type Service struct {
	repo        Repository
	appts       AppointmentChecker
	specialties SpecialtyCatalog
}

func NewService(repo Repository, appts AppointmentChecker, specialties SpecialtyCatalog) *Service {
	return &Service{
		repo:        repo,
		appts:       appts,
		specialties: specialties,
	}
}

type CreateInput struct {
	Name      string
	Specialty string
	Days      []string
	StartTime string // "HH:MM"
	EndTime   string // "HH:MM"
}

// Create da de alta un médico: valida días, genera la grilla de slots desde
// el rango de atención y hace upsert de la especialidad en el catálogo.
func (s *Service) Create(ctx context.Context, in CreateInput) (Doctor, error) {
	name := strings.TrimSpace(in.Name)
	specialty := strings.TrimSpace(in.Specialty)

	if name == "" || specialty == "" || len(in.Days) == 0 {
		return Doctor{}, ErrInvalidInput
	}

	days := make([]string, 0, len(in.Days))
	seen := map[string]struct{}{}
	for _, d := range in.Days {
		d = strings.ToLower(strings.TrimSpace(d))
		if !schedule.IsWeekdayCode(d) {
			return Doctor{}, ErrInvalidInput
		}
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		days = append(days, d)
	}

	slots, err := schedule.HourlySlots(in.StartTime, in.EndTime)
	if err != nil {
		return Doctor{}, ErrInvalidInput
	}

	if s.specialties != nil {
		if err := s.specialties.Ensure(ctx, specialty); err != nil {
			return Doctor{}, err
		}
	}

	d := Doctor{
		ID:        uuid.NewString(),
		Name:      name,
		Specialty: specialty,
		Days:      days,
		Slots:     slots,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return Doctor{}, err
	}
	return d, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Doctor, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Doctor{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// List devuelve todos los médicos, opcionalmente filtrados por especialidad.
func (s *Service) List(ctx context.Context, specialty string) ([]Doctor, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	specialty = strings.TrimSpace(specialty)
	if specialty == "" {
		return all, nil
	}

	out := make([]Doctor, 0, len(all))
	for _, d := range all {
		if strings.EqualFold(d.Specialty, specialty) {
			out = append(out, d)
		}
	}
	return out, nil
}

// Delete elimina un médico solo si ninguna cita lo referencia.
// El chequeo es una consulta best-effort, no una constraint del store:
// una escritura concurrente directa podría colarse igual.
func (s *Service) Delete(ctx context.Context, id string) error {
	d, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if s.appts != nil {
		busy, err := s.appts.ExistsForDoctor(ctx, d.ID)
		if err != nil {
			return err
		}
		if busy {
			return ErrHasAppointments
		}
	}

	return s.repo.Delete(ctx, d.ID)
}
