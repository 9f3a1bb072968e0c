package specialties

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("specialty not found")
	ErrHasAppointments = errors.New("specialty has appointments")
)

// AppointmentChecker responde si existen citas con una especialidad.
type AppointmentChecker interface {
	ExistsForSpecialty(ctx context.Context, name string) (bool, error)
}

type Service struct {
	repo  Repository
	appts AppointmentChecker
}

func NewService(repo Repository, appts AppointmentChecker) *Service {
	return &Service{
		repo:  repo,
		appts: appts,
	}
}

// Ensure hace upsert de una especialidad por nombre. Lo usa el alta de
// médicos; también es el create directo del catálogo.
func (s *Service) Ensure(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidInput
	}

	return s.repo.Upsert(ctx, Specialty{
		ID:   strings.ToLower(name),
		Name: name,
	})
}

func (s *Service) List(ctx context.Context) ([]Specialty, error) {
	return s.repo.List(ctx)
}

// Delete elimina una especialidad solo si ninguna cita la referencia por
// nombre. Chequeo best-effort del lado cliente, no constraint del store.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}

	sp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if s.appts != nil {
		busy, err := s.appts.ExistsForSpecialty(ctx, sp.Name)
		if err != nil {
			return err
		}
		if busy {
			return ErrHasAppointments
		}
	}

	return s.repo.Delete(ctx, sp.ID)
}
