// Package memory implementa los repositorios sobre mapas en memoria.
// Es el backend por defecto para dev y tests; el router elige Postgres
// cuando hay DB_DSN.
package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"clinic-appointments/internal/domain/doctors"
)

type doctorsRepo struct {
	mu   sync.RWMutex
	byID map[string]doctors.Doctor
}

func NewDoctorsRepo() doctors.Repository {
	return &doctorsRepo{
		byID: make(map[string]doctors.Doctor),
	}
}

func (r *doctorsRepo) Create(ctx context.Context, d doctors.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(d.ID) == "" {
		return errors.New("doctor id required")
	}
	if _, exists := r.byID[d.ID]; exists {
		return errors.New("doctor already exists")
	}
	r.byID[d.ID] = d
	return nil
}

func (r *doctorsRepo) GetByID(ctx context.Context, id string) (doctors.Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byID[id]
	if !ok {
		return doctors.Doctor{}, doctors.ErrNotFound
	}
	return d, nil
}

func (r *doctorsRepo) List(ctx context.Context) ([]doctors.Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]doctors.Doctor, 0, len(r.byID))
	for _, d := range r.byID {
		out = append(out, d)
	}

	// Orden estable por nombre (solo para consistencia en dev)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})

	return out, nil
}

func (r *doctorsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return doctors.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
