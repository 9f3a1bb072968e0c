package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"clinic-appointments/internal/domain/specialties"
)

type specialtiesRepo struct {
	mu   sync.RWMutex
	byID map[string]specialties.Specialty
}

func NewSpecialtiesRepo() specialties.Repository {
	return &specialtiesRepo{
		byID: make(map[string]specialties.Specialty),
	}
}

func (r *specialtiesRepo) Upsert(ctx context.Context, sp specialties.Specialty) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(sp.ID) == "" {
		return errors.New("specialty id required")
	}
	if _, exists := r.byID[sp.ID]; exists {
		// Upsert conservador: no pisa el nombre ya registrado.
		return nil
	}
	r.byID[sp.ID] = sp
	return nil
}

func (r *specialtiesRepo) GetByID(ctx context.Context, id string) (specialties.Specialty, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sp, ok := r.byID[id]
	if !ok {
		return specialties.Specialty{}, specialties.ErrNotFound
	}
	return sp, nil
}

func (r *specialtiesRepo) List(ctx context.Context) ([]specialties.Specialty, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]specialties.Specialty, 0, len(r.byID))
	for _, sp := range r.byID {
		out = append(out, sp)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *specialtiesRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return specialties.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
