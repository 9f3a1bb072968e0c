package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"clinic-appointments/internal/domain/appointments"
)

type appointmentsRepo struct {
	mu   sync.RWMutex
	byID map[string]appointments.Appointment

	subs    map[int]chan struct{}
	nextSub int
}

func NewAppointmentsRepo() appointments.Repository {
	return &appointmentsRepo{
		byID: make(map[string]appointments.Appointment),
		subs: make(map[int]chan struct{}),
	}
}

// Create inserta la cita. La unicidad de (doctorId, date, time) se verifica
// bajo el mismo lock que el insert: en este adapter la carrera
// chequeo-y-escritura queda cerrada dentro del proceso.
func (r *appointmentsRepo) Create(ctx context.Context, a appointments.Appointment) error {
	r.mu.Lock()

	if strings.TrimSpace(a.ID) == "" {
		r.mu.Unlock()
		return errors.New("appointment id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		r.mu.Unlock()
		return errors.New("appointment already exists")
	}
	if r.slotTakenLocked(a.DoctorID, a.Date, a.Time, "") {
		r.mu.Unlock()
		return appointments.ErrSlotTaken
	}

	r.byID[a.ID] = a
	r.mu.Unlock()

	r.notify()
	return nil
}

func (r *appointmentsRepo) Update(ctx context.Context, a appointments.Appointment) error {
	r.mu.Lock()

	if _, exists := r.byID[a.ID]; !exists {
		r.mu.Unlock()
		return appointments.ErrNotFound
	}
	if r.slotTakenLocked(a.DoctorID, a.Date, a.Time, a.ID) {
		r.mu.Unlock()
		return appointments.ErrSlotTaken
	}

	r.byID[a.ID] = a
	r.mu.Unlock()

	r.notify()
	return nil
}

func (r *appointmentsRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return appointments.Appointment{}, appointments.ErrNotFound
	}
	return a, nil
}

func (r *appointmentsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	if _, ok := r.byID[id]; !ok {
		r.mu.Unlock()
		return appointments.ErrNotFound
	}
	delete(r.byID, id)
	r.mu.Unlock()

	r.notify()
	return nil
}

func (r *appointmentsRepo) ListByPatient(ctx context.Context, patientID string) ([]appointments.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]appointments.Appointment, 0)
	for _, a := range r.byID {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	sortByDateTime(out)
	return out, nil
}

func (r *appointmentsRepo) ListAll(ctx context.Context) ([]appointments.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]appointments.Appointment, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}
	sortByDateTime(out)
	return out, nil
}

func (r *appointmentsRepo) ListByDoctorDate(ctx context.Context, doctorID, date string) ([]appointments.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]appointments.Appointment, 0)
	for _, a := range r.byID {
		if a.DoctorID == doctorID && a.Date == date {
			out = append(out, a)
		}
	}
	sortByDateTime(out)
	return out, nil
}

func (r *appointmentsRepo) ExistsAt(ctx context.Context, doctorID, date, hhmm, excludeID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.slotTakenLocked(doctorID, date, hhmm, excludeID), nil
}

func (r *appointmentsRepo) ExistsForDoctor(ctx context.Context, doctorID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.byID {
		if a.DoctorID == doctorID {
			return true, nil
		}
	}
	return false, nil
}

func (r *appointmentsRepo) ExistsForSpecialty(ctx context.Context, specialty string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.byID {
		if a.Specialty == specialty {
			return true, nil
		}
	}
	return false, nil
}

// Watch registra un suscriptor que recibe un tick por cada mutación.
func (r *appointmentsRepo) Watch(ctx context.Context) <-chan struct{} {
	ch := make(chan struct{}, 1)

	r.mu.Lock()
	id := r.nextSub
	r.nextSub++
	r.subs[id] = ch
	r.mu.Unlock()

	go func() {
		<-ctx.Done()
		r.mu.Lock()
		delete(r.subs, id)
		r.mu.Unlock()
	}()

	return ch
}

func (r *appointmentsRepo) notify() {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ch := range r.subs {
		// tick coalescible: si ya hay uno pendiente, alcanza
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (r *appointmentsRepo) slotTakenLocked(doctorID, date, hhmm, excludeID string) bool {
	for _, a := range r.byID {
		if excludeID != "" && a.ID == excludeID {
			continue
		}
		if a.DoctorID == doctorID && a.Date == date && a.Time == hhmm {
			return true
		}
	}
	return false
}

func sortByDateTime(items []appointments.Appointment) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Date != items[j].Date {
			return items[i].Date < items[j].Date
		}
		return items[i].Time < items[j].Time
	})
}
