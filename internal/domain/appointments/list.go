package appointments

import (
	"context"
	"sort"
	"strings"
)

// View es una cita enriquecida para listados: nombres resueltos desde los
// mapas de médicos/usuarios, como hacían los dashboards.
type View struct {
	Appointment

	DoctorName  string
	PatientName string
}

// ListFilter replica los filtros de los dashboards: estado y búsqueda por
// nombre de médico (y de paciente, en la vista de admin).
type ListFilter struct {
	Status Status // vacío = todas
	Search string
}

// ListResult distingue "no hay citas" de "los filtros no matchearon":
// Total es el tamaño del conjunto antes de filtrar.
type ListResult struct {
	Items []View
	Total int
}

// ListForPatient lista las citas del paciente con filtros aplicados.
func (s *Service) ListForPatient(ctx context.Context, patientID string, filter ListFilter) (ListResult, error) {
	patientID = strings.TrimSpace(patientID)
	if patientID == "" {
		return ListResult{}, ErrInvalidInput
	}

	items, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return ListResult{}, err
	}
	return s.buildResult(ctx, items, filter, false)
}

// ListAll lista todas las citas (vista de admin) con filtros aplicados;
// la búsqueda matchea nombre de médico o de paciente.
func (s *Service) ListAll(ctx context.Context, filter ListFilter) (ListResult, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return ListResult{}, err
	}
	return s.buildResult(ctx, items, filter, true)
}

func (s *Service) buildResult(ctx context.Context, items []Appointment, filter ListFilter, withPatients bool) (ListResult, error) {
	views, err := s.enrich(ctx, items, withPatients)
	if err != nil {
		return ListResult{}, err
	}

	// Orden estable por fecha+hora para listados consistentes.
	sort.Slice(views, func(i, j int) bool {
		if views[i].Date != views[j].Date {
			return views[i].Date < views[j].Date
		}
		return views[i].Time < views[j].Time
	})

	term := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]View, 0, len(views))
	for _, v := range views {
		if filter.Status != "" && v.Status != filter.Status {
			continue
		}
		if term != "" {
			doctor := strings.ToLower(v.DoctorName)
			patient := strings.ToLower(v.PatientName)
			if !strings.Contains(doctor, term) && !(withPatients && strings.Contains(patient, term)) {
				continue
			}
		}
		out = append(out, v)
	}

	return ListResult{Items: out, Total: len(views)}, nil
}

func (s *Service) enrich(ctx context.Context, items []Appointment, withPatients bool) ([]View, error) {
	// Mapa doctorId -> nombre, una sola lectura de la colección.
	docNames := map[string]string{}
	if docs, err := s.doctors.List(ctx, ""); err == nil {
		for _, d := range docs {
			docNames[d.ID] = d.Name
		}
	}

	views := make([]View, 0, len(items))
	patientNames := map[string]string{}
	for _, a := range items {
		v := View{Appointment: a}

		if name, ok := docNames[a.DoctorID]; ok {
			v.DoctorName = name
		} else {
			v.DoctorName = "Desconocido"
		}

		if withPatients && s.users != nil {
			name, cached := patientNames[a.PatientID]
			if !cached {
				if u, err := s.users.GetByUID(ctx, a.PatientID); err == nil {
					if u.DisplayName != "" {
						name = u.DisplayName
					} else {
						name = u.Email
					}
				}
				if name == "" {
					name = a.PatientID
				}
				patientNames[a.PatientID] = name
			}
			v.PatientName = name
		}

		views = append(views, v)
	}
	return views, nil
}

// Watch entrega el resultado completo (ya filtrado por scope) en cada cambio
// de la colección, empezando por el estado actual. Se corta cuando ctx
// termina; resultados que lleguen después del teardown se descartan.
// patientID vacío = feed de admin (todas las citas).
func (s *Service) Watch(ctx context.Context, patientID string) <-chan ListResult {
	out := make(chan ListResult, 1)
	ticks := s.repo.Watch(ctx)

	load := func() (ListResult, error) {
		if patientID == "" {
			return s.ListAll(ctx, ListFilter{})
		}
		return s.ListForPatient(ctx, patientID, ListFilter{})
	}

	go func() {
		defer close(out)

		if res, err := load(); err == nil {
			out <- res
		}

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-ticks:
				if !ok {
					return
				}
				res, err := load()
				if err != nil {
					continue
				}
				select {
				case out <- res:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}
