package doctors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes publica la lectura de médicos (el formulario de agendado la
// necesita para cualquier usuario autenticado).
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/doctors", listDoctorsHandler(svc))
	r.Get("/doctors/{doctorID}", getDoctorHandler(svc))
}

// RegisterAdminRoutes publica alta y baja; el router las monta detrás del
// gate de admin.
func RegisterAdminRoutes(r chi.Router, svc *Service) {
	r.Post("/doctors", createDoctorHandler(svc))
	r.Delete("/doctors/{doctorID}", deleteDoctorHandler(svc))
}

type createDoctorRequest struct {
	Name      string   `json:"name"`
	Specialty string   `json:"specialty"`
	Days      []string `json:"days"`
	StartTime string   `json:"start_time"` // "HH:MM"
	EndTime   string   `json:"end_time"`   // "HH:MM"
}

type doctorResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Specialty string   `json:"specialty"`
	Days      []string `json:"days"`
	Slots     []string `json:"slots"`
}

// createDoctorHandler da de alta un médico con su grilla generada.
// @Summary Crear médico (admin)
// @Router /admin/doctors [post]
func createDoctorHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createDoctorRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		d, err := svc.Create(r.Context(), CreateInput{
			Name:      req.Name,
			Specialty: req.Specialty,
			Days:      req.Days,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toDoctorResponse(d))
	}
}

// listDoctorsHandler lista médicos, con filtro opcional ?specialty=.
// @Summary Listar médicos
// @Router /doctors [get]
func listDoctorsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), r.URL.Query().Get("specialty"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]doctorResponse, 0, len(items))
		for _, d := range items {
			out = append(out, toDoctorResponse(d))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getDoctorHandler devuelve un médico por id.
// @Summary Detalle de médico
// @Router /doctors/{doctorID} [get]
func getDoctorHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.GetByID(r.Context(), chi.URLParam(r, "doctorID"))
		if err != nil {
			http.Error(w, "doctor not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toDoctorResponse(d))
	}
}

// deleteDoctorHandler elimina un médico sin citas que lo referencien.
// @Summary Eliminar médico (admin)
// @Router /admin/doctors/{doctorID} [delete]
func deleteDoctorHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := svc.Delete(r.Context(), chi.URLParam(r, "doctorID"))
		if err != nil {
			switch {
			case errors.Is(err, ErrHasAppointments):
				http.Error(w, "doctor has scheduled appointments", http.StatusConflict)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "doctor not found", http.StatusNotFound)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toDoctorResponse(d Doctor) doctorResponse {
	return doctorResponse{
		ID:        d.ID,
		Name:      d.Name,
		Specialty: d.Specialty,
		Days:      d.Days,
		Slots:     d.Slots,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
