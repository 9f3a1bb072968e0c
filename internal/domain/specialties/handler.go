package specialties

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/specialties", listSpecialtiesHandler(svc))
}

func RegisterAdminRoutes(r chi.Router, svc *Service) {
	r.Post("/specialties", createSpecialtyHandler(svc))
	r.Delete("/specialties/{specialtyID}", deleteSpecialtyHandler(svc))
}

type createSpecialtyRequest struct {
	Name string `json:"name"`
}

type specialtyResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// createSpecialtyHandler agrega una especialidad al catálogo (idempotente).
// @Summary Crear especialidad (admin)
// @Router /admin/specialties [post]
func createSpecialtyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createSpecialtyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if err := svc.Ensure(r.Context(), req.Name); err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}
}

// listSpecialtiesHandler lista el catálogo.
// @Summary Listar especialidades
// @Router /specialties [get]
func listSpecialtiesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]specialtyResponse, 0, len(items))
		for _, sp := range items {
			out = append(out, specialtyResponse{ID: sp.ID, Name: sp.Name})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// deleteSpecialtyHandler elimina una especialidad sin citas que la usen.
// @Summary Eliminar especialidad (admin)
// @Router /admin/specialties/{specialtyID} [delete]
func deleteSpecialtyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := svc.Delete(r.Context(), chi.URLParam(r, "specialtyID"))
		if err != nil {
			switch {
			case errors.Is(err, ErrHasAppointments):
				http.Error(w, "specialty has scheduled appointments", http.StatusConflict)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "specialty not found", http.StatusNotFound)
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

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
