package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"clinic-appointments/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes publica el perfil del usuario autenticado.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/me", getProfileHandler(svc))
	r.Patch("/me", updateProfileHandler(svc))
}

// RegisterAdminRoutes publica la gestión de usuarios. El router monta este
// grupo detrás del gate de admin.
func RegisterAdminRoutes(r chi.Router, svc *Service) {
	r.Get("/users", listUsersHandler(svc))
	r.Post("/users/{uid}/role", toggleRoleHandler(svc))
}

type userResponse struct {
	UID         string    `json:"uid"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	Role        Role      `json:"role"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`
	CreatedAt   time.Time `json:"created_at"`
}

type updateProfileRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	DisplayName *string `json:"display_name"`
	Address     *string `json:"address"`
	Phone       *string `json:"phone"`
}

// getProfileHandler devuelve el perfil del usuario autenticado.
// @Summary Perfil propio
// @Router /me [get]
func getProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		u, err := svc.GetByUID(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toUserResponse(u))
	}
}

// updateProfileHandler edita displayName/address/phone del propio usuario.
// @Summary Editar perfil propio
// @Router /me [patch]
func updateProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req updateProfileRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		u, err := svc.UpdateProfile(r.Context(), claims.UserID, UpdateProfileInput{
			DisplayName: req.DisplayName,
			Address:     req.Address,
			Phone:       req.Phone,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "user not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toUserResponse(u))
	}
}

// listUsersHandler lista usuarios con filtro por rol y búsqueda por
// nombre/email (la vista de gestión del admin).
// @Summary Listar usuarios (admin)
// @Router /admin/users [get]
func listUsersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := ListFilter{
			Search: r.URL.Query().Get("q"),
		}
		if role := r.URL.Query().Get("role"); role != "" && role != "all" {
			filter.Role = Role(role)
		}

		items, err := svc.List(r.Context(), filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]userResponse, 0, len(items))
		for _, u := range items {
			out = append(out, toUserResponse(u))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// toggleRoleHandler alterna patient <-> admin para un usuario.
// @Summary Alternar rol (admin)
// @Router /admin/users/{uid}/role [post]
func toggleRoleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := chi.URLParam(r, "uid")

		u, err := svc.ToggleRole(r.Context(), uid)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "user not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toUserResponse(u))
	}
}

func toUserResponse(u User) userResponse {
	return userResponse{
		UID:         u.UID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Role:        u.Role,
		Address:     u.Address,
		Phone:       u.Phone,
		CreatedAt:   u.CreatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
