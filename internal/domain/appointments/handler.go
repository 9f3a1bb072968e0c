package appointments

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"clinic-appointments/internal/session"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes publica el flujo de citas del paciente (y la disponibilidad,
// que también usa el formulario de edición).
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/appointments", func(ar chi.Router) {
		ar.Post("/", bookHandler(svc))
		ar.Get("/", listMineHandler(svc))
		ar.Get("/availability", availabilityHandler(svc))
		ar.Get("/watch", watchHandler(svc))
		ar.Patch("/{appointmentID}", rescheduleHandler(svc))
		ar.Delete("/{appointmentID}", deleteHandler(svc))
	})
}

// RegisterAdminRoutes publica el panel de admin: listado completo y
// confirmación. El router las monta detrás del gate de admin.
func RegisterAdminRoutes(r chi.Router, svc *Service) {
	r.Get("/appointments", listAllHandler(svc))
	r.Post("/appointments/{appointmentID}/confirm", confirmHandler(svc))
}

const (
	msgNoAppointments = "No tienes citas agendadas."
	msgNoMatches      = "No se encontraron citas que coincidan con los filtros."
)

type bookRequest struct {
	DoctorID  string `json:"doctor_id"`
	Specialty string `json:"specialty"`
	Date      string `json:"date"` // "YYYY-MM-DD"
	Time      string `json:"time"` // "HH:MM"
}

type rescheduleRequest struct {
	DoctorID string `json:"doctor_id"`
	Date     string `json:"date"`
	Time     string `json:"time"`
}

type appointmentResponse struct {
	ID          string `json:"id"`
	PatientID   string `json:"patient_id"`
	DoctorID    string `json:"doctor_id"`
	DoctorName  string `json:"doctor_name,omitempty"`
	PatientName string `json:"patient_name,omitempty"`
	Specialty   string `json:"specialty"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Status      Status `json:"status"`
}

type listResponse struct {
	Items []appointmentResponse `json:"items"`
	Total int                   `json:"total"`
	// Message solo viene cuando Items está vacío, y distingue "sin citas"
	// de "los filtros no matchearon".
	Message string `json:"message,omitempty"`
}

type availabilityResponse struct {
	DoctorID string   `json:"doctor_id"`
	Date     string   `json:"date"`
	Slots    []string `json:"slots"`
}

// bookHandler agenda una cita para el paciente autenticado.
// @Summary Agendar cita
// @Router /appointments [post]
func bookHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req bookRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Book(r.Context(), sess.User.UID, BookInput{
			DoctorID:  req.DoctorID,
			Specialty: req.Specialty,
			Date:      req.Date,
			Time:      req.Time,
		})
		if err != nil {
			writeAppointmentError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toAppointmentResponse(View{Appointment: a}))
	}
}

// availabilityHandler calcula los horarios libres de un médico para una
// fecha; ?exclude= omite una cita del cómputo (flujo de edición).
// @Summary Disponibilidad de un médico
// @Router /appointments/availability [get]
func availabilityHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		doctorID := q.Get("doctorId")
		date := q.Get("date")

		slots, err := svc.FreeSlots(r.Context(), doctorID, date, q.Get("exclude"))
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "doctorId and date are required", http.StatusBadRequest)
				return
			}
			http.Error(w, "doctor not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, availabilityResponse{
			DoctorID: doctorID,
			Date:     date,
			Slots:    slots,
		})
	}
}

// listMineHandler lista las citas del paciente autenticado con filtros
// ?status= y ?q= (búsqueda por nombre de médico).
// @Summary Mis citas
// @Router /appointments [get]
func listMineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		res, err := svc.ListForPatient(r.Context(), sess.User.UID, filterFromQuery(r))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toListResponse(res))
	}
}

// listAllHandler lista todas las citas (panel de admin), con los mismos
// filtros más búsqueda por nombre de paciente.
// @Summary Listar citas (admin)
// @Router /admin/appointments [get]
func listAllHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := svc.ListAll(r.Context(), filterFromQuery(r))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toListResponse(res))
	}
}

// watchHandler emite por server-sent events el listado completo (scope según
// rol: admin ve todas, paciente las suyas) en cada cambio de la colección.
// @Summary Feed en vivo de citas
// @Router /appointments/watch [get]
func watchHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		flusher, canFlush := w.(http.Flusher)
		if !canFlush {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		scope := sess.User.UID
		if sess.IsAdmin() {
			scope = ""
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		for res := range svc.Watch(r.Context(), scope) {
			payload, err := json.Marshal(toListResponse(res))
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

// rescheduleHandler mueve una cita pendiente a otro médico/fecha/horario.
// @Summary Reagendar cita
// @Router /appointments/{appointmentID} [patch]
func rescheduleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req rescheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Reschedule(r.Context(), chi.URLParam(r, "appointmentID"),
			Actor{UserID: sess.User.UID, Admin: sess.IsAdmin()},
			RescheduleInput{
				DoctorID: req.DoctorID,
				Date:     req.Date,
				Time:     req.Time,
			})
		if err != nil {
			writeAppointmentError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAppointmentResponse(View{Appointment: a}))
	}
}

// confirmHandler marca la cita como Confirmada.
// @Summary Confirmar cita (admin)
// @Router /admin/appointments/{appointmentID}/confirm [post]
func confirmHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.Confirm(r.Context(), chi.URLParam(r, "appointmentID"))
		if err != nil {
			writeAppointmentError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(View{Appointment: a}))
	}
}

// deleteHandler cancela una cita (el paciente las suyas, el admin cualquiera).
// @Summary Cancelar cita
// @Router /appointments/{appointmentID} [delete]
func deleteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		err := svc.Delete(r.Context(), chi.URLParam(r, "appointmentID"),
			Actor{UserID: sess.User.UID, Admin: sess.IsAdmin()})
		if err != nil {
			writeAppointmentError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func filterFromQuery(r *http.Request) ListFilter {
	f := ListFilter{Search: r.URL.Query().Get("q")}
	if st := r.URL.Query().Get("status"); st != "" && st != "all" {
		f.Status = Status(st)
	}
	return f
}

func writeAppointmentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrSlotTaken):
		http.Error(w, "slot already taken", http.StatusConflict)
	case errors.Is(err, ErrBadState):
		http.Error(w, "appointment is not pending", http.StatusConflict)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "appointment not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toAppointmentResponse(v View) appointmentResponse {
	return appointmentResponse{
		ID:          v.ID,
		PatientID:   v.PatientID,
		DoctorID:    v.DoctorID,
		DoctorName:  v.DoctorName,
		PatientName: v.PatientName,
		Specialty:   v.Specialty,
		Date:        v.Date,
		Time:        v.Time,
		Status:      v.Status,
	}
}

func toListResponse(res ListResult) listResponse {
	out := listResponse{
		Items: make([]appointmentResponse, 0, len(res.Items)),
		Total: res.Total,
	}
	for _, v := range res.Items {
		out.Items = append(out.Items, toAppointmentResponse(v))
	}
	if len(out.Items) == 0 {
		if res.Total == 0 {
			out.Message = msgNoAppointments
		} else {
			out.Message = msgNoMatches
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
