package router

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

// El router en modo dev (sin verifier) toma la identidad de los headers
// X-Debug-User-*; ADMIN_EMAILS arranca el primer admin en un store vacío.

const (
	adminEmail = "admin@example.com"
	// 2025-12-22 es lunes
	monday = "2025-12-22"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	t.Setenv("DB_DSN", "")
	t.Setenv("ADMIN_EMAILS", adminEmail)

	srv := httptest.NewServer(NewRouter(Options{}))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, uid, email string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if uid != "" {
		req.Header.Set("X-Debug-User-ID", uid)
		req.Header.Set("X-Debug-User-Email", email)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, raw
}

func createDoctor(t *testing.T, srv *httptest.Server) string {
	t.Helper()

	status, raw := do(t, srv, http.MethodPost, "/admin/doctors", "admin-1", adminEmail, map[string]any{
		"name":       "Dra. Rojas",
		"specialty":  "Cardiología",
		"days":       []string{"mon", "wed"},
		"start_time": "08:00",
		"end_time":   "11:00",
	})
	if status != http.StatusCreated {
		t.Fatalf("create doctor status = %d, body = %s", status, raw)
	}

	var doc struct {
		ID    string   `json:"id"`
		Slots []string `json:"slots"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("decode doctor: %v", err)
	}
	if len(doc.Slots) != 3 {
		t.Fatalf("slots = %v, want 3 hourly slots", doc.Slots)
	}
	return doc.ID
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	status, raw := do(t, srv, http.MethodGet, "/health", "", "", nil)
	if status != http.StatusOK || string(raw) != "ok" {
		t.Fatalf("health = %d %q", status, raw)
	}
}

func TestAnonymousIsRejectedFromProtectedRoutes(t *testing.T) {
	srv := newTestServer(t)

	status, _ := do(t, srv, http.MethodGet, "/appointments", "", "", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", status)
	}
}

func TestPatientCannotReachAdminRoutes(t *testing.T) {
	srv := newTestServer(t)

	status, _ := do(t, srv, http.MethodGet, "/admin/appointments", "pat-1", "pat1@example.com", nil)
	if status != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", status)
	}
}

func TestSessionEndpointReportsRoleAndHome(t *testing.T) {
	srv := newTestServer(t)

	var out struct {
		State     string `json:"state"`
		HomeRoute string `json:"home_route"`
	}

	status, raw := do(t, srv, http.MethodGet, "/session", "", "", nil)
	if status != http.StatusOK {
		t.Fatalf("session status = %d", status)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if out.State != "anonymous" || out.HomeRoute != "/login" {
		t.Fatalf("anonymous session = %+v", out)
	}

	status, raw = do(t, srv, http.MethodGet, "/session", "admin-1", adminEmail, nil)
	if status != http.StatusOK {
		t.Fatalf("session status = %d", status)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if out.State != "admin" || out.HomeRoute != "/admin" {
		t.Fatalf("admin session = %+v", out)
	}
}

func TestBookingFlow(t *testing.T) {
	srv := newTestServer(t)
	doctorID := createDoctor(t, srv)

	// Disponibilidad inicial: la grilla completa.
	status, raw := do(t, srv, http.MethodGet,
		"/appointments/availability?doctorId="+doctorID+"&date="+monday,
		"pat-1", "pat1@example.com", nil)
	if status != http.StatusOK {
		t.Fatalf("availability status = %d, body = %s", status, raw)
	}
	var avail struct {
		Slots []string `json:"slots"`
	}
	if err := json.Unmarshal(raw, &avail); err != nil {
		t.Fatalf("decode availability: %v", err)
	}
	if len(avail.Slots) != 3 {
		t.Fatalf("slots = %v, want full grid", avail.Slots)
	}

	book := map[string]any{
		"doctor_id": doctorID,
		"specialty": "Cardiología",
		"date":      monday,
		"time":      "09:00",
	}

	status, raw = do(t, srv, http.MethodPost, "/appointments", "pat-1", "pat1@example.com", book)
	if status != http.StatusCreated {
		t.Fatalf("book status = %d, body = %s", status, raw)
	}
	var appt struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(raw, &appt); err != nil {
		t.Fatalf("decode appointment: %v", err)
	}
	if appt.Status != "Pendiente" {
		t.Fatalf("status = %q, want Pendiente", appt.Status)
	}

	// Doble reserva del mismo horario por otro paciente.
	status, _ = do(t, srv, http.MethodPost, "/appointments", "pat-2", "pat2@example.com", book)
	if status != http.StatusConflict {
		t.Fatalf("double booking status = %d, want 409", status)
	}

	// El horario reservado desaparece de la disponibilidad.
	status, raw = do(t, srv, http.MethodGet,
		"/appointments/availability?doctorId="+doctorID+"&date="+monday,
		"pat-2", "pat2@example.com", nil)
	if status != http.StatusOK {
		t.Fatalf("availability status = %d", status)
	}
	if err := json.Unmarshal(raw, &avail); err != nil {
		t.Fatalf("decode availability: %v", err)
	}
	for _, s := range avail.Slots {
		if s == "09:00" {
			t.Fatalf("09:00 still available: %v", avail.Slots)
		}
	}

	// Reagendar sobre el propio horario es válido (exclusión de la propia cita).
	status, raw = do(t, srv, http.MethodPatch, "/appointments/"+appt.ID, "pat-1", "pat1@example.com", map[string]any{
		"doctor_id": doctorID,
		"date":      monday,
		"time":      "09:00",
	})
	if status != http.StatusOK {
		t.Fatalf("reschedule own slot status = %d, body = %s", status, raw)
	}

	// Un médico con citas no puede borrarse.
	status, _ = do(t, srv, http.MethodDelete, "/admin/doctors/"+doctorID, "admin-1", adminEmail, nil)
	if status != http.StatusConflict {
		t.Fatalf("delete busy doctor status = %d, want 409", status)
	}

	// Confirmación de admin; una cita confirmada ya no se reagenda.
	status, raw = do(t, srv, http.MethodPost, "/admin/appointments/"+appt.ID+"/confirm", "admin-1", adminEmail, nil)
	if status != http.StatusOK {
		t.Fatalf("confirm status = %d, body = %s", status, raw)
	}
	var confirmed struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(raw, &confirmed); err != nil {
		t.Fatalf("decode confirm: %v", err)
	}
	if confirmed.Status != "Confirmada" {
		t.Fatalf("status = %q, want Confirmada", confirmed.Status)
	}

	status, _ = do(t, srv, http.MethodPatch, "/appointments/"+appt.ID, "pat-1", "pat1@example.com", map[string]any{
		"doctor_id": doctorID,
		"date":      monday,
		"time":      "10:00",
	})
	if status != http.StatusConflict {
		t.Fatalf("reschedule confirmed status = %d, want 409", status)
	}

	// Cancelación: otro paciente no puede, el dueño sí.
	status, _ = do(t, srv, http.MethodDelete, "/appointments/"+appt.ID, "pat-2", "pat2@example.com", nil)
	if status != http.StatusForbidden {
		t.Fatalf("delete by stranger status = %d, want 403", status)
	}
	status, _ = do(t, srv, http.MethodDelete, "/appointments/"+appt.ID, "pat-1", "pat1@example.com", nil)
	if status != http.StatusNoContent {
		t.Fatalf("delete by owner status = %d, want 204", status)
	}
}

func TestListMessagesDistinguishEmptyFromFiltered(t *testing.T) {
	srv := newTestServer(t)
	doctorID := createDoctor(t, srv)

	var list struct {
		Items   []json.RawMessage `json:"items"`
		Total   int               `json:"total"`
		Message string            `json:"message"`
	}

	// Sin citas: mensaje de agenda vacía.
	status, raw := do(t, srv, http.MethodGet, "/appointments", "pat-1", "pat1@example.com", nil)
	if status != http.StatusOK {
		t.Fatalf("list status = %d", status)
	}
	if err := json.Unmarshal(raw, &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if list.Message != "No tienes citas agendadas." {
		t.Fatalf("message = %q", list.Message)
	}

	status, _ = do(t, srv, http.MethodPost, "/appointments", "pat-1", "pat1@example.com", map[string]any{
		"doctor_id": doctorID,
		"specialty": "Cardiología",
		"date":      monday,
		"time":      "08:00",
	})
	if status != http.StatusCreated {
		t.Fatalf("book status = %d", status)
	}

	// Con citas pero filtros sin match: mensaje de filtros.
	status, raw = do(t, srv, http.MethodGet, "/appointments?q=zzz", "pat-1", "pat1@example.com", nil)
	if status != http.StatusOK {
		t.Fatalf("list status = %d", status)
	}
	if err := json.Unmarshal(raw, &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if list.Total != 1 || len(list.Items) != 0 {
		t.Fatalf("total = %d items = %d, want 1/0", list.Total, len(list.Items))
	}
	if list.Message != "No se encontraron citas que coincidan con los filtros." {
		t.Fatalf("message = %q", list.Message)
	}
}

func TestAvailabilityEmptyOnNonWorkingDay(t *testing.T) {
	srv := newTestServer(t)
	doctorID := createDoctor(t, srv)

	// 2025-12-21 es domingo; la doctora atiende mon/wed.
	status, raw := do(t, srv, http.MethodGet,
		"/appointments/availability?doctorId="+doctorID+"&date=2025-12-21",
		"pat-1", "pat1@example.com", nil)
	if status != http.StatusOK {
		t.Fatalf("availability status = %d", status)
	}

	var avail struct {
		Slots []string `json:"slots"`
	}
	if err := json.Unmarshal(raw, &avail); err != nil {
		t.Fatalf("decode availability: %v", err)
	}
	if len(avail.Slots) != 0 {
		t.Fatalf("slots = %v, want empty on non-working day", avail.Slots)
	}
}

func TestProfileLifecycle(t *testing.T) {
	srv := newTestServer(t)

	// El primer request autenticado crea el perfil con rol patient.
	status, raw := do(t, srv, http.MethodGet, "/me", "pat-1", "pat1@example.com", nil)
	if status != http.StatusOK {
		t.Fatalf("me status = %d, body = %s", status, raw)
	}
	var me struct {
		UID  string `json:"uid"`
		Role string `json:"role"`
	}
	if err := json.Unmarshal(raw, &me); err != nil {
		t.Fatalf("decode me: %v", err)
	}
	if me.UID != "pat-1" || me.Role != "patient" {
		t.Fatalf("me = %+v", me)
	}

	status, raw = do(t, srv, http.MethodPatch, "/me", "pat-1", "pat1@example.com", map[string]any{
		"phone": "555-0101",
	})
	if status != http.StatusOK {
		t.Fatalf("patch me status = %d, body = %s", status, raw)
	}

	// El admin puede alternar el rol; el siguiente request ya resuelve admin.
	status, raw = do(t, srv, http.MethodPost, "/admin/users/pat-1/role", "admin-1", adminEmail, nil)
	if status != http.StatusOK {
		t.Fatalf("toggle role status = %d, body = %s", status, raw)
	}

	var sess struct {
		State string `json:"state"`
	}
	status, raw = do(t, srv, http.MethodGet, "/session", "pat-1", "pat1@example.com", nil)
	if status != http.StatusOK {
		t.Fatalf("session status = %d", status)
	}
	if err := json.Unmarshal(raw, &sess); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if sess.State != "admin" {
		t.Fatalf("state = %q, want admin after toggle", sess.State)
	}
}

func TestSpecialtiesCatalog(t *testing.T) {
	srv := newTestServer(t)
	createDoctor(t, srv)

	// El alta del médico hace upsert de su especialidad.
	status, raw := do(t, srv, http.MethodGet, "/specialties", "pat-1", "pat1@example.com", nil)
	if status != http.StatusOK {
		t.Fatalf("specialties status = %d", status)
	}
	var items []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		t.Fatalf("decode specialties: %v", err)
	}
	if len(items) != 1 || items[0].ID != "cardiología" || items[0].Name != "Cardiología" {
		t.Fatalf("specialties = %+v", items)
	}

	status, _ = do(t, srv, http.MethodPost, "/admin/specialties", "admin-1", adminEmail, map[string]any{
		"name": "Pediatría",
	})
	if status != http.StatusCreated {
		t.Fatalf("create specialty status = %d", status)
	}

	status, _ = do(t, srv, http.MethodDelete, "/admin/specialties/"+url.PathEscape("pediatría"), "admin-1", adminEmail, nil)
	if status != http.StatusNoContent {
		t.Fatalf("delete specialty status = %d, want 204", status)
	}
}
