package router

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "clinic-appointments/docs"
	mem "clinic-appointments/internal/adapters/storage/memory"
	pg "clinic-appointments/internal/adapters/storage/postgres"
	"clinic-appointments/internal/domain/appointments"
	"clinic-appointments/internal/domain/doctors"
	"clinic-appointments/internal/domain/specialties"
	"clinic-appointments/internal/domain/users"
	"clinic-appointments/internal/middleware"
	"clinic-appointments/internal/platform/logger"
	"clinic-appointments/internal/ports/auth"
	"clinic-appointments/internal/session"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev con headers X-Debug-*)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	log := opts.Logger
	if log == nil {
		log = logger.NewFromEnv()
	}

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var (
		doctorsRepo     doctors.Repository
		specialtiesRepo specialties.Repository
		usersRepo       users.Repository
		apptRepo        appointments.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Warn("postgres unavailable, falling back to memory", map[string]any{
					"err": err.Error(),
				})
			}
		}
	}

	if db != nil {
		doctorsRepo = pg.NewDoctorsRepo(db)
		specialtiesRepo = pg.NewSpecialtiesRepo(db)
		usersRepo = pg.NewUsersRepo(db)
		apptRepo = pg.NewAppointmentsRepo(db, pollIntervalFromEnv())
	} else {
		doctorsRepo = mem.NewDoctorsRepo()
		specialtiesRepo = mem.NewSpecialtiesRepo()
		usersRepo = mem.NewUsersRepo()
		apptRepo = mem.NewAppointmentsRepo()
	}

	// Services por módulo. Los chequeos de citas de doctors/specialties van
	// directo contra el repo de citas para no cruzar servicios en círculo.
	usersSvc := users.NewService(usersRepo)
	if raw := os.Getenv("ADMIN_EMAILS"); raw != "" {
		usersSvc.BootstrapAdmins(strings.Split(raw, ",")...)
	}
	specialtiesSvc := specialties.NewService(specialtiesRepo, apptRepo)
	doctorsSvc := doctors.NewService(doctorsRepo, apptRepo, specialtiesSvc)
	apptSvc := appointments.NewService(apptRepo, doctorsSvc, usersSvc)

	gate := session.NewGate(usersSvc, log)
	r.Group(func(r chi.Router) {
		r.Use(session.Middleware(gate))

		r.Get("/session", sessionHandler)

		// Rutas públicas autenticadas
		r.Group(func(r chi.Router) {
			r.Use(session.RequireUser)

			doctors.RegisterRoutes(r, doctorsSvc)
			specialties.RegisterRoutes(r, specialtiesSvc)
			appointments.RegisterRoutes(r, apptSvc)
			users.RegisterRoutes(r, usersSvc)
		})

		// Rutas de administración
		r.Route("/admin", func(r chi.Router) {
			r.Use(session.RequireAdmin)

			doctors.RegisterAdminRoutes(r, doctorsSvc)
			specialties.RegisterAdminRoutes(r, specialtiesSvc)
			appointments.RegisterAdminRoutes(r, apptSvc)
			users.RegisterAdminRoutes(r, usersSvc)
		})

		r.Get("/swagger/*", httpSwagger.Handler())
	})

	return r
}

// sessionHandler expone el estado de sesión resuelto para el request actual.
// El cliente usa home_route para decidir a dónde llevar al usuario.
func sessionHandler(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())

	out := map[string]any{
		"state":      string(sess.State),
		"home_route": sess.HomeRoute(),
	}
	if sess.IsAuthenticated() {
		out["user"] = map[string]any{
			"uid":          sess.User.UID,
			"display_name": sess.User.DisplayName,
			"email":        sess.User.Email,
			"role":         string(sess.User.Role),
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

func pollIntervalFromEnv() time.Duration {
	raw := os.Getenv("POLL_INTERVAL")
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0
	}
	return d
}
