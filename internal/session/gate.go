// Package session resuelve el estado de sesión (rol incluido) a partir de la
// identidad del proveedor externo. Reemplaza el estado global de sesión por un
// objeto explícito que se inyecta donde se necesita, con suscripción a
// transiciones para quien quiera observarlas.
package session

import (
	"context"
	"fmt"
	"sync"

	"clinic-appointments/internal/domain/users"
	"clinic-appointments/internal/platform/logger"
	"clinic-appointments/internal/ports/auth"
)

// State modela la máquina Loading -> {Anonymous, Patient, Admin}.
type State string

const (
	StateLoading   State = "loading"
	StateAnonymous State = "anonymous"
	StatePatient   State = "patient"
	StateAdmin     State = "admin"
)

// Session es el resultado de una resolución de identidad.
type Session struct {
	State State
	User  users.User
}

// IsAuthenticated reporta si la sesión tiene un usuario con rol conocido.
func (s Session) IsAuthenticated() bool {
	return s.State == StatePatient || s.State == StateAdmin
}

// IsAdmin reporta si la sesión corresponde a un administrador.
func (s Session) IsAdmin() bool {
	return s.State == StateAdmin
}

// HomeRoute devuelve la ruta a la que un cliente debería dirigir esta sesión:
// login si es anónima, panel de admin o home de paciente según rol.
func (s Session) HomeRoute() string {
	switch s.State {
	case StateAdmin:
		return "/admin"
	case StatePatient:
		return "/"
	default:
		return "/login"
	}
}

// Gate resuelve sesiones y publica las transiciones observadas.
// Arranca en Loading; cada Resolve lo mueve a Anonymous/Patient/Admin.
type Gate struct {
	users *users.Service
	log   logger.Logger

	mu      sync.RWMutex
	current Session
	subs    map[int]chan Session
	nextSub int
}

func NewGate(usersSvc *users.Service, log logger.Logger) *Gate {
	if log == nil {
		log = logger.New(logger.Options{})
	}
	return &Gate{
		users:   usersSvc,
		log:     log,
		current: Session{State: StateLoading},
		subs:    map[int]chan Session{},
	}
}

// Resolve materializa la sesión para una identidad (o su ausencia).
// Si el perfil no existe se crea perezosamente con rol patient. Si la
// resolución/creación falla, el resultado es una sesión anónima: preferimos
// forzar el sign-out antes que continuar autenticados sin rol conocido.
func (g *Gate) Resolve(ctx context.Context, claims auth.Claims, authenticated bool) (Session, error) {
	if !authenticated {
		s := Session{State: StateAnonymous}
		g.publish(s)
		return s, nil
	}

	u, err := g.users.EnsureProfile(ctx, claims)
	if err != nil {
		g.log.Error("session resolve failed, forcing sign-out", map[string]any{
			"user_id": claims.UserID,
			"err":     err.Error(),
		})
		s := Session{State: StateAnonymous}
		g.publish(s)
		return s, fmt.Errorf("session: resolve user: %w", err)
	}

	st := StatePatient
	if u.Role == users.RoleAdmin {
		st = StateAdmin
	}

	s := Session{State: st, User: u}
	g.publish(s)
	return s, nil
}

// Snapshot devuelve la última sesión publicada (Loading si aún no hubo).
func (g *Gate) Snapshot() Session {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.current
}

// Subscribe entrega cada transición de sesión hasta que ctx termine.
// El canal tiene buffer 1 y descarta la transición más vieja si el
// consumidor se atrasa: al observador le interesa el estado vigente.
func (g *Gate) Subscribe(ctx context.Context) <-chan Session {
	ch := make(chan Session, 1)

	g.mu.Lock()
	id := g.nextSub
	g.nextSub++
	g.subs[id] = ch
	g.mu.Unlock()

	go func() {
		<-ctx.Done()
		g.mu.Lock()
		delete(g.subs, id)
		g.mu.Unlock()
	}()

	return ch
}

func (g *Gate) publish(s Session) {
	g.mu.Lock()
	g.current = s
	for _, ch := range g.subs {
		select {
		case ch <- s:
		default:
			// descarta la pendiente y deja la más nueva
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- s:
			default:
			}
		}
	}
	g.mu.Unlock()
}
