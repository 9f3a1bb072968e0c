package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"clinic-appointments/internal/ports/auth"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("user not found")
)

type Service struct {
	repo        Repository
	now         func() time.Time
	adminEmails map[string]struct{}
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// BootstrapAdmins registra emails que reciben rol admin cuando su perfil se
// crea por primera vez. Resuelve el arranque en un store vacío, donde nadie
// podría promover al primer admin.
func (s *Service) BootstrapAdmins(emails ...string) {
	if s.adminEmails == nil {
		s.adminEmails = map[string]struct{}{}
	}
	for _, e := range emails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			s.adminEmails[e] = struct{}{}
		}
	}
}

// EnsureProfile busca (o crea) el perfil para una identidad recién resuelta.
// Si el perfil no existe se crea con rol patient; si existe, se respeta su
// rol almacenado y no se sobrescribe nada.
func (s *Service) EnsureProfile(ctx context.Context, claims auth.Claims) (User, error) {
	uid := strings.TrimSpace(claims.UserID)
	if uid == "" {
		return User{}, ErrInvalidInput
	}

	u, err := s.repo.GetByUID(ctx, uid)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	role := RolePatient
	email := strings.TrimSpace(claims.Email)
	if _, boot := s.adminEmails[strings.ToLower(email)]; boot {
		role = RoleAdmin
	}

	u = User{
		UID:         uid,
		DisplayName: strings.TrimSpace(claims.DisplayName),
		Email:       email,
		Role:        role,
		CreatedAt:   s.now(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Service) GetByUID(ctx context.Context, uid string) (User, error) {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return User{}, ErrInvalidInput
	}
	return s.repo.GetByUID(ctx, uid)
}

type UpdateProfileInput struct {
	// Punteros para PATCH real: nil = no tocar.
	DisplayName *string
	Address     *string
	Phone       *string
}

// UpdateProfile edita los campos de perfil que el propio usuario controla.
// El rol y el email no se tocan por esta vía.
func (s *Service) UpdateProfile(ctx context.Context, uid string, in UpdateProfileInput) (User, error) {
	u, err := s.GetByUID(ctx, uid)
	if err != nil {
		return User{}, err
	}

	if in.DisplayName != nil {
		u.DisplayName = strings.TrimSpace(*in.DisplayName)
	}
	if in.Address != nil {
		u.Address = strings.TrimSpace(*in.Address)
	}
	if in.Phone != nil {
		u.Phone = strings.TrimSpace(*in.Phone)
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// ToggleRole alterna patient <-> admin. Solo lo invocan rutas de admin.
func (s *Service) ToggleRole(ctx context.Context, uid string) (User, error) {
	u, err := s.GetByUID(ctx, uid)
	if err != nil {
		return User{}, err
	}

	if u.Role == RoleAdmin {
		u.Role = RolePatient
	} else {
		u.Role = RoleAdmin
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

type ListFilter struct {
	Role   Role   // vacío = todos
	Search string // substring sobre displayName o email, case-insensitive
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]User, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]User, 0, len(all))
	for _, u := range all {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if term != "" {
			name := strings.ToLower(u.DisplayName)
			mail := strings.ToLower(u.Email)
			if !strings.Contains(name, term) && !strings.Contains(mail, term) {
				continue
			}
		}
		out = append(out, u)
	}
	return out, nil
}
