package specialties

import "context"

type Repository interface {
	// Upsert crea la especialidad si no existe; si existe, la deja intacta.
	Upsert(ctx context.Context, sp Specialty) error
	GetByID(ctx context.Context, id string) (Specialty, error)
	List(ctx context.Context) ([]Specialty, error)
	Delete(ctx context.Context, id string) error
}
