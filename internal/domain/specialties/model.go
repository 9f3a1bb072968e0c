package specialties

// Specialty es una entrada del catálogo de especialidades.
// El ID es el nombre en minúsculas: así el alta de médicos puede hacer
// upsert idempotente sin consultar antes.
type Specialty struct {
	ID   string
	Name string
}
