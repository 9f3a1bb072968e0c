package doctors

// Doctor representa un médico con su grilla de atención precomputada.
// days usa códigos sun..sat; slots es la grilla "HH:MM" generada al crearlo
// a partir del rango de atención, estrictamente creciente.
// Los médicos no se editan in-place: solo alta y baja por admin.
type Doctor struct {
	ID        string
	Name      string
	Specialty string

	Days  []string
	Slots []string
}

// WorksOn reporta si el médico atiende el día indicado (código sun..sat).
func (d Doctor) WorksOn(dayCode string) bool {
	for _, day := range d.Days {
		if day == dayCode {
			return true
		}
	}
	return false
}
