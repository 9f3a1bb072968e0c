package users

import "time"

// Role define los roles soportados.
// @Enum patient, admin
type Role string

const (
	RolePatient Role = "patient"
	RoleAdmin   Role = "admin"
)

// User representa el perfil persistido de una cuenta del proveedor de
// identidad. Se crea perezosamente en el primer sign-in con rol patient;
// el rol solo cambia por acción de un admin.
type User struct {
	UID string

	DisplayName string
	Email       string
	Role        Role

	Address string
	Phone   string

	CreatedAt time.Time
}
