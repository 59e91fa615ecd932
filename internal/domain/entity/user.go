package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// ValidRole verifica que el rol sea uno de los soportados.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleManager || role == RoleStaff
}

// User representa un miembro del personal de la tienda.
// Nunca se elimina físicamente; se desactiva con IsActive.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FirstName    string
	LastName     string
	Role         string // admin, manager, staff
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName devuelve nombre completo, o username si no hay nombres cargados.
func (u *User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Username
	}
}

// ShortName devuelve "Nombre I." para el feed de actividad (ej. "Sarah M.").
func (u *User) ShortName() string {
	if u.FirstName == "" {
		return u.Username
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + string([]rune(u.LastName)[0]) + "."
}
