package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "ADMIN"
	RoleStaff = "STAFF"
)

// ValidRole verifica que el rol sea uno de los conocidos.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleStaff
}

// User representa un usuario del sistema (personal de la boutique).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca en claro después de persistir
	Name         string
	Role         string // ADMIN, STAFF
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
