package dto

import "time"

// CreateUserRequest datos para crear un usuario (solo ADMIN).
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // ADMIN | STAFF; por defecto STAFF
}

// UpdateUserRequest campos opcionales a actualizar. Password presente = rotación
// (se vuelve a hashear); el ID nunca cambia.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

// UserResponse representación segura de un usuario (sin hash de contraseña).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserListResponse listado paginado de usuarios.
type UserListResponse struct {
	Items  []UserResponse `json:"items"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}
