package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrDressNotAvailable  = errors.New("el vestido no está disponible")
	ErrDressSold          = errors.New("el vestido está vendido; estado terminal")
	ErrDressReferenced    = errors.New("el vestido tiene rentas o ventas asociadas")
	ErrUserReferenced     = errors.New("el usuario tiene rentas o ventas asociadas")
	ErrRentalClosed       = errors.New("la renta ya fue devuelta")
)
