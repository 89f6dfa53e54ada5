package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateDressRequest datos para registrar un vestido en el catálogo.
// Status es opcional; por defecto DISPONIBLE.
type CreateDressRequest struct {
	Name        string          `json:"name"`
	Size        string          `json:"size"`
	Color       string          `json:"color"`
	Price       decimal.Decimal `json:"price"`
	RentalPrice decimal.Decimal `json:"rental_price"`
	Status      string          `json:"status"`
}

// UpdateDressRequest campos opcionales a actualizar. Un cambio de Status pasa
// por la misma validación de transiciones que SetStatus (VENDIDO es terminal).
type UpdateDressRequest struct {
	Name        *string          `json:"name"`
	Size        *string          `json:"size"`
	Color       *string          `json:"color"`
	Price       *decimal.Decimal `json:"price"`
	RentalPrice *decimal.Decimal `json:"rental_price"`
	Status      *string          `json:"status"`
}

// SetDressStatusRequest cambio administrativo directo de estado.
type SetDressStatusRequest struct {
	Status string `json:"status"`
}

// DressResponse representación de un vestido.
type DressResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Size        string          `json:"size"`
	Color       string          `json:"color"`
	Price       decimal.Decimal `json:"price"`
	RentalPrice decimal.Decimal `json:"rental_price"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// DressListResponse listado paginado de vestidos.
type DressListResponse struct {
	Items  []DressResponse `json:"items"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}
