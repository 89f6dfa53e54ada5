package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRentalRequest datos para registrar la renta de un vestido.
// UserID es opcional: si falta, se toma del contexto de identidad del request.
type CreateRentalRequest struct {
	ClientName string          `json:"client_name"`
	StartDate  string          `json:"start_date"` // RFC3339 o YYYY-MM-DD
	EndDate    string          `json:"end_date"`
	Price      decimal.Decimal `json:"price"`
	DressID    string          `json:"dress_id"`
	UserID     string          `json:"user_id"`
}

// UpdateRentalRequest campos mutables de una renta. DressID y UserID son
// inmutables: la máquina de estados del vestido no se modifica por esta vía.
type UpdateRentalRequest struct {
	ClientName *string          `json:"client_name"`
	StartDate  *string          `json:"start_date"`
	EndDate    *string          `json:"end_date"`
	Price      *decimal.Decimal `json:"price"`
}

// RentalResponse renta con el vestido y el usuario asociados.
type RentalResponse struct {
	ID         string          `json:"id"`
	ClientName string          `json:"client_name"`
	StartDate  time.Time       `json:"start_date"`
	EndDate    time.Time       `json:"end_date"`
	Price      decimal.Decimal `json:"price"`
	DressID    string          `json:"dress_id"`
	UserID     string          `json:"user_id"`
	ReturnedAt *time.Time      `json:"returned_at,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	Dress      *DressResponse  `json:"dress,omitempty"`
	User       *UserResponse   `json:"user,omitempty"`
}

// RentalListResponse listado paginado de rentas.
type RentalListResponse struct {
	Items  []RentalResponse `json:"items"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}
