package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest datos para registrar la venta de un vestido.
// UserID es opcional: si falta, se toma del contexto de identidad del request.
type CreateSaleRequest struct {
	ClientName string          `json:"client_name"`
	Date       string          `json:"date"` // RFC3339 o YYYY-MM-DD; vacío = hoy
	Price      decimal.Decimal `json:"price"`
	DressID    string          `json:"dress_id"`
	UserID     string          `json:"user_id"`
}

// UpdateSaleRequest campos mutables de una venta. DressID y UserID son inmutables.
type UpdateSaleRequest struct {
	ClientName *string          `json:"client_name"`
	Date       *string          `json:"date"`
	Price      *decimal.Decimal `json:"price"`
}

// SaleResponse venta con el vestido y el usuario asociados.
type SaleResponse struct {
	ID         string          `json:"id"`
	ClientName string          `json:"client_name"`
	Date       time.Time       `json:"date"`
	Price      decimal.Decimal `json:"price"`
	DressID    string          `json:"dress_id"`
	UserID     string          `json:"user_id"`
	CreatedAt  time.Time       `json:"created_at"`
	Dress      *DressResponse  `json:"dress,omitempty"`
	User       *UserResponse   `json:"user,omitempty"`
}

// SaleListResponse listado paginado de ventas.
type SaleListResponse struct {
	Items  []SaleResponse `json:"items"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}
