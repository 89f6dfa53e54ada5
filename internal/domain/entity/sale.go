package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa la venta de un vestido. Es terminal: un vestido vendido
// no vuelve a ofrecerse y la venta no se revierte.
type Sale struct {
	ID         string
	ClientName string
	Date       time.Time
	Price      decimal.Decimal
	DressID    string
	UserID     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SaleDetail venta con el vestido y el usuario asociados (para listados).
type SaleDetail struct {
	Sale
	Dress Dress
	User  User
}
