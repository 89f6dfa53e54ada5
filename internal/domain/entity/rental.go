package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rental representa la renta de un vestido a un cliente.
// Referencia exactamente un Dress y al User del personal que la registró.
// Una renta está abierta mientras ReturnedAt sea nil; al devolverse o cancelarse
// el vestido vuelve a DISPONIBLE.
type Rental struct {
	ID         string
	ClientName string
	StartDate  time.Time
	EndDate    time.Time
	Price      decimal.Decimal
	DressID    string
	UserID     string
	ReturnedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Open indica si la renta sigue abierta (el vestido no ha sido devuelto).
func (r *Rental) Open() bool {
	return r.ReturnedAt == nil
}

// RentalDetail renta con el vestido y el usuario asociados (para listados).
type RentalDetail struct {
	Rental
	Dress Dress
	User  User
}
