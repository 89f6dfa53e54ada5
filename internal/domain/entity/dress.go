package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un vestido. El status es la única fuente de verdad de su disponibilidad.
const (
	StatusDisponible = "DISPONIBLE"
	StatusRentado    = "RENTADO"
	StatusVendido    = "VENDIDO" // estado terminal: no admite ninguna transición posterior
)

// ValidStatus verifica que el estado sea uno de los conocidos.
func ValidStatus(s string) bool {
	return s == StatusDisponible || s == StatusRentado || s == StatusVendido
}

// CanTransition indica si la transición de estado from -> to está permitida.
// VENDIDO es terminal; DISPONIBLE <-> RENTADO es bidireccional (renta y devolución);
// cualquier estado no terminal puede pasar a VENDIDO vía venta.
func CanTransition(from, to string) bool {
	if !ValidStatus(from) || !ValidStatus(to) {
		return false
	}
	if from == StatusVendido {
		return false
	}
	return true
}

// Dress representa un vestido del catálogo de la boutique.
type Dress struct {
	ID          string
	Name        string
	Size        string // XS, S, M, L, XL
	Color       string
	Price       decimal.Decimal // precio de venta
	RentalPrice decimal.Decimal // precio de renta
	Status      string          // DISPONIBLE, RENTADO, VENDIDO
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Disponible indica si el vestido puede rentarse o venderse.
func (d *Dress) Disponible() bool {
	return d.Status == StatusDisponible
}
