package ledger

import (
	"context"

	"github.com/tu-usuario/boutique-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repos atados a la tx.
// Commit si fn retorna nil; Rollback en caso contrario. Es el contrato de
// atomicidad del ledger: alta de renta/venta y cambio de estado del vestido
// ocurren juntos o no ocurren.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		dressRepo repository.DressRepository,
		rentalRepo repository.RentalRepository,
		saleRepo repository.SaleRepository,
	) error) error
}
