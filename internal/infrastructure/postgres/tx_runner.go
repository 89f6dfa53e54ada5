package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/boutique-api/internal/application/ledger"
	"github.com/tu-usuario/boutique-api/internal/domain/repository"
)

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Los bloqueos de fila (GetByIDForUpdate) viven hasta el
// cierre de la transacción, serializando escrituras concurrentes sobre el
// mismo vestido.
func (r *TxRunner) Run(ctx context.Context, fn func(
	dressRepo repository.DressRepository,
	rentalRepo repository.RentalRepository,
	saleRepo repository.SaleRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	dressRepo := NewDressRepository(tx)
	rentalRepo := NewRentalRepository(tx)
	saleRepo := NewSaleRepository(tx)

	if err := fn(dressRepo, rentalRepo, saleRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
