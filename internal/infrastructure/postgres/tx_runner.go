package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/ventas-api/internal/application/ledger"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// Ensure TxRunner implements ledger.TxRunner.
var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, sobre un
// handle tomado del pool. El handle se libera en todo camino de salida y
// nunca queda con una transacción abierta: Begin / fn / Commit, con Rollback
// diferido que es no-op tras un Commit exitoso.
type TxRunner struct {
	pool *ConnPool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *ConnPool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run toma un handle, inicia una transacción, ejecuta fn con repos atados a la
// tx y hace Commit o Rollback. El error de fn se propaga sin envolver para que
// el caller distinga los errores de dominio.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer r.pool.Release(conn)

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %w", domain.ErrStorageUnavailable, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	productRepo := NewProductRepository(tx)
	saleRepo := NewSaleRepository(tx)
	movementRepo := NewStockMovementRepository(tx)

	if err := fn(productRepo, saleRepo, movementRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit transaction: %w", domain.ErrStorageUnavailable, err)
	}
	return nil
}
