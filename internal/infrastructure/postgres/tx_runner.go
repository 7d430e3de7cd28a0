package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/globalia/stock-api/internal/application/audit"
	"github.com/globalia/stock-api/internal/application/sanitize"
	"github.com/globalia/stock-api/internal/application/stock"
	"github.com/globalia/stock-api/internal/domain/repository"
)

var _ stock.TxRunner = (*TxRunner)(nil)
var _ audit.TxRunner = (*TxRunner)(nil)
var _ sanitize.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Dentro de la tx las lecturas de stock bloquean la
// fila (SELECT FOR UPDATE) para serializar el leer-y-escribir por clave.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	movRepo := NewMovementRepository(tx)
	stockRepo := NewStockRepository(tx)
	stockRepo.forUpdate = true

	if err := fn(movRepo, stockRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
