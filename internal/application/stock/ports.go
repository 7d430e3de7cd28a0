package stock

import (
	"context"

	"github.com/globalia/stock-api/internal/domain/repository"
)

// TxRunner ejecuta un callback con el libro de movimientos y la tabla de
// stock bajo la misma unidad atómica (transacción SQL o bloqueo del store
// JSON). Si fn devuelve error no queda ningún cambio visible.
type TxRunner interface {
	Run(ctx context.Context, fn func(movRepo repository.MovementRepository, stockRepo repository.StockRepository) error) error
}
