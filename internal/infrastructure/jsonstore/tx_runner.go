package jsonstore

import (
	"context"

	"github.com/globalia/stock-api/internal/application/audit"
	"github.com/globalia/stock-api/internal/application/sanitize"
	"github.com/globalia/stock-api/internal/application/stock"
	"github.com/globalia/stock-api/internal/domain/repository"
)

// Los tres puertos TxRunner comparten firma; el runner del store los
// satisface a todos.
var _ stock.TxRunner = (*TxRunner)(nil)
var _ audit.TxRunner = (*TxRunner)(nil)
var _ sanitize.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks con el candado del grupo almacén tomado una
// sola vez. Si fn falla se restaura la copia en memoria y no se escribe
// nada en disco; si termina bien hay un único flush.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run toma el candado, ejecuta fn con repos ya dentro de la transacción y
// persiste al final. El mutex de escritura se mantiene durante todo el
// callback: ningún lector ve la transacción a medias.
func (r *TxRunner) Run(ctx context.Context, fn func(movRepo repository.MovementRepository, stockRepo repository.StockRepository) error) error {
	if err := r.s.acquire(r.s.semAlmacen); err != nil {
		return err
	}
	defer r.s.release(r.s.semAlmacen)

	r.s.muAlmacen.Lock()
	copia := r.s.almacen.clone()
	movRepo := &MovementRepo{s: r.s, enTx: true}
	stockRepo := &StockRepo{s: r.s, enTx: true}
	if err := fn(movRepo, stockRepo); err != nil {
		r.s.almacen = copia
		r.s.muAlmacen.Unlock()
		return err
	}
	r.s.muAlmacen.Unlock()
	return r.s.flushAlmacen()
}
