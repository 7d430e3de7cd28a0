package repository

import "github.com/globalia/stock-api/internal/domain/entity"

// PendingRepository puerto de las líneas de pedido pendientes.
type PendingRepository interface {
	// Add persiste la línea asignándole un Idx monótono.
	Add(p *entity.PendingOrder) error
	Get(idx int64) (*entity.PendingOrder, error)
	Update(p *entity.PendingOrder) error
	Delete(idx int64) error
	// List devuelve las líneas ordenadas por Idx; modelo vacío = todas.
	List(modelo string) ([]entity.PendingOrder, error)
}

// FabricationRepository puerto de las órdenes en fabricación.
type FabricationRepository interface {
	Add(f *entity.FabricationOrder) error
	Get(idx int64) (*entity.FabricationOrder, error)
	Update(f *entity.FabricationOrder) error
	Delete(idx int64) error
	List(modelo string) ([]entity.FabricationOrder, error)
}
