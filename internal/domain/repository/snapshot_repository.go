package repository

import (
	"context"

	"github.com/globalia/stock-api/internal/domain/entity"
)

// Snapshotter produce y restaura fotos completas del almacén. Restore
// reemplaza todas las colecciones y contadores juntos: o todo o nada.
type Snapshotter interface {
	Snapshot(ctx context.Context) (*entity.Snapshot, error)
	Restore(ctx context.Context, snap *entity.Snapshot) error
}
