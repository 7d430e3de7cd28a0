package jsonstore

import (
	"context"
	"time"

	"github.com/globalia/stock-api/internal/domain/entity"
	"github.com/globalia/stock-api/internal/domain/repository"
	"github.com/globalia/stock-api/internal/domain/size"
)

var _ repository.Snapshotter = (*Store)(nil)

// Snapshot toma los tres candados en orden fijo (almacén, previsión,
// catálogo) y devuelve la foto completa. Las cantidades se coercionan a
// entero: el backup es el formato de intercambio y no arrastra basura.
func (s *Store) Snapshot(ctx context.Context) (*entity.Snapshot, error) {
	if err := s.acquire(s.semAlmacen); err != nil {
		return nil, err
	}
	defer s.release(s.semAlmacen)
	if err := s.acquire(s.semPrevision); err != nil {
		return nil, err
	}
	defer s.release(s.semPrevision)
	if err := s.acquire(s.semCatalogo); err != nil {
		return nil, err
	}
	defer s.release(s.semCatalogo)

	snap := &entity.Snapshot{
		CreatedAt:          time.Now().UTC(),
		Historial:          append([]entity.Movement(nil), s.almacen.Historial...),
		NextSeq:            s.almacen.NextSeq,
		Pendientes:         append([]entity.PendingOrder(nil), s.prevision.Pendientes...),
		NextIdxPendientes:  s.prevision.NextIdxPendientes,
		Fabricacion:        append([]entity.FabricationOrder(nil), s.prevision.Fabricacion...),
		NextIdxFabricacion: s.prevision.NextIdxFabricacion,
		Talleres:           append([]entity.Workshop(nil), s.catalogo.Talleres...),
		Clientes:           append([]entity.Client(nil), s.catalogo.Clientes...),
	}
	for modelo, tallas := range s.almacen.Almacen {
		for talla, v := range tallas {
			cantidad, _ := size.CoerceCantidad(v)
			snap.Almacen = append(snap.Almacen, entity.StockRow{Modelo: modelo, Talla: talla, Cantidad: cantidad})
		}
	}
	for _, info := range s.catalogo.Modelos {
		snap.Modelos = append(snap.Modelos, info)
	}
	return snap, nil
}

// Restore reemplaza el estado completo por el del snapshot y lo persiste.
// Mantiene los tres candados durante todo el reemplazo: o todo o nada.
func (s *Store) Restore(ctx context.Context, snap *entity.Snapshot) error {
	if err := s.acquire(s.semAlmacen); err != nil {
		return err
	}
	defer s.release(s.semAlmacen)
	if err := s.acquire(s.semPrevision); err != nil {
		return err
	}
	defer s.release(s.semPrevision)
	if err := s.acquire(s.semCatalogo); err != nil {
		return err
	}
	defer s.release(s.semCatalogo)

	s.muAlmacen.Lock()
	defer s.muAlmacen.Unlock()
	s.muPrevision.Lock()
	defer s.muPrevision.Unlock()
	s.muCatalogo.Lock()
	defer s.muCatalogo.Unlock()

	almacen := make(map[string]map[string]any)
	for _, fila := range snap.Almacen {
		tallas, ok := almacen[fila.Modelo]
		if !ok {
			tallas = make(map[string]any)
			almacen[fila.Modelo] = tallas
		}
		tallas[fila.Talla] = fila.Cantidad
	}
	modelos := make(map[string]entity.ModelInfo, len(snap.Modelos))
	for _, info := range snap.Modelos {
		modelos[info.Modelo] = info
	}

	s.almacen = almacenData{
		Almacen:   almacen,
		Historial: append([]entity.Movement(nil), snap.Historial...),
		NextSeq:   snap.NextSeq,
	}
	s.prevision = previsionData{
		Pendientes:         append([]entity.PendingOrder(nil), snap.Pendientes...),
		NextIdxPendientes:  snap.NextIdxPendientes,
		Fabricacion:        append([]entity.FabricationOrder(nil), snap.Fabricacion...),
		NextIdxFabricacion: snap.NextIdxFabricacion,
	}
	s.catalogo = catalogoData{
		Modelos:  modelos,
		Talleres: append([]entity.Workshop(nil), snap.Talleres...),
		Clientes: append([]entity.Client(nil), snap.Clientes...),
	}
	s.recuperarContadores()

	if err := s.flushAlmacen(); err != nil {
		return err
	}
	if err := s.flushPrevision(); err != nil {
		return err
	}
	return s.flushCatalogo()
}
