package jsonstore

import (
	"fmt"

	"github.com/globalia/stock-api/internal/domain"
	"github.com/globalia/stock-api/internal/domain/entity"
	"github.com/globalia/stock-api/internal/domain/repository"
)

var _ repository.PendingRepository = (*PendingRepo)(nil)
var _ repository.FabricationRepository = (*FabricationRepo)(nil)

// PendingRepo líneas de pedido pendientes sobre el store JSON.
type PendingRepo struct {
	s *Store
}

// NewPendingRepository construye el adaptador.
func NewPendingRepository(s *Store) *PendingRepo {
	return &PendingRepo{s: s}
}

// Add persiste la línea con el siguiente Idx monótono.
func (r *PendingRepo) Add(p *entity.PendingOrder) error {
	return r.s.conPrevision(true, func(d *previsionData) error {
		p.Idx = d.NextIdxPendientes
		d.NextIdxPendientes++
		d.Pendientes = append(d.Pendientes, *p)
		return nil
	})
}

// Get devuelve la línea o ErrNotFound.
func (r *PendingRepo) Get(idx int64) (*entity.PendingOrder, error) {
	var out *entity.PendingOrder
	err := r.s.conPrevision(false, func(d *previsionData) error {
		for i := range d.Pendientes {
			if d.Pendientes[i].Idx == idx {
				copia := d.Pendientes[i]
				out = &copia
				return nil
			}
		}
		return fmt.Errorf("%w: pendiente %d", domain.ErrNotFound, idx)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update reemplaza la línea con el mismo Idx.
func (r *PendingRepo) Update(p *entity.PendingOrder) error {
	return r.s.conPrevision(true, func(d *previsionData) error {
		for i := range d.Pendientes {
			if d.Pendientes[i].Idx == p.Idx {
				d.Pendientes[i] = *p
				return nil
			}
		}
		return fmt.Errorf("%w: pendiente %d", domain.ErrNotFound, p.Idx)
	})
}

// Delete elimina la línea. Su Idx no vuelve a usarse.
func (r *PendingRepo) Delete(idx int64) error {
	return r.s.conPrevision(true, func(d *previsionData) error {
		for i := range d.Pendientes {
			if d.Pendientes[i].Idx == idx {
				d.Pendientes = append(d.Pendientes[:i], d.Pendientes[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: pendiente %d", domain.ErrNotFound, idx)
	})
}

// List devuelve las líneas en orden de Idx; modelo vacío = todas.
func (r *PendingRepo) List(modelo string) ([]entity.PendingOrder, error) {
	var out []entity.PendingOrder
	err := r.s.conPrevision(false, func(d *previsionData) error {
		for _, p := range d.Pendientes {
			if modelo != "" && p.Modelo != modelo {
				continue
			}
			out = append(out, p)
		}
		return nil
	})
	return out, err
}

// FabricationRepo órdenes en fabricación sobre el store JSON.
type FabricationRepo struct {
	s *Store
}

// NewFabricationRepository construye el adaptador.
func NewFabricationRepository(s *Store) *FabricationRepo {
	return &FabricationRepo{s: s}
}

// Add persiste la orden con el siguiente Idx monótono.
func (r *FabricationRepo) Add(f *entity.FabricationOrder) error {
	return r.s.conPrevision(true, func(d *previsionData) error {
		f.Idx = d.NextIdxFabricacion
		d.NextIdxFabricacion++
		d.Fabricacion = append(d.Fabricacion, *f)
		return nil
	})
}

// Get devuelve la orden o ErrNotFound.
func (r *FabricationRepo) Get(idx int64) (*entity.FabricationOrder, error) {
	var out *entity.FabricationOrder
	err := r.s.conPrevision(false, func(d *previsionData) error {
		for i := range d.Fabricacion {
			if d.Fabricacion[i].Idx == idx {
				copia := d.Fabricacion[i]
				out = &copia
				return nil
			}
		}
		return fmt.Errorf("%w: fabricación %d", domain.ErrNotFound, idx)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update reemplaza la orden con el mismo Idx.
func (r *FabricationRepo) Update(f *entity.FabricationOrder) error {
	return r.s.conPrevision(true, func(d *previsionData) error {
		for i := range d.Fabricacion {
			if d.Fabricacion[i].Idx == f.Idx {
				d.Fabricacion[i] = *f
				return nil
			}
		}
		return fmt.Errorf("%w: fabricación %d", domain.ErrNotFound, f.Idx)
	})
}

// Delete elimina la orden.
func (r *FabricationRepo) Delete(idx int64) error {
	return r.s.conPrevision(true, func(d *previsionData) error {
		for i := range d.Fabricacion {
			if d.Fabricacion[i].Idx == idx {
				d.Fabricacion = append(d.Fabricacion[:i], d.Fabricacion[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: fabricación %d", domain.ErrNotFound, idx)
	})
}

// List devuelve las órdenes en orden de Idx; modelo vacío = todas.
func (r *FabricationRepo) List(modelo string) ([]entity.FabricationOrder, error) {
	var out []entity.FabricationOrder
	err := r.s.conPrevision(false, func(d *previsionData) error {
		for _, f := range d.Fabricacion {
			if modelo != "" && f.Modelo != modelo {
				continue
			}
			out = append(out, f)
		}
		return nil
	})
	return out, err
}
