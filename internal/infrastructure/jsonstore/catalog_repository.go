package jsonstore

import (
	"fmt"
	"sort"
	"strings"

	"github.com/globalia/stock-api/internal/domain"
	"github.com/globalia/stock-api/internal/domain/entity"
	"github.com/globalia/stock-api/internal/domain/repository"
)

var _ repository.ModelInfoRepository = (*ModelInfoRepo)(nil)
var _ repository.WorkshopRepository = (*WorkshopRepo)(nil)
var _ repository.ClientRepository = (*ClientRepo)(nil)

// ModelInfoRepo fichas de modelo sobre el store JSON.
type ModelInfoRepo struct {
	s *Store
}

// NewModelInfoRepository construye el adaptador.
func NewModelInfoRepository(s *Store) *ModelInfoRepo {
	return &ModelInfoRepo{s: s}
}

// Upsert crea o actualiza la ficha.
func (r *ModelInfoRepo) Upsert(info *entity.ModelInfo) error {
	return r.s.conCatalogo(true, func(d *catalogoData) error {
		d.Modelos[info.Modelo] = *info
		return nil
	})
}

// Get devuelve la ficha o ErrNotFound.
func (r *ModelInfoRepo) Get(modelo string) (*entity.ModelInfo, error) {
	var out *entity.ModelInfo
	err := r.s.conCatalogo(false, func(d *catalogoData) error {
		info, ok := d.Modelos[modelo]
		if !ok {
			return fmt.Errorf("%w: modelo %s", domain.ErrNotFound, modelo)
		}
		out = &info
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List devuelve las fichas ordenadas por modelo.
func (r *ModelInfoRepo) List() ([]entity.ModelInfo, error) {
	var out []entity.ModelInfo
	err := r.s.conCatalogo(false, func(d *catalogoData) error {
		for _, info := range d.Modelos {
			out = append(out, info)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Modelo < out[j].Modelo })
	return out, nil
}

// WorkshopRepo talleres sobre el store JSON.
type WorkshopRepo struct {
	s *Store
}

// NewWorkshopRepository construye el adaptador.
func NewWorkshopRepository(s *Store) *WorkshopRepo {
	return &WorkshopRepo{s: s}
}

// Add registra el taller; el nombre es único sin distinguir mayúsculas.
func (r *WorkshopRepo) Add(w *entity.Workshop) error {
	return r.s.conCatalogo(true, func(d *catalogoData) error {
		for _, existente := range d.Talleres {
			if strings.EqualFold(existente.Nombre, w.Nombre) {
				return fmt.Errorf("%w: taller %s", domain.ErrDuplicate, w.Nombre)
			}
		}
		d.Talleres = append(d.Talleres, *w)
		return nil
	})
}

// Update cambia el contacto del taller conservando el nombre registrado.
func (r *WorkshopRepo) Update(nombre, contacto string) (*entity.Workshop, error) {
	var out *entity.Workshop
	err := r.s.conCatalogo(true, func(d *catalogoData) error {
		for i := range d.Talleres {
			if strings.EqualFold(d.Talleres[i].Nombre, nombre) {
				d.Talleres[i].Contacto = contacto
				w := d.Talleres[i]
				out = &w
				return nil
			}
		}
		return fmt.Errorf("%w: taller %s", domain.ErrNotFound, nombre)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete elimina el taller por nombre.
func (r *WorkshopRepo) Delete(nombre string) error {
	return r.s.conCatalogo(true, func(d *catalogoData) error {
		for i := range d.Talleres {
			if strings.EqualFold(d.Talleres[i].Nombre, nombre) {
				d.Talleres = append(d.Talleres[:i], d.Talleres[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: taller %s", domain.ErrNotFound, nombre)
	})
}

// List devuelve los talleres en orden de alta.
func (r *WorkshopRepo) List() ([]entity.Workshop, error) {
	var out []entity.Workshop
	err := r.s.conCatalogo(false, func(d *catalogoData) error {
		out = append(out, d.Talleres...)
		return nil
	})
	return out, err
}

// ClientRepo clientes sobre el store JSON.
type ClientRepo struct {
	s *Store
}

// NewClientRepository construye el adaptador.
func NewClientRepository(s *Store) *ClientRepo {
	return &ClientRepo{s: s}
}

// Add registra el cliente; el nombre es único sin distinguir mayúsculas.
func (r *ClientRepo) Add(c *entity.Client) error {
	return r.s.conCatalogo(true, func(d *catalogoData) error {
		for _, existente := range d.Clientes {
			if strings.EqualFold(existente.Nombre, c.Nombre) {
				return fmt.Errorf("%w: cliente %s", domain.ErrDuplicate, c.Nombre)
			}
		}
		d.Clientes = append(d.Clientes, *c)
		return nil
	})
}

// Update cambia el contacto del cliente conservando el nombre registrado.
func (r *ClientRepo) Update(nombre, contacto string) (*entity.Client, error) {
	var out *entity.Client
	err := r.s.conCatalogo(true, func(d *catalogoData) error {
		for i := range d.Clientes {
			if strings.EqualFold(d.Clientes[i].Nombre, nombre) {
				d.Clientes[i].Contacto = contacto
				c := d.Clientes[i]
				out = &c
				return nil
			}
		}
		return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, nombre)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete elimina el cliente por nombre.
func (r *ClientRepo) Delete(nombre string) error {
	return r.s.conCatalogo(true, func(d *catalogoData) error {
		for i := range d.Clientes {
			if strings.EqualFold(d.Clientes[i].Nombre, nombre) {
				d.Clientes = append(d.Clientes[:i], d.Clientes[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, nombre)
	})
}

// List devuelve los clientes en orden de alta.
func (r *ClientRepo) List() ([]entity.Client, error) {
	var out []entity.Client
	err := r.s.conCatalogo(false, func(d *catalogoData) error {
		out = append(out, d.Clientes...)
		return nil
	})
	return out, err
}
