package jsonstore

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/globalia/stock-api/internal/domain"
	"github.com/globalia/stock-api/internal/domain/entity"
	"github.com/globalia/stock-api/internal/domain/repository"
	"github.com/globalia/stock-api/internal/domain/size"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)
var _ repository.StockRepository = (*StockRepo)(nil)

// MovementRepo libro de movimientos sobre el store JSON. enTx indica que
// el tx runner ya tiene el candado del grupo almacén.
type MovementRepo struct {
	s    *Store
	enTx bool
}

// NewMovementRepository construye el adaptador (fuera de transacción).
func NewMovementRepository(s *Store) *MovementRepo {
	return &MovementRepo{s: s}
}

// Append persiste el movimiento: ID nuevo, Seq monótono y alta al final
// del historial. Rechaza movimientos cuyo signo no concuerde con el tipo.
func (r *MovementRepo) Append(m *entity.Movement) error {
	if !m.SignoValido() {
		return fmt.Errorf("%w: tipo %q con cantidad %d", domain.ErrValidation, m.Tipo, m.Cantidad)
	}
	return r.s.conAlmacen(r.enTx, true, func(d *almacenData) error {
		if m.ID == "" {
			m.ID = uuid.New().String()
		}
		m.Seq = d.NextSeq
		d.NextSeq++
		if m.CreatedAt.IsZero() {
			m.CreatedAt = time.Now().UTC()
		}
		d.Historial = append(d.Historial, *m)
		return nil
	})
}

// List devuelve movimientos filtrados en orden de Seq (el de inserción).
func (r *MovementRepo) List(f entity.MovementFilter) ([]entity.Movement, error) {
	var out []entity.Movement
	err := r.s.conAlmacen(r.enTx, false, func(d *almacenData) error {
		for _, m := range d.Historial {
			if f.Modelo != "" && m.Modelo != f.Modelo {
				continue
			}
			if f.ModeloPrefix != "" && !strings.HasPrefix(m.Modelo, f.ModeloPrefix) {
				continue
			}
			if f.Talla != "" && m.Talla != f.Talla {
				continue
			}
			if f.Tipo != "" && m.Tipo != f.Tipo {
				continue
			}
			out = append(out, m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return []entity.Movement{}, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out, nil
}

// StockRepo tabla de stock materializada sobre el store JSON.
type StockRepo struct {
	s    *Store
	enTx bool
}

// NewStockRepository construye el adaptador (fuera de transacción).
func NewStockRepository(s *Store) *StockRepo {
	return &StockRepo{s: s}
}

// Get devuelve la cantidad coercionada; 0 si la clave no existe.
func (r *StockRepo) Get(modelo, talla string) (int, error) {
	var cantidad int
	err := r.s.conAlmacen(r.enTx, false, func(d *almacenData) error {
		if tallas, ok := d.Almacen[modelo]; ok {
			if v, ok := tallas[talla]; ok {
				cantidad, _ = size.CoerceCantidad(v)
			}
		}
		return nil
	})
	return cantidad, err
}

// List devuelve las filas coercionadas; modelo vacío = todas.
func (r *StockRepo) List(modelo string) ([]entity.StockRow, error) {
	var out []entity.StockRow
	err := r.s.conAlmacen(r.enTx, false, func(d *almacenData) error {
		for m, tallas := range d.Almacen {
			if modelo != "" && m != modelo {
				continue
			}
			for t, v := range tallas {
				cantidad, _ := size.CoerceCantidad(v)
				out = append(out, entity.StockRow{Modelo: m, Talla: t, Cantidad: cantidad})
			}
		}
		return nil
	})
	return out, err
}

// Set escribe la cantidad, creando la clave si hace falta.
func (r *StockRepo) Set(modelo, talla string, cantidad int) error {
	return r.s.conAlmacen(r.enTx, true, func(d *almacenData) error {
		tallas, ok := d.Almacen[modelo]
		if !ok {
			tallas = make(map[string]any)
			d.Almacen[modelo] = tallas
		}
		tallas[talla] = cantidad
		return nil
	})
}

// Delete elimina la clave; si el modelo queda sin tallas desaparece.
func (r *StockRepo) Delete(modelo, talla string) error {
	return r.s.conAlmacen(r.enTx, true, func(d *almacenData) error {
		if tallas, ok := d.Almacen[modelo]; ok {
			delete(tallas, talla)
			if len(tallas) == 0 {
				delete(d.Almacen, modelo)
			}
		}
		return nil
	})
}

// ListRaw devuelve las celdas sin coerción, para el saneador.
func (r *StockRepo) ListRaw() ([]entity.StockCell, error) {
	var out []entity.StockCell
	err := r.s.conAlmacen(r.enTx, false, func(d *almacenData) error {
		for m, tallas := range d.Almacen {
			for t, v := range tallas {
				out = append(out, entity.StockCell{Modelo: m, Talla: t, Valor: v})
			}
		}
		return nil
	})
	return out, err
}
