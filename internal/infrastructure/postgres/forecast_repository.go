package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/globalia/stock-api/internal/domain"
	"github.com/globalia/stock-api/internal/domain/entity"
	"github.com/globalia/stock-api/internal/domain/repository"
)

var _ repository.PendingRepository = (*PendingRepo)(nil)
var _ repository.FabricationRepository = (*FabricationRepo)(nil)

// PendingRepo líneas de pedido pendientes sobre PostgreSQL.
type PendingRepo struct {
	q Querier
}

// NewPendingRepository construye el adaptador.
func NewPendingRepository(q Querier) *PendingRepo {
	return &PendingRepo{q: q}
}

// Add persiste la línea; el Idx monótono lo asigna la secuencia.
func (r *PendingRepo) Add(p *entity.PendingOrder) error {
	query := `
		INSERT INTO pendientes (modelo, talla, cantidad, pedido, numero_pedido, cliente, fecha)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING idx`
	err := r.q.QueryRow(context.Background(), query,
		p.Modelo, p.Talla, p.Cantidad, p.Pedido, p.NumeroPedido, p.Cliente, p.Fecha,
	).Scan(&p.Idx)
	if err != nil {
		return fmt.Errorf("add pendiente: %w", err)
	}
	return nil
}

// Get devuelve la línea o ErrNotFound.
func (r *PendingRepo) Get(idx int64) (*entity.PendingOrder, error) {
	query := `SELECT idx, modelo, talla, cantidad, pedido, numero_pedido, cliente, fecha FROM pendientes WHERE idx = $1`
	var p entity.PendingOrder
	err := r.q.QueryRow(context.Background(), query, idx).Scan(
		&p.Idx, &p.Modelo, &p.Talla, &p.Cantidad, &p.Pedido, &p.NumeroPedido, &p.Cliente, &p.Fecha,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: pendiente %d", domain.ErrNotFound, idx)
		}
		return nil, fmt.Errorf("get pendiente: %w", err)
	}
	return &p, nil
}

// Update reemplaza la línea con el mismo Idx.
func (r *PendingRepo) Update(p *entity.PendingOrder) error {
	query := `
		UPDATE pendientes SET modelo = $2, talla = $3, cantidad = $4, pedido = $5, numero_pedido = $6, cliente = $7, fecha = $8
		WHERE idx = $1`
	tag, err := r.q.Exec(context.Background(), query,
		p.Idx, p.Modelo, p.Talla, p.Cantidad, p.Pedido, p.NumeroPedido, p.Cliente, p.Fecha)
	if err != nil {
		return fmt.Errorf("update pendiente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: pendiente %d", domain.ErrNotFound, p.Idx)
	}
	return nil
}

// Delete elimina la línea. Su Idx no vuelve a usarse.
func (r *PendingRepo) Delete(idx int64) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM pendientes WHERE idx = $1`, idx)
	if err != nil {
		return fmt.Errorf("delete pendiente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: pendiente %d", domain.ErrNotFound, idx)
	}
	return nil
}

// List devuelve las líneas en orden de Idx; modelo vacío = todas.
func (r *PendingRepo) List(modelo string) ([]entity.PendingOrder, error) {
	query := `SELECT idx, modelo, talla, cantidad, pedido, numero_pedido, cliente, fecha FROM pendientes`
	var args []any
	if modelo != "" {
		query += ` WHERE modelo = $1`
		args = append(args, modelo)
	}
	query += ` ORDER BY idx`
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pendientes: %w", err)
	}
	defer rows.Close()
	var list []entity.PendingOrder
	for rows.Next() {
		var p entity.PendingOrder
		if err := rows.Scan(&p.Idx, &p.Modelo, &p.Talla, &p.Cantidad, &p.Pedido, &p.NumeroPedido, &p.Cliente, &p.Fecha); err != nil {
			return nil, fmt.Errorf("scan pendiente: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// FabricationRepo órdenes en fabricación sobre PostgreSQL.
type FabricationRepo struct {
	q Querier
}

// NewFabricationRepository construye el adaptador.
func NewFabricationRepository(q Querier) *FabricationRepo {
	return &FabricationRepo{q: q}
}

// Add persiste la orden; el Idx monótono lo asigna la secuencia.
func (r *FabricationRepo) Add(f *entity.FabricationOrder) error {
	query := `
		INSERT INTO fabricacion (modelo, talla, cantidad, taller, fecha)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING idx`
	err := r.q.QueryRow(context.Background(), query,
		f.Modelo, f.Talla, f.Cantidad, f.Taller, f.Fecha,
	).Scan(&f.Idx)
	if err != nil {
		return fmt.Errorf("add fabricación: %w", err)
	}
	return nil
}

// Get devuelve la orden o ErrNotFound.
func (r *FabricationRepo) Get(idx int64) (*entity.FabricationOrder, error) {
	query := `SELECT idx, modelo, talla, cantidad, taller, fecha FROM fabricacion WHERE idx = $1`
	var f entity.FabricationOrder
	err := r.q.QueryRow(context.Background(), query, idx).Scan(
		&f.Idx, &f.Modelo, &f.Talla, &f.Cantidad, &f.Taller, &f.Fecha,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: fabricación %d", domain.ErrNotFound, idx)
		}
		return nil, fmt.Errorf("get fabricación: %w", err)
	}
	return &f, nil
}

// Update reemplaza la orden con el mismo Idx.
func (r *FabricationRepo) Update(f *entity.FabricationOrder) error {
	query := `
		UPDATE fabricacion SET modelo = $2, talla = $3, cantidad = $4, taller = $5, fecha = $6
		WHERE idx = $1`
	tag, err := r.q.Exec(context.Background(), query,
		f.Idx, f.Modelo, f.Talla, f.Cantidad, f.Taller, f.Fecha)
	if err != nil {
		return fmt.Errorf("update fabricación: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: fabricación %d", domain.ErrNotFound, f.Idx)
	}
	return nil
}

// Delete elimina la orden.
func (r *FabricationRepo) Delete(idx int64) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM fabricacion WHERE idx = $1`, idx)
	if err != nil {
		return fmt.Errorf("delete fabricación: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: fabricación %d", domain.ErrNotFound, idx)
	}
	return nil
}

// List devuelve las órdenes en orden de Idx; modelo vacío = todas.
func (r *FabricationRepo) List(modelo string) ([]entity.FabricationOrder, error) {
	query := `SELECT idx, modelo, talla, cantidad, taller, fecha FROM fabricacion`
	var args []any
	if modelo != "" {
		query += ` WHERE modelo = $1`
		args = append(args, modelo)
	}
	query += ` ORDER BY idx`
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list fabricación: %w", err)
	}
	defer rows.Close()
	var list []entity.FabricationOrder
	for rows.Next() {
		var f entity.FabricationOrder
		if err := rows.Scan(&f.Idx, &f.Modelo, &f.Talla, &f.Cantidad, &f.Taller, &f.Fecha); err != nil {
			return nil, fmt.Errorf("scan fabricación: %w", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}
