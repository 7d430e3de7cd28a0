package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/globalia/stock-api/internal/domain"
	"github.com/globalia/stock-api/internal/domain/entity"
	"github.com/globalia/stock-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)
var _ repository.StockRepository = (*StockRepo)(nil)

// MovementRepo libro de movimientos sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Append persiste el movimiento; el Seq monótono lo asigna la secuencia de
// la tabla y se devuelve al llamante.
func (r *MovementRepo) Append(m *entity.Movement) error {
	if !m.SignoValido() {
		return fmt.Errorf("%w: tipo %q con cantidad %d", domain.ErrValidation, m.Tipo, m.Cantidad)
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO movimientos (id, tipo, modelo, talla, cantidad, fecha, taller, proveedor, cliente, pedido, albaran, observaciones, ajuste, audit_ref, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING seq`
	err := r.q.QueryRow(context.Background(), query,
		m.ID, m.Tipo, m.Modelo, m.Talla, m.Cantidad, m.Fecha,
		m.Taller, m.Proveedor, m.Cliente, m.Pedido, m.Albaran,
		m.Observaciones, m.Ajuste, m.AuditRef, m.CreatedAt,
	).Scan(&m.Seq)
	if err != nil {
		return fmt.Errorf("append movimiento: %w", err)
	}
	return nil
}

// List devuelve movimientos filtrados en orden de Seq.
func (r *MovementRepo) List(f entity.MovementFilter) ([]entity.Movement, error) {
	query := `
		SELECT id, seq, tipo, modelo, talla, cantidad, fecha, taller, proveedor, cliente, pedido, albaran, observaciones, ajuste, audit_ref, created_at
		FROM movimientos WHERE 1=1`
	var args []any
	pos := 1
	if f.Modelo != "" {
		query += fmt.Sprintf(" AND modelo = $%d", pos)
		args = append(args, f.Modelo)
		pos++
	}
	if f.ModeloPrefix != "" {
		query += fmt.Sprintf(" AND modelo LIKE $%d || '%%'", pos)
		args = append(args, f.ModeloPrefix)
		pos++
	}
	if f.Talla != "" {
		query += fmt.Sprintf(" AND talla = $%d", pos)
		args = append(args, f.Talla)
		pos++
	}
	if f.Tipo != "" {
		query += fmt.Sprintf(" AND tipo = $%d", pos)
		args = append(args, f.Tipo)
		pos++
	}
	query += " ORDER BY seq"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", pos)
		args = append(args, f.Limit)
		pos++
	}
	if f.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", pos)
		args = append(args, f.Offset)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()
	var list []entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.Seq, &m.Tipo, &m.Modelo, &m.Talla, &m.Cantidad,
			&m.Fecha, &m.Taller, &m.Proveedor, &m.Cliente, &m.Pedido, &m.Albaran,
			&m.Observaciones, &m.Ajuste, &m.AuditRef, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// StockRepo tabla de stock materializada sobre PostgreSQL.
type StockRepo struct {
	q Querier
	// forUpdate: dentro de una transacción, Get bloquea la fila para
	// serializar el leer-y-escribir por clave.
	forUpdate bool
}

// NewStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get devuelve la cantidad actual; 0 si la clave no existe.
func (r *StockRepo) Get(modelo, talla string) (int, error) {
	query := `SELECT cantidad FROM stock WHERE modelo = $1 AND talla = $2`
	if r.forUpdate {
		query += " FOR UPDATE"
	}
	var cantidad int
	err := r.q.QueryRow(context.Background(), query, modelo, talla).Scan(&cantidad)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("get stock: %w", err)
	}
	return cantidad, nil
}

// List devuelve las filas; modelo vacío = todas.
func (r *StockRepo) List(modelo string) ([]entity.StockRow, error) {
	query := `SELECT modelo, talla, cantidad FROM stock`
	var args []any
	if modelo != "" {
		query += ` WHERE modelo = $1`
		args = append(args, modelo)
	}
	query += ` ORDER BY modelo, talla`
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []entity.StockRow
	for rows.Next() {
		var s entity.StockRow
		if err := rows.Scan(&s.Modelo, &s.Talla, &s.Cantidad); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Set inserta o actualiza la cantidad de la clave.
func (r *StockRepo) Set(modelo, talla string, cantidad int) error {
	query := `
		INSERT INTO stock (modelo, talla, cantidad, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (modelo, talla)
		DO UPDATE SET cantidad = EXCLUDED.cantidad, updated_at = now()`
	if _, err := r.q.Exec(context.Background(), query, modelo, talla, cantidad); err != nil {
		return fmt.Errorf("set stock: %w", err)
	}
	return nil
}

// Delete elimina la clave. No es error que no exista.
func (r *StockRepo) Delete(modelo, talla string) error {
	query := `DELETE FROM stock WHERE modelo = $1 AND talla = $2`
	if _, err := r.q.Exec(context.Background(), query, modelo, talla); err != nil {
		return fmt.Errorf("delete stock: %w", err)
	}
	return nil
}

// ListRaw devuelve las celdas como valores crudos. En este driver la
// columna es un entero NOT NULL, así que la única basura posible son
// claves de talla anómalas importadas.
func (r *StockRepo) ListRaw() ([]entity.StockCell, error) {
	filas, err := r.List("")
	if err != nil {
		return nil, err
	}
	out := make([]entity.StockCell, 0, len(filas))
	for _, f := range filas {
		out = append(out, entity.StockCell{Modelo: f.Modelo, Talla: f.Talla, Valor: f.Cantidad})
	}
	return out, nil
}
