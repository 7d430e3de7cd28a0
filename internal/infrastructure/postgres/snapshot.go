package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/globalia/stock-api/internal/domain/entity"
	"github.com/globalia/stock-api/internal/domain/repository"
)

var _ repository.Snapshotter = (*SnapshotStore)(nil)

// SnapshotStore produce y restaura fotos completas del almacén en una sola
// transacción.
type SnapshotStore struct {
	pool *pgxpool.Pool
}

// NewSnapshotStore construye el snapshotter.
func NewSnapshotStore(pool *pgxpool.Pool) *SnapshotStore {
	return &SnapshotStore{pool: pool}
}

// Snapshot lee todas las colecciones dentro de una transacción.
func (s *SnapshotStore) Snapshot(ctx context.Context) (*entity.Snapshot, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("begin snapshot: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	snap := &entity.Snapshot{CreatedAt: time.Now().UTC()}
	if snap.Almacen, err = NewStockRepository(tx).List(""); err != nil {
		return nil, err
	}
	if snap.Historial, err = NewMovementRepository(tx).List(entity.MovementFilter{}); err != nil {
		return nil, err
	}
	if snap.Pendientes, err = NewPendingRepository(tx).List(""); err != nil {
		return nil, err
	}
	if snap.Fabricacion, err = NewFabricationRepository(tx).List(""); err != nil {
		return nil, err
	}
	if snap.Modelos, err = NewModelInfoRepository(tx).List(); err != nil {
		return nil, err
	}
	if snap.Talleres, err = NewWorkshopRepository(tx).List(); err != nil {
		return nil, err
	}
	if snap.Clientes, err = NewClientRepository(tx).List(); err != nil {
		return nil, err
	}
	for _, m := range snap.Historial {
		if m.Seq >= snap.NextSeq {
			snap.NextSeq = m.Seq + 1
		}
	}
	for _, p := range snap.Pendientes {
		if p.Idx >= snap.NextIdxPendientes {
			snap.NextIdxPendientes = p.Idx + 1
		}
	}
	for _, f := range snap.Fabricacion {
		if f.Idx >= snap.NextIdxFabricacion {
			snap.NextIdxFabricacion = f.Idx + 1
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit snapshot: %w", err)
	}
	return snap, nil
}

// Restore reemplaza todas las colecciones por las del snapshot en una sola
// transacción, realineando las secuencias monótonas.
func (s *SnapshotStore) Restore(ctx context.Context, snap *entity.Snapshot) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin restore: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `TRUNCATE stock, movimientos, pendientes, fabricacion, modelos, talleres, clientes`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	for _, fila := range snap.Almacen {
		if _, err := tx.Exec(ctx,
			`INSERT INTO stock (modelo, talla, cantidad, updated_at) VALUES ($1, $2, $3, now())`,
			fila.Modelo, fila.Talla, fila.Cantidad); err != nil {
			return fmt.Errorf("restore stock: %w", err)
		}
	}
	for _, m := range snap.Historial {
		if _, err := tx.Exec(ctx, `
			INSERT INTO movimientos (id, seq, tipo, modelo, talla, cantidad, fecha, taller, proveedor, cliente, pedido, albaran, observaciones, ajuste, audit_ref, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
			m.ID, m.Seq, m.Tipo, m.Modelo, m.Talla, m.Cantidad, m.Fecha,
			m.Taller, m.Proveedor, m.Cliente, m.Pedido, m.Albaran,
			m.Observaciones, m.Ajuste, m.AuditRef, m.CreatedAt); err != nil {
			return fmt.Errorf("restore movimiento: %w", err)
		}
	}
	for _, p := range snap.Pendientes {
		if _, err := tx.Exec(ctx, `
			INSERT INTO pendientes (idx, modelo, talla, cantidad, pedido, cliente, fecha)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			p.Idx, p.Modelo, p.Talla, p.Cantidad, p.Pedido, p.Cliente, p.Fecha); err != nil {
			return fmt.Errorf("restore pendiente: %w", err)
		}
	}
	for _, f := range snap.Fabricacion {
		if _, err := tx.Exec(ctx, `
			INSERT INTO fabricacion (idx, modelo, talla, cantidad, taller, fecha)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			f.Idx, f.Modelo, f.Talla, f.Cantidad, f.Taller, f.Fecha); err != nil {
			return fmt.Errorf("restore fabricación: %w", err)
		}
	}
	for _, info := range snap.Modelos {
		if _, err := tx.Exec(ctx, `
			INSERT INTO modelos (modelo, descripcion, color, cliente) VALUES ($1, $2, $3, $4)`,
			info.Modelo, info.Descripcion, info.Color, info.Cliente); err != nil {
			return fmt.Errorf("restore modelo: %w", err)
		}
	}
	for _, w := range snap.Talleres {
		if _, err := tx.Exec(ctx, `INSERT INTO talleres (nombre, contacto) VALUES ($1, $2)`, w.Nombre, w.Contacto); err != nil {
			return fmt.Errorf("restore taller: %w", err)
		}
	}
	for _, c := range snap.Clientes {
		if _, err := tx.Exec(ctx, `INSERT INTO clientes (nombre, contacto) VALUES ($1, $2)`, c.Nombre, c.Contacto); err != nil {
			return fmt.Errorf("restore cliente: %w", err)
		}
	}

	// Realinear las secuencias para que los próximos Seq/Idx continúen
	// donde el snapshot los dejó.
	seqs := []struct {
		tabla, columna string
		valor          int64
	}{
		{"movimientos", "seq", snap.NextSeq},
		{"pendientes", "idx", snap.NextIdxPendientes},
		{"fabricacion", "idx", snap.NextIdxFabricacion},
	}
	for _, sq := range seqs {
		valor := sq.valor
		if valor < 1 {
			valor = 1
		}
		if _, err := tx.Exec(ctx,
			`SELECT setval(pg_get_serial_sequence($1, $2), $3, false)`,
			sq.tabla, sq.columna, valor); err != nil {
			return fmt.Errorf("realinear secuencia %s.%s: %w", sq.tabla, sq.columna, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit restore: %w", err)
	}
	return nil
}
