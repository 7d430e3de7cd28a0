package repository

import "github.com/globalia/stock-api/internal/domain/entity"

// MovementRepository puerto del libro de movimientos (append-only).
type MovementRepository interface {
	// Append persiste el movimiento asignándole ID y Seq monótono.
	Append(m *entity.Movement) error
	// List devuelve movimientos filtrados, ordenados por Seq ascendente.
	List(f entity.MovementFilter) ([]entity.Movement, error)
}
