package repository

import "github.com/globalia/stock-api/internal/domain/entity"

// StockRepository puerto de la tabla de stock materializada.
type StockRepository interface {
	// Get devuelve la cantidad actual; 0 si la clave no existe.
	Get(modelo, talla string) (int, error)
	// List devuelve las filas coercionadas a entero; modelo vacío = todas.
	List(modelo string) ([]entity.StockRow, error)
	// Set escribe la cantidad de una clave, creándola si no existe.
	Set(modelo, talla string, cantidad int) error
	// Delete elimina la clave. No es error que no exista.
	Delete(modelo, talla string) error
	// ListRaw devuelve las celdas sin coerción, para el saneador.
	ListRaw() ([]entity.StockCell, error)
}
