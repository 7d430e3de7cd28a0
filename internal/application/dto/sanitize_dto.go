package dto

import "github.com/globalia/stock-api/internal/domain/entity"

// SanitizeFixesResponse reparaciones realizadas sobre celdas de stock.
type SanitizeFixesResponse struct {
	Reparadas []entity.StockFix `json:"reparadas"`
	Total     int               `json:"total"`
}

// PurgeTallasRequest opciones de la purga de tallas anómalas.
// SoloCero limita la purga a celdas cuyo valor coercionado es 0.
type PurgeTallasRequest struct {
	SoloCero bool `json:"solo_cero"`
}

// PurgeTallasResponse filas purgadas, con el arrastre sobre la previsión.
type PurgeTallasResponse struct {
	Purgadas []entity.StockPurge `json:"purgadas"`
	Total    int                 `json:"total"`
}
