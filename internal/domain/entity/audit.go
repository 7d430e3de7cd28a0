package entity

// Estados de una clave (modelo, talla) respecto al replay del libro.
const (
	AuditEnSincronia     = "IN_SYNC"
	AuditLibroPorDelante = "LEDGER_AHEAD"  // el libro suma más que la tabla
	AuditLibroPorDetras  = "LEDGER_BEHIND" // el libro suma menos que la tabla
)

// AuditDiff discrepancia entre la tabla de stock y el replay del libro de
// movimientos para una clave. Antes es el valor materializado, Despues el
// reconstruido y Delta = Despues - Antes.
type AuditDiff struct {
	Modelo  string `json:"modelo"`
	Talla   string `json:"talla"`
	Antes   int    `json:"antes"`
	Despues int    `json:"despues"`
	Delta   int    `json:"delta"`
}

// Estado clasifica la discrepancia.
func (d AuditDiff) Estado() string {
	switch {
	case d.Delta > 0:
		return AuditLibroPorDelante
	case d.Delta < 0:
		return AuditLibroPorDetras
	default:
		return AuditEnSincronia
	}
}
