package entity

import "time"

// Tipos de movimiento del libro de almacén.
const (
	MovementEntrada = "ENTRADA" // cantidad > 0
	MovementSalida  = "SALIDA"  // cantidad < 0
	MovementAjuste  = "AJUSTE"  // cualquier signo; generado por la regularización de auditoría
)

// Movement es una fila inmutable del libro de movimientos. La cantidad va
// firmada y su signo debe concordar con el tipo: las entradas suman, las
// salidas restan y los ajustes llevan el signo que compense la deriva.
type Movement struct {
	ID            string    `json:"id"`
	Seq           int64     `json:"seq"`
	Tipo          string    `json:"tipo"`
	Modelo        string    `json:"modelo"`
	Talla         string    `json:"talla"`
	Cantidad      int       `json:"cantidad"`
	Fecha         string    `json:"fecha"` // YYYY-MM-DD
	Taller        string    `json:"taller,omitempty"`
	Proveedor     string    `json:"proveedor,omitempty"`
	Cliente       string    `json:"cliente,omitempty"`
	Pedido        string    `json:"pedido,omitempty"`
	Albaran       string    `json:"albaran,omitempty"`
	Observaciones string    `json:"observaciones,omitempty"`
	Ajuste        bool      `json:"ajuste,omitempty"`
	AuditRef      string    `json:"audit_ref,omitempty"` // agrupa los ajustes de una misma regularización
	CreatedAt     time.Time `json:"created_at"`
}

// SignoValido verifica la concordancia tipo/signo.
func (m *Movement) SignoValido() bool {
	switch m.Tipo {
	case MovementEntrada:
		return m.Cantidad > 0
	case MovementSalida:
		return m.Cantidad < 0
	case MovementAjuste:
		return m.Cantidad != 0
	default:
		return false
	}
}

// MovementFilter criterios de listado del libro de movimientos.
type MovementFilter struct {
	Modelo       string // coincidencia exacta (ya normalizado)
	ModeloPrefix string // coincidencia por prefijo; usado por la auditoría
	Talla        string
	Tipo         string
	Limit        int
	Offset       int
}
