package dto

// RegisterEntryRequest alta de mercancía en almacén.
type RegisterEntryRequest struct {
	Modelo        string `json:"modelo"`
	Talla         string `json:"talla"`
	Cantidad      int    `json:"cantidad"`
	Fecha         string `json:"fecha"` // vacía = hoy
	Taller        string `json:"taller"`
	Proveedor     string `json:"proveedor"`
	Observaciones string `json:"observaciones"`
}

// RegisterExitRequest salida de mercancía. Pedido y albarán obligatorios.
type RegisterExitRequest struct {
	Modelo        string `json:"modelo"`
	Talla         string `json:"talla"`
	Cantidad      int    `json:"cantidad"`
	Fecha         string `json:"fecha"` // vacía = hoy
	Cliente       string `json:"cliente"`
	Pedido        string `json:"pedido"`
	Albaran       string `json:"albaran"`
	Observaciones string `json:"observaciones"`
}

// StockRowResponse fila de stock tras un movimiento o en un listado.
type StockRowResponse struct {
	Modelo   string `json:"modelo"`
	Talla    string `json:"talla"`
	Cantidad int    `json:"cantidad"`
}

// MovementResponse fila del libro de movimientos.
type MovementResponse struct {
	ID            string `json:"id"`
	Seq           int64  `json:"seq"`
	Tipo          string `json:"tipo"`
	Modelo        string `json:"modelo"`
	Talla         string `json:"talla"`
	Cantidad      int    `json:"cantidad"`
	Fecha         string `json:"fecha"`
	Taller        string `json:"taller,omitempty"`
	Proveedor     string `json:"proveedor,omitempty"`
	Cliente       string `json:"cliente,omitempty"`
	Pedido        string `json:"pedido,omitempty"`
	Albaran       string `json:"albaran,omitempty"`
	Observaciones string `json:"observaciones,omitempty"`
	Ajuste        bool   `json:"ajuste,omitempty"`
	AuditRef      string `json:"audit_ref,omitempty"`
}

// ModelSummaryResponse modelo con su ficha y tallas conocidas.
type ModelSummaryResponse struct {
	Modelo      string   `json:"modelo"`
	Descripcion string   `json:"descripcion,omitempty"`
	Color       string   `json:"color,omitempty"`
	Cliente     string   `json:"cliente,omitempty"`
	Tallas      []string `json:"tallas"`
	Total       int      `json:"total"`
}
