package entity

// PendingOrder es una línea de pedido pendiente de servir (libro de
// previsión). El Idx es un identificador monótono persistido: nunca se
// reutiliza tras un borrado.
type PendingOrder struct {
	Idx          int64  `json:"idx"`
	Modelo       string `json:"modelo"`
	Talla        string `json:"talla"`
	Cantidad     int    `json:"cantidad"`
	Pedido       string `json:"pedido"`
	NumeroPedido string `json:"numero_pedido,omitempty"`
	Cliente      string `json:"cliente,omitempty"`
	Fecha        string `json:"fecha"` // YYYY-MM-DD
}

// FabricationOrder es una orden en fabricación en taller (libro de
// previsión). Mismo contrato de Idx que PendingOrder.
type FabricationOrder struct {
	Idx      int64  `json:"idx"`
	Modelo   string `json:"modelo"`
	Talla    string `json:"talla"`
	Cantidad int    `json:"cantidad"`
	Taller   string `json:"taller,omitempty"`
	Fecha    string `json:"fecha"` // YYYY-MM-DD
}
