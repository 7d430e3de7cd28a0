package dto

// AddPendingRequest alta de línea de pedido pendiente.
type AddPendingRequest struct {
	Modelo       string `json:"modelo"`
	Talla        string `json:"talla"`
	Cantidad     int    `json:"cantidad"`
	Pedido       string `json:"pedido"`
	NumeroPedido string `json:"numero_pedido"`
	Cliente      string `json:"cliente"`
	Fecha        string `json:"fecha"` // vacía = hoy
}

// EditPendingRequest edición parcial de una línea pendiente. Solo los
// campos no nulos se aplican.
type EditPendingRequest struct {
	Modelo       *string `json:"modelo"`
	Talla        *string `json:"talla"`
	Cantidad     *int    `json:"cantidad"`
	Pedido       *string `json:"pedido"`
	NumeroPedido *string `json:"numero_pedido"`
	Cliente      *string `json:"cliente"`
	Fecha        *string `json:"fecha"`
}

// PendingResponse línea pendiente enriquecida con la ficha del modelo.
type PendingResponse struct {
	Idx          int64  `json:"idx"`
	Modelo       string `json:"modelo"`
	Descripcion  string `json:"descripcion,omitempty"`
	Color        string `json:"color,omitempty"`
	Talla        string `json:"talla"`
	Cantidad     int    `json:"cantidad"`
	Pedido       string `json:"pedido"`
	NumeroPedido string `json:"numero_pedido,omitempty"`
	Cliente      string `json:"cliente,omitempty"`
	Fecha        string `json:"fecha"`
}

// AddFabricationRequest alta de orden en fabricación.
type AddFabricationRequest struct {
	Modelo   string `json:"modelo"`
	Talla    string `json:"talla"`
	Cantidad int    `json:"cantidad"`
	Taller   string `json:"taller"`
	Fecha    string `json:"fecha"` // vacía = hoy
}

// EditFabricationQtyRequest nueva cantidad de una orden en fabricación.
// Cantidad 0 elimina la orden.
type EditFabricationQtyRequest struct {
	Cantidad int `json:"cantidad"`
}

// FabricationResponse orden en fabricación enriquecida.
type FabricationResponse struct {
	Idx         int64  `json:"idx"`
	Modelo      string `json:"modelo"`
	Descripcion string `json:"descripcion,omitempty"`
	Color       string `json:"color,omitempty"`
	Talla       string `json:"talla"`
	Cantidad    int    `json:"cantidad"`
	Taller      string `json:"taller,omitempty"`
	Fecha       string `json:"fecha"`
}

// EstimatedRowResponse proyección por clave: stock actual más compromisos.
type EstimatedRowResponse struct {
	Modelo        string `json:"modelo"`
	Descripcion   string `json:"descripcion,omitempty"`
	Color         string `json:"color,omitempty"`
	Talla         string `json:"talla"`
	Stock         int    `json:"stock"`
	Pendiente     int    `json:"pendiente"`
	Fabricacion   int    `json:"fabricacion"`
	StockEstimado int    `json:"stock_estimado"`
}
