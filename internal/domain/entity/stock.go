package entity

// StockRow es una celda materializada de la tabla de stock: cantidad actual
// por (modelo, talla).
type StockRow struct {
	Modelo   string `json:"modelo"`
	Talla    string `json:"talla"`
	Cantidad int    `json:"cantidad"`
}

// StockCell es la celda tal como está persistida, sin coerción. El valor
// puede ser basura heredada (nil, NaN, texto); el saneador decide qué hacer
// con él.
type StockCell struct {
	Modelo string
	Talla  string
	Valor  any
}

// StockFix resultado de una reparación del saneador sobre una celda.
type StockFix struct {
	Modelo    string `json:"modelo"`
	Talla     string `json:"talla"`
	Antes     any    `json:"antes"`
	AjustadoA int    `json:"ajustado_a"`
	Motivo    string `json:"motivo,omitempty"`
}

// StockPurge fila eliminada por la purga de tallas anómalas.
type StockPurge struct {
	Modelo             string `json:"modelo"`
	Talla              string `json:"talla"`
	Valor              int    `json:"valor"`
	PrevisionEliminada int    `json:"prevision_eliminada"` // filas de previsión arrastradas
}
