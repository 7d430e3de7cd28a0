package entity

// ModelInfo ficha descriptiva de un modelo del catálogo.
type ModelInfo struct {
	Modelo      string `json:"modelo"`
	Descripcion string `json:"descripcion,omitempty"`
	Color       string `json:"color,omitempty"`
	Cliente     string `json:"cliente,omitempty"`
}

// Workshop taller de fabricación registrado.
type Workshop struct {
	Nombre   string `json:"nombre"`
	Contacto string `json:"contacto,omitempty"`
}

// Client cliente registrado.
type Client struct {
	Nombre   string `json:"nombre"`
	Contacto string `json:"contacto,omitempty"`
}
