package dto

// UpdateModelInfoRequest crea o actualiza la ficha de un modelo.
type UpdateModelInfoRequest struct {
	Descripcion string `json:"descripcion"`
	Color       string `json:"color"`
	Cliente     string `json:"cliente"`
}

// ModelInfoResponse ficha de modelo.
type ModelInfoResponse struct {
	Modelo      string `json:"modelo"`
	Descripcion string `json:"descripcion,omitempty"`
	Color       string `json:"color,omitempty"`
	Cliente     string `json:"cliente,omitempty"`
}

// AddWorkshopRequest alta de taller.
type AddWorkshopRequest struct {
	Nombre   string `json:"nombre"`
	Contacto string `json:"contacto"`
}

// EditWorkshopRequest cambio de contacto de un taller.
type EditWorkshopRequest struct {
	Contacto string `json:"contacto"`
}

// WorkshopResponse taller registrado.
type WorkshopResponse struct {
	Nombre   string `json:"nombre"`
	Contacto string `json:"contacto,omitempty"`
}

// AddClientRequest alta de cliente.
type AddClientRequest struct {
	Nombre   string `json:"nombre"`
	Contacto string `json:"contacto"`
}

// EditClientRequest cambio de contacto de un cliente.
type EditClientRequest struct {
	Contacto string `json:"contacto"`
}

// ClientResponse cliente registrado.
type ClientResponse struct {
	Nombre   string `json:"nombre"`
	Contacto string `json:"contacto,omitempty"`
}
