package repository

import "github.com/globalia/stock-api/internal/domain/entity"

// ModelInfoRepository puerto de las fichas de modelo del catálogo.
type ModelInfoRepository interface {
	// Upsert crea o actualiza la ficha del modelo.
	Upsert(info *entity.ModelInfo) error
	// Get devuelve la ficha o ErrNotFound.
	Get(modelo string) (*entity.ModelInfo, error)
	List() ([]entity.ModelInfo, error)
}

// WorkshopRepository puerto de talleres registrados. Los nombres se
// comparan sin distinguir mayúsculas.
type WorkshopRepository interface {
	// Add falla con ErrDuplicate si el nombre ya existe.
	Add(w *entity.Workshop) error
	// Update cambia el contacto; ErrNotFound si el taller no existe.
	Update(nombre, contacto string) (*entity.Workshop, error)
	Delete(nombre string) error
	List() ([]entity.Workshop, error)
}

// ClientRepository puerto de clientes registrados. Los nombres se
// comparan sin distinguir mayúsculas.
type ClientRepository interface {
	Add(c *entity.Client) error
	// Update cambia el contacto; ErrNotFound si el cliente no existe.
	Update(nombre, contacto string) (*entity.Client, error)
	Delete(nombre string) error
	List() ([]entity.Client, error)
}
