// Package catalog gestiona el maestro del almacén: fichas de modelo,
// talleres y clientes, más los listados derivados (tallas conocidas).
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/globalia/stock-api/internal/application/dto"
	"github.com/globalia/stock-api/internal/domain"
	"github.com/globalia/stock-api/internal/domain/entity"
	"github.com/globalia/stock-api/internal/domain/repository"
	"github.com/globalia/stock-api/internal/domain/size"
	"github.com/globalia/stock-api/pkg/logger"
)

// UseCase orquesta el catálogo.
type UseCase struct {
	infoRepo    repository.ModelInfoRepository
	tallerRepo  repository.WorkshopRepository
	clienteRepo repository.ClientRepository
	stockRepo   repository.StockRepository
	pendRepo    repository.PendingRepository
	fabRepo     repository.FabricationRepository
	log         *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	infoRepo repository.ModelInfoRepository,
	tallerRepo repository.WorkshopRepository,
	clienteRepo repository.ClientRepository,
	stockRepo repository.StockRepository,
	pendRepo repository.PendingRepository,
	fabRepo repository.FabricationRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		infoRepo: infoRepo, tallerRepo: tallerRepo, clienteRepo: clienteRepo,
		stockRepo: stockRepo, pendRepo: pendRepo, fabRepo: fabRepo, log: log,
	}
}

// UpdateModelInfo crea o actualiza la ficha de un modelo.
func (uc *UseCase) UpdateModelInfo(ctx context.Context, modelo string, in dto.UpdateModelInfoRequest) (*dto.ModelInfoResponse, error) {
	modelo = size.NormalizeCodigo(modelo)
	if modelo == "" {
		return nil, fmt.Errorf("%w: el modelo es obligatorio", domain.ErrValidation)
	}
	info := &entity.ModelInfo{
		Modelo:      modelo,
		Descripcion: strings.TrimSpace(in.Descripcion),
		Color:       strings.TrimSpace(in.Color),
		Cliente:     strings.TrimSpace(in.Cliente),
	}
	if err := uc.infoRepo.Upsert(info); err != nil {
		return nil, err
	}
	uc.log.Info().Str("modelo", modelo).Msg("ficha de modelo actualizada")
	return &dto.ModelInfoResponse{
		Modelo: info.Modelo, Descripcion: info.Descripcion, Color: info.Color, Cliente: info.Cliente,
	}, nil
}

// ListModelInfos lista las fichas del catálogo.
func (uc *UseCase) ListModelInfos(ctx context.Context) ([]dto.ModelInfoResponse, error) {
	infos, err := uc.infoRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ModelInfoResponse, 0, len(infos))
	for _, i := range infos {
		out = append(out, dto.ModelInfoResponse{
			Modelo: i.Modelo, Descripcion: i.Descripcion, Color: i.Color, Cliente: i.Cliente,
		})
	}
	return out, nil
}

// ListTallas devuelve las tallas conocidas de un modelo: la unión de las
// presentes en stock, pendientes y fabricación, en orden natural.
func (uc *UseCase) ListTallas(ctx context.Context, modelo string) ([]string, error) {
	modelo = size.NormalizeCodigo(modelo)
	if modelo == "" {
		return nil, fmt.Errorf("%w: el modelo es obligatorio", domain.ErrValidation)
	}
	vistas := make(map[string]struct{})
	filas, err := uc.stockRepo.List(modelo)
	if err != nil {
		return nil, err
	}
	for _, f := range filas {
		vistas[f.Talla] = struct{}{}
	}
	pendientes, err := uc.pendRepo.List(modelo)
	if err != nil {
		return nil, err
	}
	for _, p := range pendientes {
		vistas[p.Talla] = struct{}{}
	}
	fabricacion, err := uc.fabRepo.List(modelo)
	if err != nil {
		return nil, err
	}
	for _, f := range fabricacion {
		vistas[f.Talla] = struct{}{}
	}
	tallas := make([]string, 0, len(vistas))
	for t := range vistas {
		if !size.EsTallaAnomala(t) {
			tallas = append(tallas, t)
		}
	}
	size.SortTallas(tallas)
	return tallas, nil
}

// AddWorkshop registra un taller. El nombre debe ser único.
func (uc *UseCase) AddWorkshop(ctx context.Context, in dto.AddWorkshopRequest) (*dto.WorkshopResponse, error) {
	nombre := strings.TrimSpace(in.Nombre)
	if nombre == "" {
		return nil, fmt.Errorf("%w: el nombre del taller es obligatorio", domain.ErrValidation)
	}
	w := &entity.Workshop{Nombre: nombre, Contacto: strings.TrimSpace(in.Contacto)}
	if err := uc.tallerRepo.Add(w); err != nil {
		return nil, err
	}
	uc.log.Info().Str("taller", nombre).Msg("taller registrado")
	return &dto.WorkshopResponse{Nombre: w.Nombre, Contacto: w.Contacto}, nil
}

// EditWorkshop actualiza el contacto de un taller existente.
func (uc *UseCase) EditWorkshop(ctx context.Context, nombre string, in dto.EditWorkshopRequest) (*dto.WorkshopResponse, error) {
	nombre = strings.TrimSpace(nombre)
	if nombre == "" {
		return nil, fmt.Errorf("%w: el nombre del taller es obligatorio", domain.ErrValidation)
	}
	w, err := uc.tallerRepo.Update(nombre, strings.TrimSpace(in.Contacto))
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("taller", w.Nombre).Msg("taller actualizado")
	return &dto.WorkshopResponse{Nombre: w.Nombre, Contacto: w.Contacto}, nil
}

// DeleteWorkshop elimina un taller por nombre.
func (uc *UseCase) DeleteWorkshop(ctx context.Context, nombre string) error {
	return uc.tallerRepo.Delete(strings.TrimSpace(nombre))
}

// ListWorkshops lista los talleres registrados.
func (uc *UseCase) ListWorkshops(ctx context.Context) ([]dto.WorkshopResponse, error) {
	talleres, err := uc.tallerRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.WorkshopResponse, 0, len(talleres))
	for _, w := range talleres {
		out = append(out, dto.WorkshopResponse{Nombre: w.Nombre, Contacto: w.Contacto})
	}
	return out, nil
}

// AddClient registra un cliente. El nombre debe ser único.
func (uc *UseCase) AddClient(ctx context.Context, in dto.AddClientRequest) (*dto.ClientResponse, error) {
	nombre := strings.TrimSpace(in.Nombre)
	if nombre == "" {
		return nil, fmt.Errorf("%w: el nombre del cliente es obligatorio", domain.ErrValidation)
	}
	c := &entity.Client{Nombre: nombre, Contacto: strings.TrimSpace(in.Contacto)}
	if err := uc.clienteRepo.Add(c); err != nil {
		return nil, err
	}
	uc.log.Info().Str("cliente", nombre).Msg("cliente registrado")
	return &dto.ClientResponse{Nombre: c.Nombre, Contacto: c.Contacto}, nil
}

// EditClient actualiza el contacto de un cliente existente.
func (uc *UseCase) EditClient(ctx context.Context, nombre string, in dto.EditClientRequest) (*dto.ClientResponse, error) {
	nombre = strings.TrimSpace(nombre)
	if nombre == "" {
		return nil, fmt.Errorf("%w: el nombre del cliente es obligatorio", domain.ErrValidation)
	}
	cl, err := uc.clienteRepo.Update(nombre, strings.TrimSpace(in.Contacto))
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("cliente", cl.Nombre).Msg("cliente actualizado")
	return &dto.ClientResponse{Nombre: cl.Nombre, Contacto: cl.Contacto}, nil
}

// DeleteClient elimina un cliente por nombre.
func (uc *UseCase) DeleteClient(ctx context.Context, nombre string) error {
	return uc.clienteRepo.Delete(strings.TrimSpace(nombre))
}

// ListClients lista los clientes registrados.
func (uc *UseCase) ListClients(ctx context.Context) ([]dto.ClientResponse, error) {
	clientes, err := uc.clienteRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientResponse, 0, len(clientes))
	for _, c := range clientes {
		out = append(out, dto.ClientResponse{Nombre: c.Nombre, Contacto: c.Contacto})
	}
	return out, nil
}
