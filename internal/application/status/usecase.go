// Package status resume el estado del almacén: recuento de cada colección.
package status

import (
	"context"

	"github.com/globalia/stock-api/internal/application/dto"
	"github.com/globalia/stock-api/internal/domain/entity"
	"github.com/globalia/stock-api/internal/domain/repository"
)

// UseCase agrega recuentos de todas las colecciones.
type UseCase struct {
	stockRepo   repository.StockRepository
	movRepo     repository.MovementRepository
	pendRepo    repository.PendingRepository
	fabRepo     repository.FabricationRepository
	infoRepo    repository.ModelInfoRepository
	tallerRepo  repository.WorkshopRepository
	clienteRepo repository.ClientRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	stockRepo repository.StockRepository,
	movRepo repository.MovementRepository,
	pendRepo repository.PendingRepository,
	fabRepo repository.FabricationRepository,
	infoRepo repository.ModelInfoRepository,
	tallerRepo repository.WorkshopRepository,
	clienteRepo repository.ClientRepository,
) *UseCase {
	return &UseCase{
		stockRepo: stockRepo, movRepo: movRepo, pendRepo: pendRepo, fabRepo: fabRepo,
		infoRepo: infoRepo, tallerRepo: tallerRepo, clienteRepo: clienteRepo,
	}
}

// Get devuelve los recuentos actuales.
func (uc *UseCase) Get(ctx context.Context) (*dto.StatusResponse, error) {
	filas, err := uc.stockRepo.List("")
	if err != nil {
		return nil, err
	}
	movs, err := uc.movRepo.List(entity.MovementFilter{})
	if err != nil {
		return nil, err
	}
	pendientes, err := uc.pendRepo.List("")
	if err != nil {
		return nil, err
	}
	fabricacion, err := uc.fabRepo.List("")
	if err != nil {
		return nil, err
	}
	infos, err := uc.infoRepo.List()
	if err != nil {
		return nil, err
	}
	talleres, err := uc.tallerRepo.List()
	if err != nil {
		return nil, err
	}
	clientes, err := uc.clienteRepo.List()
	if err != nil {
		return nil, err
	}
	return &dto.StatusResponse{
		FilasStock:  len(filas),
		Movimientos: len(movs),
		Pendientes:  len(pendientes),
		Fabricacion: len(fabricacion),
		Modelos:     len(infos),
		Talleres:    len(talleres),
		Clientes:    len(clientes),
	}, nil
}
