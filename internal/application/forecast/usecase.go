// Package forecast gestiona el libro de previsión (pedidos pendientes y
// órdenes en fabricación) y la proyección de stock estimado.
package forecast

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/globalia/stock-api/internal/application/dto"
	"github.com/globalia/stock-api/internal/domain"
	"github.com/globalia/stock-api/internal/domain/entity"
	"github.com/globalia/stock-api/internal/domain/repository"
	"github.com/globalia/stock-api/internal/domain/size"
	"github.com/globalia/stock-api/pkg/logger"
)

// UseCase orquesta el CRUD de previsión y el cálculo de stock estimado.
type UseCase struct {
	pendRepo  repository.PendingRepository
	fabRepo   repository.FabricationRepository
	stockRepo repository.StockRepository
	infoRepo  repository.ModelInfoRepository
	log       *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(pendRepo repository.PendingRepository, fabRepo repository.FabricationRepository, stockRepo repository.StockRepository, infoRepo repository.ModelInfoRepository, log *logger.Logger) *UseCase {
	return &UseCase{pendRepo: pendRepo, fabRepo: fabRepo, stockRepo: stockRepo, infoRepo: infoRepo, log: log}
}

// AddPending da de alta una línea de pedido pendiente.
func (uc *UseCase) AddPending(ctx context.Context, in dto.AddPendingRequest) (*dto.PendingResponse, error) {
	modelo := size.NormalizeCodigo(in.Modelo)
	talla := size.NormalizeTalla(in.Talla)
	pedido := strings.TrimSpace(in.Pedido)
	if modelo == "" || size.EsTallaAnomala(talla) {
		return nil, fmt.Errorf("%w: modelo y talla son obligatorios", domain.ErrValidation)
	}
	if in.Cantidad <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser positiva", domain.ErrValidation)
	}
	if pedido == "" {
		return nil, fmt.Errorf("%w: el pedido es obligatorio", domain.ErrValidation)
	}
	fecha, err := resolverFecha(in.Fecha)
	if err != nil {
		return nil, err
	}
	p := &entity.PendingOrder{
		Modelo:       modelo,
		Talla:        talla,
		Cantidad:     in.Cantidad,
		Pedido:       pedido,
		NumeroPedido: size.NormalizeCodigo(in.NumeroPedido),
		Cliente:      strings.TrimSpace(in.Cliente),
		Fecha:        fecha,
	}
	if err := uc.pendRepo.Add(p); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("idx", p.Idx).Str("modelo", modelo).Str("pedido", pedido).Msg("pendiente añadido")
	resp := uc.enrichPending(*p)
	return &resp, nil
}

// EditPending aplica una edición parcial sobre una línea pendiente.
// Cantidad negativa se rechaza; cantidad 0 se admite (línea ya servida).
func (uc *UseCase) EditPending(ctx context.Context, idx int64, in dto.EditPendingRequest) (*dto.PendingResponse, error) {
	p, err := uc.pendRepo.Get(idx)
	if err != nil {
		return nil, err
	}
	if in.Cantidad != nil {
		if *in.Cantidad < 0 {
			return nil, fmt.Errorf("%w: la cantidad no puede ser negativa", domain.ErrValidation)
		}
		p.Cantidad = *in.Cantidad
	}
	if in.Modelo != nil {
		m := size.NormalizeCodigo(*in.Modelo)
		if m == "" {
			return nil, fmt.Errorf("%w: el modelo no puede quedar vacío", domain.ErrValidation)
		}
		p.Modelo = m
	}
	if in.Talla != nil {
		talla := size.NormalizeTalla(*in.Talla)
		if size.EsTallaAnomala(talla) {
			return nil, fmt.Errorf("%w: talla inválida", domain.ErrValidation)
		}
		p.Talla = talla
	}
	if in.Pedido != nil {
		pedido := strings.TrimSpace(*in.Pedido)
		if pedido == "" {
			return nil, fmt.Errorf("%w: el pedido no puede quedar vacío", domain.ErrValidation)
		}
		p.Pedido = pedido
	}
	if in.NumeroPedido != nil {
		p.NumeroPedido = size.NormalizeCodigo(*in.NumeroPedido)
	}
	if in.Cliente != nil {
		p.Cliente = strings.TrimSpace(*in.Cliente)
	}
	if in.Fecha != nil {
		fecha, err := size.ParseFecha(*in.Fecha)
		if err != nil {
			return nil, err
		}
		p.Fecha = fecha
	}
	if err := uc.pendRepo.Update(p); err != nil {
		return nil, err
	}
	resp := uc.enrichPending(*p)
	return &resp, nil
}

// DeletePending elimina una línea pendiente. Su Idx no se reutiliza.
func (uc *UseCase) DeletePending(ctx context.Context, idx int64) error {
	return uc.pendRepo.Delete(idx)
}

// ListPendings lista la previsión de pedidos, enriquecida con el catálogo.
func (uc *UseCase) ListPendings(ctx context.Context, modelo string) ([]dto.PendingResponse, error) {
	lineas, err := uc.pendRepo.List(size.NormalizeCodigo(modelo))
	if err != nil {
		return nil, err
	}
	out := make([]dto.PendingResponse, 0, len(lineas))
	for _, p := range lineas {
		out = append(out, uc.enrichPending(p))
	}
	return out, nil
}

// AddFabrication da de alta una orden en fabricación.
func (uc *UseCase) AddFabrication(ctx context.Context, in dto.AddFabricationRequest) (*dto.FabricationResponse, error) {
	modelo := size.NormalizeCodigo(in.Modelo)
	talla := size.NormalizeTalla(in.Talla)
	if modelo == "" || size.EsTallaAnomala(talla) {
		return nil, fmt.Errorf("%w: modelo y talla son obligatorios", domain.ErrValidation)
	}
	if in.Cantidad <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser positiva", domain.ErrValidation)
	}
	fecha, err := resolverFecha(in.Fecha)
	if err != nil {
		return nil, err
	}
	f := &entity.FabricationOrder{
		Modelo:   modelo,
		Talla:    talla,
		Cantidad: in.Cantidad,
		Taller:   strings.TrimSpace(in.Taller),
		Fecha:    fecha,
	}
	if err := uc.fabRepo.Add(f); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("idx", f.Idx).Str("modelo", modelo).Str("taller", f.Taller).Msg("orden de fabricación añadida")
	resp := uc.enrichFabrication(*f)
	return &resp, nil
}

// EditFabricationQty cambia la cantidad de una orden. Cero la elimina
// (orden completada); negativa se rechaza.
func (uc *UseCase) EditFabricationQty(ctx context.Context, idx int64, cantidad int) (*dto.FabricationResponse, error) {
	if cantidad < 0 {
		return nil, fmt.Errorf("%w: la cantidad no puede ser negativa", domain.ErrValidation)
	}
	f, err := uc.fabRepo.Get(idx)
	if err != nil {
		return nil, err
	}
	if cantidad == 0 {
		if err := uc.fabRepo.Delete(idx); err != nil {
			return nil, err
		}
		uc.log.Info().Int64("idx", idx).Msg("orden de fabricación completada y eliminada")
		return nil, nil
	}
	f.Cantidad = cantidad
	if err := uc.fabRepo.Update(f); err != nil {
		return nil, err
	}
	resp := uc.enrichFabrication(*f)
	return &resp, nil
}

// DeleteFabrication elimina una orden en fabricación.
func (uc *UseCase) DeleteFabrication(ctx context.Context, idx int64) error {
	return uc.fabRepo.Delete(idx)
}

// ListFabrication lista las órdenes en fabricación.
func (uc *UseCase) ListFabrication(ctx context.Context, modelo string) ([]dto.FabricationResponse, error) {
	ordenes, err := uc.fabRepo.List(size.NormalizeCodigo(modelo))
	if err != nil {
		return nil, err
	}
	out := make([]dto.FabricationResponse, 0, len(ordenes))
	for _, f := range ordenes {
		out = append(out, uc.enrichFabrication(f))
	}
	return out, nil
}

// CalcEstimated proyecta el stock estimado por clave: stock actual menos
// pendientes de servir más órdenes en fabricación. El universo de claves es
// la unión de las tres colecciones.
func (uc *UseCase) CalcEstimated(ctx context.Context, modelo string) ([]dto.EstimatedRowResponse, error) {
	modelo = size.NormalizeCodigo(modelo)

	type clave struct{ modelo, talla string }
	acc := make(map[clave]*dto.EstimatedRowResponse)
	obtener := func(m, t string) *dto.EstimatedRowResponse {
		k := clave{m, t}
		r, ok := acc[k]
		if !ok {
			r = &dto.EstimatedRowResponse{Modelo: m, Talla: t}
			acc[k] = r
		}
		return r
	}

	filas, err := uc.stockRepo.List(modelo)
	if err != nil {
		return nil, err
	}
	for _, f := range filas {
		obtener(f.Modelo, f.Talla).Stock = f.Cantidad
	}
	pendientes, err := uc.pendRepo.List(modelo)
	if err != nil {
		return nil, err
	}
	for _, p := range pendientes {
		obtener(p.Modelo, p.Talla).Pendiente += p.Cantidad
	}
	fabricacion, err := uc.fabRepo.List(modelo)
	if err != nil {
		return nil, err
	}
	for _, f := range fabricacion {
		obtener(f.Modelo, f.Talla).Fabricacion += f.Cantidad
	}

	out := make([]dto.EstimatedRowResponse, 0, len(acc))
	for _, r := range acc {
		r.StockEstimado = r.Stock - r.Pendiente + r.Fabricacion
		if info, err := uc.infoRepo.Get(r.Modelo); err == nil {
			r.Descripcion = info.Descripcion
			r.Color = info.Color
		}
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Modelo != out[j].Modelo {
			return out[i].Modelo < out[j].Modelo
		}
		return size.LessTalla(out[i].Talla, out[j].Talla)
	})
	return out, nil
}

func (uc *UseCase) enrichPending(p entity.PendingOrder) dto.PendingResponse {
	resp := dto.PendingResponse{
		Idx: p.Idx, Modelo: p.Modelo, Talla: p.Talla, Cantidad: p.Cantidad,
		Pedido: p.Pedido, NumeroPedido: p.NumeroPedido, Cliente: p.Cliente, Fecha: p.Fecha,
	}
	if info, err := uc.infoRepo.Get(p.Modelo); err == nil {
		resp.Descripcion = info.Descripcion
		resp.Color = info.Color
	}
	return resp
}

func (uc *UseCase) enrichFabrication(f entity.FabricationOrder) dto.FabricationResponse {
	resp := dto.FabricationResponse{
		Idx: f.Idx, Modelo: f.Modelo, Talla: f.Talla, Cantidad: f.Cantidad,
		Taller: f.Taller, Fecha: f.Fecha,
	}
	if info, err := uc.infoRepo.Get(f.Modelo); err == nil {
		resp.Descripcion = info.Descripcion
		resp.Color = info.Color
	}
	return resp
}

func resolverFecha(s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return size.FechaHoy(), nil
	}
	return size.ParseFecha(s)
}
