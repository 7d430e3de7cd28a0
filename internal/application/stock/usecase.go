// Package stock implementa el registro de movimientos: cada entrada o
// salida añade una fila al libro y ajusta la tabla materializada en la
// misma unidad atómica.
package stock

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

// UseCase orquesta entradas, salidas y listados de stock.
type UseCase struct {
	tx        TxRunner
	stockRepo repository.StockRepository
	movRepo   repository.MovementRepository
	infoRepo  repository.ModelInfoRepository
	log       *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx TxRunner, stockRepo repository.StockRepository, movRepo repository.MovementRepository, infoRepo repository.ModelInfoRepository, log *logger.Logger) *UseCase {
	return &UseCase{tx: tx, stockRepo: stockRepo, movRepo: movRepo, infoRepo: infoRepo, log: log}
}

// RegisterEntry registra una entrada de mercancía: movimiento ENTRADA en el
// libro y suma en la tabla, juntos.
func (uc *UseCase) RegisterEntry(ctx context.Context, in dto.RegisterEntryRequest) (*dto.StockRowResponse, error) {
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

	var fila dto.StockRowResponse
	err = uc.tx.Run(ctx, func(movRepo repository.MovementRepository, stockRepo repository.StockRepository) error {
		mov := &entity.Movement{
			Tipo:          entity.MovementEntrada,
			Modelo:        modelo,
			Talla:         talla,
			Cantidad:      in.Cantidad,
			Fecha:         fecha,
			Taller:        strings.TrimSpace(in.Taller),
			Proveedor:     strings.TrimSpace(in.Proveedor),
			Observaciones: strings.TrimSpace(in.Observaciones),
		}
		if err := movRepo.Append(mov); err != nil {
			return err
		}
		actual, err := stockRepo.Get(modelo, talla)
		if err != nil {
			return err
		}
		nuevo := actual + in.Cantidad
		if err := stockRepo.Set(modelo, talla, nuevo); err != nil {
			return err
		}
		fila = dto.StockRowResponse{Modelo: modelo, Talla: talla, Cantidad: nuevo}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("modelo", modelo).Str("talla", talla).Int("cantidad", in.Cantidad).Msg("entrada registrada")
	return &fila, nil
}

// RegisterExit registra una salida. Pedido y albarán son obligatorios; una
// salida mayor que el stock disponible se permite (la tabla puede quedar en
// negativo y la auditoría lo hará visible).
func (uc *UseCase) RegisterExit(ctx context.Context, in dto.RegisterExitRequest) (*dto.StockRowResponse, error) {
	modelo := size.NormalizeCodigo(in.Modelo)
	talla := size.NormalizeTalla(in.Talla)
	if modelo == "" || size.EsTallaAnomala(talla) {
		return nil, fmt.Errorf("%w: modelo y talla son obligatorios", domain.ErrValidation)
	}
	if in.Cantidad <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser positiva", domain.ErrValidation)
	}
	pedido := strings.TrimSpace(in.Pedido)
	albaran := strings.TrimSpace(in.Albaran)
	if pedido == "" || albaran == "" {
		return nil, fmt.Errorf("%w: pedido y albarán son obligatorios en una salida", domain.ErrValidation)
	}
	fecha, err := resolverFecha(in.Fecha)
	if err != nil {
		return nil, err
	}

	var fila dto.StockRowResponse
	err = uc.tx.Run(ctx, func(movRepo repository.MovementRepository, stockRepo repository.StockRepository) error {
		mov := &entity.Movement{
			Tipo:          entity.MovementSalida,
			Modelo:        modelo,
			Talla:         talla,
			Cantidad:      -in.Cantidad,
			Fecha:         fecha,
			Cliente:       strings.TrimSpace(in.Cliente),
			Pedido:        pedido,
			Albaran:       albaran,
			Observaciones: strings.TrimSpace(in.Observaciones),
		}
		if err := movRepo.Append(mov); err != nil {
			return err
		}
		actual, err := stockRepo.Get(modelo, talla)
		if err != nil {
			return err
		}
		nuevo := actual - in.Cantidad
		if nuevo < 0 {
			uc.log.Warn().Str("modelo", modelo).Str("talla", talla).Int("resultante", nuevo).Msg("salida deja el stock en negativo")
		}
		if err := stockRepo.Set(modelo, talla, nuevo); err != nil {
			return err
		}
		fila = dto.StockRowResponse{Modelo: modelo, Talla: talla, Cantidad: nuevo}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("modelo", modelo).Str("talla", talla).Int("cantidad", in.Cantidad).Str("pedido", pedido).Msg("salida registrada")
	return &fila, nil
}

// ListStock devuelve las filas de la tabla, filtradas por modelo y/o talla
// y ordenadas por modelo y orden natural de talla.
func (uc *UseCase) ListStock(ctx context.Context, modelo, talla string) ([]dto.StockRowResponse, error) {
	modelo = size.NormalizeCodigo(modelo)
	talla = size.NormalizeTalla(talla)
	filas, err := uc.stockRepo.List(modelo)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockRowResponse, 0, len(filas))
	for _, f := range filas {
		if talla != "" && f.Talla != talla {
			continue
		}
		out = append(out, dto.StockRowResponse{Modelo: f.Modelo, Talla: f.Talla, Cantidad: f.Cantidad})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Modelo != out[j].Modelo {
			return out[i].Modelo < out[j].Modelo
		}
		return size.LessTalla(out[i].Talla, out[j].Talla)
	})
	return out, nil
}

// ListMovements devuelve el libro filtrado, en orden de Seq.
func (uc *UseCase) ListMovements(ctx context.Context, f entity.MovementFilter) ([]dto.MovementResponse, error) {
	f.Modelo = size.NormalizeCodigo(f.Modelo)
	f.Talla = size.NormalizeTalla(f.Talla)
	movs, err := uc.movRepo.List(f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.MovementResponse{
			ID: m.ID, Seq: m.Seq, Tipo: m.Tipo, Modelo: m.Modelo, Talla: m.Talla,
			Cantidad: m.Cantidad, Fecha: m.Fecha, Taller: m.Taller, Proveedor: m.Proveedor,
			Cliente: m.Cliente, Pedido: m.Pedido, Albaran: m.Albaran,
			Observaciones: m.Observaciones, Ajuste: m.Ajuste, AuditRef: m.AuditRef,
		})
	}
	return out, nil
}

// ListModels agrupa la tabla por modelo, adjunta la ficha del catálogo y
// las tallas conocidas en orden natural.
func (uc *UseCase) ListModels(ctx context.Context) ([]dto.ModelSummaryResponse, error) {
	filas, err := uc.stockRepo.List("")
	if err != nil {
		return nil, err
	}
	porModelo := make(map[string]*dto.ModelSummaryResponse)
	for _, f := range filas {
		s, ok := porModelo[f.Modelo]
		if !ok {
			s = &dto.ModelSummaryResponse{Modelo: f.Modelo}
			porModelo[f.Modelo] = s
		}
		s.Tallas = append(s.Tallas, f.Talla)
		s.Total += f.Cantidad
	}
	out := make([]dto.ModelSummaryResponse, 0, len(porModelo))
	for _, s := range porModelo {
		size.SortTallas(s.Tallas)
		if info, err := uc.infoRepo.Get(s.Modelo); err == nil {
			s.Descripcion = info.Descripcion
			s.Color = info.Color
			s.Cliente = info.Cliente
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Modelo < out[j].Modelo })
	return out, nil
}

// resolverFecha aplica el defecto (hoy) y normaliza al formato canónico.
func resolverFecha(s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return size.FechaHoy(), nil
	}
	return size.ParseFecha(s)
}
