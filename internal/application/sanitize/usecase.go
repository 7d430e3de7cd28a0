// Package sanitize repara por lotes la basura heredada de la tabla de
// stock: negativos, valores no enteros y claves de talla inservibles. Las
// tres operaciones son idempotentes: una segunda pasada no encuentra nada.
package sanitize

import (
	"context"

	"github.com/globalia/stock-api/internal/application/dto"
	"github.com/globalia/stock-api/internal/domain/entity"
	"github.com/globalia/stock-api/internal/domain/repository"
	"github.com/globalia/stock-api/internal/domain/size"
	"github.com/globalia/stock-api/pkg/logger"
)

// Motivos de reparación registrados en cada StockFix.
const (
	MotivoNegativo      = "NEGATIVO->0"
	MotivoValorInvalido = "VALOR_INVALIDO"
	MotivoTallaAnomala  = "TALLA_ANOMALA->VALOR_0"
)

// TxRunner unidad atómica sobre libro+tabla; el saneador solo usa la tabla.
type TxRunner interface {
	Run(ctx context.Context, fn func(movRepo repository.MovementRepository, stockRepo repository.StockRepository) error) error
}

// UseCase orquesta las tres reparaciones por lotes.
type UseCase struct {
	tx       TxRunner
	pendRepo repository.PendingRepository
	fabRepo  repository.FabricationRepository
	log      *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx TxRunner, pendRepo repository.PendingRepository, fabRepo repository.FabricationRepository, log *logger.Logger) *UseCase {
	return &UseCase{tx: tx, pendRepo: pendRepo, fabRepo: fabRepo, log: log}
}

// FixNegatives pone a cero toda celda cuyo valor coercionado sea negativo.
func (uc *UseCase) FixNegatives(ctx context.Context) (*dto.SanitizeFixesResponse, error) {
	var reparadas []entity.StockFix
	err := uc.tx.Run(ctx, func(_ repository.MovementRepository, stockRepo repository.StockRepository) error {
		celdas, err := stockRepo.ListRaw()
		if err != nil {
			return err
		}
		for _, c := range celdas {
			v, _ := size.CoerceCantidad(c.Valor)
			if v >= 0 {
				continue
			}
			if err := stockRepo.Set(c.Modelo, c.Talla, 0); err != nil {
				return err
			}
			reparadas = append(reparadas, entity.StockFix{
				Modelo: c.Modelo, Talla: c.Talla, Antes: c.Valor, AjustadoA: 0, Motivo: MotivoNegativo,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int("reparadas", len(reparadas)).Msg("negativos saneados")
	return &dto.SanitizeFixesResponse{Reparadas: reparadas, Total: len(reparadas)}, nil
}

// FixBadValues normaliza toda celda cuyo valor no sea un entero limpio
// (nil, NaN, texto, decimales). Además, una celda con talla anómala y valor
// distinto de cero se fuerza a 0 para que la purga posterior pueda
// eliminarla sin perder cantidades reales por el camino.
func (uc *UseCase) FixBadValues(ctx context.Context) (*dto.SanitizeFixesResponse, error) {
	var reparadas []entity.StockFix
	err := uc.tx.Run(ctx, func(_ repository.MovementRepository, stockRepo repository.StockRepository) error {
		celdas, err := stockRepo.ListRaw()
		if err != nil {
			return err
		}
		for _, c := range celdas {
			v, limpio := size.CoerceCantidad(c.Valor)
			motivo := ""
			switch {
			case size.EsTallaAnomala(c.Talla) && v != 0:
				v, motivo = 0, MotivoTallaAnomala
			case !limpio:
				motivo = MotivoValorInvalido
			default:
				continue
			}
			if err := stockRepo.Set(c.Modelo, c.Talla, v); err != nil {
				return err
			}
			reparadas = append(reparadas, entity.StockFix{
				Modelo: c.Modelo, Talla: c.Talla, Antes: c.Valor, AjustadoA: v, Motivo: motivo,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int("reparadas", len(reparadas)).Msg("valores inválidos saneados")
	return &dto.SanitizeFixesResponse{Reparadas: reparadas, Total: len(reparadas)}, nil
}

// PurgeBadTallas elimina las filas con clave de talla inservible, y
// arrastra el borrado a las líneas de previsión con la misma clave rota.
// Con SoloCero solo purga celdas cuyo valor coercionado es 0.
func (uc *UseCase) PurgeBadTallas(ctx context.Context, in dto.PurgeTallasRequest) (*dto.PurgeTallasResponse, error) {
	var purgadas []entity.StockPurge
	err := uc.tx.Run(ctx, func(_ repository.MovementRepository, stockRepo repository.StockRepository) error {
		celdas, err := stockRepo.ListRaw()
		if err != nil {
			return err
		}
		for _, c := range celdas {
			if !size.EsTallaAnomala(c.Talla) {
				continue
			}
			v, _ := size.CoerceCantidad(c.Valor)
			if in.SoloCero && v != 0 {
				continue
			}
			if err := stockRepo.Delete(c.Modelo, c.Talla); err != nil {
				return err
			}
			purgadas = append(purgadas, entity.StockPurge{Modelo: c.Modelo, Talla: c.Talla, Valor: v})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Arrastre sobre la previsión: fuera del bloqueo del almacén, cada
	// libro con su propio candado.
	for i := range purgadas {
		n, err := uc.purgarPrevision(purgadas[i].Modelo)
		if err != nil {
			return nil, err
		}
		purgadas[i].PrevisionEliminada = n
	}
	uc.log.Info().Int("purgadas", len(purgadas)).Msg("tallas anómalas purgadas")
	return &dto.PurgeTallasResponse{Purgadas: purgadas, Total: len(purgadas)}, nil
}

// purgarPrevision elimina las líneas de previsión del modelo cuya talla es
// anómala. Devuelve cuántas cayeron.
func (uc *UseCase) purgarPrevision(modelo string) (int, error) {
	n := 0
	pendientes, err := uc.pendRepo.List(modelo)
	if err != nil {
		return 0, err
	}
	for _, p := range pendientes {
		if size.EsTallaAnomala(p.Talla) {
			if err := uc.pendRepo.Delete(p.Idx); err != nil {
				return n, err
			}
			n++
		}
	}
	fabricacion, err := uc.fabRepo.List(modelo)
	if err != nil {
		return n, err
	}
	for _, f := range fabricacion {
		if size.EsTallaAnomala(f.Talla) {
			if err := uc.fabRepo.Delete(f.Idx); err != nil {
				return n, err
			}
			n++
		}
	}
	return n, nil
}
