// Package audit reconcilia las dos fuentes de verdad del almacén: el libro
// de movimientos (replay de sumas firmadas) contra la tabla materializada.
// Apply confía en el libro y reescribe la tabla; Regularize confía en la
// tabla y añade ajustes compensatorios al libro.
package audit

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/globalia/stock-api/internal/application/dto"
	"github.com/globalia/stock-api/internal/domain"
	"github.com/globalia/stock-api/internal/domain/entity"
	"github.com/globalia/stock-api/internal/domain/repository"
	"github.com/globalia/stock-api/internal/domain/size"
	"github.com/globalia/stock-api/pkg/logger"
)

// TxRunner misma unidad atómica libro+tabla que usa el registro de
// movimientos; se satisface estructuralmente con el runner de cada driver.
type TxRunner interface {
	Run(ctx context.Context, fn func(movRepo repository.MovementRepository, stockRepo repository.StockRepository) error) error
}

// UseCase orquesta preview, apply y regularize.
type UseCase struct {
	tx        TxRunner
	movRepo   repository.MovementRepository
	stockRepo repository.StockRepository
	log       *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx TxRunner, movRepo repository.MovementRepository, stockRepo repository.StockRepository, log *logger.Logger) *UseCase {
	return &UseCase{tx: tx, movRepo: movRepo, stockRepo: stockRepo, log: log}
}

// Preview reconstruye el stock por clave desde el libro y lo compara con la
// tabla. Solo devuelve claves con deriva (delta != 0). El prefijo de modelo
// acota el universo; vacío = todo el almacén. Una clave presente en la
// tabla pero sin movimientos se considera en sincronía.
func (uc *UseCase) Preview(ctx context.Context, prefijo string) ([]dto.AuditDiffDTO, error) {
	prefijo = size.NormalizeCodigo(prefijo)

	movs, err := uc.movRepo.List(entity.MovementFilter{ModeloPrefix: prefijo})
	if err != nil {
		return nil, err
	}
	type clave struct{ modelo, talla string }
	replay := make(map[clave]int)
	for _, m := range movs {
		k := clave{size.NormalizeCodigo(m.Modelo), size.NormalizeTalla(m.Talla)}
		replay[k] += m.Cantidad
	}

	filas, err := uc.stockRepo.List("")
	if err != nil {
		return nil, err
	}
	actual := make(map[clave]int)
	for _, f := range filas {
		if prefijo != "" && !strings.HasPrefix(f.Modelo, prefijo) {
			continue
		}
		k := clave{f.Modelo, f.Talla}
		actual[k] = f.Cantidad
		// Sin historial no hay deriva que detectar: la clave se siembra
		// con el valor de la tabla.
		if _, ok := replay[k]; !ok {
			replay[k] = f.Cantidad
		}
	}

	var diffs []dto.AuditDiffDTO
	for k, despues := range replay {
		antes := actual[k]
		if delta := despues - antes; delta != 0 {
			d := entity.AuditDiff{Modelo: k.modelo, Talla: k.talla, Antes: antes, Despues: despues, Delta: delta}
			diffs = append(diffs, dto.AuditDiffDTO{
				Modelo: d.Modelo, Talla: d.Talla, Antes: d.Antes,
				Despues: d.Despues, Delta: d.Delta, Estado: d.Estado(),
			})
		}
	}
	sort.Slice(diffs, func(i, j int) bool {
		if diffs[i].Modelo != diffs[j].Modelo {
			return diffs[i].Modelo < diffs[j].Modelo
		}
		return size.LessTalla(diffs[i].Talla, diffs[j].Talla)
	})
	return diffs, nil
}

// Apply confía en el libro: escribe en la tabla el valor reconstruido de
// cada fila seleccionada. No es atómico entre filas; cada escritura sí lo
// es respecto a los registros concurrentes.
func (uc *UseCase) Apply(ctx context.Context, in dto.AuditApplyRequest) (*dto.AuditApplyResponse, error) {
	seleccion, err := resolverSeleccion(in.Cambios, in.Seleccion)
	if err != nil {
		return nil, err
	}
	aplicados := 0
	err = uc.tx.Run(ctx, func(_ repository.MovementRepository, stockRepo repository.StockRepository) error {
		for _, c := range seleccion {
			modelo := size.NormalizeCodigo(c.Modelo)
			talla := size.NormalizeTalla(c.Talla)
			if err := stockRepo.Set(modelo, talla, c.Despues); err != nil {
				return err
			}
			aplicados++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int("aplicados", aplicados).Msg("auditoría aplicada sobre la tabla")
	return &dto.AuditApplyResponse{Aplicados: aplicados}, nil
}

// Regularize confía en la tabla: añade al libro un AJUSTE por fila
// seleccionada con la cantidad que anula la deriva, de modo que un replay
// posterior coincida con la tabla. La tabla no se toca.
func (uc *UseCase) Regularize(ctx context.Context, in dto.AuditRegularizeRequest) (*dto.AuditRegularizeResponse, error) {
	fecha := strings.TrimSpace(in.Fecha)
	if fecha == "" {
		return nil, domain.ErrInvalidDate
	}
	fecha, err := size.ParseFecha(fecha)
	if err != nil {
		return nil, err
	}
	observacion := strings.TrimSpace(in.Observacion)
	if observacion == "" {
		return nil, domain.ErrInvalidObservation
	}
	seleccion, err := resolverSeleccion(in.Cambios, in.Seleccion)
	if err != nil {
		return nil, err
	}

	ref := uuid.New().String()
	creados := 0
	err = uc.tx.Run(ctx, func(movRepo repository.MovementRepository, _ repository.StockRepository) error {
		for _, c := range seleccion {
			if c.Delta == 0 {
				continue
			}
			mov := &entity.Movement{
				Tipo:     entity.MovementAjuste,
				Modelo:   size.NormalizeCodigo(c.Modelo),
				Talla:    size.NormalizeTalla(c.Talla),
				Cantidad: -c.Delta, // anula la deriva: replay == tabla
				Fecha:    fecha,
				Observaciones: fmt.Sprintf("%s | antes=%d despues=%d delta=%+d",
					observacion, c.Antes, c.Despues, c.Delta),
				Ajuste:   true,
				AuditRef: ref,
			}
			if err := movRepo.Append(mov); err != nil {
				return err
			}
			creados++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if creados == 0 {
		return nil, domain.ErrNoSelection
	}
	uc.log.Info().Int("ajustes", creados).Str("audit_ref", ref).Msg("libro regularizado contra la tabla")
	return &dto.AuditRegularizeResponse{AjustesCreados: creados, AuditRef: ref}, nil
}
