package jsonstore_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globalia/stock-api/internal/domain"
	"github.com/globalia/stock-api/internal/domain/entity"
	"github.com/globalia/stock-api/internal/domain/repository"
	"github.com/globalia/stock-api/internal/infrastructure/jsonstore"
)

func movimiento(tipo string, cantidad int) *entity.Movement {
	return &entity.Movement{Tipo: tipo, Modelo: "ZAP1", Talla: "36", Cantidad: cantidad, Fecha: "2026-01-10"}
}

// ──────────────────────────────────────────────────────────────────────────────
// Persistencia
// ──────────────────────────────────────────────────────────────────────────────

func TestStore_RoundTripEnDisco(t *testing.T) {
	dir := t.TempDir()

	store, err := jsonstore.Open(dir, 0)
	require.NoError(t, err)

	movRepo := jsonstore.NewMovementRepository(store)
	require.NoError(t, movRepo.Append(movimiento(entity.MovementEntrada, 10)))
	stockRepo := jsonstore.NewStockRepository(store)
	require.NoError(t, stockRepo.Set("ZAP1", "36", 10))
	pendRepo := jsonstore.NewPendingRepository(store)
	require.NoError(t, pendRepo.Add(&entity.PendingOrder{Modelo: "ZAP1", Talla: "36", Cantidad: 2, Pedido: "P-1"}))
	tallerRepo := jsonstore.NewWorkshopRepository(store)
	require.NoError(t, tallerRepo.Add(&entity.Workshop{Nombre: "Taller Sur"}))
	store.Close()

	// Reapertura: todo debe seguir ahí, contadores incluidos.
	store2, err := jsonstore.Open(dir, 0)
	require.NoError(t, err)
	t.Cleanup(store2.Close)

	movs, err := jsonstore.NewMovementRepository(store2).List(entity.MovementFilter{})
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, int64(1), movs[0].Seq)

	cantidad, err := jsonstore.NewStockRepository(store2).Get("ZAP1", "36")
	require.NoError(t, err)
	assert.Equal(t, 10, cantidad)

	pendientes, err := jsonstore.NewPendingRepository(store2).List("")
	require.NoError(t, err)
	require.Len(t, pendientes, 1)

	talleres, err := jsonstore.NewWorkshopRepository(store2).List()
	require.NoError(t, err)
	require.Len(t, talleres, 1)

	// El siguiente movimiento continúa la secuencia, no la reinicia.
	require.NoError(t, jsonstore.NewMovementRepository(store2).Append(movimiento(entity.MovementEntrada, 1)))
	movs, err = jsonstore.NewMovementRepository(store2).List(entity.MovementFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), movs[1].Seq)
}

func TestStore_RecuperaContadoresDeFicherosViejos(t *testing.T) {
	// Fichero de una versión que no guardaba next_seq.
	dir := t.TempDir()
	viejo := `{"almacen":{},"historial":[{"id":"x","seq":7,"tipo":"ENTRADA","modelo":"ZAP1","talla":"36","cantidad":1,"fecha":"2025-01-01"}]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "datos_almacen.json"), []byte(viejo), 0o644))

	store, err := jsonstore.Open(dir, 0)
	require.NoError(t, err)
	t.Cleanup(store.Close)

	movRepo := jsonstore.NewMovementRepository(store)
	require.NoError(t, movRepo.Append(movimiento(entity.MovementEntrada, 1)))
	movs, err := movRepo.List(entity.MovementFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(8), movs[1].Seq, "la secuencia continúa tras el máximo existente")
}

func TestStore_ConservaBasuraHeredadaHastaElSaneo(t *testing.T) {
	dir := t.TempDir()
	sucio := `{"almacen":{"ZAP1":{"36":"4,0","nan":null}}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "datos_almacen.json"), []byte(sucio), 0o644))

	store, err := jsonstore.Open(dir, 0)
	require.NoError(t, err)
	t.Cleanup(store.Close)

	celdas, err := jsonstore.NewStockRepository(store).ListRaw()
	require.NoError(t, err)
	require.Len(t, celdas, 2)
	valores := map[string]any{}
	for _, c := range celdas {
		valores[c.Talla] = c.Valor
	}
	assert.Equal(t, "4,0", valores["36"], "el valor crudo se conserva tal cual")
	assert.Nil(t, valores["nan"])

	// La lectura coercionada sí repara al vuelo.
	cantidad, err := jsonstore.NewStockRepository(store).Get("ZAP1", "36")
	require.NoError(t, err)
	assert.Equal(t, 4, cantidad)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transacciones y candados
// ──────────────────────────────────────────────────────────────────────────────

func TestTxRunner_RollbackRestauraLaMemoria(t *testing.T) {
	store, err := jsonstore.Open("", 0)
	require.NoError(t, err)
	t.Cleanup(store.Close)

	fallo := errors.New("fallo a mitad")
	err = jsonstore.NewTxRunner(store).Run(context.Background(), func(movRepo repository.MovementRepository, stockRepo repository.StockRepository) error {
		if err := movRepo.Append(movimiento(entity.MovementEntrada, 5)); err != nil {
			return err
		}
		if err := stockRepo.Set("ZAP1", "36", 5); err != nil {
			return err
		}
		return fallo
	})
	assert.ErrorIs(t, err, fallo)

	movs, err := jsonstore.NewMovementRepository(store).List(entity.MovementFilter{})
	require.NoError(t, err)
	assert.Empty(t, movs, "el movimiento no sobrevive al rollback")

	cantidad, err := jsonstore.NewStockRepository(store).Get("ZAP1", "36")
	require.NoError(t, err)
	assert.Equal(t, 0, cantidad)

	// La secuencia tampoco avanza: el siguiente alta recibe Seq 1.
	require.NoError(t, jsonstore.NewMovementRepository(store).Append(movimiento(entity.MovementEntrada, 1)))
	movs, err = jsonstore.NewMovementRepository(store).List(entity.MovementFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), movs[0].Seq)
}

func TestStore_EsperaPorElCandadoAcotada(t *testing.T) {
	store, err := jsonstore.Open("", 50*time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(store.Close)

	// Dentro de la transacción el candado de escritura del almacén está
	// tomado; un escritor de fuera no puede entrar y agota la espera.
	err = jsonstore.NewTxRunner(store).Run(context.Background(), func(_ repository.MovementRepository, _ repository.StockRepository) error {
		return jsonstore.NewStockRepository(store).Set("ZAP1", "36", 1)
	})
	assert.ErrorIs(t, err, domain.ErrLockTimeout)
}

func TestStore_LosLectoresNoAgotanLaEspera(t *testing.T) {
	store, err := jsonstore.Open("", 50*time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(store.Close)

	stockRepo := jsonstore.NewStockRepository(store)
	require.NoError(t, stockRepo.Set("ZAP1", "36", 4))

	// Una transacción mantiene el candado de escritura bastante más tiempo
	// que la espera acotada; un lector concurrente no pasa por el semáforo,
	// así que espera la mutación en curso y lee con normalidad.
	enTx := make(chan struct{})
	hecho := make(chan error, 1)
	go func() {
		hecho <- jsonstore.NewTxRunner(store).Run(context.Background(), func(_ repository.MovementRepository, stockTx repository.StockRepository) error {
			close(enTx)
			time.Sleep(150 * time.Millisecond)
			return stockTx.Set("ZAP1", "36", 9)
		})
	}()

	<-enTx
	cantidad, err := stockRepo.Get("ZAP1", "36")
	require.NoError(t, err, "la lectura no debe devolver lock timeout")
	assert.Contains(t, []int{4, 9}, cantidad)
	require.NoError(t, <-hecho)
}

func TestStore_CerradoRechazaOperaciones(t *testing.T) {
	store, err := jsonstore.Open("", 0)
	require.NoError(t, err)
	store.Close()

	_, err = jsonstore.NewStockRepository(store).Get("ZAP1", "36")
	assert.ErrorIs(t, err, domain.ErrStoreClosed)

	err = jsonstore.NewMovementRepository(store).Append(movimiento(entity.MovementEntrada, 1))
	assert.ErrorIs(t, err, domain.ErrStoreClosed)
}

func TestMovementRepo_RechazaSignoIncoherente(t *testing.T) {
	store, err := jsonstore.Open("", 0)
	require.NoError(t, err)
	t.Cleanup(store.Close)

	movRepo := jsonstore.NewMovementRepository(store)
	assert.ErrorIs(t, movRepo.Append(movimiento(entity.MovementEntrada, -1)), domain.ErrValidation)
	assert.ErrorIs(t, movRepo.Append(movimiento(entity.MovementSalida, 3)), domain.ErrValidation)
	assert.ErrorIs(t, movRepo.Append(movimiento(entity.MovementAjuste, 0)), domain.ErrValidation)
	assert.NoError(t, movRepo.Append(movimiento(entity.MovementAjuste, -2)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Snapshot / Restore
// ──────────────────────────────────────────────────────────────────────────────

func TestSnapshotRestore_TodoONada(t *testing.T) {
	store, err := jsonstore.Open("", 0)
	require.NoError(t, err)
	t.Cleanup(store.Close)
	ctx := context.Background()

	require.NoError(t, jsonstore.NewMovementRepository(store).Append(movimiento(entity.MovementEntrada, 10)))
	require.NoError(t, jsonstore.NewStockRepository(store).Set("ZAP1", "36", 10))
	require.NoError(t, jsonstore.NewPendingRepository(store).Add(&entity.PendingOrder{Modelo: "ZAP1", Talla: "36", Cantidad: 2, Pedido: "P-1"}))
	require.NoError(t, jsonstore.NewClientRepository(store).Add(&entity.Client{Nombre: "Calzados Norte"}))

	snap, err := store.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Almacen, 1)
	require.Len(t, snap.Historial, 1)
	require.Len(t, snap.Pendientes, 1)
	require.Len(t, snap.Clientes, 1)

	// Se sigue trabajando tras la foto...
	require.NoError(t, jsonstore.NewStockRepository(store).Set("ZAP1", "36", 99))
	require.NoError(t, jsonstore.NewPendingRepository(store).Delete(1))

	// ...y la restauración devuelve el estado exacto de la foto.
	require.NoError(t, store.Restore(ctx, snap))

	cantidad, err := jsonstore.NewStockRepository(store).Get("ZAP1", "36")
	require.NoError(t, err)
	assert.Equal(t, 10, cantidad)

	pendientes, err := jsonstore.NewPendingRepository(store).List("")
	require.NoError(t, err)
	require.Len(t, pendientes, 1)

	// Los contadores vuelven con la foto: la siguiente alta no colisiona.
	require.NoError(t, jsonstore.NewMovementRepository(store).Append(movimiento(entity.MovementEntrada, 1)))
	movs, err := jsonstore.NewMovementRepository(store).List(entity.MovementFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), movs[1].Seq)
}
