package sanitize_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globalia/stock-api/internal/application/dto"
	"github.com/globalia/stock-api/internal/application/sanitize"
	"github.com/globalia/stock-api/internal/domain/entity"
	"github.com/globalia/stock-api/internal/infrastructure/jsonstore"
	"github.com/globalia/stock-api/pkg/logger"
)

// abrirConBasura monta un store sobre un fichero heredado con celdas sucias,
// como los que dejaban los volcados de Excel.
func abrirConBasura(t *testing.T, almacenJSON string) (*sanitize.UseCase, *jsonstore.Store) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "datos_almacen.json"), []byte(almacenJSON), 0o644))

	store, err := jsonstore.Open(dir, 0)
	require.NoError(t, err)
	t.Cleanup(store.Close)

	uc := sanitize.NewUseCase(
		jsonstore.NewTxRunner(store),
		jsonstore.NewPendingRepository(store),
		jsonstore.NewFabricationRepository(store),
		logger.Nop(),
	)
	return uc, store
}

func TestFixNegatives(t *testing.T) {
	uc, store := abrirConBasura(t, `{"almacen":{"ZAP1":{"36":-3,"38":5},"BOT1":{"40":-1}}}`)
	ctx := context.Background()

	out, err := uc.FixNegatives(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Total)
	for _, fix := range out.Reparadas {
		assert.Equal(t, sanitize.MotivoNegativo, fix.Motivo)
		assert.Equal(t, 0, fix.AjustadoA)
	}

	stockRepo := jsonstore.NewStockRepository(store)
	cantidad, err := stockRepo.Get("ZAP1", "36")
	require.NoError(t, err)
	assert.Equal(t, 0, cantidad)
	cantidad, err = stockRepo.Get("ZAP1", "38")
	require.NoError(t, err)
	assert.Equal(t, 5, cantidad, "la celda sana no se toca")

	// Idempotente: la segunda pasada no encuentra nada.
	out, err = uc.FixNegatives(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Total)
}

func TestFixBadValues(t *testing.T) {
	uc, store := abrirConBasura(t, `{"almacen":{"ZAP1":{"36":"7","38":2.5,"40":null,"42":3}}}`)
	ctx := context.Background()

	out, err := uc.FixBadValues(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Total, "solo la celda entera limpia se respeta")

	stockRepo := jsonstore.NewStockRepository(store)
	for talla, esperado := range map[string]int{"36": 7, "38": 2, "40": 0, "42": 3} {
		cantidad, err := stockRepo.Get("ZAP1", talla)
		require.NoError(t, err)
		assert.Equal(t, esperado, cantidad, "talla %s", talla)
	}

	out, err = uc.FixBadValues(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Total, "idempotente")
}

func TestFixBadValues_TallaAnomalaConValorSeFuerzaACero(t *testing.T) {
	// Una celda "nan" con cantidad real se pone a 0 para que la purga
	// posterior no borre cantidades por el camino.
	uc, store := abrirConBasura(t, `{"almacen":{"ZAP1":{"nan":4}}}`)

	out, err := uc.FixBadValues(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, out.Total)
	assert.Equal(t, sanitize.MotivoTallaAnomala, out.Reparadas[0].Motivo)

	cantidad, err := jsonstore.NewStockRepository(store).Get("ZAP1", "nan")
	require.NoError(t, err)
	assert.Equal(t, 0, cantidad)
}

func TestPurgeBadTallas(t *testing.T) {
	uc, store := abrirConBasura(t, `{"almacen":{"ZAP1":{"nan":0,"":0,"36":9},"BOT1":{"NULL":2}}}`)
	ctx := context.Background()

	// SoloCero deja intacta la celda NULL con valor 2.
	out, err := uc.PurgeBadTallas(ctx, dto.PurgeTallasRequest{SoloCero: true})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Total)

	stockRepo := jsonstore.NewStockRepository(store)
	filas, err := stockRepo.List("ZAP1")
	require.NoError(t, err)
	require.Len(t, filas, 1)
	assert.Equal(t, "36", filas[0].Talla, "la fila sana sobrevive")

	// Sin SoloCero cae también la celda con valor.
	out, err = uc.PurgeBadTallas(ctx, dto.PurgeTallasRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Total)
	filas, err = stockRepo.List("BOT1")
	require.NoError(t, err)
	assert.Empty(t, filas)
}

func TestPurgeBadTallas_ArrastraLaPrevision(t *testing.T) {
	uc, store := abrirConBasura(t, `{"almacen":{"ZAP1":{"nan":0}}}`)
	ctx := context.Background()

	// Previsión con la misma clave rota y otra sana.
	pendRepo := jsonstore.NewPendingRepository(store)
	require.NoError(t, pendRepo.Add(&entity.PendingOrder{Modelo: "ZAP1", Talla: "nan", Cantidad: 3, Pedido: "P-1"}))
	require.NoError(t, pendRepo.Add(&entity.PendingOrder{Modelo: "ZAP1", Talla: "36", Cantidad: 2, Pedido: "P-2"}))
	fabRepo := jsonstore.NewFabricationRepository(store)
	require.NoError(t, fabRepo.Add(&entity.FabricationOrder{Modelo: "ZAP1", Talla: "NULL", Cantidad: 5}))

	out, err := uc.PurgeBadTallas(ctx, dto.PurgeTallasRequest{})
	require.NoError(t, err)
	require.Equal(t, 1, out.Total)
	assert.Equal(t, 2, out.Purgadas[0].PrevisionEliminada, "cae el pendiente y la orden con talla rota")

	pendientes, err := pendRepo.List("")
	require.NoError(t, err)
	require.Len(t, pendientes, 1)
	assert.Equal(t, "36", pendientes[0].Talla)

	fabricacion, err := fabRepo.List("")
	require.NoError(t, err)
	assert.Empty(t, fabricacion)
}
