package stock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globalia/stock-api/internal/application/dto"
	"github.com/globalia/stock-api/internal/application/stock"
	"github.com/globalia/stock-api/internal/domain"
	"github.com/globalia/stock-api/internal/domain/entity"
	"github.com/globalia/stock-api/internal/infrastructure/jsonstore"
	"github.com/globalia/stock-api/pkg/logger"
)

func nuevoUseCase(t *testing.T) (*stock.UseCase, *jsonstore.Store) {
	t.Helper()
	store, err := jsonstore.Open("", 0)
	require.NoError(t, err)
	t.Cleanup(store.Close)

	uc := stock.NewUseCase(
		jsonstore.NewTxRunner(store),
		jsonstore.NewStockRepository(store),
		jsonstore.NewMovementRepository(store),
		jsonstore.NewModelInfoRepository(store),
		logger.Nop(),
	)
	return uc, store
}

func TestRegisterEntry_ActualizaLibroYTabla(t *testing.T) {
	uc, _ := nuevoUseCase(t)
	ctx := context.Background()

	fila, err := uc.RegisterEntry(ctx, dto.RegisterEntryRequest{
		Modelo: "zap1", Talla: "36,0", Cantidad: 10, Fecha: "2026-01-10", Taller: "Taller Sur",
	})
	require.NoError(t, err)
	assert.Equal(t, "ZAP1", fila.Modelo, "el modelo se normaliza")
	assert.Equal(t, "36", fila.Talla, "la talla se normaliza")
	assert.Equal(t, 10, fila.Cantidad)

	movs, err := uc.ListMovements(ctx, entity.MovementFilter{})
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementEntrada, movs[0].Tipo)
	assert.Equal(t, 10, movs[0].Cantidad)
	assert.Equal(t, int64(1), movs[0].Seq)
	assert.NotEmpty(t, movs[0].ID)
}

func TestRegisterEntry_Validaciones(t *testing.T) {
	uc, _ := nuevoUseCase(t)
	ctx := context.Background()

	_, err := uc.RegisterEntry(ctx, dto.RegisterEntryRequest{Talla: "36", Cantidad: 1})
	assert.ErrorIs(t, err, domain.ErrValidation, "modelo obligatorio")

	_, err = uc.RegisterEntry(ctx, dto.RegisterEntryRequest{Modelo: "ZAP1", Talla: "nan", Cantidad: 1})
	assert.ErrorIs(t, err, domain.ErrValidation, "talla anómala rechazada")

	_, err = uc.RegisterEntry(ctx, dto.RegisterEntryRequest{Modelo: "ZAP1", Talla: "36", Cantidad: 0})
	assert.ErrorIs(t, err, domain.ErrValidation, "cantidad positiva obligatoria")

	_, err = uc.RegisterEntry(ctx, dto.RegisterEntryRequest{Modelo: "ZAP1", Talla: "36", Cantidad: 5, Fecha: "mañana"})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestRegisterEntry_FechaVaciaEsHoy(t *testing.T) {
	uc, _ := nuevoUseCase(t)
	ctx := context.Background()

	_, err := uc.RegisterEntry(ctx, dto.RegisterEntryRequest{Modelo: "ZAP1", Talla: "36", Cantidad: 1})
	require.NoError(t, err)

	movs, err := uc.ListMovements(ctx, entity.MovementFilter{})
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, movs[0].Fecha)
}

func TestRegisterExit_RequierePedidoYAlbaran(t *testing.T) {
	uc, _ := nuevoUseCase(t)
	ctx := context.Background()

	_, err := uc.RegisterExit(ctx, dto.RegisterExitRequest{Modelo: "ZAP1", Talla: "36", Cantidad: 2})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.RegisterExit(ctx, dto.RegisterExitRequest{Modelo: "ZAP1", Talla: "36", Cantidad: 2, Pedido: "P-1"})
	assert.ErrorIs(t, err, domain.ErrValidation, "falta el albarán")
}

func TestRegisterExit_DescuentaYGuardaNegativoEnElLibro(t *testing.T) {
	uc, _ := nuevoUseCase(t)
	ctx := context.Background()

	_, err := uc.RegisterEntry(ctx, dto.RegisterEntryRequest{Modelo: "ZAP1", Talla: "36", Cantidad: 10})
	require.NoError(t, err)

	fila, err := uc.RegisterExit(ctx, dto.RegisterExitRequest{
		Modelo: "ZAP1", Talla: "36", Cantidad: 3, Pedido: "P-77", Albaran: "A-12", Cliente: "Calzados Norte",
	})
	require.NoError(t, err)
	assert.Equal(t, 7, fila.Cantidad)

	movs, err := uc.ListMovements(ctx, entity.MovementFilter{Tipo: entity.MovementSalida})
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, -3, movs[0].Cantidad, "la salida se guarda con signo negativo")
	assert.Equal(t, "P-77", movs[0].Pedido)
	assert.Equal(t, "A-12", movs[0].Albaran)
}

func TestRegisterExit_PermiteSobreventa(t *testing.T) {
	uc, _ := nuevoUseCase(t)
	ctx := context.Background()

	// No hay stock: la salida se admite y la tabla queda en negativo, que la
	// auditoría hará visible.
	fila, err := uc.RegisterExit(ctx, dto.RegisterExitRequest{
		Modelo: "ZAP1", Talla: "36", Cantidad: 4, Pedido: "P-1", Albaran: "A-1",
	})
	require.NoError(t, err)
	assert.Equal(t, -4, fila.Cantidad)
}

func TestListStock_FiltraYOrdena(t *testing.T) {
	uc, _ := nuevoUseCase(t)
	ctx := context.Background()

	for _, alta := range []dto.RegisterEntryRequest{
		{Modelo: "ZAP1", Talla: "40", Cantidad: 1},
		{Modelo: "ZAP1", Talla: "36", Cantidad: 2},
		{Modelo: "ZAP1", Talla: "M", Cantidad: 3},
		{Modelo: "BOT1", Talla: "38", Cantidad: 4},
	} {
		_, err := uc.RegisterEntry(ctx, alta)
		require.NoError(t, err)
	}

	filas, err := uc.ListStock(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, filas, 4)
	assert.Equal(t, "BOT1", filas[0].Modelo, "ordenado por modelo")
	assert.Equal(t, []string{"36", "40", "M"}, []string{filas[1].Talla, filas[2].Talla, filas[3].Talla},
		"dentro del modelo, orden natural de tallas")

	filas, err = uc.ListStock(ctx, "zap1", "36")
	require.NoError(t, err)
	require.Len(t, filas, 1)
	assert.Equal(t, 2, filas[0].Cantidad)
}

func TestListMovements_Paginacion(t *testing.T) {
	uc, _ := nuevoUseCase(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := uc.RegisterEntry(ctx, dto.RegisterEntryRequest{Modelo: "ZAP1", Talla: "36", Cantidad: 1})
		require.NoError(t, err)
	}

	movs, err := uc.ListMovements(ctx, entity.MovementFilter{Limit: 2, Offset: 3})
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, int64(4), movs[0].Seq)
	assert.Equal(t, int64(5), movs[1].Seq)
}

func TestListModels_AgrupaYAdjuntaFicha(t *testing.T) {
	uc, store := nuevoUseCase(t)
	ctx := context.Background()

	infoRepo := jsonstore.NewModelInfoRepository(store)
	require.NoError(t, infoRepo.Upsert(&entity.ModelInfo{Modelo: "ZAP1", Descripcion: "Sandalia tira fina", Color: "Negro"}))

	_, err := uc.RegisterEntry(ctx, dto.RegisterEntryRequest{Modelo: "ZAP1", Talla: "38", Cantidad: 2})
	require.NoError(t, err)
	_, err = uc.RegisterEntry(ctx, dto.RegisterEntryRequest{Modelo: "ZAP1", Talla: "36", Cantidad: 3})
	require.NoError(t, err)

	modelos, err := uc.ListModels(ctx)
	require.NoError(t, err)
	require.Len(t, modelos, 1)
	assert.Equal(t, "Sandalia tira fina", modelos[0].Descripcion)
	assert.Equal(t, []string{"36", "38"}, modelos[0].Tallas)
	assert.Equal(t, 5, modelos[0].Total)
}
