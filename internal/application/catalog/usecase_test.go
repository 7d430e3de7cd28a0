package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globalia/stock-api/internal/application/catalog"
	"github.com/globalia/stock-api/internal/application/dto"
	"github.com/globalia/stock-api/internal/domain"
	"github.com/globalia/stock-api/internal/domain/entity"
	"github.com/globalia/stock-api/internal/infrastructure/jsonstore"
	"github.com/globalia/stock-api/pkg/logger"
)

func nuevoUseCase(t *testing.T) (*catalog.UseCase, *jsonstore.Store) {
	t.Helper()
	store, err := jsonstore.Open("", 0)
	require.NoError(t, err)
	t.Cleanup(store.Close)

	uc := catalog.NewUseCase(
		jsonstore.NewModelInfoRepository(store),
		jsonstore.NewWorkshopRepository(store),
		jsonstore.NewClientRepository(store),
		jsonstore.NewStockRepository(store),
		jsonstore.NewPendingRepository(store),
		jsonstore.NewFabricationRepository(store),
		logger.Nop(),
	)
	return uc, store
}

func TestUpdateModelInfo_UpsertNormalizado(t *testing.T) {
	uc, _ := nuevoUseCase(t)
	ctx := context.Background()

	info, err := uc.UpdateModelInfo(ctx, " zap1 ", dto.UpdateModelInfoRequest{Descripcion: "Sandalia", Color: "Negro"})
	require.NoError(t, err)
	assert.Equal(t, "ZAP1", info.Modelo)

	// Segunda llamada sobre el mismo modelo actualiza, no duplica.
	info, err = uc.UpdateModelInfo(ctx, "ZAP1", dto.UpdateModelInfoRequest{Descripcion: "Sandalia tira fina"})
	require.NoError(t, err)
	assert.Equal(t, "Sandalia tira fina", info.Descripcion)

	infos, err := uc.ListModelInfos(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1)
}

func TestUpdateModelInfo_ModeloObligatorio(t *testing.T) {
	uc, _ := nuevoUseCase(t)
	_, err := uc.UpdateModelInfo(context.Background(), "  ", dto.UpdateModelInfoRequest{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestListTallas_UnionSinAnomalas(t *testing.T) {
	uc, store := nuevoUseCase(t)
	ctx := context.Background()

	require.NoError(t, jsonstore.NewStockRepository(store).Set("ZAP1", "38", 3))
	require.NoError(t, jsonstore.NewStockRepository(store).Set("ZAP1", "nan", 0))
	require.NoError(t, jsonstore.NewPendingRepository(store).Add(&entity.PendingOrder{Modelo: "ZAP1", Talla: "36", Cantidad: 1, Pedido: "P-1"}))
	require.NoError(t, jsonstore.NewFabricationRepository(store).Add(&entity.FabricationOrder{Modelo: "ZAP1", Talla: "U", Cantidad: 2}))

	tallas, err := uc.ListTallas(ctx, "ZAP1")
	require.NoError(t, err)
	assert.Equal(t, []string{"36", "38", "U"}, tallas, "unión de las tres colecciones, sin anómalas y en orden natural")
}

func TestWorkshops_AltaDuplicadaYBaja(t *testing.T) {
	uc, _ := nuevoUseCase(t)
	ctx := context.Background()

	_, err := uc.AddWorkshop(ctx, dto.AddWorkshopRequest{Nombre: "Taller Sur", Contacto: "sur@example.com"})
	require.NoError(t, err)

	_, err = uc.AddWorkshop(ctx, dto.AddWorkshopRequest{Nombre: "Taller Sur"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.AddWorkshop(ctx, dto.AddWorkshopRequest{Nombre: "  "})
	assert.ErrorIs(t, err, domain.ErrValidation)

	require.NoError(t, uc.DeleteWorkshop(ctx, "Taller Sur"))
	assert.ErrorIs(t, uc.DeleteWorkshop(ctx, "Taller Sur"), domain.ErrNotFound)

	talleres, err := uc.ListWorkshops(ctx)
	require.NoError(t, err)
	assert.Empty(t, talleres)
}

func TestWorkshops_NombreSinDistinguirMayusculas(t *testing.T) {
	uc, _ := nuevoUseCase(t)
	ctx := context.Background()

	_, err := uc.AddWorkshop(ctx, dto.AddWorkshopRequest{Nombre: "Taller Sur"})
	require.NoError(t, err)

	_, err = uc.AddWorkshop(ctx, dto.AddWorkshopRequest{Nombre: "TALLER SUR"})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "la unicidad del nombre no distingue mayúsculas")

	// La edición y la baja también resuelven el nombre sin distinguir mayúsculas.
	w, err := uc.EditWorkshop(ctx, "taller sur", dto.EditWorkshopRequest{Contacto: "sur@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Taller Sur", w.Nombre, "se conserva el nombre tal como se registró")
	assert.Equal(t, "sur@example.com", w.Contacto)

	require.NoError(t, uc.DeleteWorkshop(ctx, "TALLER sur"))
}

func TestEditWorkshop_NoExistente(t *testing.T) {
	uc, _ := nuevoUseCase(t)
	_, err := uc.EditWorkshop(context.Background(), "Taller Fantasma", dto.EditWorkshopRequest{Contacto: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClients_AltaDuplicadaYBaja(t *testing.T) {
	uc, _ := nuevoUseCase(t)
	ctx := context.Background()

	_, err := uc.AddClient(ctx, dto.AddClientRequest{Nombre: "Calzados Norte"})
	require.NoError(t, err)

	_, err = uc.AddClient(ctx, dto.AddClientRequest{Nombre: "Calzados Norte"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	require.NoError(t, uc.DeleteClient(ctx, "Calzados Norte"))
	assert.ErrorIs(t, uc.DeleteClient(ctx, "Calzados Norte"), domain.ErrNotFound)
}

func TestEditClient_ActualizaContacto(t *testing.T) {
	uc, _ := nuevoUseCase(t)
	ctx := context.Background()

	_, err := uc.AddClient(ctx, dto.AddClientRequest{Nombre: "Calzados Norte", Contacto: "norte@example.com"})
	require.NoError(t, err)

	cl, err := uc.EditClient(ctx, "calzados norte", dto.EditClientRequest{Contacto: "pedidos@norte.example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Calzados Norte", cl.Nombre)
	assert.Equal(t, "pedidos@norte.example.com", cl.Contacto)

	_, err = uc.EditClient(ctx, "Otro", dto.EditClientRequest{Contacto: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
