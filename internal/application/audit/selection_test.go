package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globalia/stock-api/internal/application/dto"
	"github.com/globalia/stock-api/internal/domain"
)

func cambiosDePrueba() []dto.AuditDiffDTO {
	return []dto.AuditDiffDTO{
		{Modelo: "A", Talla: "36", Delta: 3},
		{Modelo: "A", Talla: "38", Delta: -2},
		{Modelo: "B", Talla: "U", Delta: 5},
		{Modelo: "C", Talla: "40", Delta: -1},
	}
}

func TestResolverSeleccion_TodosPorDefecto(t *testing.T) {
	// Alcance vacío equivale a "todos".
	out, err := resolverSeleccion(cambiosDePrueba(), dto.SelectionDTO{})
	require.NoError(t, err)
	assert.Len(t, out, 4)
}

func TestResolverSeleccion_Positivos(t *testing.T) {
	out, err := resolverSeleccion(cambiosDePrueba(), dto.SelectionDTO{Alcance: AlcancePositivos})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "A", out[0].Modelo)
	assert.Equal(t, "B", out[1].Modelo)
}

func TestResolverSeleccion_Negativos(t *testing.T) {
	out, err := resolverSeleccion(cambiosDePrueba(), dto.SelectionDTO{Alcance: AlcanceNegativos})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "38", out[0].Talla)
	assert.Equal(t, "40", out[1].Talla)
}

func TestResolverSeleccion_Indices(t *testing.T) {
	out, err := resolverSeleccion(cambiosDePrueba(), dto.SelectionDTO{Alcance: AlcanceIndices, Indices: "1,3-4"})
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "36", out[0].Talla)
	assert.Equal(t, "U", out[1].Talla)
	assert.Equal(t, "40", out[2].Talla)
}

func TestResolverSeleccion_IndicesFueraDeRangoSeIgnoran(t *testing.T) {
	out, err := resolverSeleccion(cambiosDePrueba(), dto.SelectionDTO{Alcance: AlcanceIndices, Indices: "2, 99, 0"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "38", out[0].Talla)
}

func TestResolverSeleccion_TokenMalformado(t *testing.T) {
	_, err := resolverSeleccion(cambiosDePrueba(), dto.SelectionDTO{Alcance: AlcanceIndices, Indices: "1,x"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = resolverSeleccion(cambiosDePrueba(), dto.SelectionDTO{Alcance: AlcanceIndices, Indices: "1-b"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestResolverSeleccion_VaciaEsError(t *testing.T) {
	// Solo índices fuera de rango: la selección no resuelve ninguna fila.
	_, err := resolverSeleccion(cambiosDePrueba(), dto.SelectionDTO{Alcance: AlcanceIndices, Indices: "50-60"})
	assert.ErrorIs(t, err, domain.ErrNoSelection)

	// "positivos" sobre una lista sin deltas positivos.
	_, err = resolverSeleccion([]dto.AuditDiffDTO{{Delta: -1}}, dto.SelectionDTO{Alcance: AlcancePositivos})
	assert.ErrorIs(t, err, domain.ErrNoSelection)
}

func TestResolverSeleccion_AlcanceDesconocido(t *testing.T) {
	_, err := resolverSeleccion(cambiosDePrueba(), dto.SelectionDTO{Alcance: "algunos"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestParseIndices_RangoYDuplicados(t *testing.T) {
	indices, err := parseIndices("3,1,2-3, ,2", 5)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, indices, "ordenados y sin duplicados")
}
