package size_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globalia/stock-api/internal/domain"
	"github.com/globalia/stock-api/internal/domain/size"
)

// ──────────────────────────────────────────────────────────────────────────────
// Normalización de tallas
// ──────────────────────────────────────────────────────────────────────────────

func TestNormalizeTalla_ArtefactosNumericos(t *testing.T) {
	casos := map[string]string{
		"36":    "36",
		"36.0":  "36",
		"36,0":  "36",
		" 36 ":  "36",
		"36.5":  "36.5",
		"36,5":  "36.5",
		"040":   "40", // Excel a veces exporta con ceros a la izquierda
		"":      "",
		"  ":    "",
		"m":     "M",
		" xl ":  "XL",
		"T40":   "T40",
		"38-40": "38-40",
	}
	for entrada, esperado := range casos {
		assert.Equal(t, esperado, size.NormalizeTalla(entrada), "entrada %q", entrada)
	}
}

func TestNormalizeTalla_AliasTallaUnica(t *testing.T) {
	// Todos los alias colapsan al token canónico, con o sin acentos.
	for _, alias := range []string{"U", "u", "UNICA", "única", "ÚNICA", "unitalla", "ONE SIZE", "one size", "OS", "tu"} {
		assert.Equal(t, "U", size.NormalizeTalla(alias), "alias %q", alias)
	}
}

func TestNormalizeCodigo(t *testing.T) {
	casos := map[string]string{
		"1234":    "1234",
		"1234.0":  "1234",
		"1234,0":  "1234",
		" abc12 ": "ABC12",
		"zap-01":  "ZAP-01",
		"":        "",
	}
	for entrada, esperado := range casos {
		assert.Equal(t, esperado, size.NormalizeCodigo(entrada), "entrada %q", entrada)
	}
}

func TestEsTallaAnomala(t *testing.T) {
	for _, talla := range []string{"", "  ", "nan", "NaN", "NA", "null", "NULL"} {
		assert.True(t, size.EsTallaAnomala(talla), "talla %q debe ser anómala", talla)
	}
	for _, talla := range []string{"36", "U", "M", "T40"} {
		assert.False(t, size.EsTallaAnomala(talla), "talla %q no debe ser anómala", talla)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Orden natural de tallas
// ──────────────────────────────────────────────────────────────────────────────

func TestSortTallas_OrdenNatural(t *testing.T) {
	tallas := []string{"U", "XL", "40", "36.5", "S", "PERSONALIZADA", "T38", "36", "M", "XS"}
	size.SortTallas(tallas)

	// Numéricas por valor (T38 cuenta como 38), letras XS..XL, U al final de
	// las letras, el resto alfabético.
	assert.Equal(t, []string{"36", "36.5", "T38", "40", "XS", "S", "M", "XL", "U", "PERSONALIZADA"}, tallas)
}

func TestLessTalla_NumericasAntesQueLetras(t *testing.T) {
	assert.True(t, size.LessTalla("44", "XS"), "las numéricas van antes que las de letra")
	assert.True(t, size.LessTalla("XXXL", "U"), "U cierra el bloque de letras")
	assert.True(t, size.LessTalla("U", "ZZZ"), "las letras van antes que el resto")
}

// ──────────────────────────────────────────────────────────────────────────────
// Coerción de cantidades
// ──────────────────────────────────────────────────────────────────────────────

func TestCoerceCantidad(t *testing.T) {
	casos := []struct {
		nombre   string
		entrada  any
		cantidad int
		limpio   bool
	}{
		{"entero", 7, 7, true},
		{"int64", int64(7), 7, true},
		{"float entero", float64(7), 7, true},
		{"float con decimales", 7.9, 7, false},
		{"nil", nil, 0, false},
		{"string numérica", "12", 12, false},
		{"string con coma decimal", "12,0", 12, false},
		{"string basura", "hola", 0, false},
		{"string vacía", "", 0, false},
		{"string nan", "NaN", 0, false},
	}
	for _, c := range casos {
		cantidad, limpio := size.CoerceCantidad(c.entrada)
		assert.Equal(t, c.cantidad, cantidad, c.nombre)
		assert.Equal(t, c.limpio, limpio, c.nombre)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Fechas
// ──────────────────────────────────────────────────────────────────────────────

func TestParseFecha_FormatosAceptados(t *testing.T) {
	for _, entrada := range []string{"2026-03-15", "15/03/2026", "15-03-2026", "2026/03/15", "2026-03-15T10:30:00"} {
		fecha, err := size.ParseFecha(entrada)
		require.NoError(t, err, "entrada %q", entrada)
		assert.Equal(t, "2026-03-15", fecha, "entrada %q", entrada)
	}
}

func TestParseFecha_Invalida(t *testing.T) {
	for _, entrada := range []string{"", "ayer", "2026-13-45", "15.03.2026"} {
		_, err := size.ParseFecha(entrada)
		require.Error(t, err, "entrada %q", entrada)
		assert.ErrorIs(t, err, domain.ErrInvalidDate)
	}
}
