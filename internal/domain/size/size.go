// Package size normaliza los identificadores de modelo y talla que llegan
// de fuentes sucias (hojas Excel, formularios, ficheros heredados) y define
// el orden natural de tallas usado en todos los listados.
package size

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/globalia/stock-api/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FormatoFecha es el formato canónico de fechas en reposo (ledger, previsión, backups).
const FormatoFecha = "2006-01-02"

var quitarAcentos = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldAccents elimina marcas diacríticas ("ÚNICA" -> "UNICA").
func foldAccents(s string) string {
	out, _, err := transform.String(quitarAcentos, s)
	if err != nil {
		return s
	}
	return out
}

// aliasesTallaUnica valores que colapsan al token canónico "U".
var aliasesTallaUnica = map[string]struct{}{
	"U": {}, "UNICA": {}, "UNITALLA": {}, "ONE SIZE": {}, "OS": {}, "TU": {},
}

// NormalizeTalla devuelve el token canónico de una talla.
// "36,0" y "36.0" colapsan a "36"; "36.5" se conserva; los alias de talla
// única (U, ÚNICA, UNITALLA, ONE SIZE, OS, TU) colapsan a "U". Todo en
// mayúsculas y sin espacios en los extremos. Entrada vacía -> "".
func NormalizeTalla(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.ToUpper(foldAccents(strings.ReplaceAll(s, ",", ".")))
	s = strings.TrimSpace(s)
	if d, err := decimal.NewFromString(s); err == nil {
		if d.IsInteger() {
			s = d.String()
		}
	} else if v, ok := strings.CutSuffix(s, ".0"); ok && esEntero(v) {
		s = v
	}
	if _, ok := aliasesTallaUnica[s]; ok {
		return "U"
	}
	return s
}

// NormalizeCodigo devuelve el código de modelo canónico: mayúsculas, sin
// espacios en los extremos y con los artefactos numéricos de Excel
// colapsados ("1234.0" -> "1234").
func NormalizeCodigo(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	conPunto := strings.ReplaceAll(s, ",", ".")
	if d, err := decimal.NewFromString(conPunto); err == nil && d.IsInteger() {
		return d.String()
	}
	if v, ok := strings.CutSuffix(s, ".0"); ok && esEntero(v) {
		return strings.ToUpper(v)
	}
	return strings.ToUpper(s)
}

func esEntero(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// tallasAnomalas claves de talla que señalan una fila corrupta.
var tallasAnomalas = map[string]struct{}{
	"": {}, "NAN": {}, "NA": {}, "NULL": {},
}

// EsTallaAnomala indica si la clave de talla es inservible (vacía o restos
// de un volcado: NAN, NA, NULL).
func EsTallaAnomala(s string) bool {
	_, ok := tallasAnomalas[strings.ToUpper(strings.TrimSpace(s))]
	return ok
}

var reNumerica = regexp.MustCompile(`^\d+(\.\d+)?$`)
var reTNumerica = regexp.MustCompile(`^T(\d+(\.\d+)?)$`)

// ordenTextual posición de las tallas de letra; "U" siempre al final.
var ordenTextual = map[string]int{
	"XS": 0, "S": 1, "M": 2, "L": 3, "XL": 4, "XXL": 5, "XXXL": 6, "U": 99,
}

// claveTalla clase de ordenación: numéricas primero (por valor), después
// las de letra (XS..XXXL, U la última) y el resto alfabético.
type claveTalla struct {
	clase int
	num   float64
	texto string
}

func sortKey(t string) claveTalla {
	if reNumerica.MatchString(t) {
		n, _ := strconv.ParseFloat(t, 64)
		return claveTalla{clase: 0, num: n}
	}
	if m := reTNumerica.FindStringSubmatch(t); m != nil {
		n, _ := strconv.ParseFloat(m[1], 64)
		return claveTalla{clase: 0, num: n}
	}
	if pos, ok := ordenTextual[t]; ok {
		return claveTalla{clase: 1, num: float64(pos)}
	}
	return claveTalla{clase: 2, texto: t}
}

// LessTalla compara dos tokens de talla según el orden natural.
func LessTalla(a, b string) bool {
	ka, kb := sortKey(a), sortKey(b)
	if ka.clase != kb.clase {
		return ka.clase < kb.clase
	}
	if ka.num != kb.num {
		return ka.num < kb.num
	}
	return ka.texto < kb.texto
}

// SortTallas ordena in place un slice de tokens de talla.
func SortTallas(tallas []string) {
	sort.Slice(tallas, func(i, j int) bool { return LessTalla(tallas[i], tallas[j]) })
}

// valoresNulos representaciones textuales que cuentan como cero.
var valoresNulos = map[string]struct{}{
	"": {}, "nan": {}, "none": {}, "null": {},
}

// CoerceCantidad convierte un valor crudo de celda de stock a entero.
// Devuelve además si el valor original ya era un entero limpio; cuando no
// lo era (nil, NaN, texto basura, decimales con coma) la cantidad devuelta
// es la reparación propuesta.
func CoerceCantidad(v any) (int, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case int:
		return x, true
	case int64:
		return int(x), true
	case float64:
		if x != x { // NaN
			return 0, false
		}
		if x == float64(int(x)) {
			return int(x), true
		}
		return int(x), false
	case string:
		s := strings.ToLower(strings.TrimSpace(x))
		if _, ok := valoresNulos[s]; ok {
			return 0, false
		}
		d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
		if err != nil {
			return 0, false
		}
		return int(d.IntPart()), false
	default:
		return 0, false
	}
}

// formatosFecha formatos de entrada aceptados, del más al menos habitual.
var formatosFecha = []string{
	FormatoFecha,
	"02/01/2006",
	"02-01-2006",
	"2006/01/02",
	time.RFC3339,
}

// ParseFecha normaliza una fecha de entrada al formato canónico YYYY-MM-DD.
func ParseFecha(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) >= 19 {
		if t, err := time.Parse("2006-01-02T15:04:05", s[:19]); err == nil {
			return t.Format(FormatoFecha), nil
		}
	}
	for _, layout := range formatosFecha {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(FormatoFecha), nil
		}
	}
	return "", domain.ErrInvalidDate
}

// FechaHoy devuelve la fecha actual en el formato canónico.
func FechaHoy() string {
	return time.Now().Format(FormatoFecha)
}
