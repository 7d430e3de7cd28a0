package audit

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/globalia/stock-api/internal/application/dto"
	"github.com/globalia/stock-api/internal/domain"
)

// Alcances de selección sobre la lista de discrepancias.
const (
	AlcanceTodos     = "todos"
	AlcancePositivos = "positivos"
	AlcanceNegativos = "negativos"
	AlcanceIndices   = "indices"
)

// resolverSeleccion devuelve el subconjunto de cambios que la selección
// describe. Alcance vacío equivale a "todos". Una selección que no resuelve
// ninguna fila es ErrNoSelection.
func resolverSeleccion(cambios []dto.AuditDiffDTO, sel dto.SelectionDTO) ([]dto.AuditDiffDTO, error) {
	alcance := strings.ToLower(strings.TrimSpace(sel.Alcance))
	if alcance == "" {
		alcance = AlcanceTodos
	}
	var out []dto.AuditDiffDTO
	switch alcance {
	case AlcanceTodos:
		out = cambios
	case AlcancePositivos:
		for _, c := range cambios {
			if c.Delta > 0 {
				out = append(out, c)
			}
		}
	case AlcanceNegativos:
		for _, c := range cambios {
			if c.Delta < 0 {
				out = append(out, c)
			}
		}
	case AlcanceIndices:
		indices, err := parseIndices(sel.Indices, len(cambios))
		if err != nil {
			return nil, err
		}
		for _, i := range indices {
			out = append(out, cambios[i-1])
		}
	default:
		return nil, fmt.Errorf("%w: alcance de selección desconocido %q", domain.ErrValidation, sel.Alcance)
	}
	if len(out) == 0 {
		return nil, domain.ErrNoSelection
	}
	return out, nil
}

// parseIndices interpreta una selección 1-based tipo "1,3,5-8" sobre una
// lista de n filas. Los índices fuera de rango se ignoran; un token
// malformado es error de validación.
func parseIndices(s string, n int) ([]int, error) {
	vistos := make(map[int]struct{})
	for _, token := range strings.Split(s, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if a, b, ok := strings.Cut(token, "-"); ok {
			inicio, err1 := strconv.Atoi(strings.TrimSpace(a))
			fin, err2 := strconv.Atoi(strings.TrimSpace(b))
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("%w: rango de índices malformado %q", domain.ErrValidation, token)
			}
			for i := inicio; i <= fin; i++ {
				if i >= 1 && i <= n {
					vistos[i] = struct{}{}
				}
			}
			continue
		}
		i, err := strconv.Atoi(token)
		if err != nil {
			return nil, fmt.Errorf("%w: índice malformado %q", domain.ErrValidation, token)
		}
		if i >= 1 && i <= n {
			vistos[i] = struct{}{}
		}
	}
	out := make([]int, 0, len(vistos))
	for i := range vistos {
		out = append(out, i)
	}
	sort.Ints(out)
	return out, nil
}
