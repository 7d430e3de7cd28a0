package dto

// AuditDiffDTO discrepancia entre la tabla de stock y el replay del libro.
// Viaja en ambos sentidos: la devuelve el preview y la reciben apply y
// regularize como filas candidatas.
type AuditDiffDTO struct {
	Modelo  string `json:"modelo"`
	Talla   string `json:"talla"`
	Antes   int    `json:"antes"`
	Despues int    `json:"despues"`
	Delta   int    `json:"delta"`
	Estado  string `json:"estado,omitempty"`
}

// SelectionDTO selección sobre la lista de discrepancias.
// Alcance: "todos" (defecto), "positivos", "negativos" o "indices".
// Indices usa posiciones 1-based sobre la lista recibida: "1,3,5-8".
type SelectionDTO struct {
	Alcance string `json:"alcance"`
	Indices string `json:"indices"`
}

// AuditApplyRequest aplica el valor del libro a la tabla para la selección.
type AuditApplyRequest struct {
	Cambios   []AuditDiffDTO `json:"cambios"`
	Seleccion SelectionDTO   `json:"seleccion"`
}

// AuditRegularizeRequest añade ajustes compensatorios al libro para que su
// replay coincida con la tabla. Fecha y observación son obligatorias.
type AuditRegularizeRequest struct {
	Cambios     []AuditDiffDTO `json:"cambios"`
	Seleccion   SelectionDTO   `json:"seleccion"`
	Fecha       string         `json:"fecha"`
	Observacion string         `json:"observacion"`
}

// AuditApplyResponse resultado de audit apply.
type AuditApplyResponse struct {
	Aplicados int `json:"aplicados"`
}

// AuditRegularizeResponse resultado de la regularización.
type AuditRegularizeResponse struct {
	AjustesCreados int    `json:"ajustes_creados"`
	AuditRef       string `json:"audit_ref"`
}
