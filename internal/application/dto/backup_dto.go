package dto

// BackupInfoResponse metadatos de un backup disponible.
type BackupInfoResponse struct {
	Nombre    string `json:"nombre"`
	CreatedAt string `json:"created_at"`
	Bytes     int64  `json:"bytes"`
}

// BackupRestoreResponse resumen de la restauración.
type BackupRestoreResponse struct {
	Nombre      string `json:"nombre"`
	FilasStock  int    `json:"filas_stock"`
	Movimientos int    `json:"movimientos"`
	Pendientes  int    `json:"pendientes"`
	Fabricacion int    `json:"fabricacion"`
}

// StatusResponse recuento de todas las colecciones del almacén.
type StatusResponse struct {
	FilasStock  int `json:"filas_stock"`
	Movimientos int `json:"movimientos"`
	Pendientes  int `json:"pendientes"`
	Fabricacion int `json:"fabricacion"`
	Modelos     int `json:"modelos"`
	Talleres    int `json:"talleres"`
	Clientes    int `json:"clientes"`
}
