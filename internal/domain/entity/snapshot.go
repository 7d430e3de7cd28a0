package entity

import "time"

// Snapshot es la foto completa del almacén usada por los backups: todas las
// colecciones y los contadores monótonos, juntos. La restauración reemplaza
// el conjunto entero o no toca nada.
type Snapshot struct {
	CreatedAt          time.Time          `json:"created_at"`
	Almacen            []StockRow         `json:"almacen"`
	Historial          []Movement         `json:"historial"`
	NextSeq            int64              `json:"next_seq"`
	Pendientes         []PendingOrder     `json:"pendientes"`
	NextIdxPendientes  int64              `json:"next_idx_pendientes"`
	Fabricacion        []FabricationOrder `json:"fabricacion"`
	NextIdxFabricacion int64              `json:"next_idx_fabricacion"`
	Modelos            []ModelInfo        `json:"modelos"`
	Talleres           []Workshop         `json:"talleres"`
	Clientes           []Client           `json:"clientes"`
}
