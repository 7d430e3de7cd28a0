// Package backup crea, lista y restaura fotos completas del almacén. Un
// backup es un único documento JSON con todas las colecciones y contadores;
// la restauración reemplaza el conjunto entero o no toca nada.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/globalia/stock-api/internal/application/dto"
	"github.com/globalia/stock-api/internal/domain"
	"github.com/globalia/stock-api/internal/domain/entity"
	"github.com/globalia/stock-api/internal/domain/repository"
	"github.com/globalia/stock-api/pkg/logger"
)

const prefijoBackup = "globalia_backup_"

// UseCase orquesta los backups sobre cualquier driver vía Snapshotter.
type UseCase struct {
	snap repository.Snapshotter
	dir  string
	log  *logger.Logger
}

// NewUseCase construye el caso de uso. dir es el directorio de backups.
func NewUseCase(snap repository.Snapshotter, dir string, log *logger.Logger) *UseCase {
	return &UseCase{snap: snap, dir: dir, log: log}
}

// Create toma una foto del almacén y la escribe como fichero JSON.
func (uc *UseCase) Create(ctx context.Context) (*dto.BackupInfoResponse, error) {
	snap, err := uc.snap.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(uc.dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de backups: %w", err)
	}
	nombre := prefijoBackup + snap.CreatedAt.Format("2006-01-02_15-04-05") + ".json"
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializar backup: %w", err)
	}
	ruta := filepath.Join(uc.dir, nombre)
	if err := os.WriteFile(ruta, data, 0o644); err != nil {
		return nil, fmt.Errorf("escribir backup: %w", err)
	}
	uc.log.Info().Str("backup", nombre).Int("bytes", len(data)).Msg("backup creado")
	return &dto.BackupInfoResponse{
		Nombre:    nombre,
		CreatedAt: snap.CreatedAt.Format(time.RFC3339),
		Bytes:     int64(len(data)),
	}, nil
}

// List devuelve los backups disponibles, el más reciente primero.
func (uc *UseCase) List(ctx context.Context) ([]dto.BackupInfoResponse, error) {
	entradas, err := os.ReadDir(uc.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []dto.BackupInfoResponse{}, nil
		}
		return nil, fmt.Errorf("leer directorio de backups: %w", err)
	}
	var out []dto.BackupInfoResponse
	for _, e := range entradas {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefijoBackup) || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, dto.BackupInfoResponse{
			Nombre:    e.Name(),
			CreatedAt: info.ModTime().Format(time.RFC3339),
			Bytes:     info.Size(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre > out[j].Nombre })
	return out, nil
}

// Restore reemplaza el estado completo del almacén por el del backup.
func (uc *UseCase) Restore(ctx context.Context, nombre string) (*dto.BackupRestoreResponse, error) {
	nombre = strings.TrimSpace(nombre)
	if nombre == "" || nombre != filepath.Base(nombre) || !strings.HasSuffix(nombre, ".json") {
		return nil, fmt.Errorf("%w: nombre de backup inválido", domain.ErrValidation)
	}
	data, err := os.ReadFile(filepath.Join(uc.dir, nombre))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: backup %s", domain.ErrNotFound, nombre)
		}
		return nil, fmt.Errorf("leer backup: %w", err)
	}
	var snap entity.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: backup corrupto: %v", domain.ErrValidation, err)
	}
	if err := uc.snap.Restore(ctx, &snap); err != nil {
		return nil, err
	}
	uc.log.Warn().Str("backup", nombre).Msg("almacén restaurado desde backup")
	return &dto.BackupRestoreResponse{
		Nombre:      nombre,
		FilasStock:  len(snap.Almacen),
		Movimientos: len(snap.Historial),
		Pendientes:  len(snap.Pendientes),
		Fabricacion: len(snap.Fabricacion),
	}, nil
}
