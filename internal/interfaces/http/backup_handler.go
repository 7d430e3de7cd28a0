package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/globalia/stock-api/internal/application/backup"
)

// BackupHandler maneja los backups (restore requiere rol admin).
type BackupHandler struct {
	uc *backup.UseCase
}

// NewBackupHandler construye el handler.
func NewBackupHandler(uc *backup.UseCase) *BackupHandler {
	return &BackupHandler{uc: uc}
}

// Create godoc
// @Summary      Crear un backup completo del almacén
// @Tags         backup
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.BackupInfoResponse
// @Router       /api/backups [post]
func (h *BackupHandler) Create(c *fiber.Ctx) error {
	info, err := h.uc.Create(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(info)
}

// List godoc
// @Summary      Listar backups disponibles
// @Tags         backup
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.BackupInfoResponse
// @Router       /api/backups [get]
func (h *BackupHandler) List(c *fiber.Ctx) error {
	backups, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(backups), "backups": backups})
}

// Restore godoc
// @Summary      Restaurar el almacén desde un backup (todo o nada)
// @Tags         backup
// @Security     Bearer
// @Produce      json
// @Param        nombre  path  string  true  "Nombre del fichero de backup"
// @Success      200  {object}  dto.BackupRestoreResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/backups/{nombre}/restore [post]
func (h *BackupHandler) Restore(c *fiber.Ctx) error {
	out, err := h.uc.Restore(c.Context(), c.Params("nombre"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
