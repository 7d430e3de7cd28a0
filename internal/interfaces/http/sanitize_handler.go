package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/globalia/stock-api/internal/application/dto"
	"github.com/globalia/stock-api/internal/application/sanitize"
)

// SanitizeHandler maneja las reparaciones por lotes (solo rol admin).
type SanitizeHandler struct {
	uc *sanitize.UseCase
}

// NewSanitizeHandler construye el handler.
func NewSanitizeHandler(uc *sanitize.UseCase) *SanitizeHandler {
	return &SanitizeHandler{uc: uc}
}

// FixNegatives godoc
// @Summary      Poner a cero las celdas negativas
// @Tags         sanitize
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SanitizeFixesResponse
// @Router       /api/sanitize/negatives [post]
func (h *SanitizeHandler) FixNegatives(c *fiber.Ctx) error {
	out, err := h.uc.FixNegatives(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// FixBadValues godoc
// @Summary      Normalizar celdas con valores no enteros
// @Tags         sanitize
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SanitizeFixesResponse
// @Router       /api/sanitize/values [post]
func (h *SanitizeHandler) FixBadValues(c *fiber.Ctx) error {
	out, err := h.uc.FixBadValues(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PurgeBadTallas godoc
// @Summary      Purgar filas con clave de talla inservible
// @Tags         sanitize
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PurgeTallasRequest  false  "solo_cero limita a celdas con valor 0"
// @Success      200  {object}  dto.PurgeTallasResponse
// @Router       /api/sanitize/tallas [post]
func (h *SanitizeHandler) PurgeBadTallas(c *fiber.Ctx) error {
	var in dto.PurgeTallasRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	out, err := h.uc.PurgeBadTallas(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
