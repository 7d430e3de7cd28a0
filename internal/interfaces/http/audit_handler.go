package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/globalia/stock-api/internal/application/audit"
	"github.com/globalia/stock-api/internal/application/dto"
)

// AuditHandler maneja la reconciliación libro/tabla (protegido; apply y
// regularize requieren rol admin).
type AuditHandler struct {
	uc *audit.UseCase
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *audit.UseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// Preview godoc
// @Summary      Discrepancias entre el libro y la tabla (solo lectura)
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        modelo  query  string  false  "Prefijo de modelo que acota el universo"
// @Success      200  {array}  dto.AuditDiffDTO
// @Router       /api/audit/preview [get]
func (h *AuditHandler) Preview(c *fiber.Ctx) error {
	diffs, err := h.uc.Preview(c.Context(), c.Query("modelo"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(diffs), "cambios": diffs})
}

// Apply godoc
// @Summary      Aplicar el valor del libro a la tabla (selección)
// @Tags         audit
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AuditApplyRequest  true  "cambios del preview más la selección"
// @Success      200  {object}  dto.AuditApplyResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/audit/apply [post]
func (h *AuditHandler) Apply(c *fiber.Ctx) error {
	var in dto.AuditApplyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Apply(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Regularize godoc
// @Summary      Añadir ajustes al libro para que cuadre con la tabla
// @Tags         audit
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AuditRegularizeRequest  true  "cambios, selección, fecha y observación obligatorias"
// @Success      200  {object}  dto.AuditRegularizeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/audit/regularize [post]
func (h *AuditHandler) Regularize(c *fiber.Ctx) error {
	var in dto.AuditRegularizeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Regularize(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
