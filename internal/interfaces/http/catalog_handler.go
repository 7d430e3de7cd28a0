package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/globalia/stock-api/internal/application/catalog"
	"github.com/globalia/stock-api/internal/application/dto"
)

// CatalogHandler maneja el maestro: fichas de modelo, talleres y clientes.
type CatalogHandler struct {
	uc *catalog.UseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *catalog.UseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// UpdateModelInfo godoc
// @Summary      Crear o actualizar la ficha de un modelo
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        modelo  path  string  true  "Código de modelo"
// @Success      200  {object}  dto.ModelInfoResponse
// @Router       /api/catalog/{modelo} [put]
func (h *CatalogHandler) UpdateModelInfo(c *fiber.Ctx) error {
	var in dto.UpdateModelInfoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	info, err := h.uc.UpdateModelInfo(c.Context(), c.Params("modelo"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(info)
}

// ListModelInfos godoc
// @Summary      Listar las fichas del catálogo
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ModelInfoResponse
// @Router       /api/catalog [get]
func (h *CatalogHandler) ListModelInfos(c *fiber.Ctx) error {
	infos, err := h.uc.ListModelInfos(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(infos), "modelos": infos})
}

// ListTallas godoc
// @Summary      Tallas conocidas de un modelo (stock + previsión)
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        modelo  path  string  true  "Código de modelo"
// @Success      200  {array}  string
// @Router       /api/catalog/{modelo}/tallas [get]
func (h *CatalogHandler) ListTallas(c *fiber.Ctx) error {
	tallas, err := h.uc.ListTallas(c.Context(), c.Params("modelo"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(tallas), "tallas": tallas})
}

// AddWorkshop godoc
// @Summary      Registrar un taller
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Success      201  {object}  dto.WorkshopResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/talleres [post]
func (h *CatalogHandler) AddWorkshop(c *fiber.Ctx) error {
	var in dto.AddWorkshopRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	w, err := h.uc.AddWorkshop(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(w)
}

// EditWorkshop godoc
// @Summary      Actualizar el contacto de un taller
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        nombre  path  string  true  "Nombre del taller"
// @Success      200  {object}  dto.WorkshopResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/talleres/{nombre} [put]
func (h *CatalogHandler) EditWorkshop(c *fiber.Ctx) error {
	var in dto.EditWorkshopRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	w, err := h.uc.EditWorkshop(c.Context(), c.Params("nombre"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(w)
}

// DeleteWorkshop godoc
// @Summary      Eliminar un taller
// @Tags         catalog
// @Security     Bearer
// @Param        nombre  path  string  true  "Nombre del taller"
// @Success      204
// @Router       /api/talleres/{nombre} [delete]
func (h *CatalogHandler) DeleteWorkshop(c *fiber.Ctx) error {
	if err := h.uc.DeleteWorkshop(c.Context(), c.Params("nombre")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListWorkshops godoc
// @Summary      Listar talleres
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.WorkshopResponse
// @Router       /api/talleres [get]
func (h *CatalogHandler) ListWorkshops(c *fiber.Ctx) error {
	talleres, err := h.uc.ListWorkshops(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(talleres), "talleres": talleres})
}

// AddClient godoc
// @Summary      Registrar un cliente
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Success      201  {object}  dto.ClientResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/clientes [post]
func (h *CatalogHandler) AddClient(c *fiber.Ctx) error {
	var in dto.AddClientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cl, err := h.uc.AddClient(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cl)
}

// EditClient godoc
// @Summary      Actualizar el contacto de un cliente
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        nombre  path  string  true  "Nombre del cliente"
// @Success      200  {object}  dto.ClientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clientes/{nombre} [put]
func (h *CatalogHandler) EditClient(c *fiber.Ctx) error {
	var in dto.EditClientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cl, err := h.uc.EditClient(c.Context(), c.Params("nombre"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cl)
}

// DeleteClient godoc
// @Summary      Eliminar un cliente
// @Tags         catalog
// @Security     Bearer
// @Param        nombre  path  string  true  "Nombre del cliente"
// @Success      204
// @Router       /api/clientes/{nombre} [delete]
func (h *CatalogHandler) DeleteClient(c *fiber.Ctx) error {
	if err := h.uc.DeleteClient(c.Context(), c.Params("nombre")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListClients godoc
// @Summary      Listar clientes
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ClientResponse
// @Router       /api/clientes [get]
func (h *CatalogHandler) ListClients(c *fiber.Ctx) error {
	clientes, err := h.uc.ListClients(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(clientes), "clientes": clientes})
}
