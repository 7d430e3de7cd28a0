package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/globalia/stock-api/internal/application/dto"
	"github.com/globalia/stock-api/internal/application/forecast"
)

// ForecastHandler maneja la previsión (pendientes, fabricación, estimado).
type ForecastHandler struct {
	uc *forecast.UseCase
}

// NewForecastHandler construye el handler.
func NewForecastHandler(uc *forecast.UseCase) *ForecastHandler {
	return &ForecastHandler{uc: uc}
}

func parseIdx(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("idx"), 10, 64)
}

// AddPending godoc
// @Summary      Alta de línea de pedido pendiente
// @Tags         forecast
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Success      201  {object}  dto.PendingResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/pendings [post]
func (h *ForecastHandler) AddPending(c *fiber.Ctx) error {
	var in dto.AddPendingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	p, err := h.uc.AddPending(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// EditPending godoc
// @Summary      Edición parcial de una línea pendiente
// @Tags         forecast
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        idx  path  int  true  "Idx de la línea"
// @Success      200  {object}  dto.PendingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pendings/{idx} [put]
func (h *ForecastHandler) EditPending(c *fiber.Ctx) error {
	idx, err := parseIdx(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAM", Message: "idx inválido"})
	}
	var in dto.EditPendingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	p, err := h.uc.EditPending(c.Context(), idx, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(p)
}

// DeletePending godoc
// @Summary      Borrado de una línea pendiente
// @Tags         forecast
// @Security     Bearer
// @Param        idx  path  int  true  "Idx de la línea"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pendings/{idx} [delete]
func (h *ForecastHandler) DeletePending(c *fiber.Ctx) error {
	idx, err := parseIdx(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAM", Message: "idx inválido"})
	}
	if err := h.uc.DeletePending(c.Context(), idx); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListPendings godoc
// @Summary      Listar líneas pendientes
// @Tags         forecast
// @Security     Bearer
// @Produce      json
// @Param        modelo  query  string  false  "Filtrar por modelo"
// @Success      200  {array}  dto.PendingResponse
// @Router       /api/pendings [get]
func (h *ForecastHandler) ListPendings(c *fiber.Ctx) error {
	lineas, err := h.uc.ListPendings(c.Context(), c.Query("modelo"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(lineas), "pendientes": lineas})
}

// AddFabrication godoc
// @Summary      Alta de orden en fabricación
// @Tags         forecast
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Success      201  {object}  dto.FabricationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/fabrication [post]
func (h *ForecastHandler) AddFabrication(c *fiber.Ctx) error {
	var in dto.AddFabricationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	f, err := h.uc.AddFabrication(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(f)
}

// EditFabricationQty godoc
// @Summary      Cambiar la cantidad de una orden (0 la elimina)
// @Tags         forecast
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        idx  path  int  true  "Idx de la orden"
// @Success      200  {object}  dto.FabricationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fabrication/{idx}/cantidad [put]
func (h *ForecastHandler) EditFabricationQty(c *fiber.Ctx) error {
	idx, err := parseIdx(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAM", Message: "idx inválido"})
	}
	var in dto.EditFabricationQtyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	f, err := h.uc.EditFabricationQty(c.Context(), idx, in.Cantidad)
	if err != nil {
		return respondError(c, err)
	}
	if f == nil {
		// Cantidad 0: la orden se eliminó
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(f)
}

// DeleteFabrication godoc
// @Summary      Borrado de una orden en fabricación
// @Tags         forecast
// @Security     Bearer
// @Param        idx  path  int  true  "Idx de la orden"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fabrication/{idx} [delete]
func (h *ForecastHandler) DeleteFabrication(c *fiber.Ctx) error {
	idx, err := parseIdx(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAM", Message: "idx inválido"})
	}
	if err := h.uc.DeleteFabrication(c.Context(), idx); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListFabrication godoc
// @Summary      Listar órdenes en fabricación
// @Tags         forecast
// @Security     Bearer
// @Produce      json
// @Param        modelo  query  string  false  "Filtrar por modelo"
// @Success      200  {array}  dto.FabricationResponse
// @Router       /api/fabrication [get]
func (h *ForecastHandler) ListFabrication(c *fiber.Ctx) error {
	ordenes, err := h.uc.ListFabrication(c.Context(), c.Query("modelo"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(ordenes), "fabricacion": ordenes})
}

// CalcEstimated godoc
// @Summary      Stock estimado por clave (actual - pendiente + fabricación)
// @Tags         forecast
// @Security     Bearer
// @Produce      json
// @Param        modelo  query  string  false  "Filtrar por modelo"
// @Success      200  {array}  dto.EstimatedRowResponse
// @Router       /api/stock/estimated [get]
func (h *ForecastHandler) CalcEstimated(c *fiber.Ctx) error {
	filas, err := h.uc.CalcEstimated(c.Context(), c.Query("modelo"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(filas), "filas": filas})
}
