package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/globalia/stock-api/internal/application/dto"
	"github.com/globalia/stock-api/internal/application/stock"
	"github.com/globalia/stock-api/internal/domain/entity"
)

// StockHandler maneja movimientos y listados de stock (protegido).
type StockHandler struct {
	uc *stock.UseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.UseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// RegisterEntry godoc
// @Summary      Registrar entrada de mercancía
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterEntryRequest  true  "modelo, talla, cantidad (>0), fecha opcional, taller/proveedor"
// @Success      201  {object}  dto.StockRowResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements/entries [post]
func (h *StockHandler) RegisterEntry(c *fiber.Ctx) error {
	var in dto.RegisterEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	fila, err := h.uc.RegisterEntry(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fila)
}

// RegisterExit godoc
// @Summary      Registrar salida de mercancía
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterExitRequest  true  "modelo, talla, cantidad (>0), pedido y albarán obligatorios"
// @Success      201  {object}  dto.StockRowResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements/exits [post]
func (h *StockHandler) RegisterExit(c *fiber.Ctx) error {
	var in dto.RegisterExitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	fila, err := h.uc.RegisterExit(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fila)
}

// ListStock godoc
// @Summary      Listar la tabla de stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        modelo  query  string  false  "Filtrar por modelo"
// @Param        talla   query  string  false  "Filtrar por talla"
// @Success      200  {array}  dto.StockRowResponse
// @Router       /api/stock [get]
func (h *StockHandler) ListStock(c *fiber.Ctx) error {
	filas, err := h.uc.ListStock(c.Context(), c.Query("modelo"), c.Query("talla"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(filas), "filas": filas})
}

// ListMovements godoc
// @Summary      Listar el libro de movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        modelo  query  string  false  "Filtrar por modelo"
// @Param        talla   query  string  false  "Filtrar por talla"
// @Param        tipo    query  string  false  "ENTRADA | SALIDA | AJUSTE"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	movs, err := h.uc.ListMovements(c.Context(), entity.MovementFilter{
		Modelo: c.Query("modelo"),
		Talla:  c.Query("talla"),
		Tipo:   c.Query("tipo"),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(movs), "movimientos": movs})
}

// ListModels godoc
// @Summary      Listar modelos con stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ModelSummaryResponse
// @Router       /api/stock/models [get]
func (h *StockHandler) ListModels(c *fiber.Ctx) error {
	modelos, err := h.uc.ListModels(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(modelos), "modelos": modelos})
}
