package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-core/internal/application/dto"
	"github.com/jhoicas/pos-core/internal/application/inventory"
	"github.com/jhoicas/pos-core/internal/domain"
)

// InventoryHandler consultas del rastro de movimientos (protegido).
type InventoryHandler struct {
	uc *inventory.MovementUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.MovementUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// ListByProduct godoc
// @Summary      Movimientos de un producto
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        id     path   string  true   "ID del producto"
// @Param        limit  query  int     false  "máximo de resultados (default 50)"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/inventory/products/{id}/movements [get]
func (h *InventoryHandler) ListByProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	items, err := h.uc.ListByProduct(c.Context(), id, limit)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(items)
}

// ListByReference godoc
// @Summary      Movimientos generados por un documento
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        reference  path  string  true  "número de documento"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/inventory/movements/{reference} [get]
func (h *InventoryHandler) ListByReference(c *fiber.Ctx) error {
	reference := c.Params("reference")
	items, err := h.uc.ListByReference(c.Context(), reference)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "referencia requerida"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(items)
}
