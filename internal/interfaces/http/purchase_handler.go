package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-core/internal/application/checkout"
	"github.com/jhoicas/pos-core/internal/application/dto"
	"github.com/jhoicas/pos-core/internal/domain"
)

// PurchaseHandler maneja compras a proveedor (protegido).
type PurchaseHandler struct {
	orch *checkout.Orchestrator
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(orch *checkout.Orchestrator) *PurchaseHandler {
	return &PurchaseHandler{orch: orch}
}

// Create godoc
// @Summary      Registrar compra a proveedor
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreatePurchaseRequest  true  "compra"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.orch.IssuePurchase(c.Context(), GetUserID(c), in)
	if err != nil {
		return checkoutError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByNumber godoc
// @Summary      Consultar compra por número
// @Tags         purchases
// @Produce      json
// @Security     BearerAuth
// @Param        number  path  string  true  "número de compra"
// @Success      200  {object}  entity.Purchase
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{number} [get]
func (h *PurchaseHandler) GetByNumber(c *fiber.Ctx) error {
	number := c.Params("number")
	purchase, err := h.orch.GetPurchase(c.Context(), number)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "compra no encontrada"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "número requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(purchase)
}
