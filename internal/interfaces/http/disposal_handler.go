package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-core/internal/application/checkout"
	"github.com/jhoicas/pos-core/internal/application/dto"
)

// DisposalHandler maneja bajas de inventario (protegido).
type DisposalHandler struct {
	orch *checkout.Orchestrator
}

// NewDisposalHandler construye el handler.
func NewDisposalHandler(orch *checkout.Orchestrator) *DisposalHandler {
	return &DisposalHandler{orch: orch}
}

// Create godoc
// @Summary      Registrar baja de inventario
// @Tags         disposals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateDisposalRequest  true  "baja: método y líneas con condición"
// @Success      201   {object}  dto.DisposalResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/disposals [post]
func (h *DisposalHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDisposalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.orch.IssueDisposal(c.Context(), GetUserID(c), in)
	if err != nil {
		return checkoutError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
