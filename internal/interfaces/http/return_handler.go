package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-core/internal/application/checkout"
	"github.com/jhoicas/pos-core/internal/application/dto"
)

// ReturnHandler maneja devoluciones de cliente y a proveedor (protegido).
type ReturnHandler struct {
	orch *checkout.Orchestrator
}

// NewReturnHandler construye el handler.
func NewReturnHandler(orch *checkout.Orchestrator) *ReturnHandler {
	return &ReturnHandler{orch: orch}
}

// CreateCustomerReturn godoc
// @Summary      Registrar devolución de cliente
// @Tags         returns
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateCustomerReturnRequest  true  "devolución sobre una factura"
// @Success      201   {object}  dto.ReturnResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/returns/customer [post]
func (h *ReturnHandler) CreateCustomerReturn(c *fiber.Ctx) error {
	var in dto.CreateCustomerReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.orch.IssueCustomerReturn(c.Context(), GetUserID(c), in)
	if err != nil {
		return checkoutError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateSupplierReturn godoc
// @Summary      Registrar devolución a proveedor
// @Tags         returns
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateSupplierReturnRequest  true  "devolución sobre una compra"
// @Success      201   {object}  dto.ReturnResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/returns/supplier [post]
func (h *ReturnHandler) CreateSupplierReturn(c *fiber.Ctx) error {
	var in dto.CreateSupplierReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.orch.IssueSupplierReturn(c.Context(), GetUserID(c), in)
	if err != nil {
		return checkoutError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
