package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-core/internal/application/dto"
	"github.com/jhoicas/pos-core/internal/domain"
)

// checkoutError traduce los errores de los flujos de caja a HTTP. Los cinco
// flujos comparten taxonomía, así que el mapeo vive en un solo lugar.
func checkoutError(c *fiber.Ctx, err error) error {
	var insufficient *domain.InsufficientStockError
	if errors.As(err, &insufficient) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "INSUFFICIENT_STOCK",
			Message: "stock insuficiente; la operación se rechazó completa",
			Detail:  insufficient.Shortages,
		})
	}
	var duplicate *domain.DuplicateReturnError
	if errors.As(err, &duplicate) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "DUPLICATE_RETURN",
			Message: "el documento original ya tiene una devolución",
			Detail: fiber.Map{
				"original_number": duplicate.OriginalNumber,
				"existing_number": duplicate.ExistingNumber,
			},
		})
	}
	var partial *domain.PartialReconciliationError
	if errors.As(err, &partial) {
		// El documento SÍ quedó guardado: el cliente no debe reintentar la
		// operación, debe conciliarse el stock pendiente.
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code:    "PARTIAL_RECONCILIATION",
			Message: "documento guardado con efectos de stock incompletos",
			Detail: fiber.Map{
				"document_number": partial.DocumentNumber,
				"applied":         partial.Applied,
				"failed":          partial.Failed,
			},
		})
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrProductNotFound), errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrSequenceUnavailable):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SEQUENCE_UNAVAILABLE", Message: "no se pudo emitir el consecutivo, reintente"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
