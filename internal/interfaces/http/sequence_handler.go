package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-core/internal/application/dto"
	"github.com/jhoicas/pos-core/internal/application/sequence"
)

// SequenceHandler operaciones administrativas sobre los consecutivos
// (solo admin).
type SequenceHandler struct {
	counter *sequence.Counter
}

// NewSequenceHandler construye el handler.
func NewSequenceHandler(counter *sequence.Counter) *SequenceHandler {
	return &SequenceHandler{counter: counter}
}

type sequenceStatus struct {
	Namespace string `json:"namespace"`
	Current   int64  `json:"current"`
	Floor     int64  `json:"floor"`
	Ceiling   int64  `json:"ceiling"`
	Suffix    string `json:"suffix,omitempty"`
}

type resetSequenceRequest struct {
	Value int64 `json:"value"`
}

// List godoc
// @Summary      Estado de todos los consecutivos
// @Tags         sequences
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  sequenceStatus
// @Router       /api/sequences [get]
func (h *SequenceHandler) List(c *fiber.Ctx) error {
	out := make([]sequenceStatus, 0, len(h.counter.Namespaces()))
	for name, ns := range h.counter.Namespaces() {
		current, err := h.counter.Peek(c.Context(), name)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		out = append(out, sequenceStatus{
			Namespace: name,
			Current:   current,
			Floor:     ns.Floor,
			Ceiling:   ns.Ceiling,
			Suffix:    ns.Suffix,
		})
	}
	return c.JSON(out)
}

// Peek godoc
// @Summary      Valor actual de un consecutivo (sin emitir)
// @Tags         sequences
// @Produce      json
// @Security     BearerAuth
// @Param        namespace  path  string  true  "invoice | supplierInvoice | customerReturn | supplierReturn"
// @Success      200  {object}  sequenceStatus
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sequences/{namespace} [get]
func (h *SequenceHandler) Peek(c *fiber.Ctx) error {
	name := c.Params("namespace")
	ns, ok := h.counter.Namespaces()[name]
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "namespace desconocido"})
	}
	current, err := h.counter.Peek(c.Context(), name)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(sequenceStatus{
		Namespace: name,
		Current:   current,
		Floor:     ns.Floor,
		Ceiling:   ns.Ceiling,
		Suffix:    ns.Suffix,
	})
}

// Reset godoc
// @Summary      Fijar el valor de un consecutivo
// @Tags         sequences
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        namespace  path  string                true  "namespace"
// @Param        body       body  resetSequenceRequest  true  "nuevo valor"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sequences/{namespace}/reset [post]
func (h *SequenceHandler) Reset(c *fiber.Ctx) error {
	name := c.Params("namespace")
	if _, ok := h.counter.Namespaces()[name]; !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "namespace desconocido"})
	}
	var in resetSequenceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Value < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "value debe ser >= 0"})
	}
	if err := h.counter.Reset(c.Context(), name, in.Value); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
