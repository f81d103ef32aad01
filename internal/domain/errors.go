package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrProductNotFound      = errors.New("producto no encontrado")
	ErrUserNotFound         = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists   = errors.New("el email ya está registrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrConflict             = errors.New("conflicto con el estado actual")
	ErrInsufficientStock    = errors.New("stock insuficiente")
	ErrDuplicateReturn      = errors.New("el documento original ya tiene una devolución")
	ErrSequenceUnavailable  = errors.New("no se pudo confirmar el consecutivo")
	ErrPartialReconciliation = errors.New("documento guardado con efectos de stock incompletos")
)

// StockShortage describe una línea que excede el stock disponible.
type StockShortage struct {
	ProductID string
	Requested int64
	Available int64
}

// InsufficientStockError agrupa TODAS las líneas sin stock de una venta.
// La venta se rechaza completa; no hay ventas parciales.
type InsufficientStockError struct {
	Shortages []StockShortage
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		parts = append(parts, fmt.Sprintf("%s (solicitado %d, disponible %d)", s.ProductID, s.Requested, s.Available))
	}
	return "stock insuficiente: " + strings.Join(parts, "; ")
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// DuplicateReturnError indica que el documento original ya fue devuelto.
// ExistingNumber es el número de la devolución que ya existe.
type DuplicateReturnError struct {
	OriginalNumber string
	ExistingNumber string
}

func (e *DuplicateReturnError) Error() string {
	return fmt.Sprintf("el documento %s ya fue devuelto en %s", e.OriginalNumber, e.ExistingNumber)
}

func (e *DuplicateReturnError) Unwrap() error { return ErrDuplicateReturn }

// PartialReconciliationError indica que el documento quedó persistido pero uno
// o más productos no recibieron su delta de stock. Nunca se reporta como éxito:
// el documento queda marcado needs_reconciliation y el caller recibe este error.
type PartialReconciliationError struct {
	DocumentNumber string
	Applied        []string // productos cuyo stock sí se actualizó
	Failed         []string // productos pendientes de conciliar
	Cause          error
}

func (e *PartialReconciliationError) Error() string {
	return fmt.Sprintf("documento %s guardado con stock incompleto (aplicados %d, pendientes %d): %v",
		e.DocumentNumber, len(e.Applied), len(e.Failed), e.Cause)
}

func (e *PartialReconciliationError) Unwrap() error { return ErrPartialReconciliation }
