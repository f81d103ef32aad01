package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-core/internal/domain"
	"github.com/jhoicas/pos-core/internal/domain/entity"
	"github.com/jhoicas/pos-core/internal/domain/repository"
)

// Política de stock negativo del flujo que aplica el delta.
type NegativePolicy int

const (
	// RejectNegative falla con ErrInsufficientStock si el delta dejaría el
	// stock por debajo de cero (venta, ajustes de salida).
	RejectNegative NegativePolicy = iota
	// ClampAtZero recorta la salida a lo disponible: max(0, stock+delta).
	// Tolerancia deliberada a conteos desactualizados (devolución a proveedor).
	ClampAtZero
	// AllowAny no valida el límite inferior (entradas: nunca restan).
	AllowAny
)

// Reintentos de la escritura condicional de stock por producto.
const maxAttempts = 10

// ApplyInput describe un delta de stock a aplicar.
type ApplyInput struct {
	ProductID string
	Delta     int64 // positivo entra, negativo sale
	Reason    string
	Reference string // número del documento
	ActorID   string
	Policy    NegativePolicy
}

// Ledger aplica deltas de stock producto por producto y deja un movimiento
// inmutable por cada delta aplicado. La mutación usa la misma disciplina de
// escritura condicional que los consecutivos: releer y reintentar ante
// conflicto, de modo que ventas concurrentes del mismo producto no pierden
// actualizaciones.
type Ledger struct {
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
}

// New construye el ledger.
func New(productRepo repository.ProductRepository, movementRepo repository.MovementRepository) *Ledger {
	return &Ledger{productRepo: productRepo, movementRepo: movementRepo}
}

// Apply actualiza Product.stock += delta (según la política) y agrega el
// StockMovement que lo explica. Devuelve el delta efectivamente aplicado
// (puede ser menor en magnitud con ClampAtZero). Falla con ErrProductNotFound
// si el producto no existe y con ErrInsufficientStock bajo RejectNegative.
func (l *Ledger) Apply(ctx context.Context, in ApplyInput) (int64, error) {
	if in.Delta == 0 {
		return 0, nil
	}

	var applied int64
	committed := false
	for attempt := 0; attempt < maxAttempts && !committed; attempt++ {
		product, err := l.productRepo.GetByID(ctx, in.ProductID)
		if err != nil {
			return 0, err
		}

		applied = in.Delta
		next := product.Stock + in.Delta
		if next < 0 {
			switch in.Policy {
			case RejectNegative:
				return 0, &domain.InsufficientStockError{Shortages: []domain.StockShortage{{
					ProductID: in.ProductID,
					Requested: -in.Delta,
					Available: product.Stock,
				}}}
			case ClampAtZero:
				applied = -product.Stock
				next = 0
			}
		}
		if applied == 0 {
			// Nada que mover (salida recortada sobre stock ya en cero).
			return 0, nil
		}

		committed, err = l.productRepo.CompareAndSwapStock(ctx, in.ProductID, product.Stock, next)
		if err != nil {
			return 0, err
		}
	}
	if !committed {
		return 0, domain.ErrConflict
	}

	direction := entity.DirectionIn
	quantity := applied
	if applied < 0 {
		direction = entity.DirectionOut
		quantity = -applied
	}
	movement := &entity.StockMovement{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		Direction: direction,
		Quantity:  quantity,
		Reason:    in.Reason,
		Reference: in.Reference,
		CreatedAt: time.Now(),
		CreatedBy: in.ActorID,
	}
	if err := l.movementRepo.Create(ctx, movement); err != nil {
		return applied, err
	}
	return applied, nil
}
