package repository

import (
	"context"

	"github.com/jhoicas/pos-core/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia del rastro de
// movimientos (solo inserción; los movimientos nunca se editan).
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListByProduct(ctx context.Context, productID string, limit int) ([]*entity.StockMovement, error)
	ListByReference(ctx context.Context, reference string) ([]*entity.StockMovement, error)
}
