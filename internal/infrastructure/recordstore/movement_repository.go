package recordstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/jhoicas/pos-core/internal/domain/entity"
	"github.com/jhoicas/pos-core/internal/domain/repository"
)

// Colección del rastro de movimientos (solo inserción).
const CollectionMovements = "stock_movements"

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementa MovementRepository sobre el record store.
type MovementRepo struct {
	store Store
}

// NewMovementRepository construye el adaptador.
func NewMovementRepository(store Store) *MovementRepo {
	return &MovementRepo{store: store}
}

func (r *MovementRepo) Create(ctx context.Context, movement *entity.StockMovement) error {
	doc, err := json.Marshal(movement)
	if err != nil {
		return fmt.Errorf("marshal movimiento: %w", err)
	}
	return r.store.Create(ctx, CollectionMovements, movement.ID, doc)
}

func (r *MovementRepo) ListByProduct(ctx context.Context, productID string, limit int) ([]*entity.StockMovement, error) {
	return r.list(ctx, func(m *entity.StockMovement) bool { return m.ProductID == productID }, limit)
}

func (r *MovementRepo) ListByReference(ctx context.Context, reference string) ([]*entity.StockMovement, error) {
	return r.list(ctx, func(m *entity.StockMovement) bool { return m.Reference == reference }, 0)
}

func (r *MovementRepo) list(ctx context.Context, match func(*entity.StockMovement) bool, limit int) ([]*entity.StockMovement, error) {
	docs, err := r.store.GetAll(ctx, CollectionMovements)
	if err != nil {
		return nil, err
	}
	var out []*entity.StockMovement
	for _, d := range docs {
		var m entity.StockMovement
		if err := json.Unmarshal(d.Data, &m); err != nil {
			return nil, fmt.Errorf("unmarshal movimiento %s: %w", d.ID, err)
		}
		if match(&m) {
			out = append(out, &m)
		}
	}
	// Más recientes primero.
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
