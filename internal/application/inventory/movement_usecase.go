package inventory

import (
	"context"

	"github.com/jhoicas/pos-core/internal/application/dto"
	"github.com/jhoicas/pos-core/internal/domain"
	"github.com/jhoicas/pos-core/internal/domain/entity"
	"github.com/jhoicas/pos-core/internal/domain/repository"
)

// MovementUseCase consultas de lectura sobre el rastro de movimientos.
type MovementUseCase struct {
	repo repository.MovementRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(repo repository.MovementRepository) *MovementUseCase {
	return &MovementUseCase{repo: repo}
}

// ListByProduct devuelve los movimientos de un producto, más recientes primero.
func (uc *MovementUseCase) ListByProduct(ctx context.Context, productID string, limit int) ([]dto.MovementResponse, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	movements, err := uc.repo.ListByProduct(ctx, productID, limit)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(movements), nil
}

// ListByReference devuelve los movimientos generados por un documento.
func (uc *MovementUseCase) ListByReference(ctx context.Context, reference string) ([]dto.MovementResponse, error) {
	if reference == "" {
		return nil, domain.ErrInvalidInput
	}
	movements, err := uc.repo.ListByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(movements), nil
}

func toMovementResponses(movements []*entity.StockMovement) []dto.MovementResponse {
	items := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, dto.MovementResponse{
			ID:        m.ID,
			ProductID: m.ProductID,
			Direction: m.Direction,
			Quantity:  m.Quantity,
			Reason:    m.Reason,
			Reference: m.Reference,
			CreatedAt: m.CreatedAt,
			CreatedBy: m.CreatedBy,
		})
	}
	return items
}
