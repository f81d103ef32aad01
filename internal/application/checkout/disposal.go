package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-core/internal/application/dto"
	"github.com/jhoicas/pos-core/internal/application/ledger"
	"github.com/jhoicas/pos-core/internal/domain"
	"github.com/jhoicas/pos-core/internal/domain/entity"
	"github.com/jhoicas/pos-core/internal/domain/pricing"
	"github.com/jhoicas/pos-core/internal/domain/repository"
)

func validDisposalMethod(method string) bool {
	switch method {
	case entity.DisposalDestroy, entity.DisposalReturnSupplier, entity.DisposalDonate:
		return true
	}
	return false
}

func validCondition(condition string) bool {
	switch condition {
	case entity.ConditionDamaged, entity.ConditionExpired, entity.ConditionDefective:
		return true
	}
	return false
}

// IssueDisposal registra una baja de inventario. Las bajas no mueven stock
// salvo con método return-supplier: esas unidades vuelven al circuito del
// proveedor y reingresan como disponibles antes del despacho de salida.
// La pérdida contable es valor original menos valor recuperado.
func (o *Orchestrator) IssueDisposal(ctx context.Context, actorID string, in dto.CreateDisposalRequest) (*dto.DisposalResponse, error) {
	if len(in.Items) == 0 || !validDisposalMethod(in.Method) {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.Quantity <= 0 || !validCondition(item.Condition) || item.RecoveredValue.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}

	ids := make([]string, 0, len(in.Items))
	for _, item := range in.Items {
		ids = append(ids, item.ProductID)
	}
	products, err := o.snapshotProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	loss := decimal.Zero
	items := make([]entity.DisposalItem, len(in.Items))
	for i, item := range in.Items {
		original := products[item.ProductID].PurchaseCost.Mul(decimal.NewFromInt(item.Quantity))
		items[i] = entity.DisposalItem{
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			Condition:      item.Condition,
			OriginalValue:  original,
			RecoveredValue: item.RecoveredValue,
		}
		loss = loss.Add(pricing.LossAmount(original, item.RecoveredValue))
	}

	disposal := &entity.Disposal{
		ID:         uuid.New().String(),
		Method:     in.Method,
		Items:      items,
		LossAmount: loss,
		Notes:      in.Notes,
		Status:     entity.StatusCompleted,
		CreatedAt:  time.Now(),
		CreatedBy:  actorID,
	}
	if err := o.txRepo.CreateDisposal(ctx, disposal); err != nil {
		return nil, err
	}

	if in.Method == entity.DisposalReturnSupplier {
		deltas := make([]delta, 0, len(in.Items))
		for _, item := range in.Items {
			deltas = append(deltas, delta{item.ProductID, item.Quantity, entity.ReasonDisposalReturn, ledger.AllowAny})
		}
		if err := o.applyDeltas(ctx, repository.DocDisposal, disposal.ID, disposal.ID, actorID, aggregateDeltas(deltas)); err != nil {
			return nil, err
		}
	}

	return &dto.DisposalResponse{DisposalID: disposal.ID, LossAmount: loss}, nil
}
