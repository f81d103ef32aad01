package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-core/internal/application/dto"
	"github.com/jhoicas/pos-core/internal/application/ledger"
	"github.com/jhoicas/pos-core/internal/domain"
	"github.com/jhoicas/pos-core/internal/domain/entity"
	"github.com/jhoicas/pos-core/internal/domain/repository"
)

// guardNoExistingReturn aplica el invariante de a lo sumo una devolución por
// documento original, revisando AMBAS colecciones de devoluciones antes de
// cualquier escritura.
func (o *Orchestrator) guardNoExistingReturn(ctx context.Context, originalNumber string) error {
	if cr, err := o.txRepo.FindCustomerReturnByOriginal(ctx, originalNumber); err != nil {
		return err
	} else if cr != nil {
		return &domain.DuplicateReturnError{OriginalNumber: originalNumber, ExistingNumber: cr.Number}
	}
	if sr, err := o.txRepo.FindSupplierReturnByOriginal(ctx, originalNumber); err != nil {
		return err
	} else if sr != nil {
		return &domain.DuplicateReturnError{OriginalNumber: originalNumber, ExistingNumber: sr.Number}
	}
	return nil
}

func sumReturnLines(items []dto.ReturnLineRequest) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity)))
	}
	return total
}

// IssueCustomerReturn registra la devolución de un cliente: reingresa stock
// por cada línea devuelta, sin límite superior. Requiere que la factura
// original exista y no haya sido devuelta antes.
func (o *Orchestrator) IssueCustomerReturn(ctx context.Context, actorID string, in dto.CreateCustomerReturnRequest) (*dto.ReturnResponse, error) {
	if len(in.Items) == 0 || in.OriginalInvoice == "" {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.Quantity <= 0 || item.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}

	original, err := o.txRepo.GetSaleByNumber(ctx, in.OriginalInvoice)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := o.guardNoExistingReturn(ctx, original.Number); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(in.Items))
	for _, item := range in.Items {
		ids = append(ids, item.ProductID)
	}
	if _, err := o.snapshotProducts(ctx, ids); err != nil {
		return nil, err
	}

	number, err := o.counter.Next(ctx, entity.SeqCustomerReturn)
	if err != nil {
		return nil, err
	}

	ret := &entity.CustomerReturn{
		ID:              uuid.New().String(),
		Number:          number,
		OriginalInvoice: original.Number,
		CustomerName:    in.CustomerName,
		Items:           make([]entity.LineItem, len(in.Items)),
		RefundTotal:     sumReturnLines(in.Items),
		Status:          entity.StatusCompleted,
		CreatedAt:       time.Now(),
		CreatedBy:       actorID,
	}
	for i, item := range in.Items {
		ret.Items[i] = entity.LineItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}
	if err := o.txRepo.CreateCustomerReturn(ctx, ret); err != nil {
		return nil, err
	}

	deltas := make([]delta, 0, len(in.Items))
	for _, item := range in.Items {
		deltas = append(deltas, delta{item.ProductID, item.Quantity, entity.ReasonCustomerReturn, ledger.AllowAny})
	}
	if err := o.applyDeltas(ctx, repository.DocCustomerReturn, ret.ID, number, actorID, aggregateDeltas(deltas)); err != nil {
		return nil, err
	}

	return &dto.ReturnResponse{ReturnNumber: number, Total: ret.RefundTotal}, nil
}

// IssueSupplierReturn registra una devolución al proveedor: el stock sale por
// cada línea, recortado a cero en lugar de fallar (tolerancia deliberada a
// conteos desactualizados). Requiere que la compra original exista y no haya
// sido devuelta antes.
func (o *Orchestrator) IssueSupplierReturn(ctx context.Context, actorID string, in dto.CreateSupplierReturnRequest) (*dto.ReturnResponse, error) {
	if len(in.Items) == 0 || in.OriginalPurchase == "" {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.Quantity <= 0 || item.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}

	original, err := o.txRepo.GetPurchaseByNumber(ctx, in.OriginalPurchase)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := o.guardNoExistingReturn(ctx, original.Number); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(in.Items))
	for _, item := range in.Items {
		ids = append(ids, item.ProductID)
	}
	if _, err := o.snapshotProducts(ctx, ids); err != nil {
		return nil, err
	}

	number, err := o.counter.Next(ctx, entity.SeqSupplierReturn)
	if err != nil {
		return nil, err
	}

	ret := &entity.SupplierReturn{
		ID:               uuid.New().String(),
		Number:           number,
		OriginalPurchase: original.Number,
		SupplierName:     in.SupplierName,
		Items:            make([]entity.LineItem, len(in.Items)),
		CreditTotal:      sumReturnLines(in.Items),
		Status:           entity.StatusCompleted,
		CreatedAt:        time.Now(),
		CreatedBy:        actorID,
	}
	for i, item := range in.Items {
		ret.Items[i] = entity.LineItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}
	if err := o.txRepo.CreateSupplierReturn(ctx, ret); err != nil {
		return nil, err
	}

	deltas := make([]delta, 0, len(in.Items))
	for _, item := range in.Items {
		deltas = append(deltas, delta{item.ProductID, -item.Quantity, entity.ReasonSupplierReturn, ledger.ClampAtZero})
	}
	if err := o.applyDeltas(ctx, repository.DocSupplierReturn, ret.ID, number, actorID, aggregateDeltas(deltas)); err != nil {
		return nil, err
	}

	return &dto.ReturnResponse{ReturnNumber: number, Total: ret.CreditTotal}, nil
}
