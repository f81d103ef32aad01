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

// IssuePurchase registra una compra a proveedor: el stock entra por
// cantidad comprada más bonificadas, sin límite superior. Las bonificadas
// generan su propio movimiento a valor cero.
func (o *Orchestrator) IssuePurchase(ctx context.Context, actorID string, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if len(in.Items) == 0 || in.SupplierName == "" {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.Quantity <= 0 || item.FreeQuantity < 0 || item.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}

	ids := make([]string, 0, len(in.Items))
	for _, item := range in.Items {
		ids = append(ids, item.ProductID)
	}
	if _, err := o.snapshotProducts(ctx, ids); err != nil {
		return nil, err
	}

	subtotals := make([]decimal.Decimal, len(in.Items))
	cartSubtotal := decimal.Zero
	for i, item := range in.Items {
		subtotals[i] = item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity))
		cartSubtotal = cartSubtotal.Add(subtotals[i])
	}
	discount := in.DiscountAmount
	if discount.IsNegative() || discount.GreaterThan(cartSubtotal) {
		return nil, domain.ErrInvalidInput
	}
	lineDiscounts := pricing.Allocate(subtotals, discount)

	number, err := o.counter.Next(ctx, entity.SeqSupplierInvoice)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	purchase := &entity.Purchase{
		ID:           uuid.New().String(),
		Number:       number,
		SupplierName: in.SupplierName,
		Items:        make([]entity.LineItem, len(in.Items)),
		Subtotal:     cartSubtotal,
		Discount:     discount,
		Total:        cartSubtotal.Sub(discount),
		Status:       entity.StatusCompleted,
		CreatedAt:    now,
		CreatedBy:    actorID,
	}
	for i, item := range in.Items {
		purchase.Items[i] = entity.LineItem{
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			Discount:     lineDiscounts[i],
			FreeQuantity: item.FreeQuantity,
		}
	}
	if err := o.txRepo.CreatePurchase(ctx, purchase); err != nil {
		return nil, err
	}

	deltas := make([]delta, 0, len(in.Items)*2)
	for _, item := range in.Items {
		deltas = append(deltas, delta{item.ProductID, item.Quantity, entity.ReasonPurchase, ledger.AllowAny})
		if item.FreeQuantity > 0 {
			deltas = append(deltas, delta{item.ProductID, item.FreeQuantity, entity.ReasonTradeDiscount, ledger.AllowAny})
		}
	}
	if err := o.applyDeltas(ctx, repository.DocPurchase, purchase.ID, number, actorID, aggregateDeltas(deltas)); err != nil {
		return nil, err
	}

	return &dto.PurchaseResponse{
		InvoiceNumber: number,
		Subtotal:      purchase.Subtotal,
		Discount:      purchase.Discount,
		Total:         purchase.Total,
	}, nil
}
