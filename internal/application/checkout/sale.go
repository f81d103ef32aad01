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

// IssueSaleInvoice emite una factura de venta: valida el carrito contra el
// stock más fresco, reparte el descuento de carrito entre las líneas, emite
// el consecutivo de factura, persiste el documento y descuenta el stock.
// Si CUALQUIER línea excede el stock, la venta completa se rechaza reportando
// todas las líneas en falta; no hay ventas parciales.
func (o *Orchestrator) IssueSaleInvoice(ctx context.Context, actorID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	payment := in.Payment
	if payment == "" {
		payment = entity.PaymentCash
	}
	if !validPayment(payment) {
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
	products, err := o.snapshotProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	// Precio por defecto y banda de precio de venta del catálogo.
	for i := range in.Items {
		product := products[in.Items[i].ProductID]
		if in.Items[i].UnitPrice.IsZero() {
			in.Items[i].UnitPrice = product.CurrentPrice
		}
		price := in.Items[i].UnitPrice
		if product.MinSalePrice.IsPositive() && price.LessThan(product.MinSalePrice) {
			return nil, domain.ErrInvalidInput
		}
		if product.MaxSalePrice.IsPositive() && price.GreaterThan(product.MaxSalePrice) {
			return nil, domain.ErrInvalidInput
		}
	}

	// Revalidación contra la lectura más fresca: la salida total por producto
	// (vendidas + bonificadas) no puede exceder el stock. Se reportan TODAS
	// las líneas en falta en un solo error.
	outgoing := make(map[string]int64)
	for _, item := range in.Items {
		outgoing[item.ProductID] += item.Quantity + item.FreeQuantity
	}
	var shortages []domain.StockShortage
	for _, id := range ids {
		needed, ok := outgoing[id]
		if !ok {
			continue
		}
		delete(outgoing, id)
		if product := products[id]; needed > product.Stock {
			shortages = append(shortages, domain.StockShortage{
				ProductID: id,
				Requested: needed,
				Available: product.Stock,
			})
		}
	}
	if len(shortages) > 0 {
		return nil, &domain.InsufficientStockError{Shortages: shortages}
	}

	// Descuento de carrito: por monto o derivado del porcentaje, repartido
	// proporcionalmente con el remanente exacto en la última línea.
	subtotals := make([]decimal.Decimal, len(in.Items))
	cartSubtotal := decimal.Zero
	for i, item := range in.Items {
		subtotals[i] = item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity))
		cartSubtotal = cartSubtotal.Add(subtotals[i])
	}
	discount := in.DiscountAmount
	if discount.IsZero() && in.DiscountPercent.IsPositive() {
		discount = pricing.ByPercentage(cartSubtotal, in.DiscountPercent)
	}
	if discount.IsNegative() || discount.GreaterThan(cartSubtotal) {
		return nil, domain.ErrInvalidInput
	}
	lineDiscounts := pricing.Allocate(subtotals, discount)

	number, err := o.counter.Next(ctx, entity.SeqInvoice)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:           uuid.New().String(),
		Number:       number,
		CustomerName: in.CustomerName,
		Payment:      payment,
		Items:        make([]entity.LineItem, len(in.Items)),
		Subtotal:     cartSubtotal,
		Discount:     discount,
		Total:        cartSubtotal.Sub(discount),
		Status:       entity.StatusCompleted,
		CreatedAt:    now,
		CreatedBy:    actorID,
	}
	for i, item := range in.Items {
		sale.Items[i] = entity.LineItem{
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			Discount:     lineDiscounts[i],
			FreeQuantity: item.FreeQuantity,
		}
	}
	if err := o.txRepo.CreateSale(ctx, sale); err != nil {
		return nil, err
	}

	deltas := make([]delta, 0, len(in.Items)*2)
	for _, item := range in.Items {
		deltas = append(deltas, delta{item.ProductID, -item.Quantity, entity.ReasonSale, ledger.RejectNegative})
		if item.FreeQuantity > 0 {
			deltas = append(deltas, delta{item.ProductID, -item.FreeQuantity, entity.ReasonTradeDiscount, ledger.RejectNegative})
		}
	}
	if err := o.applyDeltas(ctx, repository.DocSale, sale.ID, number, actorID, aggregateDeltas(deltas)); err != nil {
		return nil, err
	}

	resp := &dto.SaleResponse{
		InvoiceNumber: number,
		Subtotal:      sale.Subtotal,
		Discount:      sale.Discount,
		Total:         sale.Total,
		Lines:         make([]dto.SaleLineResponse, len(sale.Items)),
	}
	for i, li := range sale.Items {
		resp.Lines[i] = dto.SaleLineResponse{
			ProductID:      li.ProductID,
			Quantity:       li.Quantity,
			UnitPrice:      li.UnitPrice,
			Discount:       li.Discount,
			FinalUnitPrice: pricing.FinalUnitPrice(li.UnitPrice, li.Discount, li.Quantity),
			FreeQuantity:   li.FreeQuantity,
		}
	}
	return resp, nil
}
