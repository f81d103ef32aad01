package recordstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/jhoicas/pos-core/internal/domain"
	"github.com/jhoicas/pos-core/internal/domain/entity"
	"github.com/jhoicas/pos-core/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementa TransactionRepository sobre el record store.
// Cada tipo de documento vive en su propia colección; la guardia de
// devolución duplicada recorre la colección de devoluciones correspondiente.
type TransactionRepo struct {
	store Store
}

// NewTransactionRepository construye el adaptador.
func NewTransactionRepository(store Store) *TransactionRepo {
	return &TransactionRepo{store: store}
}

func (r *TransactionRepo) CreateSale(ctx context.Context, sale *entity.Sale) error {
	return r.create(ctx, repository.DocSale, sale.ID, sale)
}

func (r *TransactionRepo) CreatePurchase(ctx context.Context, purchase *entity.Purchase) error {
	return r.create(ctx, repository.DocPurchase, purchase.ID, purchase)
}

func (r *TransactionRepo) CreateCustomerReturn(ctx context.Context, ret *entity.CustomerReturn) error {
	return r.create(ctx, repository.DocCustomerReturn, ret.ID, ret)
}

func (r *TransactionRepo) CreateSupplierReturn(ctx context.Context, ret *entity.SupplierReturn) error {
	return r.create(ctx, repository.DocSupplierReturn, ret.ID, ret)
}

func (r *TransactionRepo) CreateDisposal(ctx context.Context, disposal *entity.Disposal) error {
	return r.create(ctx, repository.DocDisposal, disposal.ID, disposal)
}

func (r *TransactionRepo) create(ctx context.Context, collection, id string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", collection, err)
	}
	return r.store.Create(ctx, collection, id, raw)
}

func (r *TransactionRepo) GetSaleByNumber(ctx context.Context, number string) (*entity.Sale, error) {
	docs, err := r.store.GetAll(ctx, repository.DocSale)
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		var s entity.Sale
		if err := json.Unmarshal(d.Data, &s); err != nil {
			return nil, fmt.Errorf("unmarshal venta %s: %w", d.ID, err)
		}
		if s.Number == number {
			return &s, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *TransactionRepo) GetPurchaseByNumber(ctx context.Context, number string) (*entity.Purchase, error) {
	docs, err := r.store.GetAll(ctx, repository.DocPurchase)
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		var p entity.Purchase
		if err := json.Unmarshal(d.Data, &p); err != nil {
			return nil, fmt.Errorf("unmarshal compra %s: %w", d.ID, err)
		}
		if p.Number == number {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *TransactionRepo) ListSales(ctx context.Context, limit int) ([]*entity.Sale, error) {
	docs, err := r.store.GetAll(ctx, repository.DocSale)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Sale, 0, len(docs))
	for _, d := range docs {
		var s entity.Sale
		if err := json.Unmarshal(d.Data, &s); err != nil {
			return nil, fmt.Errorf("unmarshal venta %s: %w", d.ID, err)
		}
		out = append(out, &s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *TransactionRepo) FindCustomerReturnByOriginal(ctx context.Context, invoiceNumber string) (*entity.CustomerReturn, error) {
	docs, err := r.store.GetAll(ctx, repository.DocCustomerReturn)
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		var ret entity.CustomerReturn
		if err := json.Unmarshal(d.Data, &ret); err != nil {
			return nil, fmt.Errorf("unmarshal devolución %s: %w", d.ID, err)
		}
		if ret.OriginalInvoice == invoiceNumber {
			return &ret, nil
		}
	}
	return nil, nil
}

func (r *TransactionRepo) FindSupplierReturnByOriginal(ctx context.Context, purchaseNumber string) (*entity.SupplierReturn, error) {
	docs, err := r.store.GetAll(ctx, repository.DocSupplierReturn)
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		var ret entity.SupplierReturn
		if err := json.Unmarshal(d.Data, &ret); err != nil {
			return nil, fmt.Errorf("unmarshal devolución %s: %w", d.ID, err)
		}
		if ret.OriginalPurchase == purchaseNumber {
			return &ret, nil
		}
	}
	return nil, nil
}

// MarkNeedsReconciliation cambia solo el campo status del documento mediante
// la escritura condicional, sin reescribir el resto.
func (r *TransactionRepo) MarkNeedsReconciliation(ctx context.Context, docType, id string) error {
	completed, _ := json.Marshal(entity.StatusCompleted)
	flagged, _ := json.Marshal(entity.StatusNeedsReconciliation)
	// Un CAS perdido significa que ya estaba marcado o el estado cambió por
	// otra vía; no es error.
	_, err := r.store.ConditionalUpdate(ctx, docType, id, "status", completed, flagged)
	return err
}
