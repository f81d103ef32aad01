package repository

import (
	"context"

	"github.com/jhoicas/pos-core/internal/domain/entity"
)

// Colecciones de documentos transaccionales (también son el docType de
// MarkNeedsReconciliation).
const (
	DocSale           = "sales"
	DocPurchase       = "purchases"
	DocCustomerReturn = "customer_returns"
	DocSupplierReturn = "supplier_returns"
	DocDisposal       = "disposals"
)

// TransactionRepository define el puerto de persistencia de los cinco tipos
// de documento. Los documentos se escriben una vez; la única mutación
// posterior permitida es el cambio de estado (conciliación).
type TransactionRepository interface {
	CreateSale(ctx context.Context, sale *entity.Sale) error
	CreatePurchase(ctx context.Context, purchase *entity.Purchase) error
	CreateCustomerReturn(ctx context.Context, ret *entity.CustomerReturn) error
	CreateSupplierReturn(ctx context.Context, ret *entity.SupplierReturn) error
	CreateDisposal(ctx context.Context, disposal *entity.Disposal) error

	GetSaleByNumber(ctx context.Context, number string) (*entity.Sale, error)
	GetPurchaseByNumber(ctx context.Context, number string) (*entity.Purchase, error)
	ListSales(ctx context.Context, limit int) ([]*entity.Sale, error)

	// FindCustomerReturnByOriginal devuelve la devolución que referencia la
	// factura original, o nil si no existe (guardia de devolución duplicada).
	FindCustomerReturnByOriginal(ctx context.Context, invoiceNumber string) (*entity.CustomerReturn, error)
	FindSupplierReturnByOriginal(ctx context.Context, purchaseNumber string) (*entity.SupplierReturn, error)

	// MarkNeedsReconciliation cambia el estado del documento ya persistido
	// cuando sus efectos de stock quedaron incompletos.
	MarkNeedsReconciliation(ctx context.Context, docType, id string) error
}
