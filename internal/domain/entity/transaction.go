package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de documento. Un documento queda en needs_reconciliation cuando fue
// persistido pero alguno de sus deltas de stock no se confirmó.
const (
	StatusCompleted           = "completed"
	StatusNeedsReconciliation = "needs_reconciliation"
)

// Métodos de pago de venta.
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
)

// Condición del producto al darlo de baja.
const (
	ConditionDamaged   = "damaged"
	ConditionExpired   = "expired"
	ConditionDefective = "defective"
)

// Método de baja. Solo return-supplier reingresa stock (las unidades vuelven
// al circuito del proveedor y cuentan como disponibles antes del despacho).
const (
	DisposalDestroy        = "destroy"
	DisposalReturnSupplier = "return-supplier"
	DisposalDonate         = "donate"
)

// LineItem es una línea de cualquier documento: cantidad a precio unitario,
// descuento asignado a la línea y, en venta/compra, unidades bonificadas que
// mueven stock sin valor ("trade discount").
type LineItem struct {
	ProductID    string          `json:"product_id"`
	Quantity     int64           `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Discount     decimal.Decimal `json:"discount"`
	FreeQuantity int64           `json:"free_quantity,omitempty"`
}

// Subtotal de la línea sin descuento (las unidades bonificadas no suman).
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(li.Quantity))
}

// Sale es una factura de venta.
type Sale struct {
	ID           string          `json:"id"`
	Number       string          `json:"number"` // consecutivo "invoice", sin sufijo
	CustomerName string          `json:"customer_name"`
	Payment      string          `json:"payment"`
	Items        []LineItem      `json:"items"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Discount     decimal.Decimal `json:"discount"` // descuento a nivel carrito, ya repartido en Items
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	CreatedBy    string          `json:"created_by"`
}

// Purchase es una factura de compra a proveedor.
type Purchase struct {
	ID           string          `json:"id"`
	Number       string          `json:"number"` // consecutivo "supplierInvoice", sufijo -S
	SupplierName string          `json:"supplier_name"`
	Items        []LineItem      `json:"items"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Discount     decimal.Decimal `json:"discount"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	CreatedBy    string          `json:"created_by"`
}

// CustomerReturn es la devolución de un cliente sobre una factura de venta.
// OriginalInvoice referencia la factura devuelta; a lo sumo existe una
// devolución por factura original.
type CustomerReturn struct {
	ID              string          `json:"id"`
	Number          string          `json:"number"` // consecutivo "customerReturn", sufijo -R
	OriginalInvoice string          `json:"original_invoice"`
	CustomerName    string          `json:"customer_name"`
	Items           []LineItem      `json:"items"`
	RefundTotal     decimal.Decimal `json:"refund_total"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	CreatedBy       string          `json:"created_by"`
}

// SupplierReturn es una devolución al proveedor sobre una compra.
type SupplierReturn struct {
	ID               string          `json:"id"`
	Number           string          `json:"number"` // consecutivo "supplierReturn", sufijo -SR
	OriginalPurchase string          `json:"original_purchase"`
	SupplierName     string          `json:"supplier_name"`
	Items            []LineItem      `json:"items"`
	CreditTotal      decimal.Decimal `json:"credit_total"`
	Status           string          `json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
	CreatedBy        string          `json:"created_by"`
}

// DisposalItem es una línea de baja de inventario.
type DisposalItem struct {
	ProductID      string          `json:"product_id"`
	Quantity       int64           `json:"quantity"`
	Condition      string          `json:"condition"` // damaged | expired | defective
	OriginalValue  decimal.Decimal `json:"original_value"`
	RecoveredValue decimal.Decimal `json:"recovered_value"`
}

// Disposal es una baja de inventario. No lleva consecutivo humano; el ID es
// el identificador del documento.
type Disposal struct {
	ID         string          `json:"id"`
	Method     string          `json:"method"` // destroy | return-supplier | donate
	Items      []DisposalItem  `json:"items"`
	LossAmount decimal.Decimal `json:"loss_amount"` // valor original - valor recuperado
	Notes      string          `json:"notes,omitempty"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	CreatedBy  string          `json:"created_by"`
}
