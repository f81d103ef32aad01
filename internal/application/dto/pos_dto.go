package dto

import "github.com/shopspring/decimal"

// LineRequest es una línea de venta o compra. FreeQuantity son unidades
// bonificadas: mueven stock pero no suman al total.
type LineRequest struct {
	ProductID    string          `json:"product_id"`
	Quantity     int64           `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	FreeQuantity int64           `json:"free_quantity"`
}

// CreateSaleRequest carrito de venta. El descuento de carrito se expresa por
// monto o por porcentaje; si ambos vienen, gana el monto (el porcentaje es el
// campo derivado).
type CreateSaleRequest struct {
	CustomerName    string          `json:"customer_name"`
	Payment         string          `json:"payment"`
	Items           []LineRequest   `json:"items"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

// SaleLineResponse línea de la factura emitida, con su parte del descuento.
type SaleLineResponse struct {
	ProductID      string          `json:"product_id"`
	Quantity       int64           `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Discount       decimal.Decimal `json:"discount"`
	FinalUnitPrice decimal.Decimal `json:"final_unit_price"`
	FreeQuantity   int64           `json:"free_quantity,omitempty"`
}

// SaleResponse resultado de una venta emitida.
type SaleResponse struct {
	InvoiceNumber string             `json:"invoice_number"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Discount      decimal.Decimal    `json:"discount"`
	Total         decimal.Decimal    `json:"total"`
	Lines         []SaleLineResponse `json:"lines"`
}

// CreatePurchaseRequest compra a proveedor.
type CreatePurchaseRequest struct {
	SupplierName   string          `json:"supplier_name"`
	Items          []LineRequest   `json:"items"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
}

// PurchaseResponse resultado de una compra emitida.
type PurchaseResponse struct {
	InvoiceNumber string          `json:"invoice_number"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
}

// ReturnLineRequest línea devuelta.
type ReturnLineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateCustomerReturnRequest devolución de cliente sobre una factura.
type CreateCustomerReturnRequest struct {
	OriginalInvoice string              `json:"original_invoice"`
	CustomerName    string              `json:"customer_name"`
	Items           []ReturnLineRequest `json:"items"`
}

// CreateSupplierReturnRequest devolución al proveedor sobre una compra.
type CreateSupplierReturnRequest struct {
	OriginalPurchase string              `json:"original_purchase"`
	SupplierName     string              `json:"supplier_name"`
	Items            []ReturnLineRequest `json:"items"`
}

// ReturnResponse resultado de una devolución emitida.
type ReturnResponse struct {
	ReturnNumber string          `json:"return_number"`
	Total        decimal.Decimal `json:"total"`
}

// DisposalLineRequest línea de baja de inventario.
type DisposalLineRequest struct {
	ProductID      string          `json:"product_id"`
	Quantity       int64           `json:"quantity"`
	Condition      string          `json:"condition"`
	RecoveredValue decimal.Decimal `json:"recovered_value"`
}

// CreateDisposalRequest baja de inventario.
type CreateDisposalRequest struct {
	Method string                `json:"method"`
	Notes  string                `json:"notes"`
	Items  []DisposalLineRequest `json:"items"`
}

// DisposalResponse resultado de una baja registrada.
type DisposalResponse struct {
	DisposalID string          `json:"disposal_id"`
	LossAmount decimal.Decimal `json:"loss_amount"`
}
