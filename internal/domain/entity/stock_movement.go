package entity

import "time"

// Direcciones de movimiento.
const (
	DirectionIn  = "in"
	DirectionOut = "out"
)

// Razones de movimiento (conjunto cerrado).
const (
	ReasonSale           = "sale"
	ReasonPurchase       = "purchase"
	ReasonTradeDiscount  = "trade_discount" // unidades bonificadas, mueven stock a precio cero
	ReasonCustomerReturn = "customer_return"
	ReasonSupplierReturn = "supplier_return"
	ReasonDisposalReturn = "disposal_return" // baja con método return-supplier
	ReasonAdjust         = "adjust"
)

// StockMovement es el registro inmutable que explica un cambio de cantidad de
// un producto. Se agrega uno por producto tocado por cada documento; es el
// único rastro de auditoría de cantidades.
type StockMovement struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Direction string    `json:"direction"` // in | out
	Quantity  int64     `json:"quantity"`  // siempre positivo (valor absoluto del delta)
	Reason    string    `json:"reason"`
	Reference string    `json:"reference"` // número del documento que originó el movimiento
	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by"` // UserID explícito del caller, nunca ambiente
}
