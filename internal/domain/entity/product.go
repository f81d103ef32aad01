package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de la tienda.
// Stock es un conteo entero y solo muta a través del libro de stock (ledger);
// el invariante es que nunca queda negativo para los flujos que lo prohíben.
type Product struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"` // código único
	Name         string          `json:"name"`
	Stock        int64           `json:"stock"`
	PurchaseCost decimal.Decimal `json:"purchase_cost"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	MinSalePrice decimal.Decimal `json:"min_sale_price"`
	MaxSalePrice decimal.Decimal `json:"max_sale_price"`
	MinStock     int64           `json:"min_stock"` // umbral de reposición
	MaxStock     int64           `json:"max_stock"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
