package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto en el catálogo.
type CreateProductRequest struct {
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Stock        int64           `json:"stock"`
	PurchaseCost decimal.Decimal `json:"purchase_cost"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	MinSalePrice decimal.Decimal `json:"min_sale_price"`
	MaxSalePrice decimal.Decimal `json:"max_sale_price"`
	MinStock     int64           `json:"min_stock"`
	MaxStock     int64           `json:"max_stock"`
}

// UpdateProductRequest edición de catálogo. El stock NO se edita por aquí:
// solo muta a través del ledger.
type UpdateProductRequest struct {
	Name         string          `json:"name"`
	PurchaseCost decimal.Decimal `json:"purchase_cost"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	MinSalePrice decimal.Decimal `json:"min_sale_price"`
	MaxSalePrice decimal.Decimal `json:"max_sale_price"`
	MinStock     int64           `json:"min_stock"`
	MaxStock     int64           `json:"max_stock"`
}

// ProductResponse producto tal como se expone por la API.
type ProductResponse struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Stock        int64           `json:"stock"`
	PurchaseCost decimal.Decimal `json:"purchase_cost"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	MinSalePrice decimal.Decimal `json:"min_sale_price"`
	MaxSalePrice decimal.Decimal `json:"max_sale_price"`
	MinStock     int64           `json:"min_stock"`
	MaxStock     int64           `json:"max_stock"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// MovementResponse movimiento del rastro de stock.
type MovementResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Direction string    `json:"direction"`
	Quantity  int64     `json:"quantity"`
	Reason    string    `json:"reason"`
	Reference string    `json:"reference"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by"`
}
