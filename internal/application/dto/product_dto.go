package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto. El stock entra solo por compras.
type CreateProductRequest struct {
	Name          string           `json:"name" validate:"required,max=200"`
	Category      string           `json:"category" validate:"max=100"`
	Brand         string           `json:"brand" validate:"max=100"`
	Unit          string           `json:"unit" validate:"max=30"`
	PurchasePrice decimal.Decimal  `json:"purchase_price"`
	SalePrice     decimal.Decimal  `json:"sale_price"`
	MinStock      *decimal.Decimal `json:"min_stock,omitempty"`
	Description   string           `json:"description" validate:"max=1000"`
}

// UpdateProductRequest edición parcial. No permite modificar stock.
type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Category    *string          `json:"category,omitempty"`
	Brand       *string          `json:"brand,omitempty"`
	Unit        *string          `json:"unit,omitempty"`
	SalePrice   *decimal.Decimal `json:"sale_price,omitempty"`
	MinStock    *decimal.Decimal `json:"min_stock,omitempty"`
	Description *string          `json:"description,omitempty"`
	Active      *bool            `json:"active,omitempty"`
}

// ProductListRequest filtros de GET /api/products.
type ProductListRequest struct {
	Query    string `query:"q"`
	Category string `query:"category"`
	LowStock bool   `query:"low_stock"`
	PageRequest
}

// ProductResponse salida de un producto con stock y costo promedio derivados de sus lotes.
type ProductResponse struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Brand         string          `json:"brand"`
	Unit          string          `json:"unit"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	MinStock      decimal.Decimal `json:"min_stock"`
	Stock         decimal.Decimal `json:"stock"`
	AverageCost   decimal.Decimal `json:"average_cost"`
	LowStock      bool            `json:"low_stock"`
	Description   string          `json:"description"`
	Active        bool            `json:"active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse página de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
