package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseRequest body para POST /api/products/:id/purchases.
type PurchaseRequest struct {
	Quantity       decimal.Decimal `json:"quantity"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	Supplier       string          `json:"supplier" validate:"max=200"`
	PurchaseDate   *time.Time      `json:"purchase_date,omitempty"`
	ExpirationDate *time.Time      `json:"expiration_date,omitempty"`
}

// PurchaseResponse resultado de registrar una compra.
type PurchaseResponse struct {
	Lot          LotResponse     `json:"lot"`
	NewStock     decimal.Decimal `json:"new_stock"`
	AverageCost  decimal.Decimal `json:"average_cost"`
	NewSalePrice decimal.Decimal `json:"new_sale_price"`
}

// AdjustStockRequest body para POST /api/products/:id/adjustments. Delta con signo.
type AdjustStockRequest struct {
	Delta  decimal.Decimal `json:"delta"`
	Reason string          `json:"reason" validate:"required,max=300"`
}

// AdjustStockResponse stock resultante del ajuste.
type AdjustStockResponse struct {
	ProductID     int64           `json:"product_id"`
	PreviousStock decimal.Decimal `json:"previous_stock"`
	NewStock      decimal.Decimal `json:"new_stock"`
}

// LotResponse lote con su posición PEPS y estado.
type LotResponse struct {
	ID                int64           `json:"id"`
	ProductID         int64           `json:"product_id"`
	Code              string          `json:"code"`
	InitialQuantity   decimal.Decimal `json:"initial_quantity"`
	AvailableQuantity decimal.Decimal `json:"available_quantity"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	Supplier          string          `json:"supplier"`
	PurchaseDate      time.Time       `json:"purchase_date"`
	ExpirationDate    *time.Time      `json:"expiration_date,omitempty"`
	FIFORank          int             `json:"fifo_rank,omitempty"`
	Status            string          `json:"status"`
}

// MovementListRequest filtros de GET /api/inventory/movements.
type MovementListRequest struct {
	ProductID int64      `query:"product_id"`
	Type      string     `query:"type" validate:"omitempty,oneof=entrada salida ajuste"`
	From      *time.Time `query:"-"`
	To        *time.Time `query:"-"`
	PageRequest
}

// MovementResponse movimiento de inventario.
type MovementResponse struct {
	ID            int64           `json:"id"`
	ProductID     int64           `json:"product_id"`
	ProductName   string          `json:"product_name"`
	LotID         *int64          `json:"lot_id,omitempty"`
	LotCode       string          `json:"lot_code,omitempty"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	PreviousStock decimal.Decimal `json:"previous_stock"`
	NewStock      decimal.Decimal `json:"new_stock"`
	Reference     string          `json:"reference"`
	Reason        string          `json:"reason"`
	CreatedBy     int64           `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
}

// MovementListResponse página de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ValuationRow valuación de un producto a costo de lote.
type ValuationRow struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Category    string          `json:"category"`
	Stock       decimal.Decimal `json:"stock"`
	MinStock    decimal.Decimal `json:"min_stock"`
	AverageCost decimal.Decimal `json:"average_cost"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	Value       decimal.Decimal `json:"value"`
	LowStock    bool            `json:"low_stock"`
}

// ValuationResponse valuación total del inventario.
type ValuationResponse struct {
	Rows       []ValuationRow  `json:"rows"`
	TotalValue decimal.Decimal `json:"total_value"`
	TotalUnits decimal.Decimal `json:"total_units"`
	LowStock   int             `json:"low_stock_count"`
}

// ReplenishmentSuggestionDTO representa una sugerencia de reposición para un producto
// que se encuentra en o por debajo de su stock mínimo.
type ReplenishmentSuggestionDTO struct {
	ProductID           int64           `json:"product_id"`
	ProductName         string          `json:"product_name"`
	Category            string          `json:"category"`
	CurrentStock        decimal.Decimal `json:"current_stock"`
	MinStock            decimal.Decimal `json:"min_stock"`
	IdealStock          decimal.Decimal `json:"ideal_stock"`          // MinStock * 1.5
	SuggestedOrderQty   decimal.Decimal `json:"suggested_order_qty"`  // IdealStock - CurrentStock
	UnitCost            decimal.Decimal `json:"unit_cost"`            // costo promedio ponderado
	EstimatedOrderCost  decimal.Decimal `json:"estimated_order_cost"` // SuggestedOrderQty * UnitCost
	UnitsSoldLast90Days decimal.Decimal `json:"units_sold_last_90d"`
	Priority            int             `json:"priority"` // 1 = más urgente
}
