package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItemRequest agrega un producto al carrito.
type CartItemRequest struct {
	ProductID int64           `json:"product_id" validate:"required,min=1"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// CartQuantityRequest fija la cantidad de una línea (0 la elimina).
type CartQuantityRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// CartLineResponse línea del carrito.
type CartLineResponse struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// CartResponse carrito del usuario con sus totales.
type CartResponse struct {
	Lines    []CartLineResponse `json:"lines"`
	Items    decimal.Decimal    `json:"items"`
	Subtotal decimal.Decimal    `json:"subtotal"`
}

// PaymentInfo datos de pago de una venta.
type PaymentInfo struct {
	ClientID      *int64          `json:"client_id,omitempty"`
	PaymentMethod string          `json:"payment_method" validate:"required,oneof=efectivo_bs efectivo_usd punto_de_venta pago_movil transferencia zelle"`
	ExchangeRate  decimal.Decimal `json:"exchange_rate"`
	Reference     string          `json:"reference" validate:"max=100"`
	DiscountUSD   decimal.Decimal `json:"discount_usd"`
}

// CheckoutRequest cobra el carrito del usuario.
type CheckoutRequest struct {
	PaymentInfo
}

// SaleItemRequest línea de una venta directa. UnitPrice nil = precio de venta actual.
type SaleItemRequest struct {
	ProductID int64            `json:"product_id" validate:"required,min=1"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// CreateSaleRequest venta directa sin pasar por el carrito.
type CreateSaleRequest struct {
	Items []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
	PaymentInfo
}

// VoidSaleRequest anulación de una venta.
type VoidSaleRequest struct {
	Reason string `json:"reason" validate:"required,max=300"`
}

// SaleListRequest filtros de GET /api/sales.
type SaleListRequest struct {
	From   *time.Time `query:"-"`
	To     *time.Time `query:"-"`
	Status string     `query:"status" validate:"omitempty,oneof=completada anulada"`
	PageRequest
}

// SaleItemLotResponse cantidad tomada de un lote.
type SaleItemLotResponse struct {
	LotID    int64           `json:"lot_id"`
	Quantity decimal.Decimal `json:"quantity"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

// SaleItemResponse línea de venta.
type SaleItemResponse struct {
	ProductID   int64                 `json:"product_id"`
	ProductName string                `json:"product_name"`
	Quantity    decimal.Decimal       `json:"quantity"`
	UnitPrice   decimal.Decimal       `json:"unit_price"`
	Subtotal    decimal.Decimal       `json:"subtotal"`
	UnitCost    decimal.Decimal       `json:"unit_cost"`
	CostTotal   decimal.Decimal       `json:"cost_total"`
	Lots        []SaleItemLotResponse `json:"lots,omitempty"`
}

// SaleResponse venta con sus líneas.
type SaleResponse struct {
	ID            int64              `json:"id"`
	ClientID      *int64             `json:"client_id,omitempty"`
	ClientName    string             `json:"client_name,omitempty"`
	UserID        int64              `json:"user_id"`
	Status        string             `json:"status"`
	PaymentMethod string             `json:"payment_method"`
	ExchangeRate  decimal.Decimal    `json:"exchange_rate"`
	SubtotalUSD   decimal.Decimal    `json:"subtotal_usd"`
	DiscountUSD   decimal.Decimal    `json:"discount_usd"`
	TotalUSD      decimal.Decimal    `json:"total_usd"`
	TotalBs       decimal.Decimal    `json:"total_bs"`
	CostTotal     decimal.Decimal    `json:"cost_total"`
	Reference     string             `json:"reference"`
	OperationRef  string             `json:"operation_ref"`
	VoidReason    string             `json:"void_reason,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	VoidedAt      *time.Time         `json:"voided_at,omitempty"`
	Items         []SaleItemResponse `json:"items,omitempty"`
}

// SaleListResponse página de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
