package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de venta.
const (
	SaleStatusCompleted = "completada"
	SaleStatusVoided    = "anulada"
)

// Métodos de pago aceptados en recepción.
const (
	PaymentCashBs    = "efectivo_bs"
	PaymentCashUSD   = "efectivo_usd"
	PaymentPOS       = "punto_de_venta"
	PaymentPagoMovil = "pago_movil"
	PaymentTransfer  = "transferencia"
	PaymentZelle     = "zelle"
)

// PaymentMethods lista ordenada de métodos válidos.
var PaymentMethods = []string{
	PaymentCashBs, PaymentCashUSD, PaymentPOS, PaymentPagoMovil, PaymentTransfer, PaymentZelle,
}

// ValidPaymentMethod indica si el método es uno de los aceptados.
func ValidPaymentMethod(m string) bool {
	for _, pm := range PaymentMethods {
		if pm == m {
			return true
		}
	}
	return false
}

// Sale venta de productos en recepción.
type Sale struct {
	ID            int64
	ClientID      *int64
	ClientName    string // solo lectura (JOIN)
	UserID        int64
	Status        string
	PaymentMethod string
	ExchangeRate  decimal.Decimal
	SubtotalUSD   decimal.Decimal
	DiscountUSD   decimal.Decimal
	TotalUSD      decimal.Decimal
	TotalBs       decimal.Decimal
	CostTotal     decimal.Decimal
	Reference     string // referencia del pago (punto, pago móvil, zelle)
	OperationRef  string // uuid que agrupa los movimientos de inventario
	VoidReason    string
	CreatedAt     time.Time
	VoidedAt      *time.Time
	Items         []SaleItem
}

// SaleItem línea de venta; UnitCost es el costo FIFO consumido / cantidad.
type SaleItem struct {
	ID          int64
	SaleID      int64
	ProductID   int64
	ProductName string // solo lectura (JOIN)
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
	UnitCost    decimal.Decimal
	CostTotal   decimal.Decimal
	Lots        []SaleItemLot
}

// SaleItemLot cantidad tomada de un lote por una línea de venta (permite anular).
type SaleItemLot struct {
	ID         int64
	SaleItemID int64
	LotID      int64
	Quantity   decimal.Decimal
	UnitCost   decimal.Decimal
}
