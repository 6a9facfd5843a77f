package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIn     = "entrada"
	MovementTypeOut    = "salida"
	MovementTypeAdjust = "ajuste"
)

// StockMovement movimiento de inventario. Quantity lleva signo
// (entrada > 0, salida < 0, ajuste ±); PreviousStock y NewStock son totales del producto.
type StockMovement struct {
	ID            int64
	ProductID     int64
	ProductName   string // solo lectura (JOIN)
	LotID         *int64
	LotCode       string // solo lectura (JOIN)
	Type          string
	Quantity      decimal.Decimal
	PreviousStock decimal.Decimal
	NewStock      decimal.Decimal
	Reference     string // referencia de operación (uuid) o venta
	Reason        string
	CreatedBy     int64
	CreatedAt     time.Time
}
