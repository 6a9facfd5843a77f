package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados derivados de un lote.
const (
	LotStatusActive   = "activo"
	LotStatusDepleted = "agotado"
)

// Lot lote de compra de un producto con su propio costo unitario.
type Lot struct {
	ID                int64
	ProductID         int64
	Code              string // L{producto:3}-{secuencia:3}
	InitialQuantity   decimal.Decimal
	AvailableQuantity decimal.Decimal
	UnitCost          decimal.Decimal
	Supplier          string
	PurchaseDate      time.Time
	ExpirationDate    *time.Time
	CreatedAt         time.Time
}

// Status activo mientras quede cantidad disponible.
func (l *Lot) Status() string {
	if l.AvailableQuantity.GreaterThan(decimal.Zero) {
		return LotStatusActive
	}
	return LotStatusDepleted
}
