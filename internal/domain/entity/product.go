package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto a la venta en recepción (suplementos, bebidas, accesorios).
// El stock no se guarda aquí: es la suma de AvailableQuantity de sus lotes.
type Product struct {
	ID            int64
	Name          string
	Category      string
	Brand         string
	Unit          string
	PurchasePrice decimal.Decimal // costo unitario de la última compra
	SalePrice     decimal.Decimal // promedio ponderado × (1 + margen)
	MinStock      decimal.Decimal
	Description   string
	SearchKey     string
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
