package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesTotals totales crudos de ventas completadas en un rango.
type SalesTotals struct {
	Count     int
	TotalUSD  decimal.Decimal
	TotalBs   decimal.Decimal
	CostTotal decimal.Decimal
	Discount  decimal.Decimal
}

// PaymentMethodTotal ventas agrupadas por método de pago.
type PaymentMethodTotal struct {
	Method   string
	Count    int
	TotalUSD decimal.Decimal
	TotalBs  decimal.Decimal
}

// ProductSalesResult unidades, ingreso y costo por producto.
type ProductSalesResult struct {
	ProductID   int64
	ProductName string
	UnitsSold   decimal.Decimal
	Revenue     decimal.Decimal
	Cost        decimal.Decimal
}

// PlanIncomeResult ingresos por membresías agrupados por plan.
type PlanIncomeResult struct {
	PlanID    int64
	PlanName  string
	Payments  int
	AmountUSD decimal.Decimal
	AmountBs  decimal.Decimal
}

// ReportRepository consultas de solo lectura para reportes y dashboard.
// Los rangos son [from, to).
type ReportRepository interface {
	SalesTotals(ctx context.Context, from, to time.Time) (SalesTotals, error)
	SalesByPaymentMethod(ctx context.Context, from, to time.Time) ([]PaymentMethodTotal, error)
	// TopProducts productos ordenados por ingreso; limit <= 0 sin límite.
	TopProducts(ctx context.Context, from, to time.Time, limit int) ([]ProductSalesResult, error)
	// UnitsSoldSince unidades vendidas por producto desde la fecha dada.
	UnitsSoldSince(ctx context.Context, since time.Time) (map[int64]decimal.Decimal, error)
	MembershipIncome(ctx context.Context, from, to time.Time) ([]PlanIncomeResult, error)
}
