package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Formatos de salida de los reportes.
const (
	FormatJSON = "json"
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
)

// PaymentMethodSummary ventas agrupadas por método de pago.
type PaymentMethodSummary struct {
	Method   string          `json:"payment_method"`
	Count    int             `json:"count"`
	TotalUSD decimal.Decimal `json:"total_usd"`
	TotalBs  decimal.Decimal `json:"total_bs"`
}

// TopProductDTO producto más vendido del período.
type TopProductDTO struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitsSold   decimal.Decimal `json:"units_sold"`
	RevenueUSD  decimal.Decimal `json:"revenue_usd"`
	CostTotal   decimal.Decimal `json:"cost_total"`
	MarginPct   decimal.Decimal `json:"margin_pct"`
}

// SalesReport reporte de ventas del período [From, To). Excluye anuladas.
type SalesReport struct {
	From            time.Time              `json:"from"`
	To              time.Time              `json:"to"`
	SalesCount      int                    `json:"sales_count"`
	TotalUSD        decimal.Decimal        `json:"total_usd"`
	TotalBs         decimal.Decimal        `json:"total_bs"`
	DiscountUSD     decimal.Decimal        `json:"discount_usd"`
	CostTotal       decimal.Decimal        `json:"cost_total"`
	GrossProfit     decimal.Decimal        `json:"gross_profit"`
	ByPaymentMethod []PaymentMethodSummary `json:"by_payment_method"`
	TopProducts     []TopProductDTO        `json:"top_products"`
}

// InventoryReport valuación con marca de stock bajo.
type InventoryReport struct {
	GeneratedAt time.Time `json:"generated_at"`
	ValuationResponse
}

// PlanIncomeDTO ingreso por plan en el período.
type PlanIncomeDTO struct {
	PlanID    int64           `json:"plan_id"`
	PlanName  string          `json:"plan_name"`
	Payments  int             `json:"payments"`
	AmountUSD decimal.Decimal `json:"amount_usd"`
	AmountBs  decimal.Decimal `json:"amount_bs"`
}

// MembershipReport estado de la cartera de clientes e ingresos por membresías.
type MembershipReport struct {
	From         time.Time       `json:"from"`
	To           time.Time       `json:"to"`
	Active       int             `json:"active"`
	Expiring     int             `json:"expiring"`
	Expired      int             `json:"expired"`
	TotalClients int             `json:"total_clients"`
	IncomeUSD    decimal.Decimal `json:"income_usd"`
	IncomeBs     decimal.Decimal `json:"income_bs"`
	IncomeByPlan []PlanIncomeDTO `json:"income_by_plan"`
}

// PayrollReport nómina del mes con totales.
type PayrollReport struct {
	Year            int                     `json:"year"`
	Month           int                     `json:"month"`
	Records         []PayrollRecordResponse `json:"records"`
	TotalBasePay    decimal.Decimal         `json:"total_base_pay"`
	TotalDeductions decimal.Decimal         `json:"total_deductions"`
	TotalUtilidades decimal.Decimal         `json:"total_utilidades"`
	TotalNet        decimal.Decimal         `json:"total_net"`
	Paid            int                     `json:"paid"`
	Pending         int                     `json:"pending"`
}
