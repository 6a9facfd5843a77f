package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard.
// Contiene los KPIs de ventas del día y del mes en curso, el estado de las membresías
// y el conteo de productos con stock bajo.
type DashboardSummaryDTO struct {
	// Ventas del día actual (zona horaria del negocio)
	TodaySales  decimal.Decimal `json:"today_sales"`
	TodayCount  int             `json:"today_count"`
	TodayMargin decimal.Decimal `json:"today_margin"`

	// Ventas del mes en curso (día 1 – hoy)
	MonthlySales  decimal.Decimal `json:"monthly_sales"`
	MonthlyMargin decimal.Decimal `json:"monthly_margin"`

	// Membresías
	ActiveClients   int `json:"active_clients"`
	ExpiringClients int `json:"expiring_clients"`
	ExpiredClients  int `json:"expired_clients"`

	LowStockProducts int `json:"low_stock_products"`

	// Metadatos del período
	DateLabel string `json:"date_label"` // ej: "Febrero 2026"
}
