package pdf_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	"github.com/jhoicas/Gimnasio-api/internal/infrastructure/pdf"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertPDF(t *testing.T, b []byte, err error) {
	t.Helper()
	require.NoError(t, err)
	require.Greater(t, len(b), 4)
	assert.Equal(t, "%PDF", string(b[:4]))
}

func TestGenerateSaleReceipt(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator("Gimnasio Prueba", time.UTC)
	sale := &dto.SaleResponse{
		ID: 12, Status: entity.SaleStatusVoided, VoidReason: "error de cobro",
		PaymentMethod: entity.PaymentPagoMovil, ExchangeRate: d("36.5"),
		SubtotalUSD: d("10"), DiscountUSD: d("1"), TotalUSD: d("9"), TotalBs: d("328.5"),
		OperationRef: "4b1c2a5e-8f0d-4e55-9a1e-3f2d1c0b9a87",
		CreatedAt:    time.Date(2024, 6, 15, 14, 0, 0, 0, time.UTC),
		Items: []dto.SaleItemResponse{
			{ProductName: "Agua 600ml", Quantity: d("2"), UnitPrice: d("5"), Subtotal: d("10")},
		},
	}
	b, err := g.GenerateSaleReceipt(context.Background(), sale)
	assertPDF(t, b, err)
}

func TestGeneratePayrollReceipt(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator("Gimnasio Prueba", time.UTC)
	paid := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	rec := &dto.PayrollRecordResponse{
		EmployeeName: "Ana Pérez", EmployeeCedula: "V-123", Year: 2024, Month: 12, DaysWorked: 30,
		MonthlySalary: d("3000"), DailySalary: d("100"), BasePay: d("3000"),
		SSO: d("120"), LPH: d("30"), RPE: d("15"), TotalDeductions: d("165"),
		Utilidades: d("2500"), NetPay: d("5335"),
		Status: entity.PayrollStatusPaid, PaymentMethod: entity.PaymentTransfer, PaidAt: &paid,
	}
	b, err := g.GeneratePayrollReceipt(context.Background(), rec)
	assertPDF(t, b, err)
}

func TestReportes(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator("Gimnasio Prueba", time.UTC)
	ctx := context.Background()
	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	b, err := g.SalesReport(ctx, &dto.SalesReport{
		From: from, To: to, SalesCount: 1, TotalUSD: d("9"),
		ByPaymentMethod: []dto.PaymentMethodSummary{{Method: entity.PaymentZelle, Count: 1, TotalUSD: d("9")}},
		TopProducts:     []dto.TopProductDTO{{ProductName: "Agua", UnitsSold: d("2"), RevenueUSD: d("9"), MarginPct: d("40")}},
	})
	assertPDF(t, b, err)

	b, err = g.InventoryReport(ctx, &dto.InventoryReport{GeneratedAt: to, ValuationResponse: dto.ValuationResponse{
		Rows: []dto.ValuationRow{{ProductName: "Agua", Stock: d("3"), MinStock: d("5"), LowStock: true}},
	}})
	assertPDF(t, b, err)

	b, err = g.MembershipReport(ctx, &dto.MembershipReport{From: from, To: to, Active: 3,
		IncomeByPlan: []dto.PlanIncomeDTO{{PlanName: "Mensual", Payments: 2, AmountUSD: d("40")}}})
	assertPDF(t, b, err)

	b, err = g.PayrollReport(ctx, &dto.PayrollReport{Year: 2024, Month: 6,
		Records: []dto.PayrollRecordResponse{{EmployeeName: "Ana", DaysWorked: 30, NetPay: d("100")}}})
	assertPDF(t, b, err)
}
