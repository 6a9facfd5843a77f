package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/internal/application/reports"
	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var fixedNow = time.Date(2024, 6, 15, 14, 0, 0, 0, time.UTC)

type mockReportRepo struct{ mock.Mock }

func (m *mockReportRepo) SalesTotals(ctx context.Context, from, to time.Time) (repository.SalesTotals, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(repository.SalesTotals), args.Error(1)
}

func (m *mockReportRepo) SalesByPaymentMethod(ctx context.Context, from, to time.Time) ([]repository.PaymentMethodTotal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]repository.PaymentMethodTotal), args.Error(1)
}

func (m *mockReportRepo) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]repository.ProductSalesResult, error) {
	args := m.Called(ctx, from, to, limit)
	return args.Get(0).([]repository.ProductSalesResult), args.Error(1)
}

func (m *mockReportRepo) UnitsSoldSince(ctx context.Context, since time.Time) (map[int64]decimal.Decimal, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(map[int64]decimal.Decimal), args.Error(1)
}

func (m *mockReportRepo) MembershipIncome(ctx context.Context, from, to time.Time) ([]repository.PlanIncomeResult, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]repository.PlanIncomeResult), args.Error(1)
}

type mockClients struct{ mock.Mock }

func (m *mockClients) CountByExpiry(ctx context.Context, from, to *time.Time) (int, error) {
	args := m.Called(ctx, from, to)
	return args.Int(0), args.Error(1)
}

type mockPayroll struct{ mock.Mock }

func (m *mockPayroll) List(ctx context.Context, year, month int, status string) ([]*entity.PayrollRecord, error) {
	args := m.Called(ctx, year, month, status)
	return args.Get(0).([]*entity.PayrollRecord), args.Error(1)
}

type mockValuation struct{ mock.Mock }

func (m *mockValuation) Valuation(ctx context.Context) (*dto.ValuationResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).(*dto.ValuationResponse), args.Error(1)
}

type mockExporter struct{ mock.Mock }

func (m *mockExporter) SalesReport(ctx context.Context, r *dto.SalesReport) ([]byte, error) {
	args := m.Called(ctx, r)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockExporter) InventoryReport(ctx context.Context, r *dto.InventoryReport) ([]byte, error) {
	args := m.Called(ctx, r)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockExporter) MembershipReport(ctx context.Context, r *dto.MembershipReport) ([]byte, error) {
	args := m.Called(ctx, r)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockExporter) PayrollReport(ctx context.Context, r *dto.PayrollReport) ([]byte, error) {
	args := m.Called(ctx, r)
	return args.Get(0).([]byte), args.Error(1)
}

type fixture struct {
	reports   *mockReportRepo
	clients   *mockClients
	payroll   *mockPayroll
	valuation *mockValuation
	pdf       *mockExporter
	uc        *reports.UseCase
}

func setup() fixture {
	f := fixture{
		reports:   new(mockReportRepo),
		clients:   new(mockClients),
		payroll:   new(mockPayroll),
		valuation: new(mockValuation),
		pdf:       new(mockExporter),
	}
	f.uc = reports.NewUseCase(f.reports, f.clients, f.payroll, f.valuation,
		map[string]reports.Exporter{dto.FormatPDF: f.pdf}, 5, time.UTC).
		WithClock(func() time.Time { return fixedNow })
	return f
}

func TestSales_MesEnCursoPorDefecto(t *testing.T) {
	f := setup()
	ctx := context.Background()
	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC)

	f.reports.On("SalesTotals", ctx, from, to).Return(repository.SalesTotals{
		Count: 3, TotalUSD: d("100"), TotalBs: d("3600"), CostTotal: d("60"), Discount: d("5"),
	}, nil)
	f.reports.On("SalesByPaymentMethod", ctx, from, to).Return([]repository.PaymentMethodTotal{
		{Method: entity.PaymentCashUSD, Count: 2, TotalUSD: d("70"), TotalBs: d("2520")},
		{Method: entity.PaymentPagoMovil, Count: 1, TotalUSD: d("30"), TotalBs: d("1080")},
	}, nil)
	f.reports.On("TopProducts", ctx, from, to, 10).Return([]repository.ProductSalesResult{
		{ProductID: 1, ProductName: "Proteína", UnitsSold: d("2"), Revenue: d("80"), Cost: d("50")},
		{ProductID: 2, ProductName: "Agua", UnitsSold: d("0"), Revenue: d("0"), Cost: d("0")},
	}, nil)

	r, err := f.uc.Sales(ctx, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, from, r.From)
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), r.To)
	assert.Equal(t, 3, r.SalesCount)
	assert.True(t, r.GrossProfit.Equal(d("40")))
	require.Len(t, r.ByPaymentMethod, 2)
	require.Len(t, r.TopProducts, 2)
	assert.True(t, r.TopProducts[0].MarginPct.Equal(d("37.5")), r.TopProducts[0].MarginPct.String())
	assert.True(t, r.TopProducts[1].MarginPct.IsZero(), "sin ingreso no hay margen")
	f.reports.AssertExpectations(t)
}

func TestSales_RangoInvertido(t *testing.T) {
	f := setup()
	from := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := f.uc.Sales(context.Background(), &from, &to)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	f.reports.AssertNotCalled(t, "SalesTotals", mock.Anything, mock.Anything, mock.Anything)
}

func TestMemberships_ConteosEIngresos(t *testing.T) {
	f := setup()
	ctx := context.Background()

	open := mock.MatchedBy(func(p *time.Time) bool { return p == nil })
	bounded := mock.MatchedBy(func(p *time.Time) bool { return p != nil })
	// activos: [hoy+6, ∞); por vencer: [hoy, hoy+5]; vencidos: (∞, hoy-1]
	f.clients.On("CountByExpiry", ctx, bounded, open).Return(12, nil).Once()
	f.clients.On("CountByExpiry", ctx, bounded, bounded).Return(3, nil).Once()
	f.clients.On("CountByExpiry", ctx, open, bounded).Return(7, nil).Once()

	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	f.reports.On("MembershipIncome", ctx, from, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)).
		Return([]repository.PlanIncomeResult{
			{PlanID: 1, PlanName: "Mensual", Payments: 4, AmountUSD: d("80"), AmountBs: d("2880")},
			{PlanID: 2, PlanName: "Trimestral", Payments: 1, AmountUSD: d("55.5"), AmountBs: d("1998")},
		}, nil)

	r, err := f.uc.Memberships(ctx, &from, &to)
	require.NoError(t, err)
	assert.Equal(t, 12, r.Active)
	assert.Equal(t, 3, r.Expiring)
	assert.Equal(t, 7, r.Expired)
	assert.Equal(t, 22, r.TotalClients)
	assert.True(t, r.IncomeUSD.Equal(d("135.5")))
	assert.True(t, r.IncomeBs.Equal(d("4878")))
	assert.Len(t, r.IncomeByPlan, 2)
	f.clients.AssertExpectations(t)
}

func TestPayroll_Totales(t *testing.T) {
	f := setup()
	ctx := context.Background()
	f.payroll.On("List", ctx, 2024, 6, "").Return([]*entity.PayrollRecord{
		{ID: 1, EmployeeName: "Ana", BasePay: d("300"), TotalDeductions: d("16.5"), Utilidades: d("0"), NetPay: d("283.5"), Status: entity.PayrollStatusPaid},
		{ID: 2, EmployeeName: "Luis", BasePay: d("200"), TotalDeductions: d("11"), Utilidades: d("0"), NetPay: d("189"), Status: entity.PayrollStatusPending},
	}, nil)

	r, err := f.uc.Payroll(ctx, 2024, 6)
	require.NoError(t, err)
	assert.Len(t, r.Records, 2)
	assert.True(t, r.TotalNet.Equal(d("472.5")))
	assert.True(t, r.TotalDeductions.Equal(d("27.5")))
	assert.Equal(t, 1, r.Paid)
	assert.Equal(t, 1, r.Pending)

	_, err = f.uc.Payroll(ctx, 2024, 13)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInventoryYRender(t *testing.T) {
	f := setup()
	ctx := context.Background()
	f.valuation.On("Valuation", ctx).Return(&dto.ValuationResponse{TotalValue: d("150"), LowStock: 1}, nil)

	r, err := f.uc.Inventory(ctx)
	require.NoError(t, err)
	assert.True(t, r.TotalValue.Equal(d("150")))
	assert.Equal(t, fixedNow, r.GeneratedAt)

	f.pdf.On("InventoryReport", ctx, r).Return([]byte("%PDF"), nil)
	file, err := f.uc.Render(ctx, dto.FormatPDF, "inventario", r)
	require.NoError(t, err)
	assert.Equal(t, "inventario_20240615.pdf", file.Filename)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.Equal(t, []byte("%PDF"), file.Data)

	_, err = f.uc.Render(ctx, dto.FormatXLSX, "inventario", r)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin exportador xlsx registrado")
}
