// Package reports arma los reportes de ventas, inventario, membresías y nómina
// y los entrega como JSON o como archivo (PDF / XLSX).
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/internal/application/payroll"
	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	"github.com/jhoicas/Gimnasio-api/internal/domain/membership"
	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
)

const topProductsLimit = 10

var hundred = decimal.NewFromInt(100)

// File reporte ya renderizado.
type File struct {
	Data        []byte
	Filename    string
	ContentType string
}

var contentTypes = map[string]string{
	dto.FormatPDF:  "application/pdf",
	dto.FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// UseCase reportes de solo lectura.
type UseCase struct {
	reportRepo   repository.ReportRepository
	clients      ClientCounter
	payrolls     PayrollLister
	valuation    ValuationSource
	exporters    map[string]Exporter
	expiringDays int
	loc          *time.Location
	now          func() time.Time
}

// NewUseCase construye el caso de uso. exporters se indexa por formato (dto.FormatPDF, dto.FormatXLSX).
func NewUseCase(
	reportRepo repository.ReportRepository,
	clients ClientCounter,
	payrolls PayrollLister,
	valuation ValuationSource,
	exporters map[string]Exporter,
	expiringDays int,
	loc *time.Location,
) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &UseCase{
		reportRepo:   reportRepo,
		clients:      clients,
		payrolls:     payrolls,
		valuation:    valuation,
		exporters:    exporters,
		expiringDays: expiringDays,
		loc:          loc,
		now:          time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// period fechas calendario del reporte; por defecto del día 1 del mes en curso a hoy.
func (uc *UseCase) period(from, to *time.Time) (time.Time, time.Time, error) {
	today := membership.Date(uc.now().In(uc.loc))
	start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := today
	if from != nil {
		start = membership.Date(*from)
	}
	if to != nil {
		end = membership.Date(*to)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: el rango de fechas está invertido", domain.ErrInvalidInput)
	}
	return start, end, nil
}

// Sales ventas completadas del período (fechas inclusivas).
func (uc *UseCase) Sales(ctx context.Context, from, to *time.Time) (*dto.SalesReport, error) {
	start, end, err := uc.period(from, to)
	if err != nil {
		return nil, err
	}
	lo, hi := dto.LocalDayRange(&start, &end, uc.loc)

	totals, err := uc.reportRepo.SalesTotals(ctx, *lo, *hi)
	if err != nil {
		return nil, fmt.Errorf("reporte de ventas: totales: %w", err)
	}
	methods, err := uc.reportRepo.SalesByPaymentMethod(ctx, *lo, *hi)
	if err != nil {
		return nil, fmt.Errorf("reporte de ventas: métodos de pago: %w", err)
	}
	top, err := uc.reportRepo.TopProducts(ctx, *lo, *hi, topProductsLimit)
	if err != nil {
		return nil, fmt.Errorf("reporte de ventas: productos: %w", err)
	}

	out := &dto.SalesReport{
		From:            start,
		To:              end,
		SalesCount:      totals.Count,
		TotalUSD:        totals.TotalUSD.Round(2),
		TotalBs:         totals.TotalBs.Round(2),
		DiscountUSD:     totals.Discount.Round(2),
		CostTotal:       totals.CostTotal.Round(2),
		GrossProfit:     totals.TotalUSD.Sub(totals.CostTotal).Round(2),
		ByPaymentMethod: make([]dto.PaymentMethodSummary, 0, len(methods)),
		TopProducts:     make([]dto.TopProductDTO, 0, len(top)),
	}
	for _, m := range methods {
		out.ByPaymentMethod = append(out.ByPaymentMethod, dto.PaymentMethodSummary{
			Method:   m.Method,
			Count:    m.Count,
			TotalUSD: m.TotalUSD.Round(2),
			TotalBs:  m.TotalBs.Round(2),
		})
	}
	for _, p := range top {
		margin := decimal.Zero
		if p.Revenue.IsPositive() {
			margin = p.Revenue.Sub(p.Cost).Div(p.Revenue).Mul(hundred).Round(2)
		}
		out.TopProducts = append(out.TopProducts, dto.TopProductDTO{
			ProductID:   p.ProductID,
			ProductName: p.ProductName,
			UnitsSold:   p.UnitsSold,
			RevenueUSD:  p.Revenue.Round(2),
			CostTotal:   p.Cost.Round(2),
			MarginPct:   margin,
		})
	}
	return out, nil
}

// Inventory valuación actual con marca de stock bajo.
func (uc *UseCase) Inventory(ctx context.Context) (*dto.InventoryReport, error) {
	v, err := uc.valuation.Valuation(ctx)
	if err != nil {
		return nil, fmt.Errorf("reporte de inventario: %w", err)
	}
	return &dto.InventoryReport{GeneratedAt: uc.now().In(uc.loc), ValuationResponse: *v}, nil
}

// Memberships clientes por estado (a hoy) e ingresos por membresías del período.
func (uc *UseCase) Memberships(ctx context.Context, from, to *time.Time) (*dto.MembershipReport, error) {
	start, end, err := uc.period(from, to)
	if err != nil {
		return nil, err
	}
	today := membership.Date(uc.now().In(uc.loc))
	out := &dto.MembershipReport{
		From:         start,
		To:           end,
		IncomeUSD:    decimal.Zero,
		IncomeBs:     decimal.Zero,
		IncomeByPlan: []dto.PlanIncomeDTO{},
	}
	for _, status := range []string{membership.StatusActive, membership.StatusExpiring, membership.StatusExpired} {
		lo, hi, _ := membership.ExpiryRange(status, today, uc.expiringDays)
		n, err := uc.clients.CountByExpiry(ctx, lo, hi)
		if err != nil {
			return nil, fmt.Errorf("reporte de membresías: clientes %s: %w", status, err)
		}
		switch status {
		case membership.StatusActive:
			out.Active = n
		case membership.StatusExpiring:
			out.Expiring = n
		default:
			out.Expired = n
		}
	}
	out.TotalClients = out.Active + out.Expiring + out.Expired

	// paid_at es fecha calendario (medianoche UTC): el rango va por fechas, no por instantes locales
	income, err := uc.reportRepo.MembershipIncome(ctx, start, end.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("reporte de membresías: ingresos: %w", err)
	}
	for _, p := range income {
		out.IncomeByPlan = append(out.IncomeByPlan, dto.PlanIncomeDTO{
			PlanID:    p.PlanID,
			PlanName:  p.PlanName,
			Payments:  p.Payments,
			AmountUSD: p.AmountUSD.Round(2),
			AmountBs:  p.AmountBs.Round(2),
		})
		out.IncomeUSD = out.IncomeUSD.Add(p.AmountUSD)
		out.IncomeBs = out.IncomeBs.Add(p.AmountBs)
	}
	out.IncomeUSD = out.IncomeUSD.Round(2)
	out.IncomeBs = out.IncomeBs.Round(2)
	return out, nil
}

// Payroll registros del mes con totales.
func (uc *UseCase) Payroll(ctx context.Context, year, month int) (*dto.PayrollReport, error) {
	if year < 2000 || month < 1 || month > 12 {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.payrolls.List(ctx, year, month, "")
	if err != nil {
		return nil, fmt.Errorf("reporte de nómina: %w", err)
	}
	out := &dto.PayrollReport{
		Year:            year,
		Month:           month,
		Records:         make([]dto.PayrollRecordResponse, 0, len(list)),
		TotalBasePay:    decimal.Zero,
		TotalDeductions: decimal.Zero,
		TotalUtilidades: decimal.Zero,
		TotalNet:        decimal.Zero,
	}
	for _, r := range list {
		out.Records = append(out.Records, payroll.ToRecordResponse(r))
		out.TotalBasePay = out.TotalBasePay.Add(r.BasePay)
		out.TotalDeductions = out.TotalDeductions.Add(r.TotalDeductions)
		out.TotalUtilidades = out.TotalUtilidades.Add(r.Utilidades)
		out.TotalNet = out.TotalNet.Add(r.NetPay)
		if r.Status == entity.PayrollStatusPaid {
			out.Paid++
		} else {
			out.Pending++
		}
	}
	return out, nil
}

// Render entrega un reporte ya armado en el formato pedido (pdf | xlsx).
func (uc *UseCase) Render(ctx context.Context, format, name string, report any) (*File, error) {
	exp, ok := uc.exporters[format]
	if !ok {
		return nil, fmt.Errorf("%w: formato %q no soportado", domain.ErrInvalidInput, format)
	}
	var (
		data []byte
		err  error
	)
	switch r := report.(type) {
	case *dto.SalesReport:
		data, err = exp.SalesReport(ctx, r)
	case *dto.InventoryReport:
		data, err = exp.InventoryReport(ctx, r)
	case *dto.MembershipReport:
		data, err = exp.MembershipReport(ctx, r)
	case *dto.PayrollReport:
		data, err = exp.PayrollReport(ctx, r)
	default:
		return nil, fmt.Errorf("%w: reporte desconocido", domain.ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("reporte %s: %w", format, err)
	}
	return &File{
		Data:        data,
		Filename:    fmt.Sprintf("%s_%s.%s", name, uc.now().In(uc.loc).Format("20060102"), format),
		ContentType: contentTypes[format],
	}, nil
}
