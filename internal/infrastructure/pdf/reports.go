package pdf

import (
	"context"
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2/pkg/consts/align"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	domainpayroll "github.com/jhoicas/Gimnasio-api/internal/domain/payroll"
	"github.com/jhoicas/Gimnasio-api/pkg/textutil"
)

func periodLabel(from, to time.Time) string {
	return fmt.Sprintf("Del %s al %s", from.Format("02/01/2006"), to.Format("02/01/2006"))
}

// SalesReport reporte de ventas del período.
func (g *MarotoPDFGenerator) SalesReport(_ context.Context, r *dto.SalesReport) ([]byte, error) {
	m := g.newDocument("Reporte de ventas", false)
	m.AddRows(g.headerRow("REPORTE DE VENTAS", fmt.Sprintf("%d ventas", r.SalesCount), r.To))
	m.AddRows(separator(0.5))
	m.AddRows(sectionRow("PERÍODO", periodLabel(r.From, r.To)))

	methodCols := []column{
		{"Método de pago", 6, align.Left},
		{"Ventas", 2, align.Center},
		{"Total $", 2, align.Right},
		{"Total Bs", 2, align.Right},
	}
	methods := make([][]string, 0, len(r.ByPaymentMethod))
	for _, pm := range r.ByPaymentMethod {
		methods = append(methods, []string{
			paymentLabel(pm.Method), fmt.Sprint(pm.Count), textutil.Number(pm.TotalUSD), textutil.Number(pm.TotalBs),
		})
	}
	m.AddRows(tableHeaderRow(methodCols))
	m.AddRows(tableRows(methodCols, methods)...)

	m.AddRows(sectionRow("PRODUCTOS MÁS VENDIDOS", "Ordenados por ingreso"))
	topCols := []column{
		{"Producto", 5, align.Left},
		{"Unidades", 2, align.Center},
		{"Ingreso $", 2, align.Right},
		{"Costo $", 2, align.Right},
		{"Margen", 1, align.Right},
	}
	top := make([][]string, 0, len(r.TopProducts))
	for _, p := range r.TopProducts {
		top = append(top, []string{
			p.ProductName, p.UnitsSold.String(), textutil.Number(p.RevenueUSD),
			textutil.Number(p.CostTotal), textutil.Number(p.MarginPct) + "%",
		})
	}
	m.AddRows(tableHeaderRow(topCols))
	m.AddRows(tableRows(topCols, top)...)

	m.AddRows(separator(0.3))
	m.AddRows(totalsRows([]totalLine{
		{label: "Descuentos:", value: textutil.USD(r.DiscountUSD)},
		{label: "Costo de lo vendido:", value: textutil.USD(r.CostTotal)},
		{label: "Ganancia bruta:", value: textutil.USD(r.GrossProfit)},
		{label: "TOTAL VENDIDO:", value: textutil.USD(r.TotalUSD), grand: true},
		{label: "Total en bolívares:", value: textutil.Bs(r.TotalBs)},
	})...)
	m.AddRows(noteRow("Las ventas anuladas no se incluyen."))
	return render(m)
}

// InventoryReport valuación del inventario a costo de lote.
func (g *MarotoPDFGenerator) InventoryReport(_ context.Context, r *dto.InventoryReport) ([]byte, error) {
	m := g.newDocument("Reporte de inventario", true)
	m.AddRows(g.headerRow("VALUACIÓN DE INVENTARIO", fmt.Sprintf("%d productos", len(r.Rows)), r.GeneratedAt.In(g.loc)))
	m.AddRows(separator(0.5))

	cols := []column{
		{"Producto", 3, align.Left},
		{"Categoría", 2, align.Left},
		{"Stock", 1, align.Center},
		{"Mínimo", 1, align.Center},
		{"Costo prom.", 2, align.Right},
		{"Valor", 2, align.Right},
		{"", 1, align.Center},
	}
	values := make([][]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		flag := ""
		if row.LowStock {
			flag = "BAJO"
		}
		values = append(values, []string{
			row.ProductName, nonEmpty(row.Category, "-"), row.Stock.String(), row.MinStock.String(),
			textutil.Number(row.AverageCost), textutil.Number(row.Value), flag,
		})
	}
	m.AddRows(tableHeaderRow(cols))
	m.AddRows(tableRows(cols, values)...)

	m.AddRows(separator(0.3))
	m.AddRows(totalsRows([]totalLine{
		{label: "Unidades en existencia:", value: textutil.Number(r.TotalUnits)},
		{label: "Productos con stock bajo:", value: fmt.Sprint(r.LowStock)},
		{label: "VALOR TOTAL:", value: textutil.USD(r.TotalValue), grand: true},
	})...)
	return render(m)
}

// MembershipReport estado de los clientes e ingresos por plan.
func (g *MarotoPDFGenerator) MembershipReport(_ context.Context, r *dto.MembershipReport) ([]byte, error) {
	m := g.newDocument("Reporte de membresías", false)
	m.AddRows(g.headerRow("REPORTE DE MEMBRESÍAS", fmt.Sprintf("%d clientes", r.TotalClients), r.To))
	m.AddRows(separator(0.5))
	m.AddRows(sectionRow("CLIENTES", fmt.Sprintf("Activos: %d   |   Por vencer: %d   |   Vencidos: %d",
		r.Active, r.Expiring, r.Expired)))
	m.AddRows(sectionRow("INGRESOS", periodLabel(r.From, r.To)))

	cols := []column{
		{"Plan", 5, align.Left},
		{"Pagos", 2, align.Center},
		{"Monto $", 2, align.Right},
		{"Monto Bs", 3, align.Right},
	}
	values := make([][]string, 0, len(r.IncomeByPlan))
	for _, p := range r.IncomeByPlan {
		values = append(values, []string{
			p.PlanName, fmt.Sprint(p.Payments), textutil.Number(p.AmountUSD), textutil.Number(p.AmountBs),
		})
	}
	m.AddRows(tableHeaderRow(cols))
	m.AddRows(tableRows(cols, values)...)

	m.AddRows(separator(0.3))
	m.AddRows(totalsRows([]totalLine{
		{label: "TOTAL COBRADO:", value: textutil.USD(r.IncomeUSD), grand: true},
		{label: "Total en bolívares:", value: textutil.Bs(r.IncomeBs)},
	})...)
	return render(m)
}

// PayrollReport nómina del mes.
func (g *MarotoPDFGenerator) PayrollReport(_ context.Context, r *dto.PayrollReport) ([]byte, error) {
	m := g.newDocument("Reporte de nómina", true)
	title := fmt.Sprintf("%s %d", textutil.MonthName(time.Month(r.Month)), r.Year)
	m.AddRows(g.headerRow("NÓMINA MENSUAL", title, domainpayroll.PeriodEnd(r.Year, r.Month)))
	m.AddRows(separator(0.5))
	m.AddRows(sectionRow("ESTADO", fmt.Sprintf("Pagados: %d   |   Pendientes: %d", r.Paid, r.Pending)))

	cols := []column{
		{"Empleado", 3, align.Left},
		{"Días", 1, align.Center},
		{"Salario", 2, align.Right},
		{"Deducciones", 2, align.Right},
		{"Utilidades", 1, align.Right},
		{"Neto", 2, align.Right},
		{"Estado", 1, align.Center},
	}
	values := make([][]string, 0, len(r.Records))
	for _, rec := range r.Records {
		values = append(values, []string{
			rec.EmployeeName, fmt.Sprint(rec.DaysWorked), textutil.Number(rec.BasePay),
			textutil.Number(rec.TotalDeductions), textutil.Number(rec.Utilidades),
			textutil.Number(rec.NetPay), rec.Status,
		})
	}
	m.AddRows(tableHeaderRow(cols))
	m.AddRows(tableRows(cols, values)...)

	m.AddRows(separator(0.3))
	m.AddRows(totalsRows([]totalLine{
		{label: "Salarios:", value: textutil.Bs(r.TotalBasePay)},
		{label: "Deducciones:", value: textutil.Bs(r.TotalDeductions)},
		{label: "Utilidades:", value: textutil.Bs(r.TotalUtilidades)},
		{label: "TOTAL NETO:", value: textutil.Bs(r.TotalNet), grand: true},
	})...)
	return render(m)
}
