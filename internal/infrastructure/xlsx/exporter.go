// Package xlsx exporta los reportes a hojas de cálculo con excelize.
package xlsx

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/pkg/textutil"
)

const dateLayout = "02/01/2006"

// Exporter implementa reports.Exporter en formato XLSX.
type Exporter struct {
	business string
}

// NewExporter construye el exportador. business va en la primera fila de cada hoja.
func NewExporter(business string) *Exporter {
	return &Exporter{business: business}
}

// sheet escribe filas consecutivas en una hoja; el primer error se conserva y corta el resto.
type sheet struct {
	f      *excelize.File
	name   string
	row    int
	bold   int
	header int
	money  int
	err    error
}

func (e *Exporter) newWorkbook(name, title string) (*excelize.File, *sheet) {
	f := excelize.NewFile()
	s := &sheet{f: f, name: name, row: 1}
	if err := f.SetSheetName("Sheet1", name); err != nil {
		s.err = err
		return f, s
	}
	s.bold, s.err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12, Color: "00467F"}})
	if s.err == nil {
		s.header, s.err = f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
			Fill: excelize.Fill{Type: "pattern", Color: []string{"00467F"}, Pattern: 1},
		})
	}
	if s.err == nil {
		s.money, s.err = f.NewStyle(&excelize.Style{NumFmt: 4})
	}
	s.title(e.business)
	s.title(title)
	s.blank()
	return f, s
}

func (s *sheet) cell(col int) string {
	name, err := excelize.CoordinatesToCellName(col, s.row)
	if err != nil && s.err == nil {
		s.err = err
	}
	return name
}

func (s *sheet) title(text string) {
	if s.err != nil {
		return
	}
	c := s.cell(1)
	if s.err = s.f.SetCellValue(s.name, c, text); s.err == nil {
		s.err = s.f.SetCellStyle(s.name, c, c, s.bold)
	}
	s.row++
}

func (s *sheet) blank() { s.row++ }

func (s *sheet) headers(labels ...string) {
	if s.err != nil {
		return
	}
	vals := make([]any, len(labels))
	for i, l := range labels {
		vals[i] = l
	}
	first, last := s.cell(1), s.cell(len(labels))
	if s.err = s.f.SetSheetRow(s.name, first, &vals); s.err == nil {
		s.err = s.f.SetCellStyle(s.name, first, last, s.header)
	}
	s.row++
}

// values escribe una fila; los decimal.Decimal van como número con formato #,##0.00.
func (s *sheet) values(vals ...any) {
	for i, v := range vals {
		if s.err != nil {
			return
		}
		c := s.cell(i + 1)
		switch x := v.(type) {
		case decimal.Decimal:
			if s.err = s.f.SetCellFloat(s.name, c, x.InexactFloat64(), 2, 64); s.err == nil {
				s.err = s.f.SetCellStyle(s.name, c, c, s.money)
			}
		case time.Time:
			s.err = s.f.SetCellValue(s.name, c, x.Format(dateLayout))
		default:
			s.err = s.f.SetCellValue(s.name, c, x)
		}
	}
	s.row++
}

func finish(f *excelize.File, s *sheet, widths ...float64) ([]byte, error) {
	defer f.Close()
	for i, w := range widths {
		if s.err != nil {
			break
		}
		colName, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			s.err = err
			break
		}
		s.err = f.SetColWidth(s.name, colName, colName, w)
	}
	if s.err != nil {
		return nil, fmt.Errorf("xlsx: %w", s.err)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

// SalesReport hoja de ventas del período.
func (e *Exporter) SalesReport(_ context.Context, r *dto.SalesReport) ([]byte, error) {
	f, s := e.newWorkbook("Ventas", fmt.Sprintf("Ventas del %s al %s", r.From.Format(dateLayout), r.To.Format(dateLayout)))
	s.values("Ventas", r.SalesCount)
	s.values("Total $", r.TotalUSD)
	s.values("Total Bs", r.TotalBs)
	s.values("Descuentos $", r.DiscountUSD)
	s.values("Costo $", r.CostTotal)
	s.values("Ganancia bruta $", r.GrossProfit)
	s.blank()

	s.headers("Método de pago", "Ventas", "Total $", "Total Bs")
	for _, m := range r.ByPaymentMethod {
		s.values(m.Method, m.Count, m.TotalUSD, m.TotalBs)
	}
	s.blank()

	s.headers("Producto", "Unidades", "Ingreso $", "Costo $", "Margen %")
	for _, p := range r.TopProducts {
		s.values(p.ProductName, p.UnitsSold, p.RevenueUSD, p.CostTotal, p.MarginPct)
	}
	return finish(f, s, 30, 12, 14, 14, 12)
}

// InventoryReport hoja de valuación de inventario.
func (e *Exporter) InventoryReport(_ context.Context, r *dto.InventoryReport) ([]byte, error) {
	f, s := e.newWorkbook("Inventario", "Valuación al "+r.GeneratedAt.Format(dateLayout))
	s.headers("Producto", "Categoría", "Stock", "Mínimo", "Costo promedio", "Precio venta", "Valor", "Stock bajo")
	for _, row := range r.Rows {
		low := ""
		if row.LowStock {
			low = "SI"
		}
		s.values(row.ProductName, row.Category, row.Stock, row.MinStock, row.AverageCost, row.SalePrice, row.Value, low)
	}
	s.blank()
	s.values("Unidades", "", r.TotalUnits)
	s.values("Valor total", "", "", "", "", "", r.TotalValue)
	return finish(f, s, 30, 16, 10, 10, 14, 14, 14, 11)
}

// MembershipReport hoja de membresías.
func (e *Exporter) MembershipReport(_ context.Context, r *dto.MembershipReport) ([]byte, error) {
	f, s := e.newWorkbook("Membresias", fmt.Sprintf("Membresías del %s al %s", r.From.Format(dateLayout), r.To.Format(dateLayout)))
	s.values("Activos", r.Active)
	s.values("Por vencer", r.Expiring)
	s.values("Vencidos", r.Expired)
	s.values("Total clientes", r.TotalClients)
	s.blank()

	s.headers("Plan", "Pagos", "Monto $", "Monto Bs")
	for _, p := range r.IncomeByPlan {
		s.values(p.PlanName, p.Payments, p.AmountUSD, p.AmountBs)
	}
	s.values("Total", "", r.IncomeUSD, r.IncomeBs)
	return finish(f, s, 28, 10, 14, 16)
}

// PayrollReport hoja de nómina mensual.
func (e *Exporter) PayrollReport(_ context.Context, r *dto.PayrollReport) ([]byte, error) {
	f, s := e.newWorkbook("Nomina", fmt.Sprintf("Nómina %s %d", textutil.MonthName(time.Month(r.Month)), r.Year))
	s.headers("Empleado", "Cédula", "Días", "Salario", "SSO", "LPH", "RPE", "Deducciones", "Utilidades", "Neto", "Estado")
	for _, rec := range r.Records {
		s.values(rec.EmployeeName, rec.EmployeeCedula, rec.DaysWorked, rec.BasePay, rec.SSO, rec.LPH, rec.RPE,
			rec.TotalDeductions, rec.Utilidades, rec.NetPay, rec.Status)
	}
	s.blank()
	s.values("Totales", "", "", r.TotalBasePay, "", "", "", r.TotalDeductions, r.TotalUtilidades, r.TotalNet)
	s.values("Pagados", r.Paid)
	s.values("Pendientes", r.Pending)
	return finish(f, s, 26, 14, 8, 12, 10, 10, 10, 13, 12, 12, 11)
}
