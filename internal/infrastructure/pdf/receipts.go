package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	domainpayroll "github.com/jhoicas/Gimnasio-api/internal/domain/payroll"
	"github.com/jhoicas/Gimnasio-api/pkg/textutil"
)

var saleColumns = []column{
	{"Cant.", 1, align.Center},
	{"Producto", 6, align.Left},
	{"Precio Unit.", 2, align.Right},
	{"Subtotal", 3, align.Right},
}

var paymentLabels = map[string]string{
	entity.PaymentCashBs:    "Efectivo Bs",
	entity.PaymentCashUSD:   "Efectivo $",
	entity.PaymentPOS:       "Punto de venta",
	entity.PaymentPagoMovil: "Pago móvil",
	entity.PaymentTransfer:  "Transferencia",
	entity.PaymentZelle:     "Zelle",
}

func paymentLabel(method string) string {
	return nonEmpty(paymentLabels[method], method)
}

// GenerateSaleReceipt genera el recibo de una venta del punto de venta.
func (g *MarotoPDFGenerator) GenerateSaleReceipt(_ context.Context, sale *dto.SaleResponse) ([]byte, error) {
	m := g.newDocument("Recibo de venta", false)
	created := sale.CreatedAt.In(g.loc)

	m.AddRows(g.headerRow("RECIBO DE VENTA", fmt.Sprintf("N° %06d", sale.ID), created))
	m.AddRows(separator(0.5))
	m.AddRows(sectionRow("CLIENTE", nonEmpty(sale.ClientName, "Cliente de contado")))
	m.AddRows(sectionRow("PAGO", fmt.Sprintf("Método: %s   |   Referencia: %s   |   Tasa: %s Bs/$   |   Hora: %s",
		paymentLabel(sale.PaymentMethod),
		nonEmpty(sale.Reference, "-"),
		textutil.Number(sale.ExchangeRate),
		created.Format("15:04"),
	)))
	if sale.Status == entity.SaleStatusVoided {
		m.AddRows(bannerRow("VENTA ANULADA", colorDanger))
		if sale.VoidReason != "" {
			m.AddRows(noteRow("Motivo: " + sale.VoidReason))
		}
	}
	m.AddRows(separator(0.3))

	values := make([][]string, 0, len(sale.Items))
	for _, it := range sale.Items {
		values = append(values, []string{
			it.Quantity.String(),
			it.ProductName,
			textutil.USD(it.UnitPrice),
			textutil.USD(it.Subtotal),
		})
	}
	m.AddRows(tableHeaderRow(saleColumns))
	m.AddRows(tableRows(saleColumns, values)...)

	m.AddRows(separator(0.3))
	totals := []totalLine{{label: "Subtotal:", value: textutil.USD(sale.SubtotalUSD)}}
	if sale.DiscountUSD.IsPositive() {
		totals = append(totals, totalLine{label: "Descuento:", value: "- " + textutil.USD(sale.DiscountUSD)})
	}
	totals = append(totals,
		totalLine{label: "TOTAL:", value: textutil.USD(sale.TotalUSD), grand: true},
		totalLine{label: "Total en bolívares:", value: textutil.Bs(sale.TotalBs)},
	)
	m.AddRows(totalsRows(totals)...)

	if sale.OperationRef != "" {
		m.AddRows(row.New(30).Add(
			col.New(3).Add(code.NewQr(sale.OperationRef, props.Rect{Percent: 95, Center: true})),
			col.New(9).Add(
				text.New("Referencia de operación:", props.Text{Size: 7, Top: 8, Left: 3, Color: colorGray}),
				text.New(strings.ToUpper(sale.OperationRef), props.Text{Size: 7, Top: 13, Left: 3}),
			),
		))
	}
	m.AddRows(noteRow("Gracias por su compra. Conserve este recibo para cualquier reclamo."))

	return render(m)
}

var deductionColumns = []column{
	{"Concepto", 6, align.Left},
	{"Asignaciones", 3, align.Right},
	{"Deducciones", 3, align.Right},
}

// GeneratePayrollReceipt genera el recibo de pago de un empleado para un mes.
func (g *MarotoPDFGenerator) GeneratePayrollReceipt(_ context.Context, rec *dto.PayrollRecordResponse) ([]byte, error) {
	m := g.newDocument("Recibo de pago de nómina", false)
	date := domainpayroll.PeriodEnd(rec.Year, rec.Month)
	if rec.PaidAt != nil {
		date = rec.PaidAt.In(g.loc)
	}

	m.AddRows(g.headerRow("RECIBO DE PAGO", fmt.Sprintf("%s %d", textutil.MonthName(time.Month(rec.Month)), rec.Year), date))
	m.AddRows(separator(0.5))
	m.AddRows(sectionRow("TRABAJADOR", fmt.Sprintf("%s   |   C.I.: %s   |   Cargo: %s",
		rec.EmployeeName, rec.EmployeeCedula, nonEmpty(rec.Position, "-"))))
	m.AddRows(sectionRow("SALARIO", fmt.Sprintf("Mensual: %s   |   Diario: %s   |   Días trabajados: %d",
		textutil.Bs(rec.MonthlySalary), textutil.Bs(rec.DailySalary), rec.DaysWorked)))
	m.AddRows(separator(0.3))

	values := [][]string{
		{fmt.Sprintf("Salario (%d días)", rec.DaysWorked), textutil.Number(rec.BasePay), ""},
		{"Seguro Social Obligatorio (SSO)", "", textutil.Number(rec.SSO)},
		{"Ley de Política Habitacional (LPH)", "", textutil.Number(rec.LPH)},
		{"Régimen Prestacional de Empleo (RPE)", "", textutil.Number(rec.RPE)},
	}
	if rec.Utilidades.IsPositive() {
		values = append(values, []string{"Utilidades", textutil.Number(rec.Utilidades), ""})
	}
	m.AddRows(tableHeaderRow(deductionColumns))
	m.AddRows(tableRows(deductionColumns, values)...)

	m.AddRows(separator(0.3))
	m.AddRows(totalsRows([]totalLine{
		{label: "Total deducciones:", value: textutil.Bs(rec.TotalDeductions)},
		{label: "NETO A PAGAR:", value: textutil.Bs(rec.NetPay), grand: true},
	})...)
	m.AddRows(sectionRow("ACUMULADOS DEL MES", fmt.Sprintf("Prestaciones sociales: %s   |   Vacaciones: %s",
		textutil.Bs(rec.SeveranceAccrual), textutil.Bs(rec.VacationAccrual))))

	status := "Pendiente de pago"
	if rec.Status == entity.PayrollStatusPaid {
		status = fmt.Sprintf("Pagado por %s", paymentLabel(rec.PaymentMethod))
		if rec.PaymentReference != "" {
			status += " (ref. " + rec.PaymentReference + ")"
		}
	}
	m.AddRows(noteRow(status))
	m.AddRows(row.New(20))
	m.AddRows(row.New(10).Add(
		col.New(6).Add(text.New("_____________________________", props.Text{Align: align.Center})),
		col.New(6).Add(text.New("_____________________________", props.Text{Align: align.Center})),
	))
	m.AddRows(row.New(6).Add(
		col.New(6).Add(text.New("Firma del empleador", props.Text{Size: 8, Align: align.Center, Color: colorGray})),
		col.New(6).Add(text.New("Recibí conforme", props.Text{Size: 8, Align: align.Center, Color: colorGray})),
	))

	return render(m)
}
