package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/internal/application/reports"
)

// ReportHandler reportes en JSON, PDF o XLSX (?format=).
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// respond entrega report como JSON o lo renderiza según ?format=.
func (h *ReportHandler) respond(c *fiber.Ctx, name string, report any) error {
	format := strings.ToLower(c.Query("format", dto.FormatJSON))
	if format == dto.FormatJSON {
		return c.JSON(report)
	}
	file, err := h.uc.Render(c.Context(), format, name, report)
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, file.Data, file.Filename, file.ContentType)
}

func datesFromQuery(c *fiber.Ctx) (from, to *time.Time, err error) {
	if from, err = queryDate(c, "from"); err != nil {
		return nil, nil, err
	}
	if to, err = queryDate(c, "to"); err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

// Sales godoc
// @Summary      Reporte de ventas
// @Description  Totales por método de pago y productos más vendidos. Sin fechas: mes en curso hasta hoy.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Produce      application/pdf
// @Param        from    query  string  false  "YYYY-MM-DD"
// @Param        to      query  string  false  "YYYY-MM-DD"
// @Param        format  query  string  false  "json | pdf | xlsx"
// @Success      200     {object}  dto.SalesReport
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	from, to, err := datesFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	report, err := h.uc.Sales(c.Context(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return h.respond(c, "reporte_ventas", report)
}

// Inventory valoración y stock bajo.
func (h *ReportHandler) Inventory(c *fiber.Ctx) error {
	report, err := h.uc.Inventory(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return h.respond(c, "reporte_inventario", report)
}

// Memberships ingresos por plan y estado de los clientes.
func (h *ReportHandler) Memberships(c *fiber.Ctx) error {
	from, to, err := datesFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	report, err := h.uc.Memberships(c.Context(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return h.respond(c, "reporte_membresias", report)
}

// Payroll nómina del mes ?year=&month=; por defecto el mes en curso.
func (h *ReportHandler) Payroll(c *fiber.Ctx) error {
	now := time.Now()
	year := c.QueryInt("year", now.Year())
	month := c.QueryInt("month", int(now.Month()))
	report, err := h.uc.Payroll(c.Context(), year, month)
	if err != nil {
		return respondError(c, err)
	}
	return h.respond(c, "reporte_nomina", report)
}
