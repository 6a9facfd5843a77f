// Package pdf genera los documentos imprimibles del gimnasio con Maroto v2:
// recibos de venta, recibos de pago de nómina y reportes.
//
// Layout común de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del negocio  │  Título + N° / Fecha         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DATOS: cliente / empleado / período                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: columnas según el documento                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES                                                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorZebra   = &props.Color{Red: 240, Green: 244, Blue: 248}
	colorDanger  = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa los generadores de recibos (pos, nómina) y el
// exportador PDF de reportes.
type MarotoPDFGenerator struct {
	business string
	loc      *time.Location
}

// NewMarotoPDFGenerator construye el generador. business es el nombre impreso en el encabezado.
func NewMarotoPDFGenerator(business string, loc *time.Location) *MarotoPDFGenerator {
	if loc == nil {
		loc = time.UTC
	}
	return &MarotoPDFGenerator{business: business, loc: loc}
}

// newDocument crea un documento A4 con la configuración común.
func (g *MarotoPDFGenerator) newDocument(title string, landscape bool) core.Maroto {
	b := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(g.business, true)
	if landscape {
		b = b.WithOrientation(orientation.Horizontal)
	}
	return maroto.New(b.Build())
}

func render(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones comunes ─────────────────────────────────────────────────────────

// headerRow: nombre del negocio (izq) y título + referencia + fecha (der).
func (g *MarotoPDFGenerator) headerRow(title, reference string, date time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.business, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+time.Now().In(g.loc).Format("02/01/2006 15:04"), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(reference, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+date.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func separator(thickness float64) core.Row {
	return line.NewRow(1, props.Line{Color: colorPrimary, Thickness: thickness})
}

// sectionRow: título de sección con una línea de detalle en gris.
func sectionRow(title, detail string) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(detail, props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// column columna de una tabla; los tamaños de una tabla suman 12.
type column struct {
	label string
	size  int
	align align.Type
}

// tableHeaderRow: cabecera de la tabla con fondo azul.
func tableHeaderRow(cols []column) core.Row {
	cs := make([]core.Col, 0, len(cols))
	for _, c := range cols {
		cs = append(cs, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cs...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableRows: una fila por registro, con fondo alterno.
func tableRows(cols []column, values [][]string) []core.Row {
	result := make([]core.Row, 0, len(values))
	for i, vals := range values {
		cs := make([]core.Col, 0, len(cols))
		for j, c := range cols {
			v := ""
			if j < len(vals) {
				v = vals[j]
			}
			cs = append(cs, col.New(c.size).Add(text.New(v, props.Text{
				Size: 8, Align: c.align, Top: 1, Left: 1, Right: 1,
			})))
		}
		r := row.New(7).Add(cs...)
		if i%2 == 1 {
			r = r.WithStyle(&props.Cell{BackgroundColor: colorZebra})
		}
		result = append(result, r)
	}
	return result
}

// totalLine etiqueta y valor del bloque de totales; grand resalta la línea.
type totalLine struct {
	label string
	value string
	grand bool
}

// totalsRows: bloque de totales alineado a la derecha.
func totalsRows(lines []totalLine) []core.Row {
	out := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		ps := props.Text{Size: 9, Align: align.Right, Right: 1}
		if l.grand {
			ps = props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1}
		}
		lp := ps
		lp.Style = fontstyle.Bold
		lp.Right = 2
		out = append(out, row.New(6).Add(
			col.New(6),
			col.New(3).Add(text.New(l.label, lp)),
			col.New(3).Add(text.New(l.value, ps)),
		))
	}
	return out
}

// bannerRow: aviso centrado en color (p. ej. venta anulada).
func bannerRow(msg string, color *props.Color) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(msg, props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Center,
			Color: color, Top: 2,
		}),
	))
}

// noteRow: leyenda al pie.
func noteRow(msg string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 6.5, Color: colorGray, Top: 2}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
