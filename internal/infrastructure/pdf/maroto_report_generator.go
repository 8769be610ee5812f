// Package pdf genera los reportes tabulares del almacén en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte          │  Período / fecha      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: cabecera con fondo + una fila por registro           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de filas                                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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

	"github.com/jhoicas/kitchen-inventory-api/internal/application/analytics"
	"github.com/jhoicas/kitchen-inventory-api/internal/application/dto"
)

var _ analytics.ReportRenderer = (*MarotoReportGenerator)(nil)

const gridSize = 12

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa analytics.ReportRenderer usando Maroto v2.
type MarotoReportGenerator struct {
	author string
}

// NewMarotoReportGenerator construye el generador. author se usa como metadato del PDF.
func NewMarotoReportGenerator(author string) *MarotoReportGenerator {
	return &MarotoReportGenerator{author: author}
}

// Render genera el PDF (A4 horizontal) y devuelve sus bytes.
func (g *MarotoReportGenerator) Render(ctx context.Context, report dto.Report) ([]byte, error) {
	if len(report.Headers) == 0 {
		return nil, fmt.Errorf("pdf: reporte sin columnas")
	}
	if len(report.Headers) > gridSize {
		return nil, fmt.Errorf("pdf: máximo %d columnas, recibidas %d", gridSize, len(report.Headers))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(report.Title, true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)
	widths := columnWidths(len(report.Headers))

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(row.New(3))

	m.AddRows(tableHeaderRow(report.Headers, widths))
	m.AddRows(tableRows(report.Rows, widths)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRow(len(report.Rows)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y período (der).
func headerRow(report dto.Report) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(report.Title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New(report.Period, props.Text{
				Size: 9, Align: align.Right, Color: colorGray, Top: 4,
			}),
		),
	)
}

func tableHeaderRow(headers []string, widths []int) core.Row {
	cols := make([]core.Col, 0, len(headers))
	for i, h := range headers {
		cols = append(cols, col.New(widths[i]).Add(text.New(h, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableRows: una fila por registro, con fondo alterno. Celdas faltantes quedan vacías.
func tableRows(rows [][]string, widths []int) []core.Row {
	out := make([]core.Row, 0, len(rows))
	for n, values := range rows {
		cols := make([]core.Col, 0, len(widths))
		for i, w := range widths {
			c := col.New(w)
			if i < len(values) {
				c = c.Add(text.New(values[i], props.Text{Size: 8, Top: 1.5, Left: 1, Right: 1}))
			}
			cols = append(cols, c)
		}
		r := row.New(7).Add(cols...)
		if n%2 == 1 {
			r = r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		out = append(out, r)
	}
	return out
}

func footerRow(total int) core.Row {
	return row.New(8).Add(col.New(gridSize).Add(
		text.New(fmt.Sprintf("Total de registros: %d", total), props.Text{
			Size: 8, Style: fontstyle.Italic, Color: colorGray, Top: 2,
		}),
	))
}

// columnWidths reparte la grilla de 12 entre n columnas; las primeras reciben el sobrante.
func columnWidths(n int) []int {
	base, extra := gridSize/n, gridSize%n
	widths := make([]int, n)
	for i := range widths {
		widths[i] = base
		if i < extra {
			widths[i]++
		}
	}
	return widths
}
