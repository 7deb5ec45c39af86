// Package pdf implementa la generación del reporte de inventario imprimible.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del negocio  │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: totales por estado + valuación del inventario     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Cat | Stock | Mín | Máx | P.Unit | Estado │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ALERTAS: productos bajos o agotados con cantidad sugerida  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
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
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/estebancaso/abasto-api/internal/application/analytics"
	"github.com/estebancaso/abasto-api/internal/application/dto"
	"github.com/estebancaso/abasto-api/internal/domain/stock"
)

// Verificar en tiempo de compilación que implementa el puerto.
var _ analytics.InventoryReportPDFGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorLow     = &props.Color{Red: 200, Green: 120, Blue: 0}
	colorOut     = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa analytics.InventoryReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateInventoryReport genera el PDF del reporte y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateInventoryReport(
	_ context.Context,
	profileName string,
	summary *dto.InventorySummaryDTO,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Inventario", true).
		WithAuthor(profileName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(profileName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(summary.Rows) {
		m.AddRows(r)
	}

	if len(summary.Alerts) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		for _, r := range alertRows(summary.Alerts) {
			m.AddRows(r)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del negocio (izq) y fecha de generación (der).
func headerRow(profileName string) core.Row {
	fecha := time.Now().Format("02/01/2006 15:04")

	return row.New(16).Add(
		col.New(7).Add(
			text.New(profileName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de inventario", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generado: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// summaryRow: conteos por estado y valuación total.
func summaryRow(s *dto.InventorySummaryDTO) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("RESUMEN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf(
				"Productos: %d   |   Bien: %d   |   Bajos: %d   |   Agotados: %d   |   Valuación: $%s",
				s.TotalProducts, s.GoodCount, s.LowCount, s.OutCount,
				formatMoney(s.TotalValuation.StringFixed(0)),
			), props.Text{Size: 9, Top: 7}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de productos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 4, align.Left),
		h("Categoría", 2, align.Left),
		h("Stock", 1, align.Right),
		h("Mín", 1, align.Right),
		h("Máx", 1, align.Right),
		h("P.Unit", 2, align.Right),
		h("Estado", 1, align.Center),
	)
}

// tableRows: una fila por producto, con el estado coloreado.
func tableRows(rows []dto.InventoryReportRow) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(r.Name, props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 1,
			})),
			col.New(2).Add(text.New(r.Category, props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 1, Color: colorGray,
			})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", r.Current), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", r.Min), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1, Color: colorGray,
			})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", r.Max), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1, Color: colorGray,
			})),
			col.New(2).Add(text.New("$"+formatMoney(r.UnitPrice.StringFixed(0)), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(1).Add(text.New(statusLabel(r.StockStatus), props.Text{
				Style: fontstyle.Bold, Size: 7, Align: align.Center, Top: 1,
				Color: statusColor(r.StockStatus),
			})),
		))
	}
	return result
}

// alertRows: productos bajos o agotados con la primera cantidad sugerida.
func alertRows(alerts []dto.StockAlertDTO) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("PRODUCTOS POR REABASTECER", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	for _, a := range alerts {
		c := colorLow
		if a.Type == "out_of_stock" {
			c = colorOut
		}
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(fmt.Sprintf("%s  (stock %d, mínimo %d)",
				a.ProductName, a.Current, a.Min,
			), props.Text{Size: 8, Top: 0.5, Left: 2, Color: c}),
		)))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func statusLabel(status string) string {
	switch stock.Status(status) {
	case stock.StatusOut:
		return "AGOTADO"
	case stock.StatusLow:
		return "BAJO"
	default:
		return "BIEN"
	}
}

func statusColor(status string) *props.Color {
	switch stock.Status(status) {
	case stock.StatusOut:
		return colorOut
	case stock.StatusLow:
		return colorLow
	default:
		return colorGray
	}
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
