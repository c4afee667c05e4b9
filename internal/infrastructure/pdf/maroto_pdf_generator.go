// Package pdf genera el comprobante de venta del mostrador.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la tienda  │  Venta N° + Fecha            │
//	│  CLIENTE / FORMA DE PAGO / ESTADO                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | P.Unit | Subtotal                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Bruto / Descuento / TOTAL                          │
//	│  Leyenda: documento sin valor fiscal                         │
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
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/petshop-api/internal/application/reports"
	"github.com/jhoicas/petshop-api/internal/domain/entity"
)

var _ reports.ReceiptGenerator = (*MarotoReceiptGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 110, Blue: 90}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

var paymentLabels = map[string]string{
	entity.PaymentCash:       "Dinheiro",
	entity.PaymentCard:       "Cartão",
	entity.PaymentPix:        "PIX",
	entity.PaymentCreditTerm: "Fiado",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReceiptGenerator implementa reports.ReceiptGenerator usando Maroto v2.
type MarotoReceiptGenerator struct {
	printer *message.Printer
}

// NewMarotoReceiptGenerator construye el generador con formato de moneda brasileño.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator {
	return &MarotoReceiptGenerator{printer: message.NewPrinter(language.BrazilianPortuguese)}
}

// GenerateReceipt genera el PDF y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceipt(_ context.Context, data reports.ReceiptData) ([]byte, error) {
	if data.Sale == nil {
		return nil, fmt.Errorf("pdf: venta requerida")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Venda #"+data.Sale.Number, true).
		WithAuthor(data.StoreName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.customerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(g.tableDetailRows(data.Lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(data.Sale))

	m.AddRows(line.NewRow(3))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("Documento sem valor fiscal. Obrigado pela preferência!", props.Text{
			Size: 7, Align: align.Center, Color: colorGray, Top: 2,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la tienda (izq) y número de venta + fecha (der).
func (g *MarotoReceiptGenerator) headerRow(data reports.ReceiptData) core.Row {
	title := "COMPROVANTE DE VENDA"
	titleColor := colorPrimary
	if data.Sale.Status == entity.SaleStatusCancelled {
		title = "VENDA CANCELADA"
		titleColor = colorAlert
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(data.StoreName, "Pet Shop"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: titleColor, Top: 1,
			}),
			text.New("Nº "+data.Sale.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Data: "+data.Sale.SoldAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// customerRow: cliente y forma de pago.
func (g *MarotoReceiptGenerator) customerRow(data reports.ReceiptData) core.Row {
	return row.New(12).Add(
		col.New(8).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(data.CustomerName, "Consumidor final"), props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
		),
		col.New(4).Add(
			text.New("PAGAMENTO", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(paymentLabels[data.Sale.PaymentType], data.Sale.PaymentType), props.Text{
				Size: 10, Align: align.Right, Top: 6,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qtd.", 2, align.Center),
		h("Produto", 5, align.Left),
		h("Preço Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableDetailRows: una fila por línea de venta.
func (g *MarotoReceiptGenerator) tableDetailRows(lines []reports.ReceiptLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				formatQuantity(l.Quantity, l.UnitMeasure),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				l.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				g.money(l.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				g.money(l.Subtotal),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func (g *MarotoReceiptGenerator) totalsRow(sale *entity.Sale) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(22).Add(
		col.New(6),
		col.New(3).Add(
			label("Bruto:"),
			text.New("Desconto:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 6}),
			text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 12}),
		),
		col.New(3).Add(
			value(g.money(sale.GrossTotal), 0),
			value("- "+g.money(sale.Discount), 6),
			text.New(g.money(sale.NetTotal), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 12,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// money formatea en reales: 1234.5 → "R$ 1.234,50".
func (g *MarotoReceiptGenerator) money(v decimal.Decimal) string {
	return FormatBRL(g.printer, v)
}

// FormatBRL formatea v con separadores brasileños usando p.
func FormatBRL(p *message.Printer, v decimal.Decimal) string {
	return p.Sprintf("R$ %.2f", v.Round(2).InexactFloat64())
}

// formatQuantity muestra enteros sin decimales y pesables con hasta 3.
func formatQuantity(q decimal.Decimal, unit string) string {
	s := q.String()
	if !q.IsInteger() {
		s = q.StringFixed(3)
	}
	if unit != "" && unit != "un" {
		return s + " " + unit
	}
	return s
}
