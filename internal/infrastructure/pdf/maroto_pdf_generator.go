// Package pdf implementa la representación impresa de la factura electrónica SUNAT.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razón social + dirección │ RUC / FACTURA / F001-1  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ADQUIRIENTE: Razón social + documento + dirección + fecha  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Unid | Descripción | V.Unit | P.Unit | Valor │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SON: importe en letras                                     │
//	│  TOTALES: Op. gravadas / exoneradas / inafectas / IGV       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR + leyenda                                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	appbilling "github.com/jhoicas/facturacion-sunat/internal/application/billing"
	"github.com/jhoicas/facturacion-sunat/internal/domain"
	"github.com/jhoicas/facturacion-sunat/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 160, Green: 20, Blue: 30}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(_ context.Context, data *appbilling.InvoicePDFData) ([]byte, error) {
	if data == nil || data.Invoice == nil {
		return nil, fmt.Errorf("%w: datos de factura nulos", domain.ErrInvalidInput)
	}
	inv := data.Invoice
	cur := inv.Currency

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura Electrónica "+data.DocumentNumber, true).
		WithAuthor(inv.Issuer.LegalName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(inv.Issuer, data.DocumentNumber))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(data.Lines, cur) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(amountInWordsRow(data.AmountInWords))
	m.AddRows(totalsRow(data.Totals, cur))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(data.QRData))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: emisor (izq) y recuadro RUC / FACTURA ELECTRÓNICA / número (der).
func headerRow(issuer entity.Issuer, docNumber string) core.Row {
	location := strings.Join(nonEmptyParts(issuer.District, issuer.Province, issuer.Department), " - ")
	return row.New(22).Add(
		col.New(7).Add(
			text.New(nonEmpty(issuer.TradeName, issuer.LegalName), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(issuer.LegalName, props.Text{Size: 9, Top: 8}),
			text.New(nonEmpty(issuer.Address, "-"), props.Text{Size: 8, Top: 13, Color: colorGray}),
			text.New(location, props.Text{Size: 8, Top: 17, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("R.U.C. "+issuer.RUC, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Center, Top: 1,
			}),
			text.New("FACTURA ELECTRÓNICA", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Center, Color: colorPrimary, Top: 8,
			}),
			text.New(docNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Center, Top: 15,
			}),
		),
	)
}

// customerRow: datos del adquiriente y del comprobante.
func customerRow(inv *entity.InvoiceRequest) core.Row {
	c := inv.Customer
	return row.New(18).Add(
		col.New(8).Add(
			text.New("ADQUIRIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(c.LegalName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("%s: %s", identityLabel(c.IdentityType), c.DocumentNumber), props.Text{
				Size: 8, Top: 11, Color: colorGray,
			}),
			text.New("Dirección: "+nonEmpty(c.Address, "-"), props.Text{Size: 8, Top: 15, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Fecha de emisión: "+inv.IssueDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 6,
			}),
			text.New("Moneda: "+inv.Currency, props.Text{Size: 8, Align: align.Right, Top: 11}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de detalle.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Unid.", 1, align.Center),
		h("Descripción", 4, align.Left),
		h("Valor Unit.", 2, align.Right),
		h("Precio Unit.", 2, align.Right),
		h("Valor Venta", 2, align.Right),
	)
}

// tableDetailRows: una fila por línea, en el orden de la factura.
func tableDetailRows(lines []appbilling.InvoiceLineForPDF, cur string) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(l.Quantity.String(), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(l.UnitCode, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(4).Add(text.New(l.Description, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(money(l.UnitValue, cur), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(money(l.Amounts.UnitPrice, cur), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(money(l.Amounts.Extension, cur), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func amountInWordsRow(words string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New("SON: "+words, props.Text{Style: fontstyle.Bold, Size: 8, Top: 2}),
	))
}

// totalsRow: bloque de totales alineado a la derecha. Solo se listan las
// operaciones no gravadas cuando tienen importe.
func totalsRow(t entity.TaxTotals, cur string) core.Row {
	type entry struct {
		label string
		value decimal.Decimal
	}
	entries := []entry{{"Op. Gravadas:", t.TaxableBase}}
	for _, e := range []entry{
		{"Op. Exoneradas:", t.Exempt},
		{"Op. Inafectas:", t.Unaffected},
		{"Op. Exportación:", t.Export},
	} {
		if e.value.IsPositive() {
			entries = append(entries, e)
		}
	}
	entries = append(entries, entry{"IGV (18%):", t.Tax})

	labels := make([]core.Component, 0, len(entries)+1)
	values := make([]core.Component, 0, len(entries)+1)
	for i, e := range entries {
		top := float64(i * 5)
		labels = append(labels, text.New(e.label, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top,
		}))
		values = append(values, text.New(money(e.value, cur), props.Text{
			Size: 9, Align: align.Right, Right: 1, Top: top,
		}))
	}
	top := float64(len(entries) * 5)
	labels = append(labels, text.New("IMPORTE TOTAL:", props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: top,
	}))
	values = append(values, text.New(money(t.GrandTotal, cur), props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: top,
	}))

	return row.New(top+8).Add(
		col.New(6),
		col.New(3).Add(labels...),
		col.New(3).Add(values...),
	)
}

// footerRow: QR con el resumen del comprobante y leyenda.
func footerRow(qr string) core.Row {
	legend := text.New("Representación impresa de la FACTURA ELECTRÓNICA.\n"+
		"Consulte su validez en www.sunat.gob.pe", props.Text{
		Size: 8, Top: 6, Left: 3, Color: colorGray,
	})
	if qr == "" {
		return row.New(14).Add(col.New(12).Add(legend))
	}
	return row.New(36).Add(
		col.New(3).Add(code.NewQr(qr, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(legend),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func identityLabel(code string) string {
	switch code {
	case "6":
		return "RUC"
	case "1":
		return "DNI"
	case "4":
		return "C.E."
	case "7":
		return "Pasaporte"
	default:
		return "Doc."
	}
}

func currencySymbol(cur string) string {
	switch cur {
	case "PEN":
		return "S/ "
	case "USD":
		return "US$ "
	case "EUR":
		return "€ "
	default:
		return cur + " "
	}
}

// money formatea con 2 decimales y separador de miles: 1234.5 → "S/ 1,234.50".
func money(d decimal.Decimal, cur string) string {
	return currencySymbol(cur) + formatMoney(d.Round(2).StringFixed(2))
}

// formatMoney inserta comas de miles en la parte entera de un número con punto decimal.
// Ej: "25000.00" → "25,000.00", "-1000000.5" → "-1,000,000.5"
func formatMoney(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	n := len(intPart)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + frac
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func nonEmptyParts(parts ...string) []string {
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
