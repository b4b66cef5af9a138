package sunat_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/facturacion-sunat/internal/domain/entity"
	"github.com/jhoicas/facturacion-sunat/internal/domain/sunat"
	pkgsunat "github.com/jhoicas/facturacion-sunat/pkg/sunat"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func taxedLine(pos int, qty, value string) entity.InvoiceLine {
	return entity.InvoiceLine{
		Position:        pos,
		ProductCode:     "P00" + string(rune('0'+pos)),
		Description:     "Producto de prueba",
		Quantity:        d(qty),
		UnitValue:       d(value),
		AffectationCode: pkgsunat.AffectationGravado,
		UnitCode:        pkgsunat.UnitUnidad,
	}
}

// ── Totales ─────────────────────────────────────────────────────────────────

func TestComputeTotals_UnaLineaGravada(t *testing.T) {
	totals := sunat.ComputeTotals([]entity.InvoiceLine{taxedLine(1, "1", "100.00")})

	assert.Equal(t, "100.00", totals.TaxableBase.StringFixed(2))
	assert.Equal(t, "18.00", totals.Tax.StringFixed(2))
	assert.Equal(t, "118.00", totals.GrandTotal.StringFixed(2))
}

func TestComputeTotals_GrandTotalEsBasePorUnoDieciocho(t *testing.T) {
	lines := []entity.InvoiceLine{
		taxedLine(1, "3", "12.345"),
		taxedLine(2, "0.5", "7.99"),
		taxedLine(3, "17", "0.33"),
	}
	totals := sunat.ComputeTotals(lines)

	expected := totals.TaxableBase.Mul(d("1.18")).Round(2)
	assert.True(t, expected.Equal(totals.GrandTotal.Round(2)),
		"grand total %s debe ser base × 1.18 = %s", totals.GrandTotal, expected)
}

func TestComputeTotals_SumaDeLineasIgualABaseSinDeriva(t *testing.T) {
	lines := []entity.InvoiceLine{
		taxedLine(1, "3", "0.333"),
		taxedLine(2, "7", "1.111"),
		taxedLine(3, "1", "0.005"),
	}
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(sunat.ComputeLine(l).Extension)
	}
	totals := sunat.ComputeTotals(lines)
	assert.True(t, sum.Equal(totals.TaxableBase), "suma %s != base %s", sum, totals.TaxableBase)
}

func TestComputeTotals_AfectacionesNoGravadas(t *testing.T) {
	exo := taxedLine(2, "2", "10")
	exo.AffectationCode = pkgsunat.AffectationExonerado
	ina := taxedLine(3, "1", "5")
	ina.AffectationCode = pkgsunat.AffectationInafecto
	exp := taxedLine(4, "1", "7.5")
	exp.AffectationCode = pkgsunat.AffectationExportacion

	totals := sunat.ComputeTotals([]entity.InvoiceLine{taxedLine(1, "1", "50"), exo, ina, exp})

	assert.Equal(t, "50.00", totals.TaxableBase.StringFixed(2))
	assert.Equal(t, "9.00", totals.Tax.StringFixed(2))
	assert.Equal(t, "59.00", totals.GrandTotal.StringFixed(2))
	assert.Equal(t, "20.00", totals.Exempt.StringFixed(2))
	assert.Equal(t, "5.00", totals.Unaffected.StringFixed(2))
	assert.Equal(t, "7.50", totals.Export.StringFixed(2))
}

// ── Líneas ──────────────────────────────────────────────────────────────────

func TestComputeLine_PrecioUnitarioConIGV(t *testing.T) {
	amounts := sunat.ComputeLine(taxedLine(1, "3", "10"))

	assert.Equal(t, "30.00", amounts.Extension.StringFixed(2))
	assert.Equal(t, "5.40", amounts.Tax.StringFixed(2))
	assert.Equal(t, "11.80", amounts.UnitPrice.StringFixed(2))
	assert.Equal(t, "18", amounts.Percent.String())
}

func TestComputeLine_ExoneradaSinIGV(t *testing.T) {
	l := taxedLine(1, "2", "10")
	l.AffectationCode = pkgsunat.AffectationExonerado
	amounts := sunat.ComputeLine(l)

	assert.True(t, amounts.Tax.IsZero())
	assert.Equal(t, "10.00", amounts.UnitPrice.StringFixed(2))
	assert.True(t, amounts.Percent.IsZero())
}

func TestDocumentNumber(t *testing.T) {
	req := &entity.InvoiceRequest{Series: "F001", Correlative: 123, IssueDate: time.Now()}
	assert.Equal(t, "F001-123", sunat.DocumentNumber(req))
}

func TestQRData(t *testing.T) {
	req := &entity.InvoiceRequest{
		Issuer:      entity.Issuer{RUC: "20131312955"},
		Customer:    entity.Customer{IdentityType: pkgsunat.IdentityTypeRUC, DocumentNumber: "20000000001"},
		Series:      "F001",
		Correlative: 42,
		IssueDate:   time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Lines:       []entity.InvoiceLine{taxedLine(1, "1", "100")},
	}
	got := sunat.QRData(req, sunat.ComputeTotals(req.Lines))

	assert.Equal(t, "20131312955|01|F001|42|18.00|118.00|2024-03-15|6|20000000001|", got)
}
