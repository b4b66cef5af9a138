// Package sunat contiene las reglas de dominio de la factura electrónica SUNAT:
// cálculo de importes y validación previa al armado del XML.
package sunat

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturacion-sunat/internal/domain/entity"
	pkgsunat "github.com/jhoicas/facturacion-sunat/pkg/sunat"
)

// ComputeLine calcula los importes de una línea. Solo las líneas gravadas (10) llevan IGV.
func ComputeLine(l entity.InvoiceLine) entity.LineAmounts {
	ext := l.UnitValue.Mul(l.Quantity)
	out := entity.LineAmounts{
		Extension: ext,
		Tax:       decimal.Zero,
		UnitPrice: l.UnitValue,
		Percent:   decimal.Zero,
	}
	if l.AffectationCode != pkgsunat.AffectationGravado {
		return out
	}
	out.Tax = ext.Mul(pkgsunat.IGVRate)
	out.Percent = pkgsunat.IGVPercent
	if l.Quantity.IsPositive() {
		out.UnitPrice = l.UnitValue.Add(out.Tax.Div(l.Quantity).Round(2))
	}
	return out
}

// ComputeTotals suma las líneas por tipo de afectación. El IGV se calcula sobre la base
// gravada total y no como suma de IGV por línea.
func ComputeTotals(lines []entity.InvoiceLine) entity.TaxTotals {
	t := entity.TaxTotals{
		TaxableBase: decimal.Zero,
		Exempt:      decimal.Zero,
		Unaffected:  decimal.Zero,
		Export:      decimal.Zero,
	}
	for _, l := range lines {
		ext := l.UnitValue.Mul(l.Quantity)
		switch l.AffectationCode {
		case pkgsunat.AffectationGravado:
			t.TaxableBase = t.TaxableBase.Add(ext)
		case pkgsunat.AffectationExonerado:
			t.Exempt = t.Exempt.Add(ext)
		case pkgsunat.AffectationInafecto:
			t.Unaffected = t.Unaffected.Add(ext)
		case pkgsunat.AffectationExportacion:
			t.Export = t.Export.Add(ext)
		}
	}
	t.Tax = t.TaxableBase.Mul(pkgsunat.IGVRate)
	t.GrandTotal = t.TaxableBase.Add(t.Tax)
	return t
}

// DocumentNumber devuelve la referencia serie-correlativo (F001-123).
func DocumentNumber(req *entity.InvoiceRequest) string {
	return req.Series + "-" + strconv.FormatUint(req.Correlative, 10)
}
