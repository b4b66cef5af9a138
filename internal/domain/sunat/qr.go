package sunat

import (
	"strings"

	"github.com/jhoicas/facturacion-sunat/internal/domain/entity"
	pkgsunat "github.com/jhoicas/facturacion-sunat/pkg/sunat"
)

// QRData contenido del código QR de la representación impresa:
//
//	RUC|TIPO|SERIE|NUMERO|IGV|TOTAL|FECHA|TIPO DOC ADQ|NUM DOC ADQ|
func QRData(req *entity.InvoiceRequest, totals entity.TaxTotals) string {
	return strings.Join([]string{
		req.Issuer.RUC,
		pkgsunat.DocumentTypeFactura,
		req.Series,
		strings.TrimPrefix(DocumentNumber(req), req.Series+"-"),
		totals.Tax.Round(2).StringFixed(2),
		totals.GrandTotal.Round(2).StringFixed(2),
		req.IssueDate.Format("2006-01-02"),
		req.Customer.IdentityType,
		req.Customer.DocumentNumber,
	}, "|") + "|"
}
