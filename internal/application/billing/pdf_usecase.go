package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/facturacion-sunat/internal/application/dto"
	domsunat "github.com/jhoicas/facturacion-sunat/internal/domain/sunat"
	pkgsunat "github.com/jhoicas/facturacion-sunat/pkg/sunat"
)

// PDFUseCase genera la representación impresa de una factura a partir de la misma
// petición que se envía a SUNAT.
type PDFUseCase struct {
	invoices  *InvoiceUseCase
	generator InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(invoices *InvoiceUseCase, generator InvoicePDFGenerator) *PDFUseCase {
	return &PDFUseCase{invoices: invoices, generator: generator}
}

// GenerateInvoicePDF valida la petición, calcula importes y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien; filename = factura_{serie}_{correlativo}.pdf.
//   - domain.ErrInvalidInput si la petición no es válida.
//   - domain.ErrForbidden si el token no corresponde al emisor.
func (uc *PDFUseCase) GenerateInvoicePDF(ctx context.Context, authRUC string, in dto.FacturaRequest) ([]byte, string, error) {
	req, err := uc.invoices.Prepare(authRUC, in)
	if err != nil {
		return nil, "", err
	}

	lines := make([]InvoiceLineForPDF, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, InvoiceLineForPDF{InvoiceLine: l, Amounts: domsunat.ComputeLine(l)})
	}
	totals := domsunat.ComputeTotals(req.Lines)

	pdfBytes, err := uc.generator.GenerateInvoicePDF(ctx, &InvoicePDFData{
		Invoice:        req,
		Lines:          lines,
		Totals:         totals,
		DocumentNumber: domsunat.DocumentNumber(req),
		AmountInWords:  pkgsunat.AmountInWords(totals.GrandTotal, req.Currency),
		QRData:         domsunat.QRData(req, totals),
	})
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("factura_%s_%d.pdf", req.Series, req.Correlative), nil
}
