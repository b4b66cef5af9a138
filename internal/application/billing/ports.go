package billing

import (
	"context"

	"github.com/jhoicas/facturacion-sunat/internal/domain/entity"
	infrasunat "github.com/jhoicas/facturacion-sunat/internal/infrastructure/sunat"
)

// DocumentBuilder arma el XML UBL 2.1 sin firma.
type DocumentBuilder interface {
	Build(req *entity.InvoiceRequest) ([]byte, error)
}

// DocumentPackager inserta la firma, comprime y codifica el XML.
type DocumentPackager interface {
	Package(unsigned []byte, req *entity.InvoiceRequest) (*infrasunat.PackagedDocument, error)
}

// EnvelopeBuilder arma el sobre SOAP sendBill.
type EnvelopeBuilder interface {
	BuildSendBill(doc *infrasunat.PackagedDocument, issuer entity.Issuer) (string, error)
}

// SunatSender transporte hacia billService. Los reintentos son responsabilidad suya.
type SunatSender interface {
	Send(ctx context.Context, envelope string) ([]byte, error)
}

// ResponseInterpreter convierte el cuerpo crudo en un resultado tipado.
type ResponseInterpreter interface {
	Interpret(raw []byte, pkg *infrasunat.PackagedDocument, documentNumber string) (entity.SubmissionResult, error)
}

// InvoiceSubmitter ejecuta el pipeline completo. Nunca falla: todo error termina
// en un SubmissionResult con Success=false.
type InvoiceSubmitter interface {
	Submit(ctx context.Context, req *entity.InvoiceRequest) entity.SubmissionResult
}

// InvoicePDFGenerator genera la representación impresa.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, data *InvoicePDFData) ([]byte, error)
}

// InvoicePDFData datos ya calculados para la representación impresa.
type InvoicePDFData struct {
	Invoice        *entity.InvoiceRequest
	Lines          []InvoiceLineForPDF
	Totals         entity.TaxTotals
	DocumentNumber string // F001-123
	AmountInWords  string
	QRData         string
}

// InvoiceLineForPDF línea con sus importes calculados.
type InvoiceLineForPDF struct {
	entity.InvoiceLine
	Amounts entity.LineAmounts
}
