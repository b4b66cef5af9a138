package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Issuer emisor del comprobante (AccountingSupplierParty) con sus credenciales SOL.
type Issuer struct {
	RUC         string
	LegalName   string
	TradeName   string
	Address     string
	Ubigeo      string
	Department  string
	Province    string
	District    string
	SOLUser     string
	SOLPassword string
}

// Customer adquirente (AccountingCustomerParty).
type Customer struct {
	IdentityType   string // catálogo 06: 6 = RUC, 1 = DNI...
	DocumentNumber string
	LegalName      string
	Address        string
}

// InvoiceLine línea de la factura. Position es 1-based y define el orden en el XML.
type InvoiceLine struct {
	Position        int
	ProductCode     string
	Description     string
	Quantity        decimal.Decimal
	UnitValue       decimal.Decimal // valor unitario sin IGV
	AffectationCode string          // catálogo 07
	UnitCode        string          // catálogo 03 (NIU, ZZ, KGM...)
}

// InvoiceRequest datos completos de una factura (tipo 01) a enviar. La unicidad de
// serie-correlativo por emisor es responsabilidad del llamador.
type InvoiceRequest struct {
	Issuer      Issuer
	Customer    Customer
	Series      string // F001
	Correlative uint64
	IssueDate   time.Time
	Currency    string // ISO 4217
	Lines       []InvoiceLine
}

// TaxTotals totales calculados de la factura. Se guardan sin redondear; el redondeo
// a 2 decimales ocurre al serializar.
type TaxTotals struct {
	TaxableBase decimal.Decimal // gravadas (código 10)
	Tax         decimal.Decimal // IGV
	GrandTotal  decimal.Decimal // TaxableBase + Tax
	Exempt      decimal.Decimal // exoneradas (20)
	Unaffected  decimal.Decimal // inafectas (30)
	Export      decimal.Decimal // exportación (40)
}

// LineAmounts importes derivados de una línea.
type LineAmounts struct {
	Extension decimal.Decimal // UnitValue * Quantity
	Tax       decimal.Decimal // Extension * 0.18 si gravada, 0 en otro caso
	UnitPrice decimal.Decimal // UnitValue + round2(Tax / Quantity)
	Percent   decimal.Decimal // 18 o 0
}

// SubmissionResult resultado final de un envío; nunca se persiste.
type SubmissionResult struct {
	Success        bool
	Code           string
	Description    string
	SignedXML      string
	CDR            string // base64 del applicationResponse, vacío si falló
	Hash           string
	Digest         string // SHA-256 (base64) C14N del XML sin firma
	DocumentNumber string
}
