package sunat

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturacion-sunat/internal/domain"
	"github.com/jhoicas/facturacion-sunat/internal/domain/entity"
	domsunat "github.com/jhoicas/facturacion-sunat/internal/domain/sunat"
	pkgsunat "github.com/jhoicas/facturacion-sunat/pkg/sunat"
)

// XMLBuilderService construye el XML UBL 2.1 de la factura (sin firma).
// Es una función pura: la misma petición produce siempre los mismos bytes.
type XMLBuilderService struct{}

// NewXMLBuilderService crea el servicio.
func NewXMLBuilderService() *XMLBuilderService {
	return &XMLBuilderService{}
}

// Build genera el documento Invoice. El primer hijo es ext:UBLExtensions con un único
// ext:ExtensionContent vacío donde el empaquetador inserta la firma.
func (s *XMLBuilderService) Build(req *entity.InvoiceRequest) ([]byte, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: factura nula", domain.ErrInvalidInput)
	}
	totals := domsunat.ComputeTotals(req.Lines)
	cur := req.Currency
	issueDate := req.IssueDate.Format("2006-01-02")

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("Invoice")
	root.CreateAttr("xmlns", NsInvoice)
	root.CreateAttr("xmlns:cac", NsCac)
	root.CreateAttr("xmlns:cbc", NsCbc)
	root.CreateAttr("xmlns:ds", NsDs)
	root.CreateAttr("xmlns:ext", NsExt)

	// ---- ext:UBLExtensions siempre primero: placeholder de la firma
	root.CreateElement("ext:UBLExtensions").
		CreateElement("ext:UBLExtension").
		CreateElement("ext:ExtensionContent")

	// ---- Cabecera
	cbc(root, "UBLVersionID", "2.1")
	cbc(root, "CustomizationID", "2.0")
	cbc(root, "ID", domsunat.DocumentNumber(req))
	cbc(root, "IssueDate", issueDate)
	cbc(root, "IssueTime", "00:00:00")
	cbc(root, "DueDate", issueDate)
	cbc(root, "InvoiceTypeCode", pkgsunat.DocumentTypeFactura).
		CreateAttr("listID", pkgsunat.OperationTypeVentaInterna)
	cbcCData(root, "Note", pkgsunat.AmountInWords(totals.GrandTotal, cur)).
		CreateAttr("languageLocaleID", pkgsunat.LegendMontoEnLetras)
	cbc(root, "DocumentCurrencyCode", cur)

	writeSignatureReference(root, req.Issuer)
	writeSupplierParty(root, req.Issuer)
	writeCustomerParty(root, req.Customer)
	writeTaxTotal(root, totals, cur)

	// ---- cac:LegalMonetaryTotal
	lmt := root.CreateElement("cac:LegalMonetaryTotal")
	amount(lmt, "LineExtensionAmount", totals.TaxableBase, cur)
	amount(lmt, "TaxInclusiveAmount", totals.GrandTotal, cur)
	amount(lmt, "PayableAmount", totals.GrandTotal, cur)

	// ---- cac:InvoiceLine en el orden recibido
	for _, l := range req.Lines {
		writeInvoiceLine(root, l, cur)
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("sunat: serializar XML: %w", err)
	}
	return out, nil
}

const cdataEnd = "]]>"

// formatDecimal redondea a 2 decimales (mitad hacia arriba) para el XML.
func formatDecimal(d decimal.Decimal) string {
	return d.Round(2).StringFixed(2)
}

// cbc crea un elemento cbc:*. Un valor vacío deja el elemento sin hijos (<cbc:X/>).
func cbc(parent *etree.Element, local, value string) *etree.Element {
	e := parent.CreateElement("cbc:" + local)
	if value != "" {
		e.SetText(value)
	}
	return e
}

// cbcCData crea un elemento cbc:* con el valor en CDATA. Un valor que contiene "]]>"
// no cabe en una sección CDATA y se escribe como texto escapado.
func cbcCData(parent *etree.Element, local, value string) *etree.Element {
	e := parent.CreateElement("cbc:" + local)
	switch {
	case value == "":
	case strings.Contains(value, cdataEnd):
		e.SetText(value)
	default:
		e.SetCData(value)
	}
	return e
}

func amount(parent *etree.Element, local string, value decimal.Decimal, currency string) {
	cbc(parent, local, formatDecimal(value)).CreateAttr("currencyID", currency)
}

// writeSignatureReference cac:Signature: referencia #SignatureSP al nodo ds:Signature.
func writeSignatureReference(root *etree.Element, issuer entity.Issuer) {
	sig := root.CreateElement("cac:Signature")
	cbc(sig, "ID", issuer.RUC)
	cbcCData(sig, "Note", issuer.TradeName)
	party := sig.CreateElement("cac:SignatoryParty")
	cbc(party.CreateElement("cac:PartyIdentification"), "ID", issuer.RUC)
	cbcCData(party.CreateElement("cac:PartyName"), "Name", issuer.LegalName)
	ref := sig.CreateElement("cac:DigitalSignatureAttachment").CreateElement("cac:ExternalReference")
	cbc(ref, "URI", "#"+SignatureElementID)
}

func writeSupplierParty(root *etree.Element, issuer entity.Issuer) {
	party := root.CreateElement("cac:AccountingSupplierParty").CreateElement("cac:Party")
	cbc(party.CreateElement("cac:PartyIdentification"), "ID", issuer.RUC).
		CreateAttr("schemeID", pkgsunat.IdentityTypeRUC)
	cbcCData(party.CreateElement("cac:PartyName"), "Name", issuer.TradeName)

	legal := party.CreateElement("cac:PartyLegalEntity")
	cbcCData(legal, "RegistrationName", issuer.LegalName)
	addr := legal.CreateElement("cac:RegistrationAddress")
	cbc(addr, "ID", issuer.Ubigeo)
	cbc(addr, "AddressTypeCode", "0000")
	cbc(addr, "CitySubdivisionName", "NONE")
	cbc(addr, "CityName", issuer.Province)
	cbc(addr, "CountrySubentity", issuer.Department)
	cbc(addr, "District", issuer.District)
	cbcCData(addr.CreateElement("cac:AddressLine"), "Line", issuer.Address)
	cbc(addr.CreateElement("cac:Country"), "IdentificationCode", "PE")
}

func writeCustomerParty(root *etree.Element, c entity.Customer) {
	party := root.CreateElement("cac:AccountingCustomerParty").CreateElement("cac:Party")
	cbc(party.CreateElement("cac:PartyIdentification"), "ID", c.DocumentNumber).
		CreateAttr("schemeID", c.IdentityType)

	legal := party.CreateElement("cac:PartyLegalEntity")
	cbcCData(legal, "RegistrationName", c.LegalName)
	addr := legal.CreateElement("cac:RegistrationAddress")
	cbcCData(addr.CreateElement("cac:AddressLine"), "Line", c.Address)
	cbc(addr.CreateElement("cac:Country"), "IdentificationCode", "PE")
}

// writeTaxTotal IGV sobre la base gravada; las operaciones exoneradas, inafectas y de
// exportación se informan como subtotales con monto de impuesto cero.
func writeTaxTotal(root *etree.Element, t entity.TaxTotals, cur string) {
	tt := root.CreateElement("cac:TaxTotal")
	amount(tt, "TaxAmount", t.Tax, cur)
	writeTaxSubtotal(tt, t.TaxableBase, t.Tax, pkgsunat.SchemeIGV, cur)
	if t.Exempt.IsPositive() {
		writeTaxSubtotal(tt, t.Exempt, decimal.Zero, pkgsunat.SchemeExonerado, cur)
	}
	if t.Unaffected.IsPositive() {
		writeTaxSubtotal(tt, t.Unaffected, decimal.Zero, pkgsunat.SchemeInafecto, cur)
	}
	if t.Export.IsPositive() {
		writeTaxSubtotal(tt, t.Export, decimal.Zero, pkgsunat.SchemeExportacion, cur)
	}
}

func writeTaxSubtotal(tt *etree.Element, taxable, tax decimal.Decimal, scheme pkgsunat.TaxScheme, cur string) {
	sub := tt.CreateElement("cac:TaxSubtotal")
	amount(sub, "TaxableAmount", taxable, cur)
	amount(sub, "TaxAmount", tax, cur)
	writeTaxScheme(sub.CreateElement("cac:TaxCategory"), scheme)
}

func writeTaxScheme(category *etree.Element, scheme pkgsunat.TaxScheme) {
	ts := category.CreateElement("cac:TaxScheme")
	cbc(ts, "ID", scheme.ID)
	cbc(ts, "Name", scheme.Name)
	cbc(ts, "TaxTypeCode", scheme.TypeCode)
}

func writeInvoiceLine(root *etree.Element, l entity.InvoiceLine, cur string) {
	a := domsunat.ComputeLine(l)
	scheme := pkgsunat.SchemeIGV
	if aff, ok := pkgsunat.LookupAffectation(l.AffectationCode); ok {
		scheme = aff.Scheme
	}

	line := root.CreateElement("cac:InvoiceLine")
	cbc(line, "ID", strconv.Itoa(l.Position))
	cbc(line, "InvoicedQuantity", l.Quantity.String()).CreateAttr("unitCode", l.UnitCode)
	amount(line, "LineExtensionAmount", a.Extension, cur)

	acp := line.CreateElement("cac:PricingReference").CreateElement("cac:AlternativeConditionPrice")
	amount(acp, "PriceAmount", a.UnitPrice, cur)
	cbc(acp, "PriceTypeCode", pkgsunat.PriceTypePrecioUnitario)

	tt := line.CreateElement("cac:TaxTotal")
	amount(tt, "TaxAmount", a.Tax, cur)
	sub := tt.CreateElement("cac:TaxSubtotal")
	amount(sub, "TaxableAmount", a.Extension, cur)
	amount(sub, "TaxAmount", a.Tax, cur)
	category := sub.CreateElement("cac:TaxCategory")
	cbc(category, "Percent", formatDecimal(a.Percent))
	cbc(category, "TaxExemptionReasonCode", l.AffectationCode)
	writeTaxScheme(category, scheme)

	item := line.CreateElement("cac:Item")
	cbcCData(item, "Description", l.Description)
	cbc(item.CreateElement("cac:SellersItemIdentification"), "ID", l.ProductCode)

	amount(line.CreateElement("cac:Price"), "PriceAmount", l.UnitValue, cur)
}
