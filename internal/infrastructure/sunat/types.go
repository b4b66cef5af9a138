// Package sunat implementa el armado, empaquetado y envío de la factura electrónica
// UBL 2.1 al servicio billService de SUNAT (Perú).
package sunat

// Namespaces UBL 2.1 usados por SUNAT.
const (
	// Namespace por defecto (UBL Invoice)
	NsInvoice = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	// Common Aggregate Components
	NsCac = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	// Common Basic Components
	NsCbc = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"
	// Extension Components
	NsExt = "urn:oasis:names:specification:ubl:schema:xsd:CommonExtensionComponents-2"
	// XML Digital Signature
	NsDs = "http://www.w3.org/2000/09/xmldsig#"
)

// SignatureElementID Id del nodo ds:Signature; cac:Signature lo referencia como #SignatureSP.
const SignatureElementID = "SignatureSP"

// ArchiveEntryName nombre fijo del único archivo dentro del ZIP.
const ArchiveEntryName = "documento.xml"

// PackagedDocument documento listo para transmitir.
type PackagedDocument struct {
	SignedXML string // XML con el bloque de firma insertado
	Hash      string // referencia de la firma simulada (DigestValue)
	FileName  string // {ruc}-01-{serie}-{correlativo}.ZIP
	ZipBase64 string // ZIP con documento.xml, en base64
	Digest    string // SHA-256 (base64) de la forma canónica C14N del XML sin firma
}
