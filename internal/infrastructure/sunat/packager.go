package sunat

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/facturacion-sunat/internal/domain"
	"github.com/jhoicas/facturacion-sunat/internal/domain/entity"
)

// DocumentPackager inserta la firma simulada, comprime y codifica el documento.
// No accede a la red; el único estado compartido es la fuente de identificadores.
type DocumentPackager struct {
	ids *SignatureIDSource
}

// NewDocumentPackager crea el empaquetador. ids nil usa una fuente con reloj real.
func NewDocumentPackager(ids *SignatureIDSource) *DocumentPackager {
	if ids == nil {
		ids = NewSignatureIDSource(nil)
	}
	return &DocumentPackager{ids: ids}
}

// Package produce el PackagedDocument a partir del XML sin firmar.
// Retorna domain.ErrMalformedDocument si el XML no se puede leer o no tiene exactamente
// un ext:ExtensionContent vacío.
func (p *DocumentPackager) Package(unsigned []byte, req *entity.InvoiceRequest) (*PackagedDocument, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: factura nula", domain.ErrInvalidInput)
	}
	doc := etree.NewDocument()
	doc.ReadSettings.PreserveCData = true
	if err := doc.ReadFromBytes(unsigned); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: documento sin raíz", domain.ErrMalformedDocument)
	}

	placeholder, err := signaturePlaceholder(root)
	if err != nil {
		return nil, err
	}

	hash := p.ids.Next()
	appendSignature(placeholder, hash)

	signed, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("sunat: serializar XML firmado: %w", err)
	}

	zipBytes, err := CompressXMLToZip(signed, ArchiveEntryName)
	if err != nil {
		return nil, err
	}

	return &PackagedDocument{
		SignedXML: string(signed),
		Hash:      hash,
		FileName:  SunatFileName(req.Issuer.RUC, req.Series, req.Correlative),
		ZipBase64: base64.StdEncoding.EncodeToString(zipBytes),
		Digest:    digestC14N(unsigned),
	}, nil
}

// signaturePlaceholder busca el único ext:ExtensionContent vacío del documento.
func signaturePlaceholder(root *etree.Element) (*etree.Element, error) {
	var empty []*etree.Element
	for _, e := range findByLocalName(root, "ExtensionContent") {
		if len(e.ChildElements()) == 0 && strings.TrimSpace(e.Text()) == "" {
			empty = append(empty, e)
		}
	}
	switch len(empty) {
	case 1:
		return empty[0], nil
	case 0:
		return nil, fmt.Errorf("%w: falta ext:ExtensionContent vacío para la firma", domain.ErrMalformedDocument)
	default:
		return nil, fmt.Errorf("%w: %d ext:ExtensionContent vacíos, se esperaba uno", domain.ErrMalformedDocument, len(empty))
	}
}

// digestC14N SHA-256 en base64 de la forma canónica del documento. Si la
// canonicalización falla se usa el documento tal cual.
func digestC14N(data []byte) string {
	canonical, err := canonicalizeXML(data)
	if err != nil {
		canonical = data
	}
	sum := sha256.Sum256(canonical)
	return base64.StdEncoding.EncodeToString(sum[:])
}

func canonicalizeXML(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	return c14n.Canonicalize(dec)
}

// findByLocalName recorre el árbol en profundidad y devuelve los elementos cuyo nombre
// local coincide, sin importar el prefijo.
func findByLocalName(root *etree.Element, local string) []*etree.Element {
	var out []*etree.Element
	var walk func(e *etree.Element)
	walk = func(e *etree.Element) {
		if e.Tag == local {
			out = append(out, e)
		}
		for _, c := range e.ChildElements() {
			walk(c)
		}
	}
	walk(root)
	return out
}
