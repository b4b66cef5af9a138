package sunat

import (
	"fmt"
	"sync/atomic"

	"github.com/beevik/etree"
	"github.com/jonboulle/clockwork"
)

// Algoritmos declarados en el bloque de firma simulada.
const (
	AlgC14N            = "http://www.w3.org/TR/2001/REC-xml-c14n-20010315"
	AlgRSASHA1         = "http://www.w3.org/2000/09/xmldsig#rsa-sha1"
	AlgSHA1            = "http://www.w3.org/2000/09/xmldsig#sha1"
	TransformEnveloped = "http://www.w3.org/2000/09/xmldsig#enveloped-signature"

	SimulatedSignatureValue = "SIGNATURE_VALUE_SIMULADO_PARA_PRUEBA"
	SimulatedCertificate    = "CERTIFICADO_SIMULADO_PARA_PRUEBA"
)

// SignatureIDSource genera identificadores de firma simulada únicos dentro del proceso.
// Es seguro para uso concurrente: el contador es atómico y el reloj solo se lee.
type SignatureIDSource struct {
	clock clockwork.Clock
	seq   atomic.Uint64
}

// NewSignatureIDSource crea la fuente. clock nil usa el reloj real.
func NewSignatureIDSource(clock clockwork.Clock) *SignatureIDSource {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &SignatureIDSource{clock: clock}
}

// Next devuelve simulado_hash_{unixMillis}_{secuencia}.
func (s *SignatureIDSource) Next() string {
	n := s.seq.Add(1)
	return fmt.Sprintf("simulado_hash_%d_%d", s.clock.Now().UnixMilli(), n)
}

// appendSignature crea el nodo ds:Signature (Id=SignatureSP) dentro de parent con
// DigestValue = hash. Firma y certificado son valores fijos de prueba.
func appendSignature(parent *etree.Element, hash string) *etree.Element {
	sig := parent.CreateElement("ds:Signature")
	sig.CreateAttr("xmlns:ds", NsDs)
	sig.CreateAttr("Id", SignatureElementID)

	signedInfo := sig.CreateElement("ds:SignedInfo")
	signedInfo.CreateElement("ds:CanonicalizationMethod").CreateAttr("Algorithm", AlgC14N)
	signedInfo.CreateElement("ds:SignatureMethod").CreateAttr("Algorithm", AlgRSASHA1)
	ref := signedInfo.CreateElement("ds:Reference")
	ref.CreateAttr("URI", "")
	ref.CreateElement("ds:Transforms").
		CreateElement("ds:Transform").
		CreateAttr("Algorithm", TransformEnveloped)
	ref.CreateElement("ds:DigestMethod").CreateAttr("Algorithm", AlgSHA1)
	ref.CreateElement("ds:DigestValue").SetText(hash)

	sig.CreateElement("ds:SignatureValue").SetText(SimulatedSignatureValue)
	sig.CreateElement("ds:KeyInfo").
		CreateElement("ds:X509Data").
		CreateElement("ds:X509Certificate").
		SetText(SimulatedCertificate)
	return sig
}
