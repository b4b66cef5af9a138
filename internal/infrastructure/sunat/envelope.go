package sunat

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/jhoicas/facturacion-sunat/internal/domain"
	"github.com/jhoicas/facturacion-sunat/internal/domain/entity"
)

const (
	soapNSEnvelope = "http://schemas.xmlsoap.org/soap/envelope/"
	soapNSService  = "http://service.sunat.gob.pe"
	soapNSWSSE     = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-secext-1.0.xsd"
)

// ── Estructuras SOAP ──────────────────────────────────────────────────────────

type sendBillEnvelope struct {
	XMLName      xml.Name       `xml:"soapenv:Envelope"`
	XmlnsSoapenv string         `xml:"xmlns:soapenv,attr"`
	XmlnsSer     string         `xml:"xmlns:ser,attr"`
	XmlnsWsse    string         `xml:"xmlns:wsse,attr"`
	Header       envelopeHeader `xml:"soapenv:Header"`
	Body         envelopeBody   `xml:"soapenv:Body"`
}

type envelopeHeader struct {
	Security wsseSecurity `xml:"wsse:Security"`
}

type wsseSecurity struct {
	UsernameToken usernameToken `xml:"wsse:UsernameToken"`
}

// usernameToken: SUNAT exige Username = RUC + usuario SOL y la clave en texto plano.
type usernameToken struct {
	Username string `xml:"wsse:Username"`
	Password string `xml:"wsse:Password"`
}

type envelopeBody struct {
	SendBill sendBillBody `xml:"ser:sendBill"`
}

type sendBillBody struct {
	FileName    string `xml:"fileName"`
	ContentFile string `xml:"contentFile"` // ZIP en Base64
}

// EnvelopeBuilder arma el sobre SOAP 1.1 de la operación sendBill.
type EnvelopeBuilder struct{}

// NewEnvelopeBuilder crea el constructor.
func NewEnvelopeBuilder() *EnvelopeBuilder {
	return &EnvelopeBuilder{}
}

// BuildSendBill devuelve el sobre serializado. El sobre lleva la clave SOL en claro:
// solo debe viajar por HTTPS.
func (b *EnvelopeBuilder) BuildSendBill(doc *PackagedDocument, issuer entity.Issuer) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("%w: documento empaquetado nulo", domain.ErrInvalidInput)
	}
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"RUC", issuer.RUC},
		{"usuario SOL", issuer.SOLUser},
		{"clave SOL", issuer.SOLPassword},
		{"nombre de archivo", doc.FileName},
		{"contenido", doc.ZipBase64},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("%w: sobre SOAP sin %s", domain.ErrInvalidInput, strings.Join(missing, ", "))
	}

	env := sendBillEnvelope{
		XmlnsSoapenv: soapNSEnvelope,
		XmlnsSer:     soapNSService,
		XmlnsWsse:    soapNSWSSE,
		Header: envelopeHeader{Security: wsseSecurity{UsernameToken: usernameToken{
			Username: issuer.RUC + issuer.SOLUser,
			Password: issuer.SOLPassword,
		}}},
		Body: envelopeBody{SendBill: sendBillBody{
			FileName:    doc.FileName,
			ContentFile: doc.ZipBase64,
		}},
	}
	out, err := xml.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("soap: serializar envelope: %w", err)
	}
	return string(out), nil
}
