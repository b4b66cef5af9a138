package sunat

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/jhoicas/facturacion-sunat/internal/domain"
	"github.com/jhoicas/facturacion-sunat/internal/domain/entity"
)

// Código y descripción devueltos cuando SUNAT entrega el CDR.
const (
	AcceptedCode        = "0"
	AcceptedDescription = "La Factura ha sido aceptada"
)

// ResponseInterpreter clasifica el cuerpo devuelto por billService.
type ResponseInterpreter struct{}

// NewResponseInterpreter crea el intérprete.
func NewResponseInterpreter() *ResponseInterpreter {
	return &ResponseInterpreter{}
}

// Interpret busca applicationResponse (éxito) o faultcode/faultstring (rechazo) por
// nombre local, sin importar el prefijo de namespace.
//
// Retorna domain.ErrResponseParse si el cuerpo no es XML legible y
// domain.ErrUnrecognizedResponse si no tiene ninguna de las dos formas.
func (r *ResponseInterpreter) Interpret(raw []byte, pkg *PackagedDocument, documentNumber string) (entity.SubmissionResult, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return entity.SubmissionResult{}, fmt.Errorf("%w: %v", domain.ErrResponseParse, err)
	}
	if doc.Root() == nil {
		return entity.SubmissionResult{}, fmt.Errorf("%w: documento vacío", domain.ErrResponseParse)
	}
	root := &doc.Element

	if ar := findFirst(root, "applicationResponse"); ar != nil {
		res := entity.SubmissionResult{
			Success:        true,
			Code:           AcceptedCode,
			Description:    AcceptedDescription,
			CDR:            strings.TrimSpace(ar.Text()),
			DocumentNumber: documentNumber,
		}
		if pkg != nil {
			res.SignedXML = pkg.SignedXML
			res.Hash = pkg.Hash
			res.Digest = pkg.Digest
		}
		return res, nil
	}

	if fc := findFirst(root, "faultcode"); fc != nil {
		res := entity.SubmissionResult{
			Success:        false,
			Code:           strings.TrimSpace(fc.Text()),
			DocumentNumber: documentNumber,
		}
		if fs := findFirst(root, "faultstring"); fs != nil {
			res.Description = strings.TrimSpace(fs.Text())
		}
		return res, nil
	}

	return entity.SubmissionResult{}, domain.ErrUnrecognizedResponse
}

func findFirst(root *etree.Element, local string) *etree.Element {
	if found := findByLocalName(root, local); len(found) > 0 {
		return found[0]
	}
	return nil
}
