package sunat

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jhoicas/facturacion-sunat/internal/domain"
	"github.com/jhoicas/facturacion-sunat/internal/domain/entity"
	pkgsunat "github.com/jhoicas/facturacion-sunat/pkg/sunat"
)

// ErrInvalidInvoice agrupa errores de validación de factura.
var ErrInvalidInvoice = fmt.Errorf("%w: factura inválida para SUNAT", domain.ErrInvalidInput)

// MaxCorrelative mayor correlativo admitido (8 dígitos).
const MaxCorrelative = 99999999

var (
	seriesPattern = regexp.MustCompile(`^F[A-Z0-9]{3}$`)
	ubigeoPattern = regexp.MustCompile(`^[0-9]{6}$`)
	dniPattern    = regexp.MustCompile(`^[0-9]{8}$`)
)

// ValidateInvoice valida la petición antes de construir el XML. Devuelve todos los
// problemas encontrados unidos con errors.Join; errors.Is(err, domain.ErrInvalidInput) es true.
func ValidateInvoice(req *entity.InvoiceRequest) error {
	if req == nil {
		return fmt.Errorf("%w: factura nula", ErrInvalidInvoice)
	}
	var errs []error

	// Emisor
	if err := pkgsunat.ValidateRUC(req.Issuer.RUC); err != nil {
		errs = append(errs, fmt.Errorf("emisor: %w", err))
	}
	if strings.TrimSpace(req.Issuer.LegalName) == "" {
		errs = append(errs, errors.New("emisor: razón social requerida"))
	}
	if req.Issuer.Ubigeo != "" && !ubigeoPattern.MatchString(req.Issuer.Ubigeo) {
		errs = append(errs, fmt.Errorf("emisor: ubigeo %q debe tener 6 dígitos", req.Issuer.Ubigeo))
	}

	// Cliente
	c := req.Customer
	if !pkgsunat.ValidIdentityTypes[c.IdentityType] {
		errs = append(errs, fmt.Errorf("cliente: tipo de documento %q no válido", c.IdentityType))
	}
	switch c.IdentityType {
	case pkgsunat.IdentityTypeRUC:
		if err := pkgsunat.ValidateRUC(c.DocumentNumber); err != nil {
			errs = append(errs, fmt.Errorf("cliente: %w", err))
		}
	case pkgsunat.IdentityTypeDNI:
		if !dniPattern.MatchString(c.DocumentNumber) {
			errs = append(errs, fmt.Errorf("cliente: DNI %q debe tener 8 dígitos", c.DocumentNumber))
		}
	default:
		if strings.TrimSpace(c.DocumentNumber) == "" {
			errs = append(errs, errors.New("cliente: número de documento requerido"))
		}
	}
	if strings.TrimSpace(c.LegalName) == "" {
		errs = append(errs, errors.New("cliente: razón social requerida"))
	}

	// Numeración
	if !seriesPattern.MatchString(req.Series) {
		errs = append(errs, fmt.Errorf("serie %q no válida para factura (formato F###)", req.Series))
	}
	if req.Correlative == 0 || req.Correlative > MaxCorrelative {
		errs = append(errs, fmt.Errorf("correlativo %d fuera de rango (1-%d)", req.Correlative, MaxCorrelative))
	}
	if req.IssueDate.IsZero() {
		errs = append(errs, errors.New("fecha de emisión requerida"))
	}
	if _, ok := pkgsunat.CurrencyNames[req.Currency]; !ok {
		errs = append(errs, fmt.Errorf("moneda %q no soportada", req.Currency))
	}

	// Líneas
	if len(req.Lines) == 0 {
		errs = append(errs, errors.New("la factura debe tener al menos un ítem"))
	}
	seen := make(map[int]bool, len(req.Lines))
	for i, l := range req.Lines {
		prefix := fmt.Sprintf("ítem %d", i+1)
		if l.Position < 1 {
			errs = append(errs, fmt.Errorf("%s: posición %d debe ser mayor que cero", prefix, l.Position))
		} else if seen[l.Position] {
			errs = append(errs, fmt.Errorf("%s: posición %d duplicada", prefix, l.Position))
		}
		seen[l.Position] = true
		if strings.TrimSpace(l.Description) == "" {
			errs = append(errs, fmt.Errorf("%s: descripción requerida", prefix))
		}
		if !l.Quantity.IsPositive() {
			errs = append(errs, fmt.Errorf("%s: cantidad debe ser mayor que cero", prefix))
		}
		if l.UnitValue.IsNegative() {
			errs = append(errs, fmt.Errorf("%s: valor unitario no puede ser negativo", prefix))
		}
		if _, ok := pkgsunat.LookupAffectation(l.AffectationCode); !ok {
			errs = append(errs, fmt.Errorf("%s: código de afectación IGV %q no válido", prefix, l.AffectationCode))
		}
		if strings.TrimSpace(l.UnitCode) == "" {
			errs = append(errs, fmt.Errorf("%s: unidad de medida requerida", prefix))
		}
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidInvoice}, errs...)...)
	}
	return nil
}
