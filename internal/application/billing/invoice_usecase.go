package billing

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturacion-sunat/internal/application/dto"
	"github.com/jhoicas/facturacion-sunat/internal/domain"
	"github.com/jhoicas/facturacion-sunat/internal/domain/entity"
	domsunat "github.com/jhoicas/facturacion-sunat/internal/domain/sunat"
	"github.com/jhoicas/facturacion-sunat/pkg/config"
	pkgsunat "github.com/jhoicas/facturacion-sunat/pkg/sunat"
)

// Valores por defecto de la petición cuando el cliente no los envía.
const (
	DefaultSeries   = "F001"
	DefaultCurrency = "PEN"
)

// InvoiceConfig datos del emisor por defecto y del ambiente SUNAT.
type InvoiceConfig struct {
	Issuer      entity.Issuer // se usa campo a campo cuando la petición lo trae vacío
	Environment string        // beta | prod
	Endpoint    string
}

// InvoiceUseCase valida las peticiones del API, completa el emisor desde la
// configuración y delega el envío al orquestador.
type InvoiceUseCase struct {
	submitter InvoiceSubmitter
	builder   DocumentBuilder
	cfg       InvoiceConfig
	clock     clockwork.Clock

	total, accepted, rejected, invalid atomic.Uint64
}

// NewInvoiceUseCase construye el caso de uso. clock nil usa el reloj real.
func NewInvoiceUseCase(submitter InvoiceSubmitter, builder DocumentBuilder, cfg InvoiceConfig, clock clockwork.Clock) *InvoiceUseCase {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &InvoiceUseCase{submitter: submitter, builder: builder, cfg: cfg, clock: clock}
}

// Prepare convierte la petición en InvoiceRequest y la valida.
//
// Retorna:
//   - domain.ErrInvalidInput (vía domsunat.ErrInvalidInvoice) si algún dato no es válido.
//   - domain.ErrForbidden si authRUC no está vacío y no coincide con el RUC del emisor.
func (uc *InvoiceUseCase) Prepare(authRUC string, in dto.FacturaRequest) (*entity.InvoiceRequest, error) {
	req, err := uc.toInvoiceRequest(in)
	if err != nil {
		return nil, err
	}
	if err := domsunat.ValidateInvoice(req); err != nil {
		return nil, err
	}
	if authRUC != "" && authRUC != req.Issuer.RUC {
		return nil, fmt.Errorf("%w: el token no corresponde al RUC %s", domain.ErrForbidden, req.Issuer.RUC)
	}
	return req, nil
}

// SubmitInvoice valida y envía la factura a SUNAT. Un rechazo de SUNAT no es un error:
// llega como SunatResponse con Success=false.
func (uc *InvoiceUseCase) SubmitInvoice(ctx context.Context, authRUC string, in dto.FacturaRequest) (*dto.SunatResponse, error) {
	uc.total.Add(1)
	req, err := uc.Prepare(authRUC, in)
	if err != nil {
		uc.invalid.Add(1)
		return nil, err
	}

	res := uc.submitter.Submit(ctx, req)
	if res.Success {
		uc.accepted.Add(1)
	} else {
		uc.rejected.Add(1)
	}
	return toSunatResponse(res), nil
}

// GenerateXML devuelve el XML UBL sin firmar y el nombre de descarga
// factura_{serie}_{correlativo}.xml.
func (uc *InvoiceUseCase) GenerateXML(authRUC string, in dto.FacturaRequest) ([]byte, string, error) {
	req, err := uc.Prepare(authRUC, in)
	if err != nil {
		return nil, "", err
	}
	xml, err := uc.builder.Build(req)
	if err != nil {
		return nil, "", fmt.Errorf("billing: generar XML: %w", err)
	}
	return xml, fmt.Sprintf("factura_%s_%d.xml", req.Series, req.Correlative), nil
}

// Stats estado del servicio y contadores de envío.
func (uc *InvoiceUseCase) Stats() dto.StatsResponse {
	return dto.StatsResponse{
		Sistema:       "Sistema de Facturación Electrónica",
		AmbienteSunat: environmentLabel(uc.cfg.Environment),
		URLSunat:      uc.cfg.Endpoint,
		TiposDocumentoSoportados: []dto.CatalogItemDTO{
			{Codigo: pkgsunat.DocumentTypeFactura, Descripcion: "Factura"},
		},
		VersionUBL: "2.1",
		VersionGo:  runtime.Version(),
		Envios: dto.SubmissionStats{
			Total:      uc.total.Load(),
			Aceptadas:  uc.accepted.Load(),
			Rechazadas: uc.rejected.Load(),
			Invalidas:  uc.invalid.Load(),
		},
	}
}

// SampleRequest petición de prueba con el emisor configurado: una línea gravada de
// 100.00 PEN. El correlativo cambia con el reloj para no repetir documentos.
func (uc *InvoiceUseCase) SampleRequest() dto.FacturaRequest {
	is := uc.cfg.Issuer
	now := uc.clock.Now()
	return dto.FacturaRequest{
		Emisor: dto.EmisorDTO{
			RUC:             is.RUC,
			RazonSocial:     is.LegalName,
			NombreComercial: is.TradeName,
			Direccion:       is.Address,
			Ubigeo:          is.Ubigeo,
			Departamento:    is.Department,
			Provincia:       is.Province,
			Distrito:        is.District,
			UsuarioSOL:      is.SOLUser,
			ClaveSOL:        is.SOLPassword,
		},
		Cliente: dto.ClienteDTO{
			TipoDocumento:   pkgsunat.IdentityTypeRUC,
			NumeroDocumento: "20000000001",
			RazonSocial:     "CLIENTE DE PRUEBA SAC",
			Direccion:       "AV. CLIENTE 456 - LIMA",
		},
		Serie:        DefaultSeries,
		Correlativo:  uint64(now.UnixMilli()%99999) + 1,
		FechaEmision: now.Format("2006-01-02"),
		Moneda:       DefaultCurrency,
		Items: []dto.ItemDTO{{
			Item:                1,
			CodigoProducto:      "PROD001",
			Descripcion:         "PRODUCTO DE PRUEBA",
			Cantidad:            decimal.NewFromInt(1),
			ValorUnitario:       decimal.NewFromInt(100),
			CodigoAfectacionIGV: pkgsunat.AffectationGravado,
			UnidadMedida:        pkgsunat.UnitUnidad,
		}},
	}
}

// ── helpers privados ──────────────────────────────────────────────────────────

func (uc *InvoiceUseCase) toInvoiceRequest(in dto.FacturaRequest) (*entity.InvoiceRequest, error) {
	issueDate, err := uc.issueDate(in.FechaEmision)
	if err != nil {
		return nil, err
	}

	req := &entity.InvoiceRequest{
		Issuer: mergeIssuer(in.Emisor, uc.cfg.Issuer),
		Customer: entity.Customer{
			IdentityType:   strings.TrimSpace(in.Cliente.TipoDocumento),
			DocumentNumber: strings.TrimSpace(in.Cliente.NumeroDocumento),
			LegalName:      strings.TrimSpace(in.Cliente.RazonSocial),
			Address:        strings.TrimSpace(in.Cliente.Direccion),
		},
		Series:      strings.ToUpper(nonEmpty(strings.TrimSpace(in.Serie), DefaultSeries)),
		Correlative: in.Correlativo,
		IssueDate:   issueDate,
		Currency:    strings.ToUpper(nonEmpty(strings.TrimSpace(in.Moneda), DefaultCurrency)),
		Lines:       make([]entity.InvoiceLine, 0, len(in.Items)),
	}
	for i, it := range in.Items {
		pos := it.Item
		if pos == 0 {
			pos = i + 1
		}
		req.Lines = append(req.Lines, entity.InvoiceLine{
			Position:        pos,
			ProductCode:     strings.TrimSpace(it.CodigoProducto),
			Description:     strings.TrimSpace(it.Descripcion),
			Quantity:        it.Cantidad,
			UnitValue:       it.ValorUnitario,
			AffectationCode: nonEmpty(strings.TrimSpace(it.CodigoAfectacionIGV), pkgsunat.AffectationGravado),
			UnitCode:        nonEmpty(strings.TrimSpace(it.UnidadMedida), pkgsunat.UnitUnidad),
		})
	}
	return req, nil
}

// issueDate interpreta YYYY-MM-DD; vacío = fecha actual del reloj.
func (uc *InvoiceUseCase) issueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		now := uc.clock.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha_emision %q no tiene formato YYYY-MM-DD", domsunat.ErrInvalidInvoice, s)
	}
	return t, nil
}

func mergeIssuer(in dto.EmisorDTO, def entity.Issuer) entity.Issuer {
	return entity.Issuer{
		RUC:         nonEmpty(strings.TrimSpace(in.RUC), def.RUC),
		LegalName:   nonEmpty(strings.TrimSpace(in.RazonSocial), def.LegalName),
		TradeName:   nonEmpty(strings.TrimSpace(in.NombreComercial), def.TradeName),
		Address:     nonEmpty(strings.TrimSpace(in.Direccion), def.Address),
		Ubigeo:      nonEmpty(strings.TrimSpace(in.Ubigeo), def.Ubigeo),
		Department:  nonEmpty(strings.TrimSpace(in.Departamento), def.Department),
		Province:    nonEmpty(strings.TrimSpace(in.Provincia), def.Province),
		District:    nonEmpty(strings.TrimSpace(in.Distrito), def.District),
		SOLUser:     nonEmpty(strings.TrimSpace(in.UsuarioSOL), def.SOLUser),
		SOLPassword: nonEmpty(in.ClaveSOL, def.SOLPassword),
	}
}

// IssuerFromConfig emisor por defecto a partir de las variables EMPRESA_*.
func IssuerFromConfig(e config.EmpresaConfig) entity.Issuer {
	return entity.Issuer{
		RUC:         strings.TrimSpace(e.RUC),
		LegalName:   strings.TrimSpace(e.RazonSocial),
		TradeName:   strings.TrimSpace(e.NombreComercial),
		Address:     strings.TrimSpace(e.Direccion),
		Ubigeo:      strings.TrimSpace(e.Ubigeo),
		Department:  strings.TrimSpace(e.Departamento),
		Province:    strings.TrimSpace(e.Provincia),
		District:    strings.TrimSpace(e.Distrito),
		SOLUser:     strings.TrimSpace(e.UsuarioSOL),
		SOLPassword: e.ClaveSOL,
	}
}

func toSunatResponse(r entity.SubmissionResult) *dto.SunatResponse {
	return &dto.SunatResponse{
		Success:         r.Success,
		CodigoRespuesta: r.Code,
		Descripcion:     r.Description,
		XMLFirmado:      r.SignedXML,
		CDRSunat:        r.CDR,
		HashCPE:         r.Hash,
		DigestC14N:      r.Digest,
		NumeroDocumento: r.DocumentNumber,
	}
}

func environmentLabel(env string) string {
	if strings.EqualFold(env, "prod") {
		return "PRODUCCIÓN"
	}
	return "BETA (Pruebas)"
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
