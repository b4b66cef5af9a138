package billing_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturacion-sunat/internal/application/dto"
	"github.com/jhoicas/facturacion-sunat/internal/domain/entity"
	pkgsunat "github.com/jhoicas/facturacion-sunat/pkg/sunat"
)

var fixedNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func testIssuer() entity.Issuer {
	return entity.Issuer{
		RUC:         "20131312955",
		LegalName:   "EMPRESA DE PRUEBA S.A.C.",
		TradeName:   "EMPRESA PRUEBA",
		Address:     "AV. LOS OLIVOS 123",
		Ubigeo:      "150101",
		Department:  "LIMA",
		Province:    "LIMA",
		District:    "LIMA",
		SOLUser:     "MODDATOS",
		SOLPassword: "moddatos",
	}
}

func testRequest() *entity.InvoiceRequest {
	return &entity.InvoiceRequest{
		Issuer: testIssuer(),
		Customer: entity.Customer{
			IdentityType:   pkgsunat.IdentityTypeRUC,
			DocumentNumber: "20000000001",
			LegalName:      "CLIENTE DE PRUEBA SAC",
			Address:        "AV. CLIENTE 456 - LIMA",
		},
		Series:      "F001",
		Correlative: 1,
		IssueDate:   time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Currency:    "PEN",
		Lines: []entity.InvoiceLine{{
			Position:        1,
			ProductCode:     "PROD001",
			Description:     "PRODUCTO DE PRUEBA",
			Quantity:        decimal.NewFromInt(1),
			UnitValue:       decimal.RequireFromString("100.00"),
			AffectationCode: pkgsunat.AffectationGravado,
			UnitCode:        pkgsunat.UnitUnidad,
		}},
	}
}

// facturaDTO petición del API sin emisor: se completa con la configuración.
func facturaDTO() dto.FacturaRequest {
	return dto.FacturaRequest{
		Cliente: dto.ClienteDTO{
			TipoDocumento:   pkgsunat.IdentityTypeRUC,
			NumeroDocumento: "20000000001",
			RazonSocial:     "CLIENTE DE PRUEBA SAC",
		},
		Correlativo: 7,
		Items: []dto.ItemDTO{{
			CodigoProducto: "PROD001",
			Descripcion:    "PRODUCTO DE PRUEBA",
			Cantidad:       decimal.NewFromInt(1),
			ValorUnitario:  decimal.NewFromInt(100),
		}},
	}
}

type senderFunc func(ctx context.Context, envelope string) ([]byte, error)

func (f senderFunc) Send(ctx context.Context, envelope string) ([]byte, error) { return f(ctx, envelope) }

// fakeSubmitter registra la última petición recibida.
type fakeSubmitter struct {
	last   *entity.InvoiceRequest
	result entity.SubmissionResult
}

func (f *fakeSubmitter) Submit(_ context.Context, req *entity.InvoiceRequest) entity.SubmissionResult {
	f.last = req
	return f.result
}
