package sunat_test

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturacion-sunat/internal/domain/entity"
	pkgsunat "github.com/jhoicas/facturacion-sunat/pkg/sunat"
)

// sampleRequest factura de una línea gravada: 1 × 100.00 PEN.
func sampleRequest() *entity.InvoiceRequest {
	return &entity.InvoiceRequest{
		Issuer: entity.Issuer{
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
		},
		Customer: entity.Customer{
			IdentityType:   pkgsunat.IdentityTypeRUC,
			DocumentNumber: "20000000001",
			LegalName:      "CLIENTE & ASOCIADOS S.A.C.",
			Address:        "JR. UNIÓN 456",
		},
		Series:      "F001",
		Correlative: 1,
		IssueDate:   time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Currency:    "PEN",
		Lines: []entity.InvoiceLine{
			{
				Position:        1,
				ProductCode:     "P001",
				Description:     "Producto de prueba",
				Quantity:        decimal.NewFromInt(1),
				UnitValue:       decimal.RequireFromString("100.00"),
				AffectationCode: pkgsunat.AffectationGravado,
				UnitCode:        pkgsunat.UnitUnidad,
			},
		},
	}
}
