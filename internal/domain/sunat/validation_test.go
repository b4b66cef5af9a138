package sunat_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-sunat/internal/domain"
	"github.com/jhoicas/facturacion-sunat/internal/domain/entity"
	"github.com/jhoicas/facturacion-sunat/internal/domain/sunat"
	pkgsunat "github.com/jhoicas/facturacion-sunat/pkg/sunat"
)

func validRequest() *entity.InvoiceRequest {
	return &entity.InvoiceRequest{
		Issuer: entity.Issuer{
			RUC:       "20131312955",
			LegalName: "EMPRESA DE PRUEBA S.A.C.",
			Ubigeo:    "150101",
		},
		Customer: entity.Customer{
			IdentityType:   pkgsunat.IdentityTypeRUC,
			DocumentNumber: "20000000001",
			LegalName:      "CLIENTE DE PRUEBA S.A.C.",
		},
		Series:      "F001",
		Correlative: 1,
		IssueDate:   time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Currency:    "PEN",
		Lines:       []entity.InvoiceLine{taxedLine(1, "1", "100")},
	}
}

func TestValidateInvoice_Valida(t *testing.T) {
	require.NoError(t, sunat.ValidateInvoice(validRequest()))
}

func TestValidateInvoice_AgrupaErrores(t *testing.T) {
	req := validRequest()
	req.Issuer.RUC = "20123456789"
	req.Series = "B001"
	req.Currency = "XXX"

	err := sunat.ValidateInvoice(req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, sunat.ErrInvalidInvoice))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "debe envolver ErrInvalidInput")
	assert.Contains(t, err.Error(), "emisor")
	assert.Contains(t, err.Error(), "serie")
	assert.Contains(t, err.Error(), "moneda")
}

func TestValidateInvoice_Casos(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *entity.InvoiceRequest)
		want   string
	}{
		{"sin ítems", func(r *entity.InvoiceRequest) { r.Lines = nil }, "al menos un ítem"},
		{"posición duplicada", func(r *entity.InvoiceRequest) {
			r.Lines = append(r.Lines, taxedLine(1, "1", "5"))
		}, "duplicada"},
		{"cantidad cero", func(r *entity.InvoiceRequest) { r.Lines[0].Quantity = d("0") }, "cantidad"},
		{"valor negativo", func(r *entity.InvoiceRequest) { r.Lines[0].UnitValue = d("-1") }, "valor unitario"},
		{"afectación desconocida", func(r *entity.InvoiceRequest) { r.Lines[0].AffectationCode = "99" }, "afectación"},
		{"correlativo cero", func(r *entity.InvoiceRequest) { r.Correlative = 0 }, "correlativo"},
		{"correlativo excesivo", func(r *entity.InvoiceRequest) { r.Correlative = 100000000 }, "correlativo"},
		{"DNI corto", func(r *entity.InvoiceRequest) {
			r.Customer.IdentityType = pkgsunat.IdentityTypeDNI
			r.Customer.DocumentNumber = "1234"
		}, "DNI"},
		{"fecha vacía", func(r *entity.InvoiceRequest) { r.IssueDate = time.Time{} }, "fecha"},
		{"ubigeo inválido", func(r *entity.InvoiceRequest) { r.Issuer.Ubigeo = "15A" }, "ubigeo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			err := sunat.ValidateInvoice(req)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateInvoice_Nula(t *testing.T) {
	err := sunat.ValidateInvoice(nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
