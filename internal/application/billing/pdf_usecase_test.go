package billing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-sunat/internal/application/billing"
	"github.com/jhoicas/facturacion-sunat/internal/domain"
)

type fakePDFGenerator struct {
	data *billing.InvoicePDFData
	err  error
}

func (f *fakePDFGenerator) GenerateInvoicePDF(_ context.Context, data *billing.InvoicePDFData) ([]byte, error) {
	f.data = data
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.3"), nil
}

func TestGenerateInvoicePDF(t *testing.T) {
	gen := &fakePDFGenerator{}
	uc := billing.NewPDFUseCase(newUseCase(&fakeSubmitter{}), gen)

	pdf, name, err := uc.GenerateInvoicePDF(context.Background(), "", facturaDTO())

	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.3"), pdf)
	assert.Equal(t, "factura_F001_7.pdf", name)

	require.NotNil(t, gen.data)
	assert.Equal(t, "F001-7", gen.data.DocumentNumber)
	assert.Equal(t, "CIENTO DIECIOCHO CON 00/100 SOLES", gen.data.AmountInWords)
	assert.Equal(t, "118.00", gen.data.Totals.GrandTotal.StringFixed(2))
	require.Len(t, gen.data.Lines, 1)
	assert.Equal(t, "18.00", gen.data.Lines[0].Amounts.Tax.StringFixed(2))
	assert.Equal(t, "20131312955|01|F001|7|18.00|118.00|2024-03-15|6|20000000001|", gen.data.QRData)
}

func TestGenerateInvoicePDF_Errores(t *testing.T) {
	gen := &fakePDFGenerator{err: errors.New("fuente no encontrada")}
	uc := billing.NewPDFUseCase(newUseCase(&fakeSubmitter{}), gen)

	_, _, err := uc.GenerateInvoicePDF(context.Background(), "", facturaDTO())
	assert.ErrorContains(t, err, "fuente no encontrada")

	bad := facturaDTO()
	bad.Serie = "B001"
	_, _, err = uc.GenerateInvoicePDF(context.Background(), "", bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
