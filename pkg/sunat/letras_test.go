package sunat_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/facturacion-sunat/pkg/sunat"
)

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		amount   string
		currency string
		want     string
	}{
		{"118.00", "PEN", "CIENTO DIECIOCHO CON 00/100 SOLES"},
		{"0.99", "PEN", "CERO CON 99/100 SOLES"},
		{"1250.5", "PEN", "MIL DOSCIENTOS CINCUENTA CON 50/100 SOLES"},
		{"21000", "PEN", "VEINTIÚN MIL CON 00/100 SOLES"},
		{"1000000", "USD", "UN MILLÓN CON 00/100 DÓLARES AMERICANOS"},
		{"2000001", "EUR", "DOS MILLONES UNO CON 00/100 EUROS"},
		{"16.10", "PEN", "DIECISÉIS CON 10/100 SOLES"},
		{"10.005", "PEN", "DIEZ CON 01/100 SOLES"},
		{"100", "CLP", "CIEN CON 00/100 CLP"},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			got := sunat.AmountInWords(decimal.RequireFromString(tt.amount), tt.currency)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCardinal(t *testing.T) {
	cases := map[int64]string{
		0:             "cero",
		1:             "uno",
		15:            "quince",
		29:            "veintinueve",
		31:            "treinta y uno",
		101:           "ciento uno",
		555:           "quinientos cincuenta y cinco",
		1001:          "mil uno",
		31000:         "treinta y un mil",
		101000:        "ciento un mil",
		999999:        "novecientos noventa y nueve mil novecientos noventa y nueve",
		1_000_000:     "un millón",
		21_000_000:    "veintiún millones",
		1_000_000_000: "mil millones",
	}
	for n, want := range cases {
		assert.Equal(t, want, sunat.Cardinal(n), "n=%d", n)
	}
}
