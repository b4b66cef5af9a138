package sunat

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var unidades = [30]string{
	"cero", "uno", "dos", "tres", "cuatro", "cinco", "seis", "siete", "ocho", "nueve",
	"diez", "once", "doce", "trece", "catorce", "quince", "dieciséis", "diecisiete", "dieciocho", "diecinueve",
	"veinte", "veintiuno", "veintidós", "veintitrés", "veinticuatro", "veinticinco", "veintiséis", "veintisiete", "veintiocho", "veintinueve",
}

var decenas = [10]string{"", "", "", "treinta", "cuarenta", "cincuenta", "sesenta", "setenta", "ochenta", "noventa"}

var centenas = [10]string{"", "ciento", "doscientos", "trescientos", "cuatrocientos", "quinientos", "seiscientos", "setecientos", "ochocientos", "novecientos"}

const (
	mil    = int64(1_000)
	millon = int64(1_000_000)
	billon = int64(1_000_000_000_000)
)

// AmountInWords expresa un importe como leyenda 1000:
//
//	CIENTO DIECIOCHO CON 00/100 SOLES
//
// El importe se redondea a 2 decimales (mitad hacia arriba) antes de convertirse.
func AmountInWords(amount decimal.Decimal, currency string) string {
	amount = amount.Round(2)
	negative := amount.IsNegative()
	amount = amount.Abs()

	integer := amount.Truncate(0)
	cents := amount.Sub(integer).Shift(2).IntPart()

	words := Cardinal(integer.IntPart())
	if negative {
		words = "menos " + words
	}
	out := fmt.Sprintf("%s con %02d/100 %s", words, cents, CurrencyName(currency))
	// cases.Caser no es seguro para uso concurrente: uno por llamada.
	return cases.Upper(language.Spanish).String(out)
}

// Cardinal devuelve el número n (n >= 0) en letras, en minúsculas.
func Cardinal(n int64) string {
	if n < 0 {
		return "menos " + Cardinal(-n)
	}
	switch {
	case n >= billon:
		return scaled(n, billon, "un billón", "billones")
	case n >= millon:
		return scaled(n, millon, "un millón", "millones")
	case n >= mil:
		q, r := n/mil, n%mil
		head := "mil"
		if q > 1 {
			head = apocope(Cardinal(q)) + " mil"
		}
		if r == 0 {
			return head
		}
		return head + " " + hundreds(r)
	default:
		return hundreds(n)
	}
}

func scaled(n, unit int64, singular, plural string) string {
	q, r := n/unit, n%unit
	head := singular
	if q > 1 {
		head = apocope(Cardinal(q)) + " " + plural
	}
	if r == 0 {
		return head
	}
	return head + " " + Cardinal(r)
}

func hundreds(n int64) string {
	if n < 30 {
		return unidades[n]
	}
	if n == 100 {
		return "cien"
	}
	h, r := n/100, n%100
	var parts []string
	if h > 0 {
		parts = append(parts, centenas[h])
	}
	if r > 0 {
		parts = append(parts, tens(r))
	}
	return strings.Join(parts, " ")
}

func tens(n int64) string {
	if n < 30 {
		return unidades[n]
	}
	t, u := n/10, n%10
	if u == 0 {
		return decenas[t]
	}
	return decenas[t] + " y " + unidades[u]
}

// apocope adapta "uno" delante de mil/millón: veintiuno -> veintiún, treinta y uno -> treinta y un.
func apocope(s string) string {
	switch {
	case strings.HasSuffix(s, "veintiuno"):
		return strings.TrimSuffix(s, "veintiuno") + "veintiún"
	case strings.HasSuffix(s, "uno"):
		return strings.TrimSuffix(s, "uno") + "un"
	}
	return s
}
