package sunat

import (
	"fmt"
	"unicode"
)

// pesos del dígito verificador del RUC (módulo 11), aplicados a los 10 primeros dígitos.
var rucWeights = [10]int{5, 4, 3, 2, 7, 6, 5, 4, 3, 2}

// ValidateRUC valida longitud, prefijo y dígito verificador de un RUC.
// Acepta únicamente 11 dígitos sin separadores.
func ValidateRUC(ruc string) error {
	if len(ruc) != 11 {
		return fmt.Errorf("sunat: RUC debe tener 11 dígitos, se recibieron %d", len(ruc))
	}
	for _, r := range ruc {
		if !unicode.IsDigit(r) || r > unicode.MaxASCII {
			return fmt.Errorf("sunat: RUC %q contiene caracteres no numéricos", ruc)
		}
	}
	switch ruc[:2] {
	case "10", "15", "16", "17", "20":
	default:
		return fmt.Errorf("sunat: prefijo de RUC %q no válido", ruc[:2])
	}
	expected, err := ComputeRUCCheckDigit(ruc[:10])
	if err != nil {
		return err
	}
	if ruc[10] != expected {
		return fmt.Errorf("sunat: dígito verificador del RUC inválido: esperado %c, recibido %c", expected, ruc[10])
	}
	return nil
}

// ComputeRUCCheckDigit calcula el dígito verificador para los 10 primeros dígitos del RUC.
func ComputeRUCCheckDigit(base string) (byte, error) {
	if len(base) < 10 {
		return 0, fmt.Errorf("sunat: se requieren 10 dígitos para calcular el dígito verificador, se recibieron %d", len(base))
	}
	var sum int
	for i := 0; i < 10; i++ {
		d := base[i]
		if d < '0' || d > '9' {
			return 0, fmt.Errorf("sunat: carácter no numérico %q en RUC", d)
		}
		sum += int(d-'0') * rucWeights[i]
	}
	dv := 11 - sum%11
	switch dv {
	case 10:
		dv = 0
	case 11:
		dv = 1
	}
	return byte('0' + dv), nil
}
