package billing

import (
	"strings"

	"github.com/jhoicas/facturacion-sunat/internal/domain/entity"
)

// Códigos de resultado asignados localmente (no los emite SUNAT).
const (
	CodeSunat500     = "SUNAT_500"
	CodeSunat401     = "SUNAT_401"
	CodeSunat404     = "SUNAT_404"
	CodeConnectivity = "SUNAT_CONECTIVIDAD"
	CodeInternal     = "ERROR_INTERNO"
	CodeParseError   = "PARSE_ERROR"
	CodeValidation   = "VALIDATION"
)

type classifierRule struct {
	needles     []string
	foldCase    bool
	code        string
	description string
}

// classifierRules se evalúan en orden; gana la primera coincidencia.
var classifierRules = []classifierRule{
	{
		needles:     []string{"status code 500"},
		code:        CodeSunat500,
		description: "Error en servidor SUNAT (500) - Posible problema con firma digital o formato XML",
	},
	{
		needles:     []string{"status code 401"},
		code:        CodeSunat401,
		description: "Error de autenticación - Verificar credenciales SOL",
	},
	{
		needles:     []string{"status code 404"},
		code:        CodeSunat404,
		description: "Servicio SUNAT no encontrado - Verificar URL",
	},
	{
		needles:     []string{"connection refused", "connectexception", "timeout", "deadline exceeded", "no such host"},
		foldCase:    true,
		code:        CodeConnectivity,
		description: "Error de conectividad con SUNAT - Servicio temporalmente no disponible",
	},
}

// Classify traduce un fallo de cualquier etapa del pipeline a un SubmissionResult
// con Success=false. Solo mira el mensaje del error.
func Classify(err error) entity.SubmissionResult {
	msg := "error desconocido"
	if err != nil {
		msg = err.Error()
	}
	lower := strings.ToLower(msg)

	for _, r := range classifierRules {
		haystack := msg
		if r.foldCase {
			haystack = lower
		}
		for _, n := range r.needles {
			if strings.Contains(haystack, n) {
				return failure(r.code, r.description)
			}
		}
	}
	return failure(CodeInternal, "Error interno: "+msg)
}

// ParseFailure resultado para respuestas ilegibles o con forma desconocida.
func ParseFailure(err error) entity.SubmissionResult {
	return failure(CodeParseError, "Error procesando respuesta: "+err.Error())
}

func failure(code, description string) entity.SubmissionResult {
	return entity.SubmissionResult{Success: false, Code: code, Description: description}
}
