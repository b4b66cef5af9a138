package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrMalformedDocument    = errors.New("documento XML mal formado")
	ErrTransport            = errors.New("fallo de transporte con SUNAT")
	ErrTimeout              = errors.New("timeout: presupuesto de envío a SUNAT agotado")
	ErrResponseParse        = errors.New("respuesta SUNAT ilegible")
	ErrUnrecognizedResponse = errors.New("respuesta SUNAT no reconocida")
)
