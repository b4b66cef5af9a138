package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse respuesta de GET /health y GET /api/facturacion/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Version string `json:"version,omitempty"`
}

// ReadyResponse respuesta de GET /api/facturacion/test.
type ReadyResponse struct {
	Framework   string `json:"framework"`
	Integration string `json:"integration"`
	Ready       bool   `json:"ready"`
}

// PingResponse respuesta de GET /api/facturacion/ping-sunat.
type PingResponse struct {
	SunatAccesible bool   `json:"sunat_accesible"`
	Ambiente       string `json:"ambiente"`
	URLSunat       string `json:"url_sunat"`
	Mensaje        string `json:"mensaje,omitempty"`
	Error          string `json:"error,omitempty"`
	LatenciaMS     int64  `json:"latencia_ms"`
	Timestamp      string `json:"timestamp"`
}
