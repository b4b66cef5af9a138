package dto

import "github.com/shopspring/decimal"

// FacturaRequest body para POST /api/facturacion/prueba-factura, generar-xml y
// representacion-impresa. Los campos del emisor que lleguen vacíos se completan
// con la configuración EMPRESA_*.
type FacturaRequest struct {
	Emisor       EmisorDTO  `json:"emisor"`
	Cliente      ClienteDTO `json:"cliente"`
	Serie        string     `json:"serie"` // por defecto F001
	Correlativo  uint64     `json:"correlativo"`
	FechaEmision string     `json:"fecha_emision,omitempty"` // YYYY-MM-DD; vacío = hoy
	Moneda       string     `json:"moneda,omitempty"`        // por defecto PEN
	Items        []ItemDTO  `json:"items"`
}

// EmisorDTO datos del emisor y credenciales SOL.
type EmisorDTO struct {
	RUC             string `json:"ruc,omitempty"`
	RazonSocial     string `json:"razon_social,omitempty"`
	NombreComercial string `json:"nombre_comercial,omitempty"`
	Direccion       string `json:"direccion,omitempty"`
	Ubigeo          string `json:"ubigeo,omitempty"`
	Departamento    string `json:"departamento,omitempty"`
	Provincia       string `json:"provincia,omitempty"`
	Distrito        string `json:"distrito,omitempty"`
	UsuarioSOL      string `json:"usuario_sol,omitempty"`
	ClaveSOL        string `json:"clave_sol,omitempty"`
}

// ClienteDTO adquiriente. TipoDocumento según catálogo 06 (6 = RUC, 1 = DNI).
type ClienteDTO struct {
	TipoDocumento   string `json:"tipo_documento"`
	NumeroDocumento string `json:"numero_documento"`
	RazonSocial     string `json:"razon_social"`
	Direccion       string `json:"direccion,omitempty"`
}

// ItemDTO línea de la factura. ValorUnitario va sin IGV.
type ItemDTO struct {
	Item                int             `json:"item"` // posición; 0 = orden del arreglo
	CodigoProducto      string          `json:"codigo_producto"`
	Descripcion         string          `json:"descripcion"`
	Cantidad            decimal.Decimal `json:"cantidad"`
	ValorUnitario       decimal.Decimal `json:"valor_unitario"`
	CodigoAfectacionIGV string          `json:"codigo_afectacion_igv,omitempty"` // por defecto 10
	UnidadMedida        string          `json:"unidad_medida,omitempty"`         // por defecto NIU
}

// SunatResponse resultado del envío. Éxito y fallo comparten la misma forma.
type SunatResponse struct {
	Success         bool   `json:"success"`
	CodigoRespuesta string `json:"codigo_respuesta"`
	Descripcion     string `json:"descripcion"`
	XMLFirmado      string `json:"xml_firmado,omitempty"`
	CDRSunat        string `json:"cdr_sunat,omitempty"`
	HashCPE         string `json:"hash_cpe,omitempty"`
	DigestC14N      string `json:"digest_c14n,omitempty"` // SHA-256 base64 del XML canónico sin firma
	NumeroDocumento string `json:"numero_documento,omitempty"`
}

// StatsResponse respuesta de GET /api/facturacion/stats.
type StatsResponse struct {
	Sistema                  string           `json:"sistema"`
	AmbienteSunat            string           `json:"ambiente_sunat"`
	URLSunat                 string           `json:"url_sunat"`
	TiposDocumentoSoportados []CatalogItemDTO `json:"tipos_documento_soportados"`
	VersionUBL               string           `json:"version_ubl"`
	VersionGo                string           `json:"version_go"`
	Envios                   SubmissionStats  `json:"envios"`
}

// SubmissionStats contadores del proceso desde el arranque.
type SubmissionStats struct {
	Total      uint64 `json:"total"`
	Aceptadas  uint64 `json:"aceptadas"`
	Rechazadas uint64 `json:"rechazadas"`
	Invalidas  uint64 `json:"invalidas"`
}

// CatalogItemDTO entrada genérica de catálogo (código + descripción).
type CatalogItemDTO struct {
	Codigo      string `json:"codigo"`
	Descripcion string `json:"descripcion"`
}

// AfectacionDTO código de afectación del IGV (catálogo 07).
type AfectacionDTO struct {
	Codigo      string          `json:"codigo"`
	Descripcion string          `json:"descripcion"`
	Porcentaje  decimal.Decimal `json:"porcentaje"`
}

// CodigosAfectacionResponse respuesta de GET /api/facturacion/codigos-afectacion.
type CodigosAfectacionResponse struct {
	CodigosAfectacionIGV  []AfectacionDTO  `json:"codigos_afectacion_igv"`
	UnidadesMedidaComunes []CatalogItemDTO `json:"unidades_medida_comunes"`
}
