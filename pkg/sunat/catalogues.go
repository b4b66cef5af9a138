// Package sunat contiene catálogos y validaciones alineados a la especificación
// de Comprobantes de Pago Electrónicos UBL 2.1 de SUNAT (Perú).
package sunat

import "github.com/shopspring/decimal"

// =============================================================================
// Catálogo 01 - Tipo de documento
// =============================================================================

const (
	DocumentTypeFactura     = "01" // Factura
	DocumentTypeBoleta      = "03" // Boleta de venta
	DocumentTypeNotaCredito = "07" // Nota de crédito
	DocumentTypeNotaDebito  = "08" // Nota de débito
)

// Catálogo 51 - Tipo de operación. 0101 = venta interna.
const OperationTypeVentaInterna = "0101"

// =============================================================================
// Catálogo 06 - Tipo de documento de identidad
// =============================================================================

const (
	IdentityTypeSinDocumento = "0" // No domiciliado, sin RUC
	IdentityTypeDNI          = "1" // Documento Nacional de Identidad
	IdentityTypeCarnet       = "4" // Carnet de extranjería
	IdentityTypeRUC          = "6" // Registro Único de Contribuyentes
	IdentityTypePasaporte    = "7" // Pasaporte
)

// ValidIdentityTypes códigos de documento de identidad aceptados para el adquirente.
var ValidIdentityTypes = map[string]bool{
	IdentityTypeSinDocumento: true,
	IdentityTypeDNI:          true,
	IdentityTypeCarnet:       true,
	IdentityTypeRUC:          true,
	IdentityTypePasaporte:    true,
}

// =============================================================================
// Catálogo 07 - Tipo de afectación del IGV
// =============================================================================

const (
	AffectationGravado     = "10" // Gravado - Operación onerosa
	AffectationExonerado   = "20" // Exonerado - Operación onerosa
	AffectationInafecto    = "30" // Inafecto - Operación onerosa
	AffectationExportacion = "40" // Exportación de bienes o servicios
)

// AffectationCode entrada del catálogo 07 con el tributo (catálogo 05) que le corresponde.
type AffectationCode struct {
	Code        string    `json:"codigo"`
	Description string    `json:"descripcion"`
	Scheme      TaxScheme `json:"-"`
}

// AffectationCodes catálogo 07 en el orden en que se publica.
var AffectationCodes = []AffectationCode{
	{Code: AffectationGravado, Description: "Gravado - Operación Onerosa", Scheme: SchemeIGV},
	{Code: AffectationExonerado, Description: "Exonerado - Operación Onerosa", Scheme: SchemeExonerado},
	{Code: AffectationInafecto, Description: "Inafecto - Operación Onerosa", Scheme: SchemeInafecto},
	{Code: AffectationExportacion, Description: "Exportación", Scheme: SchemeExportacion},
}

// LookupAffectation devuelve la entrada del catálogo 07 para code.
func LookupAffectation(code string) (AffectationCode, bool) {
	for _, a := range AffectationCodes {
		if a.Code == code {
			return a, true
		}
	}
	return AffectationCode{}, false
}

// =============================================================================
// Catálogo 05 - Códigos de tipos de tributos
// =============================================================================

// TaxScheme tributo del catálogo 05 (cac:TaxScheme).
type TaxScheme struct {
	ID       string // cbc:ID
	Name     string // cbc:Name
	TypeCode string // cbc:TaxTypeCode (UN/ECE 5153)
}

var (
	SchemeIGV         = TaxScheme{ID: "1000", Name: "IGV", TypeCode: "VAT"}
	SchemeExportacion = TaxScheme{ID: "9995", Name: "EXP", TypeCode: "FRE"}
	SchemeExonerado   = TaxScheme{ID: "9997", Name: "EXO", TypeCode: "VAT"}
	SchemeInafecto    = TaxScheme{ID: "9998", Name: "INA", TypeCode: "FRE"}
)

// IGVRate tasa del Impuesto General a las Ventas (18 %).
var IGVRate = decimal.New(18, -2)

// IGVPercent tasa IGV expresada como porcentaje para cbc:Percent.
var IGVPercent = decimal.NewFromInt(18)

// =============================================================================
// Catálogo 16 - Tipo de precio de venta unitario
// =============================================================================

const PriceTypePrecioUnitario = "01" // Precio unitario (incluye IGV)

// =============================================================================
// Catálogo 52 - Leyendas
// =============================================================================

const LegendMontoEnLetras = "1000" // Monto en letras

// =============================================================================
// Catálogo 03 - Unidades de medida (uso frecuente)
// =============================================================================

const (
	UnitUnidad    = "NIU" // Unidad (bienes)
	UnitKilogramo = "KGM" // Kilogramo
	UnitMetro     = "MTR" // Metro
	UnitLitro     = "LTR" // Litro
	UnitServicio  = "ZZ"  // Unidad (servicios)
)

// UnitCode entrada del catálogo 03.
type UnitCode struct {
	Code        string `json:"codigo"`
	Description string `json:"descripcion"`
}

// UnitCodes unidades de medida publicadas por la API.
var UnitCodes = []UnitCode{
	{Code: UnitUnidad, Description: "Unidad (Bienes)"},
	{Code: UnitKilogramo, Description: "Kilogramo"},
	{Code: UnitMetro, Description: "Metro"},
	{Code: UnitLitro, Description: "Litro"},
	{Code: UnitServicio, Description: "Unidad (Servicios)"},
}

// =============================================================================
// Monedas (ISO 4217)
// =============================================================================

// CurrencyNames nombre en letras de la moneda para la leyenda 1000.
var CurrencyNames = map[string]string{
	"PEN": "SOLES",
	"USD": "DÓLARES AMERICANOS",
	"EUR": "EUROS",
}

// CurrencyName devuelve el nombre de la moneda; si no está catalogada devuelve el código ISO.
func CurrencyName(code string) string {
	if n, ok := CurrencyNames[code]; ok {
		return n
	}
	return code
}
