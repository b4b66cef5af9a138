package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturacion-sunat/internal/application/dto"
	pkgsunat "github.com/jhoicas/facturacion-sunat/pkg/sunat"
)

// ServiceVersion versión publicada en los endpoints de salud.
const ServiceVersion = "1.0.0"

// CatalogHandler expone catálogos SUNAT y el estado del servicio (público).
type CatalogHandler struct{}

// NewCatalogHandler construye el handler.
func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// Health GET /health y GET /api/facturacion/health.
func (h *CatalogHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{
		Status:  "OK",
		Message: "Servicio de facturación SUNAT activo",
		Version: ServiceVersion,
	})
}

// Ready GET /api/facturacion/test.
func (h *CatalogHandler) Ready(c *fiber.Ctx) error {
	return c.JSON(dto.ReadyResponse{Framework: "Go/Fiber", Integration: "SUNAT", Ready: true})
}

// AffectationCodes códigos de afectación del IGV y unidades de medida comunes.
// GET /api/facturacion/codigos-afectacion
func (h *CatalogHandler) AffectationCodes(c *fiber.Ctx) error {
	out := dto.CodigosAfectacionResponse{
		CodigosAfectacionIGV:  make([]dto.AfectacionDTO, 0, len(pkgsunat.AffectationCodes)),
		UnidadesMedidaComunes: make([]dto.CatalogItemDTO, 0, len(pkgsunat.UnitCodes)),
	}
	for _, a := range pkgsunat.AffectationCodes {
		pct := decimal.Zero
		if a.Code == pkgsunat.AffectationGravado {
			pct = pkgsunat.IGVPercent
		}
		out.CodigosAfectacionIGV = append(out.CodigosAfectacionIGV, dto.AfectacionDTO{
			Codigo: a.Code, Descripcion: a.Description, Porcentaje: pct,
		})
	}
	for _, u := range pkgsunat.UnitCodes {
		out.UnidadesMedidaComunes = append(out.UnidadesMedidaComunes, dto.CatalogItemDTO{
			Codigo: u.Code, Descripcion: u.Description,
		})
	}
	return c.JSON(out)
}
