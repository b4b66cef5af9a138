package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturacion-sunat/internal/application/billing"
)

// PingHandler verificación de conectividad con SUNAT.
type PingHandler struct {
	uc *billing.ConnectivityUseCase
}

// NewPingHandler construye el handler.
func NewPingHandler(uc *billing.ConnectivityUseCase) *PingHandler {
	return &PingHandler{uc: uc}
}

// PingSunat 200 si el billService responde, 503 si no.
// GET /api/facturacion/ping-sunat
func (h *PingHandler) PingSunat(c *fiber.Ctx) error {
	resp := h.uc.Check(c.UserContext())
	if !resp.SunatAccesible {
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}
