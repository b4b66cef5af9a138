package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturacion-sunat/internal/application/billing"
	"github.com/jhoicas/facturacion-sunat/internal/application/dto"
	"github.com/jhoicas/facturacion-sunat/internal/domain"
)

// InvoiceHandler maneja las peticiones HTTP de facturación SUNAT.
type InvoiceHandler struct {
	uc  *billing.InvoiceUseCase
	pdf *billing.PDFUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase, pdf *billing.PDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, pdf: pdf}
}

// Submit envía la factura a SUNAT. 200 si fue aceptada, 400 con el mismo cuerpo si no.
// POST /api/facturacion/prueba-factura
func (h *InvoiceHandler) Submit(c *fiber.Ctx) error {
	var in dto.FacturaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	resp, err := h.uc.SubmitInvoice(c.UserContext(), GetRUC(c), in)
	if err != nil {
		return writeError(c, err)
	}
	if !resp.Success {
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	}
	return c.JSON(resp)
}

// GenerateXML devuelve el XML UBL sin firmar como adjunto.
// POST /api/facturacion/generar-xml
func (h *InvoiceHandler) GenerateXML(c *fiber.Ctx) error {
	var in dto.FacturaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	xml, filename, err := h.uc.GenerateXML(GetRUC(c), in)
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	return c.Send(xml)
}

// PrintedRepresentation genera la representación impresa (PDF).
// POST /api/facturacion/representacion-impresa
func (h *InvoiceHandler) PrintedRepresentation(c *fiber.Ctx) error {
	var in dto.FacturaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	pdfBytes, filename, err := h.pdf.GenerateInvoicePDF(c.UserContext(), GetRUC(c), in)
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(pdfBytes)
}

// SampleData petición de ejemplo con el emisor configurado.
// GET /api/facturacion/datos-prueba
func (h *InvoiceHandler) SampleData(c *fiber.Ctx) error {
	return c.JSON(h.uc.SampleRequest())
}

// Stats estado del servicio y contadores de envío.
// GET /api/facturacion/stats
func (h *InvoiceHandler) Stats(c *fiber.Ctx) error {
	return c.JSON(h.uc.Stats())
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// writeError traduce errores de dominio a respuestas HTTP.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
