package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturacion-sunat/internal/application/billing"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	InvoiceUC *billing.InvoiceUseCase
	PDFUC     *billing.PDFUseCase
	PingUC    *billing.ConnectivityUseCase
	JWTSecret string // vacío = API sin autenticación
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	catalogHandler := NewCatalogHandler()
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.PDFUC)
	pingHandler := NewPingHandler(deps.PingUC)
	auth := AuthMiddleware(deps.JWTSecret)

	app.Get("/health", catalogHandler.Health)

	api := app.Group("/api/facturacion")

	// Público
	api.Get("/health", catalogHandler.Health)
	api.Get("/test", catalogHandler.Ready)
	api.Get("/ping-sunat", pingHandler.PingSunat)
	api.Get("/stats", invoiceHandler.Stats)
	api.Get("/codigos-afectacion", catalogHandler.AffectationCodes)

	// Protegido: datos-prueba expone las credenciales SOL configuradas
	api.Get("/datos-prueba", auth, invoiceHandler.SampleData)
	api.Post("/prueba-factura", auth, invoiceHandler.Submit)
	api.Post("/generar-xml", auth, invoiceHandler.GenerateXML)
	api.Post("/representacion-impresa", auth, invoiceHandler.PrintedRepresentation)
}
