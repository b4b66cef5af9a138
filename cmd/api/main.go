package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jonboulle/clockwork"

	"github.com/jhoicas/facturacion-sunat/internal/application/billing"
	infrapdf "github.com/jhoicas/facturacion-sunat/internal/infrastructure/pdf"
	infrasunat "github.com/jhoicas/facturacion-sunat/internal/infrastructure/sunat"
	httpRouter "github.com/jhoicas/facturacion-sunat/internal/interfaces/http"
	"github.com/jhoicas/facturacion-sunat/pkg/config"
	"github.com/jhoicas/facturacion-sunat/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("sunat_env", cfg.SUNAT.Environment).
		Str("sunat_url", cfg.SUNAT.Endpoint()).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: la API queda sin autenticación")
	}
	if cfg.Empresa.RUC == "" {
		log.Warn().Msg("EMPRESA_RUC vacío: cada petición debe traer los datos del emisor")
	}

	clock := clockwork.NewRealClock()

	// Pipeline: XML UBL 2.1 → firma simulada + ZIP → sobre sendBill → billService → respuesta
	xmlBuilder := infrasunat.NewXMLBuilderService()
	packager := infrasunat.NewDocumentPackager(infrasunat.NewSignatureIDSource(clock))
	envelopes := infrasunat.NewEnvelopeBuilder()
	soapClient := infrasunat.NewSOAPSunatClient(cfg.SUNAT.Endpoint(),
		infrasunat.WithClock(clock),
		infrasunat.WithRetryPolicy(infrasunat.RetryPolicy{
			MaxAttempts: cfg.SUNAT.MaxAttempts,
			Delay:       cfg.SUNAT.RetryDelay,
			Budget:      cfg.SUNAT.Timeout(),
		}),
	)
	orchestrator := billing.NewSunatOrchestrator(
		xmlBuilder, packager, envelopes, soapClient, infrasunat.NewResponseInterpreter(), log,
	)

	invoiceCfg := billing.InvoiceConfig{
		Issuer:      billing.IssuerFromConfig(cfg.Empresa),
		Environment: cfg.SUNAT.Environment,
		Endpoint:    cfg.SUNAT.Endpoint(),
	}
	invoiceUC := billing.NewInvoiceUseCase(orchestrator, xmlBuilder, invoiceCfg, clock)
	pingUC := billing.NewConnectivityUseCase(soapClient, invoiceCfg, clock, 0)

	// PDF: representación impresa de la factura electrónica
	pdfUC := billing.NewPDFUseCase(invoiceUC, infrapdf.NewMarotoPDFGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.SUNAT.Timeout() + 10*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Facturación SUNAT API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		InvoiceUC: invoiceUC,
		PDFUC:     pdfUC,
		PingUC:    pingUC,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
