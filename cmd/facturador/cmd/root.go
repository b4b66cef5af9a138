package cmd

import (
	"fmt"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/jhoicas/facturacion-sunat/internal/application/billing"
	infrasunat "github.com/jhoicas/facturacion-sunat/internal/infrastructure/sunat"
	"github.com/jhoicas/facturacion-sunat/pkg/config"
	"github.com/jhoicas/facturacion-sunat/pkg/logger"
)

var (
	version = "1.0.0"

	// Flags globales
	verbose bool
	charset string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "facturador",
	Short: "Factura electrónica SUNAT desde la línea de comandos",
	Long: `Facturador genera y envía facturas electrónicas (tipo 01, UBL 2.1) al
servicio billService de SUNAT usando la misma configuración que el API (EMPRESA_*, SUNAT_*).

La petición es el mismo JSON que recibe POST /api/facturacion/prueba-factura.

Ejemplos:
  # Petición de ejemplo lista para editar
  facturador ejemplo > factura.json

  # XML sin firmar
  facturador xml factura.json -o factura.xml

  # Envío al ambiente configurado (beta por defecto)
  facturador enviar factura.json --cdr

  # Archivo exportado desde un sistema antiguo en Latin-1
  facturador enviar factura.json --charset iso-8859-1

  # Token para el API
  facturador token --ruc 20131312955`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("cargar configuración: %w", err)
		}
		cfg = c
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Logs del pipeline en stderr")
	rootCmd.PersistentFlags().StringVar(&charset, "charset", charsetUTF8, "Codificación del archivo de entrada (utf-8, iso-8859-1)")
}

// newInvoiceUseCase arma el pipeline completo contra el endpoint configurado.
func newInvoiceUseCase() *billing.InvoiceUseCase {
	log := logger.Nop()
	if verbose {
		log = logger.New(logger.Config{Env: "development", Level: "debug", Out: os.Stderr})
	}

	clock := clockwork.NewRealClock()
	xmlBuilder := infrasunat.NewXMLBuilderService()
	client := infrasunat.NewSOAPSunatClient(cfg.SUNAT.Endpoint(),
		infrasunat.WithClock(clock),
		infrasunat.WithRetryPolicy(infrasunat.RetryPolicy{
			MaxAttempts: cfg.SUNAT.MaxAttempts,
			Delay:       cfg.SUNAT.RetryDelay,
			Budget:      cfg.SUNAT.Timeout(),
		}),
	)
	orchestrator := billing.NewSunatOrchestrator(
		xmlBuilder,
		infrasunat.NewDocumentPackager(infrasunat.NewSignatureIDSource(clock)),
		infrasunat.NewEnvelopeBuilder(),
		client,
		infrasunat.NewResponseInterpreter(),
		log,
	)
	return billing.NewInvoiceUseCase(orchestrator, xmlBuilder, billing.InvoiceConfig{
		Issuer:      billing.IssuerFromConfig(cfg.Empresa),
		Environment: cfg.SUNAT.Environment,
		Endpoint:    cfg.SUNAT.Endpoint(),
	}, clock)
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
