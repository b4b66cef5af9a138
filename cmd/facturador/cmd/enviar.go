package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/facturacion-sunat/internal/application/dto"
	infrasunat "github.com/jhoicas/facturacion-sunat/internal/infrastructure/sunat"
)

var (
	sendOutput  string
	showCDR     bool
	sendTimeout time.Duration
)

var enviarCmd = &cobra.Command{
	Use:   "enviar <peticion.json>",
	Short: "Envía la factura a SUNAT y muestra la respuesta",
	Long: `Ejecuta el pipeline completo: XML, firma, ZIP, sobre sendBill y envío al
billService configurado (SUNAT_ENV / SUNAT_URL). La respuesta se imprime como JSON,
con el mismo formato que devuelve el API.

El comando termina con error si SUNAT no acepta el comprobante.

Ejemplos:
  facturador enviar factura.json
  facturador enviar factura.json --cdr -o respuesta.json`,
	Args: cobra.ExactArgs(1),
	RunE: runEnviar,
}

func init() {
	rootCmd.AddCommand(enviarCmd)

	enviarCmd.Flags().StringVarP(&sendOutput, "output", "o", "", "Archivo para la respuesta JSON (por defecto: stdout)")
	enviarCmd.Flags().BoolVar(&showCDR, "cdr", false, "Decodifica el CDR de SUNAT y lo muestra en stderr")
	enviarCmd.Flags().DurationVar(&sendTimeout, "timeout", 0, "Límite de tiempo del comando (0 = SUNAT_TIMEOUT_SECONDS)")
}

func runEnviar(cmd *cobra.Command, args []string) error {
	req, err := readRequest(args[0], charset)
	if err != nil {
		return err
	}

	timeout := sendTimeout
	if timeout <= 0 {
		timeout = cfg.SUNAT.Timeout()
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	printVerbose("Enviando a %s\n", cfg.SUNAT.Endpoint())
	resp, err := newInvoiceUseCase().SubmitInvoice(ctx, "", req)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("serializar respuesta: %w", err)
	}
	if err := writeOutput(sendOutput, append(out, '\n')); err != nil {
		return err
	}

	if showCDR {
		printCDR(resp)
	}
	if !resp.Success {
		return fmt.Errorf("SUNAT no aceptó el comprobante: [%s] %s", resp.CodigoRespuesta, resp.Descripcion)
	}
	return nil
}

func printCDR(resp *dto.SunatResponse) {
	if resp.CDRSunat == "" {
		fmt.Fprintln(os.Stderr, "CDR: la respuesta no trae constancia de recepción")
		return
	}
	cdr, err := infrasunat.DecodeCDR(resp.CDRSunat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CDR: %v\n", err)
		return
	}
	fmt.Fprintf(os.Stderr, "CDR %s\n", cdr.FileName)
	fmt.Fprintf(os.Stderr, "  Comprobante: %s\n", cdr.ReferenceID)
	fmt.Fprintf(os.Stderr, "  Código:      %s\n", cdr.ResponseCode)
	fmt.Fprintf(os.Stderr, "  Descripción: %s\n", cdr.Description)
	for _, n := range cdr.Notes {
		fmt.Fprintf(os.Stderr, "  Nota:        %s\n", n)
	}
}
