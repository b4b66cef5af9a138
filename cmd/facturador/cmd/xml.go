package cmd

import (
	"github.com/spf13/cobra"
)

var xmlOutput string

var xmlCmd = &cobra.Command{
	Use:   "xml <peticion.json>",
	Short: "Genera el XML UBL 2.1 sin firmar",
	Long: `Valida la petición y escribe el XML de la factura sin firma ni envío.
Usar "-" para leer la petición desde stdin.

Ejemplos:
  facturador xml factura.json
  facturador xml factura.json -o F001-1.xml
  cat factura.json | facturador xml -`,
	Args: cobra.ExactArgs(1),
	RunE: runXML,
}

func init() {
	rootCmd.AddCommand(xmlCmd)

	xmlCmd.Flags().StringVarP(&xmlOutput, "output", "o", "", "Archivo de salida (por defecto: stdout)")
}

func runXML(cmd *cobra.Command, args []string) error {
	req, err := readRequest(args[0], charset)
	if err != nil {
		return err
	}

	data, filename, err := newInvoiceUseCase().GenerateXML("", req)
	if err != nil {
		return err
	}
	printVerbose("Generado %s\n", filename)
	return writeOutput(xmlOutput, data)
}
