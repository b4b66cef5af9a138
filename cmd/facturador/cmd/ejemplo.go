package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var ejemploCmd = &cobra.Command{
	Use:   "ejemplo",
	Short: "Imprime una petición de ejemplo con el emisor configurado",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := json.MarshalIndent(newInvoiceUseCase().SampleRequest(), "", "  ")
		if err != nil {
			return fmt.Errorf("serializar ejemplo: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ejemploCmd)
}
