package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	pkgjwt "github.com/jhoicas/facturacion-sunat/pkg/jwt"
	pkgsunat "github.com/jhoicas/facturacion-sunat/pkg/sunat"
)

var (
	tokenRUC     string
	tokenSubject string
	tokenMinutes int
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Emite un token JWT para el API",
	Long: `Firma un token HS256 con JWT_SECRET. El claim "ruc" limita el token a las
facturas de ese emisor.

Ejemplos:
  facturador token --ruc 20131312955
  facturador token --ruc 20131312955 --sub caja-01 --minutos 480`,
	Args: cobra.NoArgs,
	RunE: runToken,
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().StringVar(&tokenRUC, "ruc", "", "RUC del emisor autorizado (por defecto: EMPRESA_RUC)")
	tokenCmd.Flags().StringVar(&tokenSubject, "sub", "facturador", "Subject del token")
	tokenCmd.Flags().IntVar(&tokenMinutes, "minutos", 0, "Vigencia en minutos (0 = JWT_EXPIRATION_MINUTES)")
}

func runToken(cmd *cobra.Command, args []string) error {
	ruc := strings.TrimSpace(tokenRUC)
	if ruc == "" {
		ruc = strings.TrimSpace(cfg.Empresa.RUC)
	}
	if err := pkgsunat.ValidateRUC(ruc); err != nil {
		return fmt.Errorf("ruc %q: %w", ruc, err)
	}

	minutes := tokenMinutes
	if minutes <= 0 {
		minutes = cfg.JWT.Expiration
	}
	token, err := pkgjwt.Generate(cfg.JWT.Secret, tokenSubject, ruc, cfg.JWT.Issuer, minutes)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
