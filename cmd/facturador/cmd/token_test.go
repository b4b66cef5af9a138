package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-sunat/pkg/config"
	pkgjwt "github.com/jhoicas/facturacion-sunat/pkg/jwt"
)

func withConfig(t *testing.T, c *config.Config) {
	t.Helper()
	prev := cfg
	cfg = c
	t.Cleanup(func() { cfg = prev })
}

func TestRunToken_EmiteTokenConRUC(t *testing.T) {
	withConfig(t, &config.Config{
		JWT: config.JWTConfig{Secret: "secreto-cli", Expiration: 5, Issuer: "facturacion-sunat"},
	})
	tokenRUC, tokenSubject, tokenMinutes = "20131312955", "caja-01", 0

	var out bytes.Buffer
	c := &cobra.Command{}
	c.SetOut(&out)
	require.NoError(t, runToken(c, nil))

	sub, ruc, err := pkgjwt.Parse("secreto-cli", strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, "caja-01", sub)
	assert.Equal(t, "20131312955", ruc)
}

func TestRunToken_UsaEmpresaRUCPorDefecto(t *testing.T) {
	withConfig(t, &config.Config{
		JWT:     config.JWTConfig{Secret: "secreto-cli", Expiration: 5},
		Empresa: config.EmpresaConfig{RUC: "20131312955"},
	})
	tokenRUC, tokenSubject, tokenMinutes = "", "facturador", 10

	var out bytes.Buffer
	c := &cobra.Command{}
	c.SetOut(&out)
	require.NoError(t, runToken(c, nil))

	_, ruc, err := pkgjwt.Parse("secreto-cli", strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, "20131312955", ruc)
}

func TestRunToken_Errores(t *testing.T) {
	withConfig(t, &config.Config{JWT: config.JWTConfig{Secret: "secreto-cli", Expiration: 5}})

	tokenRUC = "20131312956"
	err := runToken(&cobra.Command{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "20131312956")

	withConfig(t, &config.Config{JWT: config.JWTConfig{Expiration: 5}})
	tokenRUC = "20131312955"
	err = runToken(&cobra.Command{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secret vacío")
}
