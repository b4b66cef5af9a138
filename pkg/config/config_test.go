package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-sunat/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "beta", cfg.SUNAT.Environment)
	assert.Equal(t, config.SunatURLBeta, cfg.SUNAT.Endpoint())
	assert.Equal(t, 3, cfg.SUNAT.MaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.SUNAT.RetryDelay)
	assert.Equal(t, 120*time.Second, cfg.SUNAT.Timeout())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Setenv("SUNAT_ENV", "PROD")
	t.Setenv("SUNAT_MAX_ATTEMPTS", "5")
	t.Setenv("SUNAT_RETRY_DELAY_MS", "250")
	t.Setenv("EMPRESA_RUC", "20131312955")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.SunatURLProd, cfg.SUNAT.Endpoint())
	assert.Equal(t, 5, cfg.SUNAT.MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.SUNAT.RetryDelay)
	assert.Equal(t, "20131312955", cfg.Empresa.RUC)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoad_URLExplicitaTienePrioridad(t *testing.T) {
	t.Setenv("SUNAT_URL", "http://localhost:9999/billService")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999/billService", cfg.SUNAT.Endpoint())
}

func TestLoad_EntornoSunatInvalido(t *testing.T) {
	t.Setenv("SUNAT_ENV", "staging")

	_, err := config.Load()
	assert.Error(t, err)
}
