package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/facturacion-sunat/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestGenerateAndParse_ConRUC(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "caja-01", "20131312955", "facturacion-test", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	subject, ruc, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "caja-01", subject)
	assert.Equal(t, "20131312955", ruc)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "caja-01", "20131312955", "facturacion-test", -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "caja-01", "20131312955", "facturacion-test", 60)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", "caja-01", "20131312955", "facturacion-test", 60)
	assert.Error(t, err)
}
