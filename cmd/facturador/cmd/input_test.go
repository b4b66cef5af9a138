package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const requestJSON = `{
  "cliente": {"tipo_documento": "6", "numero_documento": "20000000001", "razon_social": "%s"},
  "serie": "F001",
  "correlativo": 12,
  "items": [{"descripcion": "SERVICIO", "cantidad": "1", "valor_unitario": "100.00"}]
}`

func TestDecodeRequest_UTF8(t *testing.T) {
	body := strings.Replace(requestJSON, "%s", "CAÑETE E.I.R.L.", 1)

	req, err := decodeRequest(strings.NewReader(body), "")
	require.NoError(t, err)
	assert.Equal(t, "CAÑETE E.I.R.L.", req.Cliente.RazonSocial)
	assert.Equal(t, uint64(12), req.Correlativo)
	require.Len(t, req.Items, 1)
	assert.Equal(t, "100", req.Items[0].ValorUnitario.String())
}

func TestDecodeRequest_Latin1(t *testing.T) {
	// "Ñ" en ISO-8859-1 es el byte 0xD1
	body := strings.Replace(requestJSON, "%s", "CA\xd1ETE E.I.R.L.", 1)

	req, err := decodeRequest(bytes.NewReader([]byte(body)), "ISO-8859-1")
	require.NoError(t, err)
	assert.Equal(t, "CAÑETE E.I.R.L.", req.Cliente.RazonSocial)
}

func TestDecodeRequest_Errores(t *testing.T) {
	_, err := decodeRequest(strings.NewReader("{}"), "utf-16")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no soportado")

	_, err = decodeRequest(strings.NewReader("no es json"), charsetUTF8)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decodificar petición")
}

func TestReadRequest_Archivo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "factura.json")
	body := strings.Replace(requestJSON, "%s", "CLIENTE S.A.C.", 1)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	req, err := readRequest(path, charsetUTF8)
	require.NoError(t, err)
	assert.Equal(t, "CLIENTE S.A.C.", req.Cliente.RazonSocial)

	_, err = readRequest(filepath.Join(t.TempDir(), "no-existe.json"), charsetUTF8)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "abrir petición")
}
