package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/facturacion-sunat/internal/application/dto"
)

const (
	charsetUTF8   = "utf-8"
	charsetLatin1 = "iso-8859-1"
)

// readRequest lee la petición desde path ("-" = stdin).
func readRequest(path, enc string) (dto.FacturaRequest, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return dto.FacturaRequest{}, fmt.Errorf("abrir petición: %w", err)
		}
		defer f.Close()
		r = f
	}
	return decodeRequest(r, enc)
}

// decodeRequest decodifica el JSON de la petición; Latin-1 se convierte a UTF-8 antes.
func decodeRequest(r io.Reader, enc string) (dto.FacturaRequest, error) {
	switch strings.ToLower(strings.TrimSpace(enc)) {
	case "", charsetUTF8, "utf8":
	case charsetLatin1, "iso8859-1", "latin1":
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	default:
		return dto.FacturaRequest{}, fmt.Errorf("charset %q no soportado (usar utf-8 o iso-8859-1)", enc)
	}

	var req dto.FacturaRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return dto.FacturaRequest{}, fmt.Errorf("decodificar petición: %w", err)
	}
	return req, nil
}

// writeOutput escribe data en path o en stdout si path está vacío.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", path, err)
	}
	printVerbose("Escrito %s (%d bytes)\n", path, len(data))
	return nil
}
