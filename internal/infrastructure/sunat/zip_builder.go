package sunat

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strconv"

	pkgsunat "github.com/jhoicas/facturacion-sunat/pkg/sunat"
)

// CompressXMLToZip empaqueta el XML firmado en un ZIP (deflate) en memoria con una
// única entrada llamada entryName.
func CompressXMLToZip(xmlBytes []byte, entryName string) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	fw, err := zw.CreateHeader(&zip.FileHeader{Name: entryName, Method: zip.Deflate})
	if err != nil {
		return nil, fmt.Errorf("zip: crear entrada %s: %w", entryName, err)
	}
	if _, err := fw.Write(xmlBytes); err != nil {
		return nil, fmt.Errorf("zip: escribir XML: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip: cerrar archivo: %w", err)
	}
	return buf.Bytes(), nil
}

// SunatFileName nombre del archivo a enviar: {RUC}-01-{SERIE}-{CORRELATIVO}.ZIP
// Ejemplo: 20131312955-01-F001-1.ZIP
func SunatFileName(ruc, series string, correlative uint64) string {
	return ruc + "-" + pkgsunat.DocumentTypeFactura + "-" + series + "-" + strconv.FormatUint(correlative, 10) + ".ZIP"
}
