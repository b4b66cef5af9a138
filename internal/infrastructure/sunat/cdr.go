package sunat

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/beevik/etree"
)

// CDRSummary datos principales de la Constancia de Recepción (CDR) devuelta por SUNAT.
type CDRSummary struct {
	FileName     string // entrada del ZIP (R-{ruc}-01-{serie}-{correlativo}.xml)
	ReferenceID  string // comprobante al que responde
	ResponseCode string // 0 = aceptada; 2000-3999 rechazo; 4000+ observaciones
	Description  string
	Notes        []string // observaciones (cbc:Note)
}

// Accepted indica si el CDR acepta el comprobante (con o sin observaciones).
func (s *CDRSummary) Accepted() bool {
	return s.ResponseCode == "0" || (len(s.ResponseCode) == 4 && s.ResponseCode >= "4000")
}

// DecodeCDR decodifica el applicationResponse: base64 -> ZIP -> XML ApplicationResponse.
// Solo informa; nunca altera el resultado del envío.
func DecodeCDR(payload string) (*CDRSummary, error) {
	zipBytes, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, fmt.Errorf("cdr: base64 inválido: %w", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(zipBytes), int64(len(zipBytes)))
	if err != nil {
		return nil, fmt.Errorf("cdr: zip inválido: %w", err)
	}

	for _, f := range zr.File {
		if !strings.EqualFold(path.Ext(f.Name), ".xml") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("cdr: abrir %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(io.LimitReader(rc, maxResponseBytes))
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("cdr: leer %s: %w", f.Name, err)
		}
		return parseCDR(f.Name, data)
	}
	return nil, fmt.Errorf("cdr: el ZIP no contiene XML")
}

func parseCDR(name string, data []byte) (*CDRSummary, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("cdr: parsear %s: %w", name, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("cdr: %s vacío", name)
	}
	out := &CDRSummary{FileName: name}

	if resp := findFirst(root, "Response"); resp != nil {
		out.ReferenceID = childText(resp, "ReferenceID")
		out.ResponseCode = childText(resp, "ResponseCode")
		out.Description = childText(resp, "Description")
	}
	for _, c := range root.ChildElements() {
		if c.Tag == "Note" {
			out.Notes = append(out.Notes, strings.TrimSpace(c.Text()))
		}
	}
	if out.ResponseCode == "" {
		return nil, fmt.Errorf("cdr: %s sin cbc:ResponseCode", name)
	}
	return out, nil
}

func childText(e *etree.Element, local string) string {
	for _, c := range e.ChildElements() {
		if c.Tag == local {
			return strings.TrimSpace(c.Text())
		}
	}
	return ""
}
