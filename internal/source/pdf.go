// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDFText reads the embedded text layer of a PDF and returns the
// text plus the page count. Scanned (image-only) PDFs carry no text layer
// and are reported as errors rather than silently contributing nothing.
func extractPDFText(path string) (string, int, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("opening pdf %s: %w", path, err)
	}
	defer f.Close()

	numPages := r.NumPage()
	fonts := make(map[string]*pdf.Font)
	var parts []string

	for i := 1; i <= numPages; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}

		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				fnt := p.Font(name)
				fonts[name] = &fnt
			}
		}

		text, err := p.GetPlainText(fonts)
		if err != nil {
			return "", 0, fmt.Errorf("reading pdf %s page %d: %w", path, i, err)
		}
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}

	if len(parts) == 0 {
		return "", 0, fmt.Errorf("pdf %s has no extractable text layer", path)
	}

	return strings.Join(parts, "\n\n"), numPages, nil
}
