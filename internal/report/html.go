// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/pdiddy/report-engine/pkg/types"
)

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// RenderHTML converts the report's Markdown to an HTML fragment.
func RenderHTML(r *types.Report) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(Render(r)), &buf); err != nil {
		return "", fmt.Errorf("rendering HTML: %w", err)
	}
	return buf.String(), nil
}

// WriteHTML writes the HTML rendering next to the Markdown report, under
// the same timestamped base name. Returns the written path.
func WriteHTML(r *types.Report, dir string) (string, error) {
	html, err := RenderHTML(r)
	if err != nil {
		return "", err
	}

	name := strings.TrimSuffix(Filename(r), ".md") + ".html"
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("writing HTML report: %w", err)
	}
	return path, nil
}
