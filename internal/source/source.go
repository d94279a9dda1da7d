// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source loads report source documents from a directory.
// PDFs are read through text-layer extraction; Markdown and plain-text
// files are read directly.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/report-engine/pkg/types"
)

// SourceSet holds the documents loaded for one run, in filename order.
type SourceSet struct {
	Documents []types.Document
}

// Load reads every supported file in dir (non-recursive) and returns a
// SourceSet. Hidden files and subdirectories are skipped. A missing or
// unreadable directory, an unreadable file, or a directory with no
// supported documents is an error.
func Load(dir string) (*SourceSet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading source directory %s: %w", dir, err)
	}

	var docs []types.Document
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		doc, ok, err := loadDocument(path)
		if err != nil {
			return nil, err
		}
		if ok {
			docs = append(docs, doc)
		}
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("no supported source documents (.pdf, .md, .txt) in %s", dir)
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Name < docs[j].Name })
	return &SourceSet{Documents: docs}, nil
}

// loadDocument reads one file. The second return value is false when the
// file's extension is not supported.
func loadDocument(path string) (types.Document, bool, error) {
	name := filepath.Base(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		text, pages, err := extractPDFText(path)
		if err != nil {
			return types.Document{}, false, err
		}
		return types.Document{Name: name, Path: path, Pages: pages, Text: text}, true, nil
	case ".md", ".markdown", ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return types.Document{}, false, fmt.Errorf("reading %s: %w", name, err)
		}
		return types.Document{Name: name, Path: path, Text: string(data)}, true, nil
	default:
		return types.Document{}, false, nil
	}
}

// Concatenated joins the documents' text with labeled delimiters so the
// generation service can attribute content to individual sources.
func (s *SourceSet) Concatenated() string {
	var b strings.Builder
	for i, doc := range s.Documents {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "=== Source document: %s ===\n\n", doc.Name)
		b.WriteString(strings.TrimSpace(doc.Text))
	}
	return b.String()
}

// TotalChars returns the combined length of all document text.
func (s *SourceSet) TotalChars() int {
	total := 0
	for _, doc := range s.Documents {
		total += len(doc.Text)
	}
	return total
}
