// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Document holds the extracted text of one source file.
type Document struct {
	// Name is the file's base name (e.g. "progress-notes.pdf").
	Name string `json:"name" yaml:"name"`

	// Path is the file's location on disk.
	Path string `json:"path" yaml:"path"`

	// Pages is the page count for PDF sources, 0 for plain-text sources.
	Pages int `json:"pages,omitempty" yaml:"pages,omitempty"`

	// Text is the extracted text content.
	Text string `json:"text" yaml:"text"`
}
