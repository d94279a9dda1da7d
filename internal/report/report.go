// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report assembles approved sections into a Markdown report and
// persists it under a timestamp-qualified filename.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/report-engine/pkg/types"
)

// timestampLayout produces filenames like report_20260829_153005.md.
// One timestamp per run keeps filenames unique across runs.
const timestampLayout = "20060102_150405"

// Assemble builds a Report from an approved outline and its approved
// sections. Every section must be approved and the section list must match
// the outline's entries in count, order, and title; anything else is a
// caller bug surfaced as an error.
func Assemble(outline *types.Outline, sections []types.Section, createdAt time.Time) (*types.Report, error) {
	if !outline.Approved() {
		return nil, fmt.Errorf("outline is not approved")
	}
	if len(sections) != len(outline.Sections) {
		return nil, fmt.Errorf("have %d sections for %d outline entries", len(sections), len(outline.Sections))
	}
	for i, sec := range sections {
		if !sec.Approved() {
			return nil, fmt.Errorf("section %q is not approved", sec.Title)
		}
		if sec.Title != outline.Sections[i].Title {
			return nil, fmt.Errorf("section %d is %q, outline entry is %q", i, sec.Title, outline.Sections[i].Title)
		}
	}

	return &types.Report{
		Title:     outline.Title,
		Abstract:  outline.Abstract,
		Sections:  sections,
		CreatedAt: createdAt,
	}, nil
}

// Render produces the report's Markdown document: title, optional
// abstract, then each section in outline order.
func Render(r *types.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", r.Title)
	if r.Abstract != "" {
		fmt.Fprintf(&b, "\n%s\n", strings.TrimSpace(r.Abstract))
	}
	for _, sec := range r.Sections {
		fmt.Fprintf(&b, "\n## %s\n\n%s\n", sec.Title, strings.TrimSpace(sec.Content))
	}
	return b.String()
}

// Filename returns the report's timestamped base name, e.g.
// "report_20260829_153005.md".
func Filename(r *types.Report) string {
	return fmt.Sprintf("report_%s.md", r.CreatedAt.Format(timestampLayout))
}

// Write renders the report and writes it to dir under its timestamped
// name. An existing file with the same name is an error; reports are never
// overwritten. Returns the written path.
func Write(r *types.Report, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, Filename(r))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("creating report file: %w", err)
	}

	if _, err := f.WriteString(Render(r)); err != nil {
		f.Close()
		return "", fmt.Errorf("writing report: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing report file: %w", err)
	}
	return path, nil
}

// WriteOutline persists the approved outline next to the report as
// report_<ts>.outline.yaml, so a later run can reuse it.
func WriteOutline(outline *types.Outline, r *types.Report, dir string) (string, error) {
	data, err := yaml.Marshal(outline)
	if err != nil {
		return "", fmt.Errorf("marshaling outline: %w", err)
	}

	name := fmt.Sprintf("report_%s.outline.yaml", r.CreatedAt.Format(timestampLayout))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing outline: %w", err)
	}
	return path, nil
}

// LoadOutline reads a previously approved outline from a YAML file. The
// loaded outline is treated as approved; the outline stage is skipped.
func LoadOutline(path string) (*types.Outline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading outline: %w", err)
	}
	var outline types.Outline
	if err := yaml.Unmarshal(data, &outline); err != nil {
		return nil, fmt.Errorf("parsing outline: %w", err)
	}
	if len(outline.Sections) == 0 {
		return nil, fmt.Errorf("outline %s has no sections", path)
	}
	outline.Approve()
	return &outline, nil
}
