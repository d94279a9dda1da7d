// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package draft

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/report-engine/internal/agent"
	"github.com/pdiddy/report-engine/internal/review"
	"github.com/pdiddy/report-engine/pkg/types"
)

// scriptedCompleter returns a fixed sequence of responses.
type scriptedCompleter struct {
	responses []string
	calls     int
}

func (s *scriptedCompleter) Complete(_ context.Context, _ agent.Request) (string, error) {
	if s.calls >= len(s.responses) {
		return "", fmt.Errorf("no scripted response left (call %d)", s.calls+1)
	}
	resp := s.responses[s.calls]
	s.calls++
	return resp, nil
}

// failingCompleter always errors.
type failingCompleter struct{ calls int }

func (f *failingCompleter) Complete(_ context.Context, _ agent.Request) (string, error) {
	f.calls++
	return "", fmt.Errorf("service unavailable")
}

// scriptedPrompter returns a fixed sequence of decisions.
type scriptedPrompter struct {
	decisions []review.Decision
	calls     int
}

func (s *scriptedPrompter) Decide(_ string) (review.Decision, error) {
	if s.calls >= len(s.decisions) {
		return review.Decision{}, fmt.Errorf("no scripted decision left (call %d)", s.calls+1)
	}
	d := s.decisions[s.calls]
	s.calls++
	return d, nil
}

const twoSectionOutline = `{"title": "Project X Report", "sections": [{"title": "Overview", "description": "What the project is."}, {"title": "Status", "description": "Where it stands."}]}`

const revisedOutline = `{"title": "Project X Report, Revised", "sections": [{"title": "Summary", "description": "A single condensed section."}]}`

// newDeps wires a pipeline with scripted collaborators over a temp source dir.
func newDeps(t *testing.T, outliner, writer agent.Completer, prompter review.Prompter) Deps {
	t.Helper()

	srcDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(srcDir, "x.txt"), []byte("source text for X"), 0o644); err != nil {
		t.Fatal(err)
	}

	return Deps{
		Topic:      "progress report for project X",
		SourcesDir: srcDir,
		OutputDir:  t.TempDir(),
		Outliner:   &agent.OutlineAgent{Completer: outliner, MaxRetries: 1},
		Writer:     &agent.SectionWriter{Completer: writer, MaxRetries: 1},
		Prompter:   prompter,
		Out:        &strings.Builder{},
		Now:        func() time.Time { return time.Date(2026, 8, 29, 15, 30, 5, 0, time.UTC) },
	}
}

func approveN(n int) []review.Decision {
	decisions := make([]review.Decision, n)
	for i := range decisions {
		decisions[i] = review.Decision{Approve: true}
	}
	return decisions
}

func TestRunApproveEverythingFirstTry(t *testing.T) {
	outliner := &scriptedCompleter{responses: []string{twoSectionOutline}}
	writer := &scriptedCompleter{responses: []string{"Overview prose.", "Status prose."}}
	// One decision for the outline, one per section.
	prompter := &scriptedPrompter{decisions: approveN(3)}

	result, err := Run(context.Background(), newDeps(t, outliner, writer, prompter))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A 2-entry outline yields exactly 2 sections in the same order.
	if len(result.Report.Sections) != 2 {
		t.Fatalf("len(Sections) = %d, want 2", len(result.Report.Sections))
	}
	if result.Report.Sections[0].Title != "Overview" || result.Report.Sections[1].Title != "Status" {
		t.Errorf("section order = %q, %q", result.Report.Sections[0].Title, result.Report.Sections[1].Title)
	}
	if result.OutlineRevisions != 0 || result.SectionRevisions != 0 {
		t.Errorf("revisions = %d/%d, want 0/0", result.OutlineRevisions, result.SectionRevisions)
	}

	// The filename carries the run timestamp.
	if !strings.Contains(filepath.Base(result.Path), "20260829_153005") {
		t.Errorf("report path %q does not contain the run timestamp", result.Path)
	}

	data, err := os.ReadFile(result.Path)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "## Overview\n\nOverview prose.") {
		t.Error("report missing Overview section content")
	}
	if !strings.Contains(content, "## Status\n\nStatus prose.") {
		t.Error("report missing Status section content")
	}
	if strings.Index(content, "## Overview") > strings.Index(content, "## Status") {
		t.Error("sections written out of outline order")
	}

	// The approved outline is persisted alongside the report.
	if _, err := os.Stat(result.OutlinePath); err != nil {
		t.Errorf("outline file not written: %v", err)
	}
}

func TestRunOutlineRevision(t *testing.T) {
	outliner := &scriptedCompleter{responses: []string{twoSectionOutline, revisedOutline}}
	writer := &scriptedCompleter{responses: []string{"Summary prose."}}
	prompter := &scriptedPrompter{decisions: []review.Decision{
		{Feedback: "condense into one section"},
		{Approve: true}, // revised outline
		{Approve: true}, // the single section
	}}

	result, err := Run(context.Background(), newDeps(t, outliner, writer, prompter))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Exactly one additional outline call for one revision.
	if outliner.calls != 2 {
		t.Errorf("outline completer called %d times, want 2", outliner.calls)
	}
	if result.OutlineRevisions != 1 {
		t.Errorf("OutlineRevisions = %d, want 1", result.OutlineRevisions)
	}

	// The report reflects only the revised outline.
	if result.Report.Title != "Project X Report, Revised" {
		t.Errorf("Title = %q, want the revised title", result.Report.Title)
	}
	if len(result.Report.Sections) != 1 {
		t.Fatalf("len(Sections) = %d, want 1", len(result.Report.Sections))
	}

	data, err := os.ReadFile(result.Path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "Overview") {
		t.Error("report contains content from the discarded outline")
	}
}

func TestRunSectionRevision(t *testing.T) {
	outliner := &scriptedCompleter{responses: []string{twoSectionOutline}}
	writer := &scriptedCompleter{responses: []string{"Overview v1.", "Overview v2.", "Status prose."}}
	prompter := &scriptedPrompter{decisions: []review.Decision{
		{Approve: true},                   // outline
		{Feedback: "expand the overview"}, // first Overview draft
		{Approve: true},                   // revised Overview
		{Approve: true},                   // Status
	}}

	result, err := Run(context.Background(), newDeps(t, outliner, writer, prompter))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.SectionRevisions != 1 {
		t.Errorf("SectionRevisions = %d, want 1", result.SectionRevisions)
	}

	data, err := os.ReadFile(result.Path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Overview v2.") {
		t.Error("report missing the revised section draft")
	}
	if strings.Contains(string(data), "Overview v1.") {
		t.Error("report contains the discarded section draft")
	}
}

func TestRunSuppliedOutlineSkipsOutlineStage(t *testing.T) {
	outliner := &failingCompleter{}
	writer := &scriptedCompleter{responses: []string{"Summary prose."}}
	prompter := &scriptedPrompter{decisions: approveN(1)}

	deps := newDeps(t, outliner, writer, prompter)
	supplied := &types.Outline{
		Title:    "Reused Outline",
		Sections: []types.OutlineSection{{Title: "Summary"}},
	}
	supplied.Approve()
	deps.Outline = supplied

	result, err := Run(context.Background(), deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outliner.calls != 0 {
		t.Errorf("outline completer called %d times, want 0", outliner.calls)
	}
	if result.Report.Title != "Reused Outline" {
		t.Errorf("Title = %q", result.Report.Title)
	}
}

func TestRunServiceFailureWritesNothing(t *testing.T) {
	outliner := &failingCompleter{}
	writer := &scriptedCompleter{}
	prompter := &scriptedPrompter{}

	deps := newDeps(t, outliner, writer, prompter)
	_, err := Run(context.Background(), deps)
	if err == nil {
		t.Fatal("expected error when the generation service fails")
	}

	entries, readErr := os.ReadDir(deps.OutputDir)
	if readErr != nil {
		t.Fatal(readErr)
	}
	if len(entries) != 0 {
		t.Errorf("output directory has %d entries after a failed run, want 0", len(entries))
	}
}

func TestRunMissingSourceDir(t *testing.T) {
	deps := newDeps(t, &scriptedCompleter{}, &scriptedCompleter{}, &scriptedPrompter{})
	deps.SourcesDir = filepath.Join(t.TempDir(), "missing")

	_, err := Run(context.Background(), deps)
	if err == nil {
		t.Error("expected error for a missing source directory")
	}
}
