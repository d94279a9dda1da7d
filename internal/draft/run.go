// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package draft orchestrates the drafting pipeline: load sources, propose
// an outline, write each section, and assemble the approved sections into
// a report. Every generation step is gated by the user through a review
// cycle; the pipeline is single-threaded and fully synchronous.
package draft

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/pdiddy/report-engine/internal/agent"
	"github.com/pdiddy/report-engine/internal/report"
	"github.com/pdiddy/report-engine/internal/review"
	"github.com/pdiddy/report-engine/internal/source"
	"github.com/pdiddy/report-engine/pkg/types"
)

// Deps carries everything one drafting run needs.
type Deps struct {
	// Topic describes the report to write.
	Topic string

	// SourcesDir is the directory of source documents.
	SourcesDir string

	// OutputDir is where the report and outline files are written.
	OutputDir string

	// Outline, when non-nil, is a previously approved outline; the outline
	// stage is skipped.
	Outline *types.Outline

	// HTML additionally writes an HTML rendering of the report.
	HTML bool

	// Outliner and Writer are the two generation operations.
	Outliner *agent.OutlineAgent
	Writer   *agent.SectionWriter

	// Prompter collects approve/revise decisions.
	Prompter review.Prompter

	// Out receives progress output and artifact presentations.
	Out io.Writer

	// Now supplies the run timestamp; nil means time.Now.
	Now func() time.Time
}

// Result summarizes a completed run.
type Result struct {
	Report           *types.Report
	Path             string
	OutlinePath      string
	HTMLPath         string
	OutlineRevisions int
	SectionRevisions int
}

var headingColor = color.New(color.FgGreen, color.Bold)

// Run executes the pipeline end to end. It returns an error when loading
// sources, a generation call, a prompt, or writing the report fails; no
// partial report is written in that case.
func Run(ctx context.Context, deps Deps) (*Result, error) {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	createdAt := now()

	srcs, err := source.Load(deps.SourcesDir)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(deps.Out, "Loaded %d source document(s) (%d chars)\n", len(srcs.Documents), srcs.TotalChars())
	sources := srcs.Concatenated()

	result := &Result{}

	outline := deps.Outline
	if outline == nil {
		outline, result.OutlineRevisions, err = runOutlineCycle(ctx, deps, sources)
		if err != nil {
			return nil, err
		}
	} else {
		fmt.Fprintf(deps.Out, "Using supplied outline (%d sections)\n", len(outline.Sections))
	}

	sections := make([]types.Section, 0, len(outline.Sections))
	for _, entry := range outline.Sections {
		sec, revisions, err := runSectionCycle(ctx, deps, sources, entry)
		if err != nil {
			return nil, err
		}
		result.SectionRevisions += revisions
		sections = append(sections, *sec)
	}

	rep, err := report.Assemble(outline, sections, createdAt)
	if err != nil {
		return nil, err
	}

	path, err := report.Write(rep, deps.OutputDir)
	if err != nil {
		return nil, err
	}
	result.Report = rep
	result.Path = path

	outlinePath, err := report.WriteOutline(outline, rep, deps.OutputDir)
	if err != nil {
		return nil, err
	}
	result.OutlinePath = outlinePath

	if deps.HTML {
		htmlPath, err := report.WriteHTML(rep, deps.OutputDir)
		if err != nil {
			return nil, err
		}
		result.HTMLPath = htmlPath
	}

	fmt.Fprintf(deps.Out, "\nReport saved to %s\n", path)
	return result, nil
}

// runOutlineCycle drives the outline stage through the review loop and
// marks the accepted outline approved.
func runOutlineCycle(ctx context.Context, deps Deps, sources string) (*types.Outline, int, error) {
	cycle := &review.Cycle[types.Outline]{
		Name: "outline",
		Produce: func(ctx context.Context, feedback string, prev *types.Outline) (*types.Outline, error) {
			return deps.Outliner.Propose(ctx, deps.Topic, sources, feedback, prev)
		},
		Present:  func(o *types.Outline) { presentOutline(deps.Out, o) },
		Prompter: deps.Prompter,
	}

	outline, revisions, err := cycle.Run(ctx)
	if err != nil {
		return nil, revisions, err
	}
	outline.Approve()
	return outline, revisions, nil
}

// runSectionCycle drives one section through the review loop and marks the
// accepted section approved.
func runSectionCycle(ctx context.Context, deps Deps, sources string, entry types.OutlineSection) (*types.Section, int, error) {
	fmt.Fprintf(deps.Out, "\nGenerating content for section: %s\n", entry.Title)

	cycle := &review.Cycle[types.Section]{
		Name: fmt.Sprintf("%q section", entry.Title),
		Produce: func(ctx context.Context, feedback string, prev *types.Section) (*types.Section, error) {
			return deps.Writer.Write(ctx, deps.Topic, sources, entry, feedback, prev)
		},
		Present:  func(s *types.Section) { presentSection(deps.Out, s) },
		Prompter: deps.Prompter,
	}

	sec, revisions, err := cycle.Run(ctx)
	if err != nil {
		return nil, revisions, err
	}
	sec.Approve()
	return sec, revisions, nil
}

// presentOutline prints the proposed structure for review.
func presentOutline(w io.Writer, o *types.Outline) {
	headingColor.Fprintln(w, "\nProposed report structure:")
	fmt.Fprintf(w, "Title: %s\n", o.Title)
	if o.Abstract != "" {
		fmt.Fprintf(w, "Abstract: %s\n", o.Abstract)
	}
	for _, sec := range o.Sections {
		fmt.Fprintf(w, "  - %s", sec.Title)
		if sec.Description != "" {
			fmt.Fprintf(w, ": %s", sec.Description)
		}
		fmt.Fprintln(w)
	}
}

// presentSection prints a section draft for review.
func presentSection(w io.Writer, s *types.Section) {
	headingColor.Fprintf(w, "\nDraft content for %s:\n", s.Title)
	fmt.Fprintf(w, "%s\n", s.Content)
}
