// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ReviewStatus tracks an artifact's position in the approve/revise cycle.
type ReviewStatus string

const (
	StatusAwaitingDecision ReviewStatus = "awaiting_decision"
	StatusApproved         ReviewStatus = "approved"
)

// OutlineSection describes one planned section of the report.
type OutlineSection struct {
	// Title is the section heading.
	Title string `json:"title" yaml:"title"`

	// Description is a brief scope note for the section writer.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Outline is the proposed report structure. It is replaced wholesale on
// revision and becomes immutable once approved.
type Outline struct {
	// Title is the report title.
	Title string `json:"title" yaml:"title"`

	// Abstract is an optional summary placed after the title.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// Sections lists the planned sections in report order.
	Sections []OutlineSection `json:"sections" yaml:"sections"`

	// Status is awaiting_decision until the user approves the outline.
	Status ReviewStatus `json:"status,omitempty" yaml:"status,omitempty"`
}

// Approve marks the outline approved. Approving an already-approved
// outline has no effect.
func (o *Outline) Approve() {
	o.Status = StatusApproved
}

// Approved reports whether the outline has been approved.
func (o *Outline) Approved() bool {
	return o.Status == StatusApproved
}

// Section is generated prose for one outline entry. Replaced wholesale on
// revision; immutable once approved.
type Section struct {
	// Title matches the outline entry the section was written for.
	Title string `json:"title" yaml:"title"`

	// Content is the section's Markdown prose.
	Content string `json:"content" yaml:"content"`

	// Status is awaiting_decision until the user approves the section.
	Status ReviewStatus `json:"status,omitempty" yaml:"status,omitempty"`
}

// Approve marks the section approved. Idempotent.
func (s *Section) Approve() {
	s.Status = StatusApproved
}

// Approved reports whether the section has been approved.
func (s *Section) Approved() bool {
	return s.Status == StatusApproved
}

// Report is the ordered collection of approved sections. Assembled only
// after every section is approved; never mutated after writing.
type Report struct {
	// Title is the report title, taken from the approved outline.
	Title string `json:"title" yaml:"title"`

	// Abstract is the optional abstract from the approved outline.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// Sections lists the approved sections in outline order.
	Sections []Section `json:"sections" yaml:"sections"`

	// CreatedAt is the run start time, embedded in the output filename.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
