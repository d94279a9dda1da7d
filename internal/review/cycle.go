// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package review implements the approve/revise cycle that gates each
// generation step on explicit user approval.
//
// Each reviewed artifact moves through a two-state cycle: awaiting_decision
// until the user approves, back through the producer on revise. There is no
// limit on revisions; the cycle is driven entirely by synchronous user input.
package review

import (
	"context"
	"fmt"
)

// Decision is the user's verdict on a presented artifact.
type Decision struct {
	// Approve is true when the user accepts the artifact as-is.
	Approve bool

	// Feedback carries the user's revision guidance when Approve is false.
	Feedback string
}

// Prompter collects a Decision for a named artifact. The terminal
// implementation blocks on stdin; tests use scripted prompters.
type Prompter interface {
	Decide(name string) (Decision, error)
}

// Producer generates or revises an artifact. On the first call feedback is
// empty and prev is nil; on revision calls feedback is the user's guidance
// and prev is the rejected artifact. The returned artifact replaces prev
// wholesale.
type Producer[T any] func(ctx context.Context, feedback string, prev *T) (*T, error)

// Cycle drives one artifact through the approve/revise loop.
type Cycle[T any] struct {
	// Name labels the artifact in prompts (e.g. "outline", "Introduction section").
	Name string

	// Produce generates the artifact, initially and on each revision.
	Produce Producer[T]

	// Present shows the artifact to the user before each decision.
	Present func(*T)

	// Prompter collects the user's decision.
	Prompter Prompter
}

// Run produces the artifact, presents it, and loops on user feedback until
// approved. It returns the approved artifact and the number of revisions
// that were requested. A producer or prompter error aborts the cycle;
// there is no automatic retry.
func (c *Cycle[T]) Run(ctx context.Context) (*T, int, error) {
	artifact, err := c.Produce(ctx, "", nil)
	if err != nil {
		return nil, 0, fmt.Errorf("producing %s: %w", c.Name, err)
	}

	revisions := 0
	for {
		c.Present(artifact)

		decision, err := c.Prompter.Decide(c.Name)
		if err != nil {
			return nil, revisions, fmt.Errorf("reading decision for %s: %w", c.Name, err)
		}

		if decision.Approve {
			return artifact, revisions, nil
		}

		revised, err := c.Produce(ctx, decision.Feedback, artifact)
		if err != nil {
			return nil, revisions, fmt.Errorf("revising %s: %w", c.Name, err)
		}
		// The previous artifact is discarded entirely; no merge.
		artifact = revised
		revisions++
	}
}
