// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package review

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

// scriptedPrompter returns a fixed sequence of decisions.
type scriptedPrompter struct {
	decisions []Decision
	calls     int
}

func (s *scriptedPrompter) Decide(_ string) (Decision, error) {
	if s.calls >= len(s.decisions) {
		return Decision{}, fmt.Errorf("no scripted decision left (call %d)", s.calls+1)
	}
	d := s.decisions[s.calls]
	s.calls++
	return d, nil
}

func TestCycleApproveFirstTry(t *testing.T) {
	produced := 0
	cycle := &Cycle[string]{
		Name: "outline",
		Produce: func(_ context.Context, feedback string, prev *string) (*string, error) {
			produced++
			if feedback != "" || prev != nil {
				t.Errorf("first call got feedback=%q prev=%v, want empty/nil", feedback, prev)
			}
			v := "draft-1"
			return &v, nil
		},
		Present:  func(*string) {},
		Prompter: &scriptedPrompter{decisions: []Decision{{Approve: true}}},
	}

	got, revisions, err := cycle.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *got != "draft-1" {
		t.Errorf("artifact = %q, want %q", *got, "draft-1")
	}
	if revisions != 0 {
		t.Errorf("revisions = %d, want 0", revisions)
	}
	if produced != 1 {
		t.Errorf("producer called %d times, want 1", produced)
	}
}

func TestCycleReviseThenApprove(t *testing.T) {
	produced := 0
	var gotFeedback string
	var gotPrev *string

	cycle := &Cycle[string]{
		Name: "outline",
		Produce: func(_ context.Context, feedback string, prev *string) (*string, error) {
			produced++
			v := fmt.Sprintf("draft-%d", produced)
			if produced > 1 {
				gotFeedback = feedback
				gotPrev = prev
			}
			return &v, nil
		},
		Present: func(*string) {},
		Prompter: &scriptedPrompter{decisions: []Decision{
			{Feedback: "add a methods section"},
			{Approve: true},
		}},
	}

	got, revisions, err := cycle.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Exactly one extra producer call for one revision.
	if produced != 2 {
		t.Errorf("producer called %d times, want 2", produced)
	}
	if revisions != 1 {
		t.Errorf("revisions = %d, want 1", revisions)
	}
	if gotFeedback != "add a methods section" {
		t.Errorf("revision feedback = %q, want the user's feedback", gotFeedback)
	}
	if gotPrev == nil || *gotPrev != "draft-1" {
		t.Errorf("revision prev = %v, want draft-1", gotPrev)
	}
	// The revised artifact fully replaces the original.
	if *got != "draft-2" {
		t.Errorf("artifact = %q, want %q", *got, "draft-2")
	}
}

func TestCycleProducerError(t *testing.T) {
	cycle := &Cycle[string]{
		Name: "section",
		Produce: func(_ context.Context, _ string, _ *string) (*string, error) {
			return nil, fmt.Errorf("service unavailable")
		},
		Present:  func(*string) {},
		Prompter: &scriptedPrompter{},
	}

	_, _, err := cycle.Run(context.Background())
	if err == nil {
		t.Fatal("expected error from failing producer")
	}
	if !strings.Contains(err.Error(), "section") {
		t.Errorf("error %q does not name the artifact", err)
	}
}

func TestCycleRevisionProducerError(t *testing.T) {
	produced := 0
	cycle := &Cycle[string]{
		Name: "outline",
		Produce: func(_ context.Context, _ string, _ *string) (*string, error) {
			produced++
			if produced > 1 {
				return nil, fmt.Errorf("rate limited")
			}
			v := "draft-1"
			return &v, nil
		},
		Present:  func(*string) {},
		Prompter: &scriptedPrompter{decisions: []Decision{{Feedback: "shorter"}}},
	}

	_, _, err := cycle.Run(context.Background())
	if err == nil {
		t.Fatal("expected error from failing revision")
	}
}

func TestTerminalPrompterAccept(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"full word", "accept\n"},
		{"short form", "a\n"},
		{"yes", "yes\n"},
		{"mixed case", "Accept\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out strings.Builder
			p := NewTerminalPrompter(strings.NewReader(tt.input), &out)
			d, err := p.Decide("outline")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !d.Approve {
				t.Error("Approve = false, want true")
			}
		})
	}
}

func TestTerminalPrompterRevise(t *testing.T) {
	var out strings.Builder
	p := NewTerminalPrompter(strings.NewReader("revise\nmore detail please\n"), &out)

	d, err := p.Decide("outline")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Approve {
		t.Error("Approve = true, want false")
	}
	if d.Feedback != "more detail please" {
		t.Errorf("Feedback = %q, want %q", d.Feedback, "more detail please")
	}
}

func TestTerminalPrompterReprompts(t *testing.T) {
	var out strings.Builder
	p := NewTerminalPrompter(strings.NewReader("what\naccept\n"), &out)

	d, err := p.Decide("outline")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.Approve {
		t.Error("Approve = false, want true after re-prompt")
	}
	if !strings.Contains(out.String(), "Please answer") {
		t.Error("expected a re-prompt message for unknown input")
	}
}

func TestTerminalPrompterEOF(t *testing.T) {
	var out strings.Builder
	p := NewTerminalPrompter(strings.NewReader(""), &out)

	_, err := p.Decide("outline")
	if err == nil {
		t.Error("expected error on EOF")
	}
}
