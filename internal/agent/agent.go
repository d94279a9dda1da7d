// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package agent implements the two generation operations against the LLM
// service: outline proposal and per-section prose. Both are stateless
// request/response calls taking context text and optional revision
// feedback.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/pdiddy/report-engine/pkg/types"
)

// Request is one completion request against the generation service.
type Request struct {
	// System is the system prompt establishing the agent's role.
	System string

	// Prompt is the user-turn content.
	Prompt string
}

// Completer abstracts the generation service so tests can supply a mock.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// backoffBase controls the base duration for exponential backoff. Tests
// override this to avoid real sleeps.
var backoffBase = time.Second

// completeWithRetry calls the generation service with exponential backoff.
func completeWithRetry(ctx context.Context, c Completer, req Request, maxRetries int) (string, error) {
	if maxRetries <= 0 {
		maxRetries = 3
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * backoffBase
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		resp, err := c.Complete(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("after %d retries: %w", maxRetries, lastErr)
}

// OutlineAgent requests report outlines from the generation service.
type OutlineAgent struct {
	Completer  Completer
	MaxRetries int
}

// Propose requests an outline for the topic grounded in the source text.
// When prev is non-nil the request is a revision: the prior outline and
// the user's feedback are included, and the returned outline replaces the
// prior one wholesale.
func (a *OutlineAgent) Propose(ctx context.Context, topic, sources, feedback string, prev *types.Outline) (*types.Outline, error) {
	var prompt string
	var err error
	if prev == nil {
		prompt, err = renderOutlinePrompt(topic, sources)
	} else {
		prompt, err = renderOutlineRevisionPrompt(topic, sources, feedback, prev)
	}
	if err != nil {
		return nil, fmt.Errorf("rendering outline prompt: %w", err)
	}

	raw, err := completeWithRetry(ctx, a.Completer, Request{System: outlineSystemPrompt, Prompt: prompt}, a.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("requesting outline: %w", err)
	}

	outline, err := parseOutline(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing outline response: %w", err)
	}
	return outline, nil
}

// parseOutline decodes the model's JSON outline and validates it.
func parseOutline(raw string) (*types.Outline, error) {
	var outline types.Outline
	if err := json.Unmarshal([]byte(stripFences(raw)), &outline); err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}

	if outline.Title == "" {
		return nil, fmt.Errorf("outline has no title")
	}
	if len(outline.Sections) == 0 {
		return nil, fmt.Errorf("outline has no sections")
	}
	for i, sec := range outline.Sections {
		if strings.TrimSpace(sec.Title) == "" {
			return nil, fmt.Errorf("section %d has an empty title", i)
		}
	}

	outline.Status = types.StatusAwaitingDecision
	return &outline, nil
}

// stripFences removes a surrounding Markdown code fence from a model
// response, with or without a language tag.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// SectionWriter requests section prose from the generation service.
type SectionWriter struct {
	Completer  Completer
	MaxRetries int
}

// Write requests prose for one approved outline entry, grounded in the
// source text. When prev is non-nil the request is a revision carrying the
// prior draft and the user's feedback; the returned section replaces the
// prior one wholesale.
func (w *SectionWriter) Write(ctx context.Context, topic, sources string, entry types.OutlineSection, feedback string, prev *types.Section) (*types.Section, error) {
	var prompt string
	var err error
	if prev == nil {
		prompt, err = renderSectionPrompt(topic, sources, entry)
	} else {
		prompt, err = renderSectionRevisionPrompt(topic, entry, feedback, prev.Content)
	}
	if err != nil {
		return nil, fmt.Errorf("rendering section prompt: %w", err)
	}

	raw, err := completeWithRetry(ctx, w.Completer, Request{System: sectionSystemPrompt, Prompt: prompt}, w.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("requesting section %q: %w", entry.Title, err)
	}

	content := strings.TrimSpace(raw)
	if content == "" {
		return nil, fmt.Errorf("empty content for section %q", entry.Title)
	}

	return &types.Section{
		Title:   entry.Title,
		Content: content,
		Status:  types.StatusAwaitingDecision,
	}, nil
}
