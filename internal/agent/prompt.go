// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"bytes"
	"encoding/json"
	"text/template"

	"github.com/pdiddy/report-engine/pkg/types"
)

// outlineSystemPrompt establishes the outline agent's role.
const outlineSystemPrompt = `You are a delegation agent responsible for creating report structures. Based on the topic and source documents, create a logical report structure. Consider academic report standards and ensure completeness.`

// sectionSystemPrompt establishes the section writer's role.
const sectionSystemPrompt = `Write comprehensive, well-researched content based on the provided sources. Maintain academic writing standards and ensure proper citations. Give Harvard-style citations for the sources you use, and only use the sources you have been given.`

// outlinePromptTmpl requests an initial outline as strict JSON.
var outlinePromptTmpl = template.Must(template.New("outline").Parse(`Create a report structure for the following topic.

Topic:
{{.Topic}}

Respond with a JSON object and nothing else. The object must have this shape:
{"title": "...", "abstract": "...", "sections": [{"title": "...", "description": "..."}]}

Each section needs a title and a one-sentence description of its scope.
The "abstract" field is optional and may be an empty string.

Source documents:
{{.Sources}}
`))

// outlineRevisionPromptTmpl requests a replacement outline after feedback.
// The revised outline fully replaces the prior one; the model must return
// the complete structure, not a delta.
var outlineRevisionPromptTmpl = template.Must(template.New("outline-revision").Parse(`Revise the report structure below based on the user's feedback. Return the complete revised structure as a JSON object with the same shape, and nothing else:
{"title": "...", "abstract": "...", "sections": [{"title": "...", "description": "..."}]}

Topic:
{{.Topic}}

Current structure:
{{.Prev}}

User feedback:
{{.Feedback}}

Source documents:
{{.Sources}}
`))

// sectionPromptTmpl requests prose for one outline entry.
var sectionPromptTmpl = template.Must(template.New("section").Parse(`Write the "{{.Title}}" section for a report on the following topic. Use only the source documents provided and cite them in Harvard style. Respond with the section's Markdown prose only; do not repeat the section heading.

Section scope: {{.Description}}

Topic:
{{.Topic}}

Source documents:
{{.Sources}}
`))

// sectionRevisionPromptTmpl requests a replacement draft after feedback.
var sectionRevisionPromptTmpl = template.Must(template.New("section-revision").Parse(`Revise the "{{.Title}}" section below based on the user's feedback. Return the complete revised section as Markdown prose only; do not repeat the section heading.

Topic:
{{.Topic}}

Current draft:
{{.Prev}}

User feedback:
{{.Feedback}}
`))

func renderOutlinePrompt(topic, sources string) (string, error) {
	return render(outlinePromptTmpl, map[string]string{
		"Topic":   topic,
		"Sources": sources,
	})
}

func renderOutlineRevisionPrompt(topic, sources, feedback string, prev *types.Outline) (string, error) {
	prevJSON, err := json.MarshalIndent(prev, "", "  ")
	if err != nil {
		return "", err
	}
	return render(outlineRevisionPromptTmpl, map[string]string{
		"Topic":    topic,
		"Sources":  sources,
		"Feedback": feedback,
		"Prev":     string(prevJSON),
	})
}

func renderSectionPrompt(topic, sources string, entry types.OutlineSection) (string, error) {
	return render(sectionPromptTmpl, map[string]string{
		"Topic":       topic,
		"Sources":     sources,
		"Title":       entry.Title,
		"Description": entry.Description,
	})
}

func renderSectionRevisionPrompt(topic string, entry types.OutlineSection, feedback, prev string) (string, error) {
	return render(sectionRevisionPromptTmpl, map[string]string{
		"Topic":    topic,
		"Title":    entry.Title,
		"Feedback": feedback,
		"Prev":     prev,
	})
}

func render(tmpl *template.Template, data map[string]string) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
