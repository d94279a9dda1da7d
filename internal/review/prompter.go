// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package review

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// TerminalPrompter collects decisions from an interactive terminal.
// Reading from In is the only suspension point besides the generation
// service call.
type TerminalPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminalPrompter returns a prompter reading from in and writing
// prompts to out.
func NewTerminalPrompter(in io.Reader, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{in: bufio.NewReader(in), out: out}
}

var promptColor = color.New(color.FgCyan, color.Bold)

// Decide asks the user to accept or revise the named artifact. Unknown
// answers re-prompt; a revise answer asks for free-text feedback. EOF on
// the input stream is an error (the user terminated the session).
func (p *TerminalPrompter) Decide(name string) (Decision, error) {
	for {
		promptColor.Fprintf(p.out, "Accept this %s? (accept/revise): ", name)

		line, err := p.readLine()
		if err != nil {
			return Decision{}, err
		}

		switch strings.ToLower(line) {
		case "accept", "a", "yes", "y":
			return Decision{Approve: true}, nil
		case "revise", "r", "modify", "m":
			fmt.Fprint(p.out, "Feedback for revision: ")
			feedback, err := p.readLine()
			if err != nil {
				return Decision{}, err
			}
			return Decision{Feedback: feedback}, nil
		default:
			fmt.Fprintf(p.out, "Please answer 'accept' or 'revise'.\n")
		}
	}
}

func (p *TerminalPrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading user input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
