// Package ui holds the interactive parts of tidydir: deletion prompts and
// the live progress line.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/fenilsonani/tidydir/internal/cleaner"
	"github.com/fenilsonani/tidydir/internal/ui/models"
)

const promptChoices = "(y/n/a/skip all)"

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// LinePrompter asks for decisions one line at a time
type LinePrompter struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewLinePrompter creates a prompter reading answers from in
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{reader: bufio.NewReader(in), out: out}
}

// Decide implements cleaner.Decider. Unrecognized answers keep the item,
// end of input skips everything left.
func (p *LinePrompter) Decide(req cleaner.Request) cleaner.Decision {
	switch req.Kind {
	case cleaner.RequestDuplicate:
		fmt.Fprintf(p.out, "\nDuplicate found:\n  Original:  %s\n  Duplicate: %s\n", req.Original, req.Path)
		fmt.Fprintf(p.out, "Do you want to delete this duplicate? %s: ", promptChoices)
	default:
		fmt.Fprintf(p.out, "\nDo you want to delete the empty folder '%s'? %s: ", req.Path, promptChoices)
	}

	line, err := p.reader.ReadString('\n')
	if err != nil && strings.TrimSpace(line) == "" {
		fmt.Fprintln(p.out)
		return cleaner.DecisionSkipAll
	}

	d, ok := cleaner.ParseDecision(line)
	if !ok {
		fmt.Fprintf(p.out, "Unrecognized answer %q, keeping it\n", strings.TrimSpace(line))
	}
	return d
}

// TUIDecider asks each question in a small Bubble Tea program
type TUIDecider struct {
	in    io.Reader
	out   io.Writer
	width int
}

// NewTUIDecider creates a TUIDecider drawing on out
func NewTUIDecider(in io.Reader, out *os.File) *TUIDecider {
	width := 80
	if w, _, err := term.GetSize(int(out.Fd())); err == nil && w > 0 {
		width = w
	}
	return &TUIDecider{in: in, out: out, width: width}
}

// Decide implements cleaner.Decider. A failing program skips everything left.
func (d *TUIDecider) Decide(req cleaner.Request) cleaner.Decision {
	var size int64
	if info, err := os.Lstat(req.Path); err == nil && !info.IsDir() {
		size = info.Size()
	}

	m := models.NewDecisionViewModel(req, size, d.width)
	final, err := tea.NewProgram(m, tea.WithInput(d.in), tea.WithOutput(d.out)).Run()
	if err != nil {
		return cleaner.DecisionSkipAll
	}

	if view, ok := final.(*models.DecisionViewModel); ok {
		if decision, done := view.Decision(); done {
			return decision
		}
	}
	return cleaner.DecisionSkipAll
}
