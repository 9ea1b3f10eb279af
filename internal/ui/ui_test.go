package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fenilsonani/tidydir/internal/cleaner"
)

func TestLinePrompter(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("y\nNO\na\nskip all\nmaybe\ns\n")
	p := NewLinePrompter(in, &out)
	req := cleaner.Request{Path: "/r/empty"}

	want := []cleaner.Decision{
		cleaner.DecisionYes,
		cleaner.DecisionNo,
		cleaner.DecisionAll,
		cleaner.DecisionSkipAll,
		cleaner.DecisionNo,
		cleaner.DecisionSkipAll,
		// input exhausted
		cleaner.DecisionSkipAll,
	}
	for i, w := range want {
		if got := p.Decide(req); got != w {
			t.Errorf("answer %d = %v, want %v", i, got, w)
		}
	}

	if !strings.Contains(out.String(), "delete the empty folder '/r/empty'") {
		t.Errorf("prompt missing folder path: %q", out.String())
	}
	if !strings.Contains(out.String(), `Unrecognized answer "maybe"`) {
		t.Errorf("expected a note for the unrecognized answer: %q", out.String())
	}
}

func TestLinePrompterLastLineWithoutNewline(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader("a"), &out)

	if got := p.Decide(cleaner.Request{Path: "/r/x"}); got != cleaner.DecisionAll {
		t.Errorf("Decide() = %v, want all", got)
	}
}

func TestLinePrompterDuplicatePrompt(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader("n\n"), &out)

	p.Decide(cleaner.Request{Kind: cleaner.RequestDuplicate, Path: "/r/b.txt", Original: "/r/a.txt"})

	for _, want := range []string{"Original:  /r/a.txt", "Duplicate: /r/b.txt", "delete this duplicate"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("prompt %q missing %q", out.String(), want)
		}
	}
}

func TestScanProgress(t *testing.T) {
	var out bytes.Buffer
	p := newScanProgress(&out, 80, true)
	p.interval = 0

	p.Update("/r/some/file.bin", 3, 2048)
	if !strings.Contains(out.String(), "Hashing: 3 files | 2.00 KB") {
		t.Errorf("status line = %q", out.String())
	}

	p.Finish()
	if !strings.HasSuffix(out.String(), "\r\033[K") {
		t.Errorf("Finish did not clear the line: %q", out.String())
	}
}

func TestScanProgressDisabled(t *testing.T) {
	var out bytes.Buffer
	p := newScanProgress(&out, 80, false)

	p.Update("/r/file", 1, 1)
	p.Finish()
	if out.Len() != 0 {
		t.Errorf("disabled progress wrote %q", out.String())
	}
}
