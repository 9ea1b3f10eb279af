package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"

	"github.com/fenilsonani/tidydir/internal/ui/utils"
	pkgutils "github.com/fenilsonani/tidydir/pkg/utils"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// ScanProgress draws a single live status line while files are hashed
type ScanProgress struct {
	mu         sync.Mutex
	out        io.Writer
	termWidth  int
	enabled    bool
	frame      int
	startTime  time.Time
	lastUpdate time.Time
	// interval throttles redraws
	interval time.Duration
}

// NewScanProgress creates a progress line on f. It stays silent unless f
// is a terminal.
func NewScanProgress(f *os.File) *ScanProgress {
	fd := int(f.Fd())
	width := 80
	if w, _, err := term.GetSize(fd); err == nil && w > 0 {
		width = w
	}
	return newScanProgress(f, width, term.IsTerminal(fd))
}

func newScanProgress(w io.Writer, width int, enabled bool) *ScanProgress {
	return &ScanProgress{
		out:       w,
		termWidth: width,
		enabled:   enabled,
		startTime: time.Now(),
		interval:  100 * time.Millisecond,
	}
}

// Update redraws the status line, at most ten times per second
func (p *ScanProgress) Update(path string, filesHashed int, bytesHashed int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled {
		return
	}

	now := time.Now()
	if now.Sub(p.lastUpdate) < p.interval {
		return
	}
	p.lastUpdate = now
	p.frame = (p.frame + 1) % len(spinnerFrames)

	elapsed := time.Since(p.startTime).Round(time.Second)
	status := fmt.Sprintf("%s Hashing: %d files | %s | %s | ",
		spinnerFrames[p.frame], filesHashed, pkgutils.FormatBytes(bytesHashed), elapsed)

	room := p.termWidth - len(status) - 1
	if room < 10 {
		room = 10
	}
	fmt.Fprintf(p.out, "\r\033[K%s%s", status, utils.TruncateMiddle(path, room))
}

// Finish clears the status line
func (p *ScanProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled || p.lastUpdate.IsZero() {
		return
	}
	fmt.Fprint(p.out, "\r\033[K")
}
