package cliui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
)

const progressInterval = 100 * time.Millisecond

// Progress draws a single, self-overwriting "label  12 MB / 40 MB" line.
// Its Update method satisfies stream.ProgressFunc.
type Progress struct {
	mu       sync.Mutex
	w        io.Writer
	label    string
	enabled  bool
	interval time.Duration
	last     time.Time
	drawn    bool
	line     string
	now      func() time.Time
}

// NewProgress returns a Progress writing to w. It draws nothing unless w
// is a terminal.
func NewProgress(w io.Writer, label string) *Progress {
	return &Progress{
		w:        w,
		label:    label,
		enabled:  IsTerminal(w),
		interval: progressInterval,
		now:      time.Now,
	}
}

// Update redraws the line at most once per interval, and always when
// received reaches a known total. total < 0 means unknown.
func (p *Progress) Update(received, total int64) {
	if p == nil || !p.enabled {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	complete := total >= 0 && received >= total
	if p.drawn && !complete && now.Sub(p.last) < p.interval {
		return
	}
	p.last = now
	p.drawn = true

	p.line = fmt.Sprintf("  %s  %s", StepStyle.Render(p.label), FormatProgress(received, total))
	io.WriteString(p.w, "\r"+p.line)
}

// Writer returns a writer to w that keeps output off the progress line. While
// the line is drawn it is erased before each write and redrawn after, so log
// records sharing the terminal always start on a clean line. When progress is
// disabled w is returned as is.
func (p *Progress) Writer(w io.Writer) io.Writer {
	if p == nil || !p.enabled {
		return w
	}
	return &aboveProgress{p: p, w: w}
}

type aboveProgress struct {
	p *Progress
	w io.Writer
}

func (a *aboveProgress) Write(b []byte) (int, error) {
	p := a.p
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.drawn {
		io.WriteString(p.w, "\r"+ansi.EraseEntireLine)
	}
	n, err := a.w.Write(b)
	if p.drawn {
		io.WriteString(p.w, "\r"+p.line)
	}
	return n, err
}

// Done terminates the progress line if anything was drawn.
func (p *Progress) Done() {
	if p == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.drawn {
		fmt.Fprintln(p.w)
		p.drawn = false
	}
}

// FormatProgress renders byte counts as "12 MB / 40 MB", or "12 MB" when
// total is unknown.
func FormatProgress(received, total int64) string {
	if received < 0 {
		received = 0
	}
	if total < 0 {
		return humanize.Bytes(uint64(received))
	}
	return humanize.Bytes(uint64(received)) + " / " + humanize.Bytes(uint64(total))
}
