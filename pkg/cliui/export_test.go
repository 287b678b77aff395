package cliui

import (
	"io"
	"time"
)

// NewTestProgress returns an always-enabled Progress driven by now.
func NewTestProgress(w io.Writer, label string, now func() time.Time) *Progress {
	p := NewProgress(w, label)
	p.enabled = true
	p.now = now
	return p
}
