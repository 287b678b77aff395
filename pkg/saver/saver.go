// Package saver names and writes generated videos.
package saver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SaveError reports a video that could not be written.
type SaveError struct {
	Path string
	Err  error
}

func (e SaveError) Error() string {
	return fmt.Sprintf("failed to save video to %s: %v", e.Path, e.Err)
}

func (e SaveError) Unwrap() error {
	return e.Err
}

// OutputPath creates dir if needed and returns a unique file path in it named
// video_YYYYMMDD_HHMMSS_<8 hex>.mp4.
func OutputPath(dir string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", SaveError{Path: dir, Err: err}
	}

	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	name := fmt.Sprintf("video_%s_%s.mp4", now.Format("20060102_150405"), suffix)
	return filepath.Join(dir, name), nil
}

// Save writes data to path. A partially written file is removed on failure.
func Save(data []byte, path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return SaveError{Path: path, Err: err}
	}

	_, werr := f.Write(data)
	cerr := f.Close()
	if err := errors.Join(werr, cerr); err != nil {
		_ = os.Remove(path)
		return SaveError{Path: path, Err: err}
	}
	return nil
}
