// Package encoder validates reference images and encodes them as standard
// base64 for inline transmission.
package encoder

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
)

const (
	// DefaultMaxSize is the largest accepted image, 10 MiB.
	DefaultMaxSize int64 = 10 << 20
)

// DefaultFormats are the accepted image file extensions.
func DefaultFormats() []string {
	return []string{".jpg", ".jpeg", ".png", ".webp"}
}

// InvalidImageError reports an image that cannot be sent.
type InvalidImageError struct {
	Path   string
	Reason string
}

func (e InvalidImageError) Error() string {
	return fmt.Sprintf("invalid image %s: %s", e.Path, e.Reason)
}

// Options constrains accepted images. Zero values select the defaults.
type Options struct {
	MaxSize int64
	Formats []string
}

// Encoder validates and encodes image files.
type Encoder struct {
	maxSize int64
	formats []string
}

// New creates an Encoder.
func New(opts Options) *Encoder {
	e := &Encoder{
		maxSize: opts.MaxSize,
		formats: slices.Clone(opts.Formats),
	}
	if e.maxSize <= 0 {
		e.maxSize = DefaultMaxSize
	}
	if len(e.formats) == 0 {
		e.formats = DefaultFormats()
	}
	for i, f := range e.formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if !strings.HasPrefix(f, ".") {
			f = "." + f
		}
		e.formats[i] = f
	}
	return e
}

// EncodeFile checks that path exists, has an accepted extension and is within
// the size limit, then returns its contents as standard base64.
func (e *Encoder) EncodeFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", InvalidImageError{Path: path, Reason: "file not found"}
		}
		return "", InvalidImageError{Path: path, Reason: err.Error()}
	}
	if info.IsDir() {
		return "", InvalidImageError{Path: path, Reason: "is a directory"}
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !slices.Contains(e.formats, ext) {
		return "", InvalidImageError{
			Path:   path,
			Reason: fmt.Sprintf("unsupported format %q, supported: %s", ext, strings.Join(e.formats, ", ")),
		}
	}

	if info.Size() > e.maxSize {
		return "", InvalidImageError{
			Path: path,
			Reason: fmt.Sprintf("file too large: %s, maximum %s",
				humanize.IBytes(uint64(info.Size())), humanize.IBytes(uint64(e.maxSize))),
		}
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", InvalidImageError{Path: path, Reason: err.Error()}
	}

	return Encode(b), nil
}

// EncodeFiles encodes each path in order, stopping at the first failure.
func (e *Encoder) EncodeFiles(paths []string) ([]string, error) {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		s, err := e.EncodeFile(p)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Encode returns the standard base64 encoding of b.
func Encode(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}
