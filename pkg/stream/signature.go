package stream

import (
	"bytes"
	"unicode/utf8"
)

// signature recognizes a media container from its leading bytes.
type signature struct {
	name  string
	match func(b []byte) bool
}

var signatures = []signature{
	// ISO base media (mp4, mov, 3gp): a box size followed by "ftyp",
	// whatever the major brand (mp42, isom, ...).
	{name: "mp4", match: func(b []byte) bool {
		return len(b) >= 8 && string(b[4:8]) == "ftyp"
	}},
	{name: "riff", match: func(b []byte) bool {
		return bytes.HasPrefix(b, []byte("RIFF"))
	}},
	// EBML magic shared by Matroska and WebM.
	{name: "matroska", match: func(b []byte) bool {
		return bytes.HasPrefix(b, []byte{0x1a, 0x45, 0xdf, 0xa3})
	}},
}

// sniff returns the name of the container b starts with.
func sniff(b []byte) (string, bool) {
	for _, s := range signatures {
		if s.match(b) {
			return s.name, true
		}
	}
	return "", false
}

// isText reports whether b is valid UTF-8. A multi-byte rune cut off by the
// chunk boundary at the end of b is not counted against it.
func isText(b []byte) bool {
	for i := len(b) - 1; i >= 0 && i >= len(b)-utf8.UTFMax; i-- {
		if !utf8.RuneStart(b[i]) {
			continue
		}
		if !utf8.FullRune(b[i:]) {
			b = b[:i]
		}
		break
	}
	return utf8.Valid(b)
}
