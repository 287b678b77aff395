package extract

import (
	"encoding/base64"
	"encoding/hex"
	"regexp"
	"strings"
)

// videoSrcPattern matches the src attribute of an HTML video tag, quoted
// with either single or double quotes.
var videoSrcPattern = regexp.MustCompile(`<video[^>]+src=['"]([^'"]+)['"]`)

// ExtractURL returns the URL carried by a field value: the src of an embedded
// <video> tag, or the whole text when it starts with "http". Non-text values
// never match.
func ExtractURL(v any) (string, bool) {
	text, ok := v.(string)
	if !ok {
		return "", false
	}

	if m := videoSrcPattern.FindStringSubmatch(text); m != nil {
		return m[1], true
	}

	if strings.HasPrefix(text, "http") {
		return text, true
	}

	return "", false
}

// DecodeInline decodes an inline media field. Bytes pass through unchanged;
// text is tried as standard base64 first and hexadecimal second. A
// "data:<mime>;base64," prefix is stripped before decoding. Unpadded base64
// is not accepted: it would shadow hex ("686921" is both). ok is false when
// nothing non-empty could be decoded.
func DecodeInline(v any) ([]byte, bool) {
	switch val := v.(type) {
	case []byte:
		return val, len(val) > 0

	case string:
		if payload, ok := stripDataURI(val); ok {
			val = payload
		}
		if b, err := base64.StdEncoding.DecodeString(val); err == nil {
			return b, len(b) > 0
		}
		if b, err := hex.DecodeString(val); err == nil {
			return b, len(b) > 0
		}
	}

	return nil, false
}

// stripDataURI returns the payload of a base64 data URI such as
// "data:video/mp4;base64,AAAA". Other text, including data URIs without the
// base64 marker, is reported as not a data URI.
func stripDataURI(s string) (string, bool) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", false
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(strings.ToLower(header), ";base64") {
		return "", false
	}
	return payload, true
}
