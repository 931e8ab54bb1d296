package textutil

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// segmentReplacer keeps a playlist name inside one path segment.
var segmentReplacer = strings.NewReplacer("/", " - ")

// NFC returns s in Unicode canonical composed form.
func NFC(s string) string {
	return norm.NFC.String(s)
}

// unsafeSegment stands in for names that would not name a child directory.
const unsafeSegment = "_"

// SanitizeSegment turns a playlist or folder name into a single path segment.
// Slashes become " - " and the result is NFC-normalized. Empty, "." and ".."
// become "_" so the segment always stays below its parent.
func SanitizeSegment(name string) string {
	segment := NFC(segmentReplacer.Replace(name))
	switch segment {
	case "", ".", "..":
		return unsafeSegment
	}
	return segment
}

// Unquote decodes %XX escapes. Malformed escapes are kept literally.
func Unquote(s string) string {
	if strings.IndexByte(s, '%') < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) {
			hi, okHi := unhex(s[i+1])
			lo, okLo := unhex(s[i+2])
			if okHi && okLo {
				b.WriteByte(hi<<4 | lo)
				i += 2
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func unhex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
