package buf

import "bytes"

// CString returns the bytes of b up to (not including) the first NUL, or all
// of b when no terminator is present.
func CString(b []byte) []byte {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return b[:i]
	}
	return b
}

// SplitCStrings splits b into NUL-terminated strings, returning at most max
// entries (max < 0 means no limit). A trailing unterminated run is returned
// as the last entry.
func SplitCStrings(b []byte, max int) []string {
	var out []string
	for len(b) > 0 && (max < 0 || len(out) < max) {
		s := CString(b)
		out = append(out, string(s))
		if len(s) == len(b) {
			break
		}
		b = b[len(s)+1:]
	}
	return out
}

// TrimPadding drops trailing spaces and NULs, the padding used by fixed-size
// textual header fields.
func TrimPadding(b []byte) string {
	return string(bytes.TrimRight(b, " \x00"))
}
