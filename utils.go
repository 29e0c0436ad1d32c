package showoff

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsValidName validates a single path segment used as an album identifier,
// filename or size token. It checks that the name:
//   - is not empty, "." or ".."
//   - does not contain "/" or "\" (no nesting, no traversal)
//   - does not contain ".." anywhere
//   - does not contain the characters ? # ~
//   - is valid UTF-8
//   - does not contain null bytes, control characters (< 0x20), DEL (0x7f)
//
// Spaces inside a name are allowed since photo filenames often have them.
func IsValidName(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}

	if strings.ContainsAny(s, `/\?#~`) {
		return false
	}

	if strings.Contains(s, "..") {
		return false
	}

	if !utf8.ValidString(s) {
		return false
	}

	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			return false
		}
		if unicode.IsSpace(r) && r != ' ' {
			return false
		}
	}

	return true
}

func escapeSegment(s string) string {
	return url.PathEscape(s)
}
