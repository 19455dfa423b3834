package rbac

import (
	"regexp"
	"strings"
)

// Placeholder is the canonical stand-in for a variable path segment
const Placeholder = "{id}"

var uuidSegmentPattern = regexp.MustCompile(`(?i)[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)

// NormalizePath reduces a concrete request path to its canonical route
// pattern. UUID-shaped tokens are replaced first; failing that, the first
// purely numeric segment; failing that, the last segment. A path that
// already contains a placeholder is returned unchanged, which makes the
// transform idempotent and caps it at one substitution attempt.
func NormalizePath(path string) string {
	normalized := uuidSegmentPattern.ReplaceAllString(path, Placeholder)
	if strings.Contains(normalized, Placeholder) {
		return normalized
	}

	segments := strings.Split(normalized, "/")

	for i, segment := range segments {
		if segment != "" && isAllDigits(segment) {
			segments[i] = Placeholder
			return strings.Join(segments, "/")
		}
	}

	// generic last-resort: replace the final segment
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			segments[i] = Placeholder
			return strings.Join(segments, "/")
		}
	}

	return normalized
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
