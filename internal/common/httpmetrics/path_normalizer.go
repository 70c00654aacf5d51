package httpmetrics

import (
	"strings"

	"github.com/google/uuid"
)

// NormalizePath collapses identifiers in a request path so metric label
// cardinality stays bounded.
func NormalizePath(path string) string {
	if path == "" || path == "/" {
		return "/"
	}

	parts := strings.Split(path, "/")
	for i, part := range parts {
		if part == "" {
			continue
		}
		if isNumeric(part) {
			parts[i] = "{param}"
			continue
		}
		if _, err := uuid.Parse(part); err == nil {
			parts[i] = "{param}"
		}
	}

	return strings.Join(parts, "/")
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
