// Package canonical provides the normalization collaborators invoked once
// at asset construction: attribute cleaning and output-path
// canonicalization.
package canonical

import (
	"strings"

	"github.com/sitesmith/sitesmith-cli/internal/core/domain"
)

// CleanAttributes canonicalizes raw attribute keys to their symbolic
// form: trimmed, lower-cased, with nested mappings cleaned recursively.
// Values are kept as-is. A nil input yields an empty, usable mapping.
func CleanAttributes(raw map[string]any) domain.Attributes {
	attrs := make(domain.Attributes, len(raw))
	for key, value := range raw {
		attrs[cleanKey(key)] = cleanValue(value)
	}
	return attrs
}

func cleanKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

func cleanValue(value any) any {
	nested, ok := value.(map[string]any)
	if !ok {
		return value
	}
	cleaned := make(map[string]any, len(nested))
	for key, v := range nested {
		cleaned[cleanKey(key)] = cleanValue(v)
	}
	return cleaned
}

// CleanPath canonicalizes a raw output path: forward slashes only, a
// single leading and trailing slash, and no duplicate separators.
// An empty path canonicalizes to "/".
func CleanPath(raw string) string {
	path := strings.ReplaceAll(raw, "\\", "/")

	segments := make([]string, 0, 8)
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	if len(segments) == 0 {
		return "/"
	}
	return "/" + strings.Join(segments, "/") + "/"
}
