// Package contenttype classifies MIME content-type strings as
// JSON-shaped or not, the rule the envelope writer and reader use to
// decide whether data is emitted/read as a raw JSON value or a JSON
// string token.
package contenttype

import "strings"

// IsJSON reports whether mime is JSON-shaped: blank, exactly
// "application/json" (case-insensitive, ignoring any ";"-delimited
// parameters), or with a subtype equal to "json" or ending in "+json".
func IsJSON(mime string) bool {
	trimmed := strings.TrimSpace(mime)
	if trimmed == "" {
		return true
	}

	if idx := strings.IndexByte(trimmed, ';'); idx >= 0 {
		trimmed = strings.TrimSpace(trimmed[:idx])
	}

	slash := strings.IndexByte(trimmed, '/')
	if slash < 0 || slash != strings.LastIndexByte(trimmed, '/') {
		return false
	}
	if slash == len(trimmed)-1 {
		return false
	}

	subtype := strings.ToLower(trimmed[slash+1:])
	return subtype == "json" || strings.HasSuffix(subtype, "+json")
}
