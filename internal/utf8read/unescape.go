// Package utf8read turns a JSON string token into unescaped UTF-8 bytes
// owned by a pooled scope, favoring a zero-allocation copy when the token
// carries no escape sequences.
package utf8read

import (
	"encoding/json"

	"github.com/nimbuswire/envelope/internal/bufpool"
)

// Unescape returns the unescaped UTF-8 value of a JSON string token. raw
// is the token's exact source bytes, including the surrounding quotes.
// The fast path (no escape sequences) copies the token's interior bytes
// straight into a rented buffer; the slow path decodes through
// encoding/json (sonic's whole-value decoder has no standalone
// string-unescape primitive) into a buffer sized to raw's length, an
// upper bound on the unescaped length. The result is owned by scope and
// must not outlive it.
func Unescape(scope *bufpool.Scope, raw []byte) ([]byte, error) {
	inner := raw
	if len(inner) >= 2 && inner[0] == '"' && inner[len(inner)-1] == '"' {
		inner = inner[1 : len(inner)-1]
	}

	if !hasEscape(inner) {
		buf := scope.Rent(len(inner))
		buf = append(buf, inner...)
		return buf, nil
	}

	var decoded string
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}

	buf := scope.Rent(len(raw))
	buf = append(buf, decoded...)
	return buf, nil
}

func hasEscape(token []byte) bool {
	for _, b := range token {
		if b == '\\' {
			return true
		}
	}
	return false
}
