package jsonscan

import "encoding/json"

// unquoteSimple decodes a raw string token (quotes included) into a Go
// string. Object keys are short and off the zero-copy hot path this
// package otherwise exists for, so the stdlib decoder is used directly
// rather than hand-rolling a second escape decoder just for keys.
func unquoteSimple(raw []byte) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", err
	}
	return s, nil
}

// Unquote decodes a raw string token (quotes included, as returned by
// Scanner.StringToken) into a Go string. Reserved for the envelope
// reader's known scalar fields (id, source, type, time, ...), which are
// short and, like object keys, off the zero-copy hot path.
func Unquote(raw []byte) (string, error) {
	return unquoteSimple(raw)
}
