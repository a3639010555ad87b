// Package jsonscan is a hand-rolled JSON scanner that exposes exact byte
// offsets for object fields and values without copying value bytes;
// only object keys are decoded into new strings. Neither
// encoding/json's Decoder.Token() nor sonic's whole-value decode expose a
// value's raw [start,end) span without an extra copy, and that span is
// exactly what the envelope reader and the wrapper parsers need to slice
// "data"/"detail"/"Message" out of the backing buffer without copying it.
package jsonscan

import (
	"errors"
	"fmt"
)

// ErrUnexpectedEOF is returned when the scanner runs out of input mid-value.
var ErrUnexpectedEOF = errors.New("jsonscan: unexpected end of input")

// Scanner reads JSON tokens from a fixed byte slice, tracking only a
// cursor position. It never copies; every method that returns bytes
// returns a subslice of the original buffer.
type Scanner struct {
	buf []byte
	pos int
}

// New wraps buf for scanning starting at offset 0.
func New(buf []byte) *Scanner {
	return &Scanner{buf: buf}
}

// Pos returns the scanner's current byte offset.
func (s *Scanner) Pos() int { return s.pos }

// SkipWhitespace advances past any run of JSON whitespace.
func (s *Scanner) SkipWhitespace() {
	for s.pos < len(s.buf) {
		switch s.buf[s.pos] {
		case ' ', '\t', '\n', '\r':
			s.pos++
		default:
			return
		}
	}
}

func (s *Scanner) peek() (byte, bool) {
	if s.pos >= len(s.buf) {
		return 0, false
	}
	return s.buf[s.pos], true
}

// ExpectByte skips whitespace, then consumes want or returns an error
// describing what was found instead.
func (s *Scanner) ExpectByte(want byte) error {
	s.SkipWhitespace()
	b, ok := s.peek()
	if !ok {
		return ErrUnexpectedEOF
	}
	if b != want {
		return fmt.Errorf("jsonscan: expected %q at offset %d, got %q", want, s.pos, b)
	}
	s.pos++
	return nil
}

// PeekKind skips whitespace and returns the next byte without consuming
// it, so callers can branch on the upcoming value's shape.
func (s *Scanner) PeekKind() (byte, bool) {
	s.SkipWhitespace()
	return s.peek()
}

// Object iterates the key/value pairs of a JSON object entered via
// Scanner.EnterObject.
type Object struct {
	s       *Scanner
	started bool
}

// EnterObject consumes a leading '{' and returns an iterator over its
// fields.
func (s *Scanner) EnterObject() (*Object, error) {
	if err := s.ExpectByte('{'); err != nil {
		return nil, err
	}
	return &Object{s: s}, nil
}

// NextKey advances past the separating ',' (nothing on the first call,
// since EnterObject already consumed the opening '{') and returns the
// next key. ok is false once the
// object's closing '}' has been consumed, meaning there are no more
// fields; the scanner is left positioned right after the key's ':' when
// ok is true.
func (o *Object) NextKey() (key string, ok bool, err error) {
	s := o.s
	s.SkipWhitespace()
	b, present := s.peek()
	if !present {
		return "", false, ErrUnexpectedEOF
	}

	if o.started {
		switch b {
		case '}':
			s.pos++
			return "", false, nil
		case ',':
			s.pos++
			s.SkipWhitespace()
			b, present = s.peek()
			if !present {
				return "", false, ErrUnexpectedEOF
			}
		default:
			return "", false, fmt.Errorf("jsonscan: expected ',' or '}' at offset %d, got %q", s.pos, b)
		}
	}

	if b == '}' {
		s.pos++
		return "", false, nil
	}

	raw, err := s.readStringToken()
	if err != nil {
		return "", false, err
	}
	key, err = unquoteSimple(raw)
	if err != nil {
		return "", false, err
	}
	if err := s.ExpectByte(':'); err != nil {
		return "", false, err
	}
	o.started = true
	return key, true, nil
}

// Array iterates the elements of a JSON array entered via
// Scanner.EnterArray.
type Array struct {
	s       *Scanner
	started bool
}

// EnterArray consumes a leading '[' and returns an iterator over its
// elements.
func (s *Scanner) EnterArray() (*Array, error) {
	if err := s.ExpectByte('['); err != nil {
		return nil, err
	}
	return &Array{s: s}, nil
}

// Next reports whether another element follows; when true, the scanner
// is positioned at that element's first byte.
func (a *Array) Next() (bool, error) {
	s := a.s
	s.SkipWhitespace()
	b, present := s.peek()
	if !present {
		return false, ErrUnexpectedEOF
	}

	if a.started {
		switch b {
		case ']':
			s.pos++
			return false, nil
		case ',':
			s.pos++
			s.SkipWhitespace()
			b, present = s.peek()
			if !present {
				return false, ErrUnexpectedEOF
			}
		default:
			return false, fmt.Errorf("jsonscan: expected ',' or ']' at offset %d, got %q", s.pos, b)
		}
	}

	if b == ']' {
		s.pos++
		return false, nil
	}
	a.started = true
	return true, nil
}

// StringToken reads the string value at the current position and returns
// its raw source bytes, including the surrounding quotes.
func (s *Scanner) StringToken() ([]byte, error) {
	return s.readStringToken()
}

// SkipValue consumes whatever value (string, object, array, number,
// true/false/null) starts at the current position and returns its exact
// [start,end) byte range in the original buffer.
func (s *Scanner) SkipValue() (start, end int, err error) {
	s.SkipWhitespace()
	start = s.pos
	b, ok := s.peek()
	if !ok {
		return 0, 0, ErrUnexpectedEOF
	}

	switch {
	case b == '"':
		if _, err := s.readStringToken(); err != nil {
			return 0, 0, err
		}
	case b == '{':
		if err := s.skipBalanced('{', '}'); err != nil {
			return 0, 0, err
		}
	case b == '[':
		if err := s.skipBalanced('[', ']'); err != nil {
			return 0, 0, err
		}
	case b == 't':
		if err := s.expectLiteral("true"); err != nil {
			return 0, 0, err
		}
	case b == 'f':
		if err := s.expectLiteral("false"); err != nil {
			return 0, 0, err
		}
	case b == 'n':
		if err := s.expectLiteral("null"); err != nil {
			return 0, 0, err
		}
	case b == '-' || (b >= '0' && b <= '9'):
		s.skipNumber()
	default:
		return 0, 0, fmt.Errorf("jsonscan: unexpected byte %q at offset %d", b, s.pos)
	}

	return start, s.pos, nil
}

// skipBalanced consumes a bracketed value by counting open/close bytes
// outside of strings. Because JSON's two bracket kinds never interleave
// their unescaped delimiters, tracking only the requested pair correctly
// balances arbitrarily nested containers of mixed kinds.
func (s *Scanner) skipBalanced(open, close byte) error {
	if err := s.ExpectByte(open); err != nil {
		return err
	}
	depth := 1
	for s.pos < len(s.buf) {
		b := s.buf[s.pos]
		if b == '"' {
			if _, err := s.readStringToken(); err != nil {
				return err
			}
			continue
		}
		switch b {
		case open:
			depth++
		case close:
			depth--
		}
		s.pos++
		if depth == 0 {
			return nil
		}
	}
	return ErrUnexpectedEOF
}

func (s *Scanner) expectLiteral(lit string) error {
	if s.pos+len(lit) > len(s.buf) || string(s.buf[s.pos:s.pos+len(lit)]) != lit {
		return fmt.Errorf("jsonscan: expected %q at offset %d", lit, s.pos)
	}
	s.pos += len(lit)
	return nil
}

func (s *Scanner) skipNumber() {
	if b, ok := s.peek(); ok && b == '-' {
		s.pos++
	}
	s.skipDigits()
	if b, ok := s.peek(); ok && b == '.' {
		s.pos++
		s.skipDigits()
	}
	if b, ok := s.peek(); ok && (b == 'e' || b == 'E') {
		s.pos++
		if b, ok := s.peek(); ok && (b == '+' || b == '-') {
			s.pos++
		}
		s.skipDigits()
	}
}

func (s *Scanner) skipDigits() {
	for {
		b, ok := s.peek()
		if !ok || b < '0' || b > '9' {
			return
		}
		s.pos++
	}
}

func (s *Scanner) readStringToken() ([]byte, error) {
	s.SkipWhitespace()
	b, ok := s.peek()
	if !ok {
		return nil, ErrUnexpectedEOF
	}
	if b != '"' {
		return nil, fmt.Errorf("jsonscan: expected string at offset %d, got %q", s.pos, b)
	}

	start := s.pos
	s.pos++
	for s.pos < len(s.buf) {
		switch s.buf[s.pos] {
		case '\\':
			s.pos += 2
		case '"':
			s.pos++
			return s.buf[start:s.pos], nil
		default:
			s.pos++
		}
	}
	return nil, ErrUnexpectedEOF
}
