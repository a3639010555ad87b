// Package wrappers recognizes the outer JSON shapes the three known
// upstream carriers (a notification service, an event-bus service, and a
// plain queue) wrap an inner envelope in, and extracts the inner payload
// slice plus whichever carrier metadata the wrapper carries.
package wrappers

import (
	"bytes"

	"github.com/nimbuswire/envelope/internal/bufpool"
	"github.com/nimbuswire/envelope/internal/carrier"
	"github.com/nimbuswire/envelope/internal/jsonscan"
	"github.com/nimbuswire/envelope/internal/utf8read"
)

// quickMatchWindow bounds how much of the payload the cheap sentinel
// scan inspects; a match deeper in a large payload is not this parser's
// concern (try-parse is the authority, not quick-match).
const quickMatchWindow = 2048

// ParseResult is what a successful TryParse extracts from a wrapper.
type ParseResult struct {
	Inner        []byte
	Notification *carrier.NotificationMetadata
	EventBridge  *carrier.EventBridgeMetadata
}

// Parser recognizes one outer carrier shape.
type Parser interface {
	// QuickMatch scans the first quickMatchWindow bytes of payload for
	// sentinel substrings characteristic of this wrapper. It never
	// parses and never allocates.
	QuickMatch(payload []byte) bool
	// TryParse runs a streaming read over payload. A malformed or
	// mismatched payload reports ok=false, never err — parse failures
	// are local to the parser and the chain simply tries the next one.
	TryParse(payload []byte, scope *bufpool.Scope) (result ParseResult, ok bool)
}

// Chain tries parsers in a fixed order: notification, event-bus,
// queue-fallback. Quick-matched parsers are offered first; if none of
// those yield a parse, every parser is retried ignoring quick-match, as
// a safety net (queue-fallback always succeeds, so this net is never
// actually needed, but costs nothing to keep).
type Chain struct {
	parsers []Parser
}

// NewChain returns the canonical parser chain.
func NewChain() *Chain {
	return &Chain{parsers: []Parser{&Notification{}, &EventBridge{}, &QueueFallback{}}}
}

// Unwrap recognizes payload (the carrier message body, already encoded
// to UTF-8 by the caller) and returns the inner payload slice plus
// whichever carrier metadata was attached. Queue metadata is always
// populated from original; Unwrap never fails (queue-fallback accepts
// unconditionally).
func (c *Chain) Unwrap(payload []byte, original carrier.Message, scope *bufpool.Scope) ([]byte, carrier.Received) {
	queue := carrier.QueueMetadata{
		ReceiptHandle: original.ReceiptHandle,
		MessageID:     original.MessageID,
		Attributes:    original.Attributes,
	}

	if inner, result, ok := c.tryAll(payload, scope, true); ok {
		return inner, attach(queue, result)
	}
	if inner, result, ok := c.tryAll(payload, scope, false); ok {
		return inner, attach(queue, result)
	}
	return payload, carrier.Received{Queue: queue}
}

func (c *Chain) tryAll(payload []byte, scope *bufpool.Scope, requireQuickMatch bool) ([]byte, ParseResult, bool) {
	for _, p := range c.parsers {
		if requireQuickMatch && !p.QuickMatch(payload) {
			continue
		}
		if result, ok := p.TryParse(payload, scope); ok {
			return result.Inner, result, true
		}
	}
	return nil, ParseResult{}, false
}

func attach(queue carrier.QueueMetadata, result ParseResult) carrier.Received {
	return carrier.Received{
		Queue:        queue,
		Notification: result.Notification,
		EventBridge:  result.EventBridge,
	}
}

func quickMatchAll(payload []byte, sentinels ...string) bool {
	window := payload
	if len(window) > quickMatchWindow {
		window = window[:quickMatchWindow]
	}
	for _, sentinel := range sentinels {
		if !bytes.Contains(window, []byte(sentinel)) {
			return false
		}
	}
	return true
}

// captureValue returns the inner payload for a field that may be either
// a JSON string (unescaped into pooled bytes) or a JSON object/array
// (captured as a zero-copy slice of payload).
func captureValue(s *jsonscan.Scanner, payload []byte, scope *bufpool.Scope) ([]byte, error) {
	kind, ok := s.PeekKind()
	if !ok {
		return nil, jsonscan.ErrUnexpectedEOF
	}
	if kind == '"' {
		token, err := s.StringToken()
		if err != nil {
			return nil, err
		}
		return utf8read.Unescape(scope, token)
	}
	start, end, err := s.SkipValue()
	if err != nil {
		return nil, err
	}
	return payload[start:end], nil
}

func readStringValue(s *jsonscan.Scanner) (string, error) {
	token, err := s.StringToken()
	if err != nil {
		return "", err
	}
	return jsonscan.Unquote(token)
}

func skipValue(s *jsonscan.Scanner) error {
	_, _, err := s.SkipValue()
	return err
}
