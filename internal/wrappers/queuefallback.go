package wrappers

import "github.com/nimbuswire/envelope/internal/bufpool"

// QueueFallback matches unconditionally and passes the payload through
// unmodified. It contributes no carrier metadata beyond the queue
// metadata Chain.Unwrap already attaches from the original message.
type QueueFallback struct{}

func (QueueFallback) QuickMatch([]byte) bool { return true }

func (QueueFallback) TryParse(payload []byte, _ *bufpool.Scope) (ParseResult, bool) {
	return ParseResult{Inner: payload}, true
}

var _ Parser = QueueFallback{}
