// Package wire holds the envelope value type, its ordered metadata map,
// and the streaming writer/reader that serialize it to and from UTF-8
// JSON (writer.go, reader.go).
package wire

import (
	"time"

	"github.com/nimbuswire/envelope/internal/carrier"
)

// SpecVersion is the only envelope spec version this module emits.
const SpecVersion = "1.0"

// knownFields are the seven properties invariant (2) reserves; a metadata
// key matching one of these is discarded on write and never captured on
// read.
var knownFields = map[string]struct{}{
	"id":              {},
	"source":          {},
	"specversion":     {},
	"type":            {},
	"time":            {},
	"datacontenttype": {},
	"data":            {},
}

// IsKnownField reports whether key is one of the seven reserved envelope
// property names.
func IsKnownField(key string) bool {
	_, ok := knownFields[key]
	return ok
}

// Event is the canonical envelope: the seven known fields plus an ordered
// metadata map of everything else.
type Event struct {
	ID              string
	Source          string
	SpecVersion     string
	Type            string
	Time            time.Time
	DataContentType string
	Data            any
	Metadata        Metadata
	// Received holds the carrier metadata attached during
	// convert-to-envelope. It is nil for envelopes built via New for
	// publishing.
	Received *carrier.Received
}

// New builds an envelope with SpecVersion pre-filled and an initialized
// metadata map.
func New(id, source, eventType string, when time.Time, data any) Event {
	return Event{
		ID:          id,
		Source:      source,
		SpecVersion: SpecVersion,
		Type:        eventType,
		Time:        when,
		Data:        data,
		Metadata:    NewMetadata(),
	}
}

// Validate checks the fields invariant (1) requires to be non-empty.
func (e Event) Validate() error {
	if e.ID == "" {
		return fieldError("id")
	}
	if e.Type == "" {
		return fieldError("type")
	}
	if e.SpecVersion == "" {
		return fieldError("specversion")
	}
	return nil
}

// Clone returns a copy of e whose metadata does not alias the original's
// backing storage.
func (e Event) Clone() Event {
	cloned := e
	cloned.Metadata = e.Metadata.clone()
	return cloned
}

type missingFieldError string

func (f missingFieldError) Error() string { return "wire: missing required field " + string(f) }

func fieldError(name string) error { return missingFieldError(name) }
