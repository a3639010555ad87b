// Package codec defines the message-codec contract the envelope core
// depends on and never implements the domain semantics of: callers'
// message types are opaque values the codec knows how to turn into
// bytes and back.
package codec

import "io"

// Codec serializes and deserializes a message value. Implementations own
// the wire representation entirely; the core only inspects the declared
// content type to decide how to embed the result in an envelope.
type Codec interface {
	// Marshal serializes value, returning its bytes and declared MIME
	// content type.
	Marshal(value any) ([]byte, string, error)
	// Unmarshal decodes data into a fresh instance of target, a pointer
	// obtained from the subscriber mapping's factory.
	Unmarshal(data []byte, target any) error
	// ContentType is the MIME type Marshal declares.
	ContentType() string
}

// UTF8Codec is the optional capability a Codec may additionally
// implement: writing directly into the envelope writer's buffer instead
// of returning an intermediate byte slice, and decoding straight from a
// zero-copy slice of the inbound envelope. Codecs implement this by
// asserting to the interface; the writer/reader branch on the assertion,
// not on a runtime type tag (see design note on tagged variants).
type UTF8Codec interface {
	Codec
	// WriteTo streams value's JSON encoding directly into w.
	WriteTo(w io.Writer, value any) error
	// UnmarshalUTF8 decodes data (a zero-copy slice of the backing
	// envelope buffer) into target without an intermediate copy.
	UnmarshalUTF8(data []byte, target any) error
}
