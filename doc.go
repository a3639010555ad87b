// Package envelope is a CloudEvents-style event envelope core: a
// streaming writer/reader for a canonical JSON envelope, a wrapper-parser
// chain that recognizes the outer shapes upstream carriers (a
// notification service, an event bus, or a plain queue) wrap it in, and
// an orchestrator that wires both behind create/serialize and
// convert-to-envelope operations.
//
// The core never talks to a transport directly. Callers hand it a typed
// message to publish or a carrier.Message received from wherever they
// read messages from, and get back a wire string or a materialized
// envelope; wiring an actual queue, topic, or bus stays the caller's
// concern.
//
// # Envelopes
//
// NewEnvelope builds an envelope with the seven canonical fields (id, source,
// specversion, type, time, datacontenttype, data) plus an ordered
// metadata map for anything else. A Serializer resolves the outbound
// type-id from a PublisherRegistry, generates an id and timestamp, and
// writes the envelope with the writer described in DESIGN.md.
//
// # Receiving
//
// ConvertToEnvelope runs an inbound carrier.Message through the
// wrapper-parser chain (notification, event-bus, queue-fallback, in that
// order), reads the recovered inner envelope, resolves the type-id
// against a SubscriberRegistry, and materializes the typed message
// through the registered codec.
//
// # Callbacks
//
// Four ordered hook phases (pre-serialize, post-serialize,
// pre-deserialize, post-deserialize) run around both operations. Ready-
// made tracing and logging hooks are provided; callers register their
// own for anything else.
package envelope
