package envelope

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	carrierpkg "github.com/nimbuswire/envelope/internal/carrier"
	clockidpkg "github.com/nimbuswire/envelope/internal/clockid"
	codecpkg "github.com/nimbuswire/envelope/internal/codec"
	configpkg "github.com/nimbuswire/envelope/internal/config"
	contenttypepkg "github.com/nimbuswire/envelope/internal/contenttype"
	coreerrorspkg "github.com/nimbuswire/envelope/internal/coreerrors"
	hookspkg "github.com/nimbuswire/envelope/internal/hooks"
	loggingpkg "github.com/nimbuswire/envelope/internal/logging"
	orchestratorpkg "github.com/nimbuswire/envelope/internal/orchestrator"
	registrypkg "github.com/nimbuswire/envelope/internal/registry"
	wirepkg "github.com/nimbuswire/envelope/internal/wire"
	wrapperspkg "github.com/nimbuswire/envelope/internal/wrappers"
)

type (
	// Event is the canonical envelope value.
	Event = wirepkg.Event
	// Metadata is the envelope's ordered map of non-canonical properties.
	Metadata = wirepkg.Metadata
	// Writer emits an Event as canonical UTF-8 JSON.
	Writer = wirepkg.Writer
	// Reader parses UTF-8 JSON into an Event.
	Reader = wirepkg.Reader

	// Options controls buffer-cleaning, content-logging redaction, and
	// the writer path the orchestrator uses.
	Options = configpkg.Options
	// Option configures Options at construction time.
	Option = configpkg.Option

	// Codec marshals and unmarshals a message value.
	Codec = codecpkg.Codec
	// UTF8Codec is a Codec that can also stream directly into a writer.
	UTF8Codec = codecpkg.UTF8Codec
	// JSONCodec is the sonic-backed JSON Codec/UTF8Codec.
	JSONCodec = codecpkg.JSONCodec
	// ProtoJSONCodec is the protojson-backed Codec/UTF8Codec.
	ProtoJSONCodec = codecpkg.ProtoJSONCodec

	// Subscription describes how to materialize and decode a message of
	// a given type-id.
	Subscription = registrypkg.Subscription
	// SubscriberRegistry resolves an inbound type-id to its Subscription.
	SubscriberRegistry = registrypkg.SubscriberRegistry
	// PublisherRegistry resolves a message's static Go type to a type-id.
	PublisherRegistry = registrypkg.PublisherRegistry

	// Message is the transport-agnostic inbound delivery shape.
	Message = carrierpkg.Message
	// Received bundles the carrier metadata slots attached to a
	// converted envelope.
	Received = carrierpkg.Received
	// QueueMetadata is always populated on any received message.
	QueueMetadata = carrierpkg.QueueMetadata
	// NotificationMetadata is populated when the notification wrapper
	// parser recognizes the carrier body.
	NotificationMetadata = carrierpkg.NotificationMetadata
	// NotificationAttribute is a single notification MessageAttributes entry.
	NotificationAttribute = carrierpkg.NotificationAttribute
	// EventBridgeMetadata is populated when the event-bus wrapper parser
	// recognizes the carrier body.
	EventBridgeMetadata = carrierpkg.EventBridgeMetadata

	// Clock reports the current time with an offset.
	Clock = clockidpkg.Clock
	// IDGenerator produces a non-empty, unique identifier on every call.
	IDGenerator = clockidpkg.IDGenerator
	// SystemClock reports wall-clock time normalized to UTC.
	SystemClock = clockidpkg.SystemClock
	// ULIDGenerator produces time-sortable, monotonically increasing ids.
	ULIDGenerator = clockidpkg.ULIDGenerator

	// Serializer wires the writer, reader, wrapper chain, and callbacks
	// behind create-envelope, serialize, and convert-to-envelope.
	Serializer = orchestratorpkg.Serializer
	// SourceProvider computes the process-wide source URI on first use.
	SourceProvider = orchestratorpkg.SourceProvider

	// Callbacks holds the four ordered hook lists run around serialize
	// and convert-to-envelope.
	Callbacks = hookspkg.Callbacks
	// PreSerializeHook observes or transforms an envelope before write.
	PreSerializeHook = hookspkg.PreSerializeHook
	// PostSerializeHook observes or transforms the serialized payload.
	PostSerializeHook = hookspkg.PostSerializeHook
	// PreDeserializeHook observes or transforms the raw carrier body.
	PreDeserializeHook = hookspkg.PreDeserializeHook
	// PostDeserializeHook observes or transforms a converted envelope.
	PostDeserializeHook = hookspkg.PostDeserializeHook
	// SpanHolder hands an in-flight tracing span between a pre-phase
	// hook and its paired post-phase hook.
	SpanHolder = hookspkg.SpanHolder

	// LogFields represents structured logging key/value pairs.
	LogFields = loggingpkg.LogFields
	// ServiceLogger is the minimal logging contract hooks depend on.
	ServiceLogger = loggingpkg.ServiceLogger

	// Kind identifies which of the core's failure modes produced an Error.
	Kind = coreerrorspkg.Kind
	// Error is a Kind-tagged wrapped error.
	Error = coreerrorspkg.Error

	// WrapperChain tries the notification, event-bus, and queue-fallback
	// parsers in order to recognize an inbound carrier body.
	WrapperChain = wrapperspkg.Chain
	// WrapperParseResult is what a successful wrapper parse extracts.
	WrapperParseResult = wrapperspkg.ParseResult
)

// Error kind constants, forwarded from internal/coreerrors.
const (
	KindMissingMapping  = coreerrorspkg.KindMissingMapping
	KindInvalidData     = coreerrorspkg.KindInvalidData
	KindSerializeFailed = coreerrorspkg.KindSerializeFailed
	KindConvertFailed   = coreerrorspkg.KindConvertFailed
	KindNullMessage     = coreerrorspkg.KindNullMessage
)

// SpecVersion is the only envelope spec version this module emits.
const SpecVersion = wirepkg.SpecVersion

// NewEnvelope builds an envelope with SpecVersion pre-filled and an
// initialized metadata map.
func NewEnvelope(id, source, eventType string, when time.Time, data any) Event {
	return wirepkg.New(id, source, eventType, when, data)
}

// NewMetadata returns an empty, ready-to-use Metadata.
func NewMetadata() Metadata { return wirepkg.NewMetadata() }

// NewWriter returns a ready-to-use Writer. useUTF8Path mirrors the
// experimental-features configuration flag.
func NewWriter(useUTF8Path bool) *Writer { return wirepkg.NewWriter(useUTF8Path) }

// NewReader returns a Reader resolving inbound type-ids against reg.
// logMessageContent mirrors the Options field of the same name.
func NewReader(reg *SubscriberRegistry, logMessageContent bool) *Reader {
	return wirepkg.NewReader(reg, logMessageContent)
}

// IsKnownField reports whether key is one of the seven reserved envelope
// property names.
func IsKnownField(key string) bool { return wirepkg.IsKnownField(key) }

// ParseTime parses a timestamp with offset, tolerating a handful of
// near-RFC3339 shapes carrier payloads are observed to send.
func ParseTime(s string) (time.Time, error) { return wirepkg.ParseTime(s) }

// FormatTime renders t as ISO-8601 with a numeric UTC offset.
func FormatTime(t time.Time) string { return wirepkg.FormatTime(t) }

// IsJSONContentType reports whether mime is JSON-shaped.
func IsJSONContentType(mime string) bool { return contenttypepkg.IsJSON(mime) }

// DefaultOptions returns the option set the orchestrator uses when the
// caller supplies none.
func DefaultOptions() Options { return configpkg.Default() }

// NewOptions applies opts on top of DefaultOptions.
func NewOptions(opts ...Option) Options { return configpkg.New(opts...) }

// WithCleanRentedBuffers overrides the pooled-buffer zeroing policy.
func WithCleanRentedBuffers(clean bool) Option { return configpkg.WithCleanRentedBuffers(clean) }

// WithLogMessageContent overrides whether payload content may appear in
// error-path logs and preserved causes.
func WithLogMessageContent(log bool) Option { return configpkg.WithLogMessageContent(log) }

// WithExperimentalFeatures toggles the UTF-8 writer path.
func WithExperimentalFeatures(enabled bool) Option {
	return configpkg.WithExperimentalFeatures(enabled)
}

// NewJSONCodec returns the default JSON codec.
func NewJSONCodec() *JSONCodec { return codecpkg.NewJSONCodec() }

// NewProtoJSONCodec returns the default protobuf-JSON codec.
func NewProtoJSONCodec() *ProtoJSONCodec { return codecpkg.NewProtoJSONCodec() }

// NewSubscriberRegistry returns an empty SubscriberRegistry.
func NewSubscriberRegistry() *SubscriberRegistry { return registrypkg.NewSubscriberRegistry() }

// NewPublisherRegistry returns an empty PublisherRegistry.
func NewPublisherRegistry() *PublisherRegistry { return registrypkg.NewPublisherRegistry() }

// NewULIDGenerator returns a ready-to-use ULID-backed IDGenerator.
func NewULIDGenerator() *ULIDGenerator { return clockidpkg.NewULIDGenerator() }

// NewWrapperChain returns the canonical notification/event-bus/
// queue-fallback parser chain.
func NewWrapperChain() *WrapperChain { return wrapperspkg.NewChain() }

// NewSerializer builds a ready-to-use Serializer. metricsRegisterer may
// be nil, in which case the pooled-buffer scope records no metrics;
// otherwise its rent/return/allocate counters are registered against it.
func NewSerializer(
	publishers *PublisherRegistry,
	subscribers *SubscriberRegistry,
	clock Clock,
	ids IDGenerator,
	c Codec,
	source SourceProvider,
	options Options,
	callbacks Callbacks,
	metricsRegisterer prometheus.Registerer,
) *Serializer {
	return orchestratorpkg.New(publishers, subscribers, clock, ids, c, source, options, callbacks, metricsRegisterer)
}

// NewSlogServiceLogger wraps a slog.Logger so it satisfies ServiceLogger.
func NewSlogServiceLogger(log *slog.Logger) ServiceLogger {
	return loggingpkg.NewSlogServiceLogger(log)
}

// NewEntryServiceLogger wraps an entry-style logger (for example a
// logrus.Entry) so it satisfies ServiceLogger.
func NewEntryServiceLogger[T loggingpkg.EntryLoggerAdapter[T]](entry T) ServiceLogger {
	return loggingpkg.NewEntryServiceLogger[T](entry)
}

// NewSpanHolder returns an empty holder for one serialize or
// convert-to-envelope call's tracing hooks.
func NewSpanHolder() *SpanHolder { return hookspkg.NewSpanHolder() }

// TracingPreSerialize starts a tracing span around one serialize call.
func TracingPreSerialize(holder *SpanHolder) PreSerializeHook {
	return hookspkg.TracingPreSerialize(holder)
}

// TracingPostSerialize ends the span started by TracingPreSerialize.
func TracingPostSerialize(holder *SpanHolder) PostSerializeHook {
	return hookspkg.TracingPostSerialize(holder)
}

// TracingPreDeserialize starts a tracing span around one
// convert-to-envelope call.
func TracingPreDeserialize(holder *SpanHolder) PreDeserializeHook {
	return hookspkg.TracingPreDeserialize(holder)
}

// TracingPostDeserialize ends the span started by TracingPreDeserialize.
func TracingPostDeserialize(holder *SpanHolder) PostDeserializeHook {
	return hookspkg.TracingPostDeserialize(holder)
}

// LoggingPreSerialize logs an envelope's identifying fields before write.
func LoggingPreSerialize(log ServiceLogger) PreSerializeHook {
	return hookspkg.LoggingPreSerialize(log)
}

// LoggingPostDeserialize logs an envelope's identifying fields after
// convert-to-envelope materializes it.
func LoggingPostDeserialize(log ServiceLogger) PostDeserializeHook {
	return hookspkg.LoggingPostDeserialize(log)
}

// NewError builds a bare Error with no cause.
func NewError(kind Kind, message string) *Error { return coreerrorspkg.New(kind, message) }

// WrapError builds an Error around cause, redacting a JSON-parse cause
// when logMessageContent is false.
func WrapError(kind Kind, message string, cause error, logMessageContent bool) *Error {
	return coreerrorspkg.Wrap(kind, message, cause, logMessageContent)
}

// MarkJSONCause wraps err so WrapError knows to drop it when
// log-message-content is false.
func MarkJSONCause(err error) error { return coreerrorspkg.MarkJSONCause(err) }
