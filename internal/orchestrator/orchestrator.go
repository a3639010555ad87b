// Package orchestrator wires the writer, reader, wrapper-parser chain,
// and callbacks behind the two top-level operations callers use:
// create-and-serialize a typed message, and convert an inbound carrier
// message back into a typed envelope.
package orchestrator

import (
	"context"
	"sync"

	"github.com/nimbuswire/envelope/internal/bufpool"
	"github.com/nimbuswire/envelope/internal/carrier"
	"github.com/nimbuswire/envelope/internal/clockid"
	"github.com/nimbuswire/envelope/internal/codec"
	"github.com/nimbuswire/envelope/internal/config"
	"github.com/nimbuswire/envelope/internal/coreerrors"
	"github.com/nimbuswire/envelope/internal/hooks"
	"github.com/nimbuswire/envelope/internal/registry"
	"github.com/nimbuswire/envelope/internal/wire"
	"github.com/nimbuswire/envelope/internal/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

// SourceProvider computes the process-wide source URI on first use. It
// may return a relative URI.
type SourceProvider func() string

// Serializer is the envelope core's orchestrator: it owns every
// collaborator (registries, clock, id-generator, codec, wrapper chain,
// buffer pool, callbacks) and exposes create-envelope, serialize, and
// convert-to-envelope.
type Serializer struct {
	Publishers  *registry.PublisherRegistry
	Subscribers *registry.SubscriberRegistry
	Clock       clockid.Clock
	IDs         clockid.IDGenerator
	Codec       codec.Codec
	Source      SourceProvider
	Options     config.Options
	Hooks       hooks.Callbacks

	writer  *wire.Writer
	reader  *wire.Reader
	wrapper *wrappers.Chain
	pool    *bufpool.Pool

	sourceOnce sync.Once
	sourceURI  string
}

// New builds a ready-to-use Serializer. codec is the single collaborator
// used to encode outbound data; subscriber mappings carry their own
// codec for decoding inbound data. metricsRegisterer may be nil, in
// which case the buffer pool records no metrics; otherwise pool
// rent/return/allocate counters are registered against it.
func New(
	publishers *registry.PublisherRegistry,
	subscribers *registry.SubscriberRegistry,
	clock clockid.Clock,
	ids clockid.IDGenerator,
	c codec.Codec,
	source SourceProvider,
	options config.Options,
	callbacks hooks.Callbacks,
	metricsRegisterer prometheus.Registerer,
) *Serializer {
	pool := bufpool.New(nil)
	if metricsRegisterer != nil {
		pool = bufpool.New(bufpool.NewMetrics(metricsRegisterer))
	}

	return &Serializer{
		Publishers:  publishers,
		Subscribers: subscribers,
		Clock:       clock,
		IDs:         ids,
		Codec:       c,
		Source:      source,
		Options:     options,
		Hooks:       callbacks,
		writer:      wire.NewWriter(options.ExperimentalFeaturesEnabled),
		reader:      wire.NewReader(subscribers, options.LogMessageContent),
		wrapper:     wrappers.NewChain(),
		pool:        pool,
	}
}

// resolveSource computes and caches the source URI. sync.Once runs
// Source at most once; callers racing the first computation wait for it
// and then observe the cached value.
func (s *Serializer) resolveSource() string {
	s.sourceOnce.Do(func() {
		if s.Source != nil {
			s.sourceURI = s.Source()
		}
	})
	return s.sourceURI
}

// CreateEnvelope resolves message's publisher mapping, generates an id,
// captures the current timestamp, and returns a populated envelope ready
// for Serialize. It fails with missing-mapping if message's static Go
// type carries no publisher mapping.
func (s *Serializer) CreateEnvelope(message any) (wire.Event, error) {
	typeID, ok := s.Publishers.Get(message)
	if !ok {
		return wire.Event{}, coreerrors.New(coreerrors.KindMissingMapping, "no publisher mapping for message type")
	}

	id := s.IDs.Next()
	when := s.Clock.Now()
	source := s.resolveSource()

	return wire.New(id, source, typeID, when, message), nil
}

// Serialize runs the pre-serialize callbacks, writes e to wire format,
// then runs the post-serialize callbacks. It fails with null-message if
// e.Data is absent, and with serialize-failed on any other error. A
// callback error is always preserved as the cause. Every error from the
// writer or the codec (including a missing-field or unsupported-value
// error, not only a JSON one) is marked as a JSON cause, so it is dropped
// when LogMessageContent is false and preserved otherwise.
func (s *Serializer) Serialize(ctx context.Context, e wire.Event) (string, error) {
	e, err := s.Hooks.RunPreSerialize(ctx, e)
	if err != nil {
		return "", coreerrors.Wrap(coreerrors.KindSerializeFailed, "pre-serialize callback failed", err, s.Options.LogMessageContent)
	}

	if e.Data == nil {
		return "", coreerrors.New(coreerrors.KindNullMessage, "envelope has no message to serialize")
	}

	payload, err := s.writer.Write(e, s.Codec)
	if err != nil {
		return "", coreerrors.Wrap(coreerrors.KindSerializeFailed, "failed to write envelope", coreerrors.MarkJSONCause(err), s.Options.LogMessageContent)
	}

	payload, err = s.Hooks.RunPostSerialize(ctx, payload)
	if err != nil {
		return "", coreerrors.Wrap(coreerrors.KindSerializeFailed, "post-serialize callback failed", err, s.Options.LogMessageContent)
	}

	return payload, nil
}

// ConvertToEnvelope runs the full receive path: pre-deserialize
// callbacks, UTF-8 encoding into a pooled scope, the wrapper-parser
// chain, the envelope reader, carrier-metadata attachment, and
// post-deserialize callbacks. It fails with convert-failed wrapping the
// original cause (an invalid-data error from the reader, or a callback
// error); the same redaction rule as Serialize applies.
func (s *Serializer) ConvertToEnvelope(ctx context.Context, original carrier.Message) (wire.Event, registry.Subscription, error) {
	body, err := s.Hooks.RunPreDeserialize(ctx, original.Body)
	if err != nil {
		return wire.Event{}, registry.Subscription{}, coreerrors.Wrap(coreerrors.KindConvertFailed, "pre-deserialize callback failed", err, s.Options.LogMessageContent)
	}
	original.Body = body

	scope := s.pool.NewScope(s.Options.CleanRentedBuffers)
	defer scope.Close()

	buf := scope.Rent(len(body))
	buf = append(buf, body...)

	inner, received := s.wrapper.Unwrap(buf, original, scope)

	e, sub, err := s.reader.Read(inner, scope)
	if err != nil {
		return wire.Event{}, registry.Subscription{}, coreerrors.Wrap(coreerrors.KindConvertFailed, "failed to convert carrier message to envelope", err, s.Options.LogMessageContent)
	}
	e.Received = &received

	e, err = s.Hooks.RunPostDeserialize(ctx, e)
	if err != nil {
		return wire.Event{}, registry.Subscription{}, coreerrors.Wrap(coreerrors.KindConvertFailed, "post-deserialize callback failed", err, s.Options.LogMessageContent)
	}

	return e, sub, nil
}
