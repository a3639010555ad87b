// Package hooks defines the four ordered callback phases the
// orchestrator runs around serialize and convert-to-envelope, and a few
// pre-built hook constructors (tracing, logging) callers can register.
package hooks

import (
	"context"

	"github.com/nimbuswire/envelope/internal/wire"
)

// PreSerializeHook observes or transforms an envelope before it is
// written to wire format.
type PreSerializeHook func(ctx context.Context, e wire.Event) (wire.Event, error)

// PostSerializeHook observes or transforms the wire string a serialize
// call produced.
type PostSerializeHook func(ctx context.Context, payload string) (string, error)

// PreDeserializeHook observes or transforms the raw carrier body before
// the wrapper-parser chain and envelope reader run over it.
type PreDeserializeHook func(ctx context.Context, payload string) (string, error)

// PostDeserializeHook observes or transforms an envelope materialized by
// convert-to-envelope.
type PostDeserializeHook func(ctx context.Context, e wire.Event) (wire.Event, error)

// Callbacks holds the four ordered hook lists. The zero value has no
// hooks registered and every Run* method is then a no-op passthrough.
type Callbacks struct {
	PreSerialize    []PreSerializeHook
	PostSerialize   []PostSerializeHook
	PreDeserialize  []PreDeserializeHook
	PostDeserialize []PostDeserializeHook
}

// RunPreSerialize runs the pre-serialize hooks in registration order,
// each fully completing before the next runs. It stops and returns the
// first error encountered.
func (c Callbacks) RunPreSerialize(ctx context.Context, e wire.Event) (wire.Event, error) {
	var err error
	for _, hook := range c.PreSerialize {
		if e, err = hook(ctx, e); err != nil {
			return wire.Event{}, err
		}
	}
	return e, nil
}

// RunPostSerialize runs the post-serialize hooks in registration order.
func (c Callbacks) RunPostSerialize(ctx context.Context, payload string) (string, error) {
	var err error
	for _, hook := range c.PostSerialize {
		if payload, err = hook(ctx, payload); err != nil {
			return "", err
		}
	}
	return payload, nil
}

// RunPreDeserialize runs the pre-deserialize hooks in registration order.
func (c Callbacks) RunPreDeserialize(ctx context.Context, payload string) (string, error) {
	var err error
	for _, hook := range c.PreDeserialize {
		if payload, err = hook(ctx, payload); err != nil {
			return "", err
		}
	}
	return payload, nil
}

// RunPostDeserialize runs the post-deserialize hooks in registration order.
func (c Callbacks) RunPostDeserialize(ctx context.Context, e wire.Event) (wire.Event, error) {
	var err error
	for _, hook := range c.PostDeserialize {
		if e, err = hook(ctx, e); err != nil {
			return wire.Event{}, err
		}
	}
	return e, nil
}

// Merge combines c and other, running c's hooks before other's within
// each phase.
func (c Callbacks) Merge(other Callbacks) Callbacks {
	return Callbacks{
		PreSerialize:    append(append([]PreSerializeHook{}, c.PreSerialize...), other.PreSerialize...),
		PostSerialize:   append(append([]PostSerializeHook{}, c.PostSerialize...), other.PostSerialize...),
		PreDeserialize:  append(append([]PreDeserializeHook{}, c.PreDeserialize...), other.PreDeserialize...),
		PostDeserialize: append(append([]PostDeserializeHook{}, c.PostDeserialize...), other.PostDeserialize...),
	}
}
