package hooks

import (
	"context"

	"github.com/nimbuswire/envelope/internal/logging"
	"github.com/nimbuswire/envelope/internal/wire"
)

// LoggingPreSerialize logs an envelope's identifying fields before it is
// written to wire format.
func LoggingPreSerialize(log logging.ServiceLogger) PreSerializeHook {
	return func(ctx context.Context, e wire.Event) (wire.Event, error) {
		log.Debug("serializing envelope", logging.LogFields{
			"envelope.id":   e.ID,
			"envelope.type": e.Type,
		})
		return e, nil
	}
}

// LoggingPostDeserialize logs an envelope's identifying fields after
// convert-to-envelope materializes it.
func LoggingPostDeserialize(log logging.ServiceLogger) PostDeserializeHook {
	return func(ctx context.Context, e wire.Event) (wire.Event, error) {
		log.Debug("converted envelope", logging.LogFields{
			"envelope.id":   e.ID,
			"envelope.type": e.Type,
		})
		return e, nil
	}
}
