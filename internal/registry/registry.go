// Package registry holds the read-after-init mappings from a message
// type-id string to its target Go type and codec, and from a publishing
// message's static type to its type-id.
package registry

import (
	"reflect"
	"sort"
	"sync"

	"github.com/nimbuswire/envelope/internal/codec"
)

// Subscription describes how to materialize and decode a received
// message of a given type-id.
type Subscription struct {
	// TypeID is the canonical type string carried in an envelope's
	// "type" field.
	TypeID string
	// Factory returns a fresh, empty instance to decode into.
	Factory func() any
	// Codec decodes the envelope's data into the value Factory produced.
	Codec codec.Codec
}

// SubscriberRegistry resolves an inbound type-id to its Subscription.
type SubscriberRegistry struct {
	mu   sync.RWMutex
	subs map[string]Subscription
}

// NewSubscriberRegistry returns an empty registry.
func NewSubscriberRegistry() *SubscriberRegistry {
	return &SubscriberRegistry{subs: make(map[string]Subscription)}
}

// Register associates typeID with sub. A later call for the same typeID
// overwrites the earlier one.
func (r *SubscriberRegistry) Register(typeID string, sub Subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub.TypeID = typeID
	r.subs[typeID] = sub
}

// Get returns the Subscription registered for typeID.
func (r *SubscriberRegistry) Get(typeID string) (Subscription, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sub, ok := r.subs[typeID]
	return sub, ok
}

// List returns every registered type-id, sorted, for use in
// invalid-data error messages that enumerate available mappings.
func (r *SubscriberRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.subs))
	for id := range r.subs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// PublisherRegistry resolves a message's static Go type to its type-id
// for outbound envelopes.
type PublisherRegistry struct {
	mu   sync.RWMutex
	byGo map[reflect.Type]string
}

// NewPublisherRegistry returns an empty registry.
func NewPublisherRegistry() *PublisherRegistry {
	return &PublisherRegistry{byGo: make(map[reflect.Type]string)}
}

// RegisterType associates the Go type of sample with typeID.
func (r *PublisherRegistry) RegisterType(sample any, typeID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byGo[reflect.TypeOf(sample)] = typeID
}

// Get resolves message's static type to a type-id.
func (r *PublisherRegistry) Get(message any) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	typeID, ok := r.byGo[reflect.TypeOf(message)]
	return typeID, ok
}
