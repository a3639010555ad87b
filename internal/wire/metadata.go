package wire

// Metadata is an insertion-ordered map of the envelope's non-canonical
// top-level properties. Values are opaque parsed JSON values (or, on the
// write side, values the caller wants marshaled verbatim) and are
// preserved without interpretation.
type Metadata struct {
	keys   []string
	values map[string]any
}

// NewMetadata returns an empty, ready-to-use Metadata.
func NewMetadata() Metadata {
	return Metadata{values: make(map[string]any)}
}

// Set records key/value in insertion order. Calls with a key that is
// empty or one of the seven known field names are silently discarded
// (invariant 2); re-setting an existing key updates its value in place
// without moving its position.
func (m *Metadata) Set(key string, value any) {
	if key == "" || IsKnownField(key) {
		return
	}
	if m.values == nil {
		m.values = make(map[string]any)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key, if any.
func (m Metadata) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the metadata keys in insertion order. The returned slice
// must not be mutated by the caller.
func (m Metadata) Keys() []string {
	return m.keys
}

// Len returns the number of metadata entries.
func (m Metadata) Len() int {
	return len(m.keys)
}

func (m Metadata) clone() Metadata {
	out := Metadata{
		keys:   make([]string, len(m.keys)),
		values: make(map[string]any, len(m.values)),
	}
	copy(out.keys, m.keys)
	for k, v := range m.values {
		out.values[k] = v
	}
	return out
}
