package wire

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSetsSpecVersion(t *testing.T) {
	when := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	evt := New("id-1", "/backend/service", "test.event", when, map[string]string{"key": "value"})

	assert.Equal(t, SpecVersion, evt.SpecVersion)
	assert.Equal(t, "test.event", evt.Type)
	assert.Equal(t, "/backend/service", evt.Source)
	assert.Equal(t, "id-1", evt.ID)
	assert.True(t, when.Equal(evt.Time))
	assert.Equal(t, 0, evt.Metadata.Len())
}

func TestEventValidate(t *testing.T) {
	tests := []struct {
		name    string
		event   Event
		wantErr bool
	}{
		{
			name:  "valid event",
			event: Event{SpecVersion: SpecVersion, Type: "test.event", ID: "test-id"},
		},
		{
			name:    "missing specversion",
			event:   Event{Type: "test.event", ID: "test-id"},
			wantErr: true,
		},
		{
			name:    "missing type",
			event:   Event{SpecVersion: SpecVersion, ID: "test-id"},
			wantErr: true,
		},
		{
			name:    "missing id",
			event:   Event{SpecVersion: SpecVersion, Type: "test.event"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEventClone(t *testing.T) {
	original := New("test-id", "test-source", "test.event", time.Now().UTC(), map[string]string{"key": "value"})
	original.Metadata.Set("custom", "value")

	cloned := original.Clone()

	assert.Equal(t, original.SpecVersion, cloned.SpecVersion)
	assert.Equal(t, original.Type, cloned.Type)
	assert.Equal(t, original.ID, cloned.ID)
	assert.Equal(t, original.Data, cloned.Data)
	v, ok := cloned.Metadata.Get("custom")
	require.True(t, ok)
	assert.Equal(t, "value", v)

	cloned.ID = "modified-id"
	assert.NotEqual(t, original.ID, cloned.ID)

	cloned.Metadata.Set("custom", "modified")
	original.Metadata.Set("custom", "value")
	stillOriginal, _ := original.Metadata.Get("custom")
	assert.Equal(t, "value", stillOriginal)
}

func TestIsKnownField(t *testing.T) {
	for _, name := range []string{"id", "source", "specversion", "type", "time", "datacontenttype", "data"} {
		assert.True(t, IsKnownField(name), name)
	}
	assert.False(t, IsKnownField("custom"))
	assert.False(t, IsKnownField(""))
}

func TestMetadataSetSkipsKnownAndEmptyKeys(t *testing.T) {
	m := NewMetadata()
	m.Set("", "ignored")
	m.Set("id", "ignored")
	m.Set("type", "ignored")
	assert.Equal(t, 0, m.Len())
}

func TestMetadataPreservesInsertionOrder(t *testing.T) {
	m := NewMetadata()
	m.Set("b", 1)
	m.Set("a", 2)
	m.Set("c", 3)
	m.Set("a", 4) // update in place, position unchanged

	assert.Equal(t, []string{"b", "a", "c"}, m.Keys())
	v, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, 4, v)
}
