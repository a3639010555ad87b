package codec

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name string `json:"name"`
}

func TestJSONCodecMarshalUnmarshal(t *testing.T) {
	c := NewJSONCodec()

	data, contentType, err := c.Marshal(sample{Name: "widget"})
	require.NoError(t, err)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, "application/json", c.ContentType())

	var out sample
	require.NoError(t, c.Unmarshal(data, &out))
	assert.Equal(t, "widget", out.Name)
}

func TestJSONCodecWriteToAndUnmarshalUTF8(t *testing.T) {
	c := NewJSONCodec()

	var buf bytes.Buffer
	require.NoError(t, c.WriteTo(&buf, sample{Name: "gadget"}))

	var out sample
	require.NoError(t, c.UnmarshalUTF8(buf.Bytes(), &out))
	assert.Equal(t, "gadget", out.Name)
}
