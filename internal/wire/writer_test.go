package wire

import (
	"testing"
	"time"

	"github.com/nimbuswire/envelope/internal/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type addressList struct {
	Items []address `json:"Items"`
}

type address struct {
	Street  string `json:"Street"`
	Unit    int    `json:"Unit"`
	ZipCode string `json:"ZipCode"`
}

func TestWriterScenarioOneBareEnvelope(t *testing.T) {
	when := time.Date(2023, 10, 1, 12, 0, 0, 0, time.UTC)
	e := New("id-123", "/backend/service", "addressInfoList", when, addressList{
		Items: []address{{Street: "Street 0", Unit: 0, ZipCode: "10000"}},
	})

	out, err := NewWriter(true).Write(e, codec.NewJSONCodec())
	require.NoError(t, err)

	want := `{"id":"id-123","source":"/backend/service","specversion":"1.0","type":"addressInfoList","time":"2023-10-01T12:00:00+00:00","datacontenttype":"application/json","data":{"Items":[{"Street":"Street 0","Unit":0,"ZipCode":"10000"}]}}`
	assert.Equal(t, want, out)
}

func TestWriterOmitsAbsentSource(t *testing.T) {
	e := New("id-1", "", "widget.created", time.Now(), map[string]any{"k": "v"})
	out, err := NewWriter(true).Write(e, codec.NewJSONCodec())
	require.NoError(t, err)
	assert.NotContains(t, out, `"source"`)
}

func TestWriterEmitsMetadataInInsertionOrder(t *testing.T) {
	e := New("id-1", "/svc", "widget.created", time.Now(), map[string]any{})
	e.Metadata.Set("zeta", 1)
	e.Metadata.Set("alpha", 2)

	out, err := NewWriter(true).Write(e, codec.NewJSONCodec())
	require.NoError(t, err)

	zetaIdx := indexOf(out, `"zeta"`)
	alphaIdx := indexOf(out, `"alpha"`)
	require.NotEqual(t, -1, zetaIdx)
	require.NotEqual(t, -1, alphaIdx)
	assert.Less(t, zetaIdx, alphaIdx)
}

func TestWriterSkipsKnownFieldCollisionAndNilMetadata(t *testing.T) {
	e := New("id-1", "/svc", "widget.created", time.Now(), map[string]any{})
	e.Metadata.Set("id", "should-not-appear")
	e.Metadata.Set("dropped", nil)
	e.Metadata.Set("kept", "value")

	out, err := NewWriter(true).Write(e, codec.NewJSONCodec())
	require.NoError(t, err)

	assert.Equal(t, 1, countOccurrences(out, `"id"`))
	assert.NotContains(t, out, `"dropped"`)
	assert.Contains(t, out, `"kept":"value"`)
}

func TestWriterRejectsMissingRequiredFields(t *testing.T) {
	e := Event{Metadata: NewMetadata()}
	_, err := NewWriter(true).Write(e, codec.NewJSONCodec())
	assert.Error(t, err)
}

func TestWriterLegacyPathTakesMarshalEvenForUTF8CapableCodec(t *testing.T) {
	when := time.Date(2023, 10, 1, 12, 0, 0, 0, time.UTC)
	e := New("id-123", "/backend/service", "addressInfoList", when, addressList{
		Items: []address{{Street: "Street 0", Unit: 0, ZipCode: "10000"}},
	})

	out, err := NewWriter(false).Write(e, codec.NewJSONCodec())
	require.NoError(t, err)

	want := `{"id":"id-123","source":"/backend/service","specversion":"1.0","type":"addressInfoList","time":"2023-10-01T12:00:00+00:00","datacontenttype":"application/json","data":{"Items":[{"Street":"Street 0","Unit":0,"ZipCode":"10000"}]}}`
	assert.Equal(t, want, out)
}

type plainTextCodec struct{}

func (plainTextCodec) Marshal(value any) ([]byte, string, error) {
	return []byte(value.(string)), "text/plain", nil
}

func (plainTextCodec) Unmarshal(data []byte, target any) error {
	*target.(*string) = string(data)
	return nil
}

func (plainTextCodec) ContentType() string { return "text/plain" }

func TestWriterEmitsStringTokenForNonJSONContentType(t *testing.T) {
	e := New("id-1", "/svc", "widget.created", time.Now(), "hello \"world\"")

	out, err := NewWriter(true).Write(e, plainTextCodec{})
	require.NoError(t, err)

	assert.Contains(t, out, `"datacontenttype":"text/plain"`)
	assert.Contains(t, out, `"data":"hello \"world\""`)
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

func countOccurrences(s, sub string) int {
	count := 0
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			count++
			i += len(sub) - 1
		}
	}
	return count
}
