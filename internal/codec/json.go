package codec

import (
	"io"

	"github.com/nimbuswire/envelope/internal/jsoncodec"
)

const jsonContentType = "application/json"

// JSONCodec marshals and unmarshals values as JSON via sonic, exercising
// both the string-codec and the UTF8Codec path (§4.4 step 3).
type JSONCodec struct{}

// NewJSONCodec returns the default JSON codec.
func NewJSONCodec() *JSONCodec { return &JSONCodec{} }

func (JSONCodec) Marshal(value any) ([]byte, string, error) {
	data, err := jsoncodec.Marshal(value)
	if err != nil {
		return nil, "", err
	}
	return data, jsonContentType, nil
}

func (JSONCodec) Unmarshal(data []byte, target any) error {
	return jsoncodec.Unmarshal(data, target)
}

func (JSONCodec) ContentType() string { return jsonContentType }

// WriteTo marshals value and writes it straight into w. It deliberately
// avoids sonic's streaming Encoder: like encoding/json's, it appends a
// trailing newline after the value, which would corrupt the envelope
// writer's buffer mid-object.
func (JSONCodec) WriteTo(w io.Writer, value any) error {
	data, err := jsoncodec.Marshal(value)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func (JSONCodec) UnmarshalUTF8(data []byte, target any) error {
	return jsoncodec.Unmarshal(data, target)
}

var (
	_ Codec     = JSONCodec{}
	_ UTF8Codec = JSONCodec{}
)
