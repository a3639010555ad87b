package codec

import (
	"fmt"
	"io"
	"reflect"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// ProtoJSONCodec marshals proto.Message values through protojson. Its
// output is JSON-shaped text (not a binary/base64 blob), so it exercises
// the JSON-value emission path rather than a string-token path.
type ProtoJSONCodec struct {
	MarshalOptions   protojson.MarshalOptions
	UnmarshalOptions protojson.UnmarshalOptions
}

// NewProtoJSONCodec returns the default protojson codec.
func NewProtoJSONCodec() *ProtoJSONCodec {
	return &ProtoJSONCodec{}
}

func (c *ProtoJSONCodec) Marshal(value any) ([]byte, string, error) {
	msg, err := asProtoMessage(value)
	if err != nil {
		return nil, "", err
	}
	data, err := c.MarshalOptions.Marshal(msg)
	if err != nil {
		return nil, "", err
	}
	return data, jsonContentType, nil
}

func (c *ProtoJSONCodec) Unmarshal(data []byte, target any) error {
	msg, err := asProtoMessage(target)
	if err != nil {
		return err
	}
	return c.UnmarshalOptions.Unmarshal(data, msg)
}

func (c *ProtoJSONCodec) ContentType() string { return jsonContentType }

func (c *ProtoJSONCodec) WriteTo(w io.Writer, value any) error {
	data, _, err := c.Marshal(value)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func (c *ProtoJSONCodec) UnmarshalUTF8(data []byte, target any) error {
	return c.Unmarshal(data, target)
}

func asProtoMessage(value any) (proto.Message, error) {
	msg, ok := value.(proto.Message)
	if !ok {
		return nil, fmt.Errorf("codec: %T does not implement proto.Message", value)
	}
	if isNilProto(msg) {
		return nil, fmt.Errorf("codec: nil proto.Message of type %T", value)
	}
	return msg, nil
}

func isNilProto(msg proto.Message) bool {
	if msg == nil {
		return true
	}
	val := reflect.ValueOf(msg)
	switch val.Kind() {
	case reflect.Interface, reflect.Ptr, reflect.Slice, reflect.Map, reflect.Func:
		return val.IsNil()
	default:
		return false
	}
}

var (
	_ Codec     = (*ProtoJSONCodec)(nil)
	_ UTF8Codec = (*ProtoJSONCodec)(nil)
)
