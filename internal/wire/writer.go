package wire

import (
	"bytes"

	"github.com/nimbuswire/envelope/internal/codec"
	"github.com/nimbuswire/envelope/internal/contenttype"
	"github.com/nimbuswire/envelope/internal/jsoncodec"
)

// Writer emits an Event as canonical UTF-8 JSON, property order fixed by
// invariant (1): id, source, specversion, type, time, datacontenttype,
// data, then metadata in insertion order.
type Writer struct {
	// useUTF8Path selects the direct UTF8Codec.WriteTo path for a
	// UTF8-capable codec. When false, the legacy Codec.Marshal path is
	// taken even if the codec implements UTF8Codec.
	useUTF8Path bool
}

// NewWriter returns a ready-to-use Writer. useUTF8Path mirrors the
// experimental-features configuration flag: when true, a UTF8-capable
// codec streams directly into the writer's buffer; when false, the
// writer always goes through Codec.Marshal's byte-slice-returning path.
func NewWriter(useUTF8Path bool) *Writer { return &Writer{useUTF8Path: useUTF8Path} }

// Write serializes e, using c to describe and encode e.Data, and returns
// the emitted JSON as a string. The caller is responsible for the
// null-message precondition (e.Data == nil); Write itself only validates
// the fields invariant (1) requires.
func (w *Writer) Write(e Event, c codec.Codec) (string, error) {
	if err := e.Validate(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	buf.Grow(256)
	buf.WriteByte('{')

	needComma := false
	beginField := func(name string) error {
		if needComma {
			buf.WriteByte(',')
		}
		needComma = true
		return writeJSONString(&buf, name)
	}

	if err := beginField("id"); err != nil {
		return "", err
	}
	buf.WriteByte(':')
	if err := writeJSONString(&buf, e.ID); err != nil {
		return "", err
	}

	if e.Source != "" {
		if err := beginField("source"); err != nil {
			return "", err
		}
		buf.WriteByte(':')
		if err := writeJSONString(&buf, e.Source); err != nil {
			return "", err
		}
	}

	if err := beginField("specversion"); err != nil {
		return "", err
	}
	buf.WriteByte(':')
	if err := writeJSONString(&buf, e.SpecVersion); err != nil {
		return "", err
	}

	if err := beginField("type"); err != nil {
		return "", err
	}
	buf.WriteByte(':')
	if err := writeJSONString(&buf, e.Type); err != nil {
		return "", err
	}

	if err := beginField("time"); err != nil {
		return "", err
	}
	buf.WriteByte(':')
	if err := writeJSONString(&buf, FormatTime(e.Time)); err != nil {
		return "", err
	}

	if err := w.writeData(&buf, beginField, e, c); err != nil {
		return "", err
	}

	for _, key := range e.Metadata.Keys() {
		value, _ := e.Metadata.Get(key)
		if value == nil {
			continue
		}
		encoded, err := jsoncodec.Marshal(value)
		if err != nil {
			return "", err
		}
		if err := beginField(key); err != nil {
			return "", err
		}
		buf.WriteByte(':')
		buf.Write(encoded)
	}

	buf.WriteByte('}')
	return buf.String(), nil
}

func (w *Writer) writeData(buf *bytes.Buffer, beginField func(string) error, e Event, c codec.Codec) error {
	if utf8Codec, ok := c.(codec.UTF8Codec); w.useUTF8Path && ok {
		if err := beginField("datacontenttype"); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := writeJSONString(buf, utf8Codec.ContentType()); err != nil {
			return err
		}

		if err := beginField("data"); err != nil {
			return err
		}
		buf.WriteByte(':')
		return utf8Codec.WriteTo(buf, e.Data)
	}

	data, contentType, err := c.Marshal(e.Data)
	if err != nil {
		return err
	}

	if err := beginField("datacontenttype"); err != nil {
		return err
	}
	buf.WriteByte(':')
	if err := writeJSONString(buf, contentType); err != nil {
		return err
	}

	if err := beginField("data"); err != nil {
		return err
	}
	buf.WriteByte(':')
	if contenttype.IsJSON(contentType) {
		buf.Write(data)
		return nil
	}
	return writeJSONString(buf, string(data))
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	encoded, err := jsoncodec.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(encoded)
	return nil
}
