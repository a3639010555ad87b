package wire

import (
	"fmt"
	"strings"

	"github.com/nimbuswire/envelope/internal/bufpool"
	"github.com/nimbuswire/envelope/internal/codec"
	"github.com/nimbuswire/envelope/internal/contenttype"
	"github.com/nimbuswire/envelope/internal/coreerrors"
	"github.com/nimbuswire/envelope/internal/jsoncodec"
	"github.com/nimbuswire/envelope/internal/jsonscan"
	"github.com/nimbuswire/envelope/internal/registry"
	"github.com/nimbuswire/envelope/internal/utf8read"
)

// Reader parses a UTF-8 byte slice into an Event, resolving the
// subscriber mapping for its type and materializing the typed message.
type Reader struct {
	Registry *registry.SubscriberRegistry
	// LogMessageContent mirrors the configuration flag of the same name:
	// when false, a JSON-parse cause is dropped from invalid-data errors
	// instead of being preserved in the chain.
	LogMessageContent bool
}

// NewReader returns a Reader resolving types against reg.
func NewReader(reg *registry.SubscriberRegistry, logMessageContent bool) *Reader {
	return &Reader{Registry: reg, LogMessageContent: logMessageContent}
}

// dataSpan captures the "data" property either as a zero-copy slice of
// the backing buffer (JSON-shaped) or as unescaped UTF-8 bytes owned by
// the pooled scope (string-token-shaped).
type dataSpan struct {
	present bool
	isJSON  bool
	raw     []byte
}

// Read parses buf into an Event and resolves its subscriber mapping.
// Zero-copy slices captured from buf, and pooled bytes rented from
// scope, are only valid until scope is closed.
func (r *Reader) Read(buf []byte, scope *bufpool.Scope) (Event, registry.Subscription, error) {
	scanner := jsonscan.New(buf)
	obj, err := scanner.EnterObject()
	if err != nil {
		return Event{}, registry.Subscription{}, coreerrors.New(coreerrors.KindInvalidData, "envelope JSON must start with object")
	}

	e := Event{Metadata: NewMetadata()}
	var (
		data            dataSpan
		haveContentType bool
		contentTypeStr  string
		sawID           bool
		sawSpecVersion  bool
		sawTime         bool
	)

	for {
		key, ok, err := obj.NextKey()
		if err != nil {
			return Event{}, registry.Subscription{}, r.invalidJSON(err)
		}
		if !ok {
			break
		}

		switch key {
		case "id":
			if e.ID, err = readString(scanner); err != nil {
				return Event{}, registry.Subscription{}, r.invalidJSON(err)
			}
			sawID = true
		case "source":
			if e.Source, err = readString(scanner); err != nil {
				return Event{}, registry.Subscription{}, r.invalidJSON(err)
			}
		case "specversion":
			if e.SpecVersion, err = readString(scanner); err != nil {
				return Event{}, registry.Subscription{}, r.invalidJSON(err)
			}
			sawSpecVersion = true
		case "type":
			if e.Type, err = readString(scanner); err != nil {
				return Event{}, registry.Subscription{}, r.invalidJSON(err)
			}
		case "time":
			raw, err := readString(scanner)
			if err != nil {
				return Event{}, registry.Subscription{}, r.invalidJSON(err)
			}
			e.Time, err = ParseTime(raw)
			if err != nil {
				return Event{}, registry.Subscription{}, coreerrors.Wrap(coreerrors.KindInvalidData, "unparseable timestamp", err, r.LogMessageContent)
			}
			sawTime = true
		case "datacontenttype":
			if contentTypeStr, err = readString(scanner); err != nil {
				return Event{}, registry.Subscription{}, r.invalidJSON(err)
			}
			haveContentType = true
		case "data":
			isJSON := true
			if haveContentType {
				isJSON = contenttype.IsJSON(contentTypeStr)
			}
			if isJSON {
				start, end, err := scanner.SkipValue()
				if err != nil {
					return Event{}, registry.Subscription{}, r.invalidJSON(err)
				}
				data = dataSpan{present: true, isJSON: true, raw: buf[start:end]}
			} else {
				token, err := scanner.StringToken()
				if err != nil {
					return Event{}, registry.Subscription{}, r.invalidJSON(err)
				}
				unescaped, err := utf8read.Unescape(scope, token)
				if err != nil {
					return Event{}, registry.Subscription{}, r.invalidJSON(err)
				}
				data = dataSpan{present: true, isJSON: false, raw: unescaped}
			}
		default:
			start, end, err := scanner.SkipValue()
			if err != nil {
				return Event{}, registry.Subscription{}, r.invalidJSON(err)
			}
			var value any
			if err := jsoncodec.Unmarshal(buf[start:end], &value); err != nil {
				return Event{}, registry.Subscription{}, r.invalidJSON(err)
			}
			e.Metadata.Set(key, value)
		}
	}

	e.DataContentType = contentTypeStr

	if e.Type == "" {
		return Event{}, registry.Subscription{}, coreerrors.New(coreerrors.KindInvalidData, "missing required field: type")
	}

	sub, ok := r.Registry.Get(e.Type)
	if !ok {
		return Event{}, registry.Subscription{}, coreerrors.New(coreerrors.KindInvalidData,
			fmt.Sprintf("no subscriber mapping for type %q; available mappings: %s", e.Type, strings.Join(r.Registry.List(), ", ")))
	}

	for _, missing := range []struct {
		present bool
		name    string
	}{
		{sawID, "id"},
		{sawSpecVersion, "specversion"},
		{sawTime, "time"},
		{data.present, "data"},
	} {
		if !missing.present {
			return Event{}, registry.Subscription{}, coreerrors.New(coreerrors.KindInvalidData, "missing required field: "+missing.name)
		}
	}

	target := sub.Factory()
	if err := decodeData(data, sub.Codec, target); err != nil {
		return Event{}, registry.Subscription{}, coreerrors.Wrap(coreerrors.KindInvalidData, "failed to decode envelope data", coreerrors.MarkJSONCause(err), r.LogMessageContent)
	}
	e.Data = target

	return e, sub, nil
}

func decodeData(data dataSpan, c codec.Codec, target any) error {
	if data.isJSON {
		if utf8Codec, ok := c.(codec.UTF8Codec); ok {
			return utf8Codec.UnmarshalUTF8(data.raw, target)
		}
	}
	return c.Unmarshal(data.raw, target)
}

func readString(scanner *jsonscan.Scanner) (string, error) {
	token, err := scanner.StringToken()
	if err != nil {
		return "", err
	}
	return jsonscan.Unquote(token)
}

func (r *Reader) invalidJSON(cause error) error {
	return coreerrors.Wrap(coreerrors.KindInvalidData, "malformed envelope JSON", coreerrors.MarkJSONCause(cause), r.LogMessageContent)
}
