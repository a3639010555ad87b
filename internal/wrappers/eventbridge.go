package wrappers

import (
	"github.com/nimbuswire/envelope/internal/bufpool"
	"github.com/nimbuswire/envelope/internal/carrier"
	"github.com/nimbuswire/envelope/internal/jsonscan"
)

// EventBridge recognizes an event-bus delivery: required keys
// detail-type, detail, source, time.
type EventBridge struct{}

func (EventBridge) QuickMatch(payload []byte) bool {
	return quickMatchAll(payload, `"detail-type"`, `"detail"`)
}

func (EventBridge) TryParse(payload []byte, scope *bufpool.Scope) (ParseResult, bool) {
	s := jsonscan.New(payload)
	obj, err := s.EnterObject()
	if err != nil {
		return ParseResult{}, false
	}

	var (
		meta                                       carrier.EventBridgeMetadata
		inner                                      []byte
		haveDetailType, haveDetail, haveSource, haveTime bool
	)

	for {
		key, ok, err := obj.NextKey()
		if err != nil {
			return ParseResult{}, false
		}
		if !ok {
			break
		}

		switch key {
		case "detail-type":
			if meta.DetailType, err = readStringValue(s); err != nil {
				return ParseResult{}, false
			}
			haveDetailType = true
		case "detail":
			if inner, err = captureValue(s, payload, scope); err != nil {
				return ParseResult{}, false
			}
			haveDetail = true
		case "source":
			if meta.Source, err = readStringValue(s); err != nil {
				return ParseResult{}, false
			}
			haveSource = true
		case "time":
			if meta.Time, err = readStringValue(s); err != nil {
				return ParseResult{}, false
			}
			haveTime = true
		case "id":
			if meta.EventID, err = readStringValue(s); err != nil {
				return ParseResult{}, false
			}
		case "account":
			if meta.Account, err = readStringValue(s); err != nil {
				return ParseResult{}, false
			}
		case "region":
			if meta.Region, err = readStringValue(s); err != nil {
				return ParseResult{}, false
			}
		case "resources":
			if meta.Resources, err = readStringArray(s); err != nil {
				return ParseResult{}, false
			}
		default:
			if err := skipValue(s); err != nil {
				return ParseResult{}, false
			}
		}
	}

	if !haveDetailType || !haveDetail || !haveSource || !haveTime {
		return ParseResult{}, false
	}

	return ParseResult{Inner: inner, EventBridge: &meta}, true
}

func readStringArray(s *jsonscan.Scanner) ([]string, error) {
	arr, err := s.EnterArray()
	if err != nil {
		return nil, err
	}

	var values []string
	for {
		has, err := arr.Next()
		if err != nil {
			return nil, err
		}
		if !has {
			break
		}
		value, err := readStringValue(s)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, nil
}

var _ Parser = EventBridge{}
