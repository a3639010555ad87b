package wrappers

import (
	"github.com/nimbuswire/envelope/internal/bufpool"
	"github.com/nimbuswire/envelope/internal/carrier"
	"github.com/nimbuswire/envelope/internal/jsonscan"
)

// Notification recognizes a notification-service delivery: required
// keys Type=="Notification", TopicArn, MessageId, Message.
type Notification struct{}

func (Notification) QuickMatch(payload []byte) bool {
	return quickMatchAll(payload, `"Type":"Notification"`, `"TopicArn"`)
}

func (Notification) TryParse(payload []byte, scope *bufpool.Scope) (ParseResult, bool) {
	s := jsonscan.New(payload)
	obj, err := s.EnterObject()
	if err != nil {
		return ParseResult{}, false
	}

	var (
		typ, topicArn, messageID string
		timestamp, subject, unsubscribeURL string
		attrs                    map[string]carrier.NotificationAttribute
		inner                    []byte
		haveType, haveTopic, haveMessageID, haveMessage bool
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
		case "Type":
			if typ, err = readStringValue(s); err != nil {
				return ParseResult{}, false
			}
			haveType = true
		case "TopicArn":
			if topicArn, err = readStringValue(s); err != nil {
				return ParseResult{}, false
			}
			haveTopic = true
		case "MessageId":
			if messageID, err = readStringValue(s); err != nil {
				return ParseResult{}, false
			}
			haveMessageID = true
		case "Message":
			if inner, err = captureValue(s, payload, scope); err != nil {
				return ParseResult{}, false
			}
			haveMessage = true
		case "Timestamp":
			if timestamp, err = readStringValue(s); err != nil {
				return ParseResult{}, false
			}
		case "Subject":
			if subject, err = readStringValue(s); err != nil {
				return ParseResult{}, false
			}
		case "UnsubscribeURL":
			if unsubscribeURL, err = readStringValue(s); err != nil {
				return ParseResult{}, false
			}
		case "MessageAttributes":
			if attrs, err = readMessageAttributes(s); err != nil {
				return ParseResult{}, false
			}
		default:
			if err := skipValue(s); err != nil {
				return ParseResult{}, false
			}
		}
	}

	if typ != "Notification" || !haveType || !haveTopic || !haveMessageID || !haveMessage {
		return ParseResult{}, false
	}

	return ParseResult{
		Inner: inner,
		Notification: &carrier.NotificationMetadata{
			TopicArn:       topicArn,
			MessageID:      messageID,
			Timestamp:      timestamp,
			Subject:        subject,
			UnsubscribeURL: unsubscribeURL,
			Attributes:     attrs,
		},
	}, true
}

func readMessageAttributes(s *jsonscan.Scanner) (map[string]carrier.NotificationAttribute, error) {
	obj, err := s.EnterObject()
	if err != nil {
		return nil, err
	}

	attrs := make(map[string]carrier.NotificationAttribute)
	for {
		name, ok, err := obj.NextKey()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		attr, err := readNotificationAttribute(s)
		if err != nil {
			return nil, err
		}
		attrs[name] = attr
	}
	return attrs, nil
}

func readNotificationAttribute(s *jsonscan.Scanner) (carrier.NotificationAttribute, error) {
	inner, err := s.EnterObject()
	if err != nil {
		return carrier.NotificationAttribute{}, err
	}

	var attr carrier.NotificationAttribute
	for {
		key, ok, err := inner.NextKey()
		if err != nil {
			return carrier.NotificationAttribute{}, err
		}
		if !ok {
			break
		}
		switch key {
		case "Type":
			if attr.Type, err = readStringValue(s); err != nil {
				return carrier.NotificationAttribute{}, err
			}
		case "Value":
			if attr.Value, err = readStringValue(s); err != nil {
				return carrier.NotificationAttribute{}, err
			}
		default:
			if err := skipValue(s); err != nil {
				return carrier.NotificationAttribute{}, err
			}
		}
	}
	return attr, nil
}

var _ Parser = Notification{}
