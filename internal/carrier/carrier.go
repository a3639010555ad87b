// Package carrier models the inbound transport message and the three
// metadata shapes a wrapper parser can attach to it, without depending
// on any transport SDK (SNS/SQS/EventBridge clients stay out of scope).
package carrier

// Message is the minimal shape every wrapper parser needs from an
// inbound delivery: a transport-agnostic stand-in for an SQS/SNS/
// EventBridge message.
type Message struct {
	Body          string
	ReceiptHandle string
	MessageID     string
	Attributes    map[string]string
}

// QueueMetadata is always populated on any received message.
type QueueMetadata struct {
	ReceiptHandle string
	MessageID     string
	Attributes    map[string]string
}

// NotificationMetadata is populated when the notification wrapper
// parser recognizes the carrier body.
type NotificationMetadata struct {
	TopicArn       string
	MessageID      string
	Timestamp      string
	Subject        string
	UnsubscribeURL string
	Attributes     map[string]NotificationAttribute
}

// NotificationAttribute is a single entry of a notification's
// MessageAttributes map.
type NotificationAttribute struct {
	Type  string
	Value string
}

// EventBridgeMetadata is populated when the event-bus wrapper parser
// recognizes the carrier body.
type EventBridgeMetadata struct {
	EventID    string
	DetailType string
	Source     string
	Time       string
	Account    string
	Region     string
	Resources  []string
}

// Received bundles the three metadata slots attached to a materialized
// envelope during convert-to-envelope's attach-metadata step. Only
// Queue is always non-nil.
type Received struct {
	Queue        QueueMetadata
	Notification *NotificationMetadata
	EventBridge  *EventBridgeMetadata
}
