package wrappers

import (
	"testing"

	"github.com/nimbuswire/envelope/internal/bufpool"
	"github.com/nimbuswire/envelope/internal/carrier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScope() *bufpool.Scope {
	return bufpool.New(nil).NewScope(true)
}

func TestChainUnwrapsNotificationWithStringifiedMessage(t *testing.T) {
	body := `{"Type":"Notification","MessageId":"m-1","TopicArn":"arn:topic","Message":"{\"id\":\"e-1\"}","Timestamp":"2023-10-01T12:00:00Z","MessageAttributes":{"kind":{"Type":"String","Value":"widget"}}}`

	scope := newScope()
	defer scope.Close()

	inner, received := NewChain().Unwrap([]byte(body), carrier.Message{MessageID: "sqs-1"}, scope)
	assert.Equal(t, `{"id":"e-1"}`, string(inner))
	require.NotNil(t, received.Notification)
	assert.Equal(t, "arn:topic", received.Notification.TopicArn)
	assert.Equal(t, "m-1", received.Notification.MessageID)
	assert.Equal(t, "widget", received.Notification.Attributes["kind"].Value)
	assert.Equal(t, "sqs-1", received.Queue.MessageID)
	assert.Nil(t, received.EventBridge)
}

func TestChainUnwrapsNotificationWithObjectMessage(t *testing.T) {
	body := `{"Type":"Notification","MessageId":"m-2","TopicArn":"arn:topic","Message":{"id":"e-2","nested":[1,2]}}`

	scope := newScope()
	defer scope.Close()

	inner, received := NewChain().Unwrap([]byte(body), carrier.Message{}, scope)
	assert.Equal(t, `{"id":"e-2","nested":[1,2]}`, string(inner))
	require.NotNil(t, received.Notification)
}

func TestChainUnwrapsEventBridgeWithStringifiedDetail(t *testing.T) {
	body := `{"detail-type":"widget.created","source":"my.app","time":"2023-10-01T12:00:00Z","id":"evt-1","detail":"{\"id\":\"e-3\"}","resources":["arn:a","arn:b"]}`

	scope := newScope()
	defer scope.Close()

	inner, received := NewChain().Unwrap([]byte(body), carrier.Message{}, scope)
	assert.Equal(t, `{"id":"e-3"}`, string(inner))
	require.NotNil(t, received.EventBridge)
	assert.Equal(t, "widget.created", received.EventBridge.DetailType)
	assert.Equal(t, "my.app", received.EventBridge.Source)
	assert.Equal(t, []string{"arn:a", "arn:b"}, received.EventBridge.Resources)
	assert.Nil(t, received.Notification)
}

func TestChainUnwrapsEventBridgeWithObjectDetail(t *testing.T) {
	body := `{"detail-type":"widget.created","source":"my.app","time":"2023-10-01T12:00:00Z","detail":{"id":"e-4"}}`

	scope := newScope()
	defer scope.Close()

	inner, received := NewChain().Unwrap([]byte(body), carrier.Message{}, scope)
	assert.Equal(t, `{"id":"e-4"}`, string(inner))
	require.NotNil(t, received.EventBridge)
}

func TestChainFallsBackToQueueForBareEnvelope(t *testing.T) {
	body := `{"id":"e-5","specversion":"1.0","type":"widget.created"}`

	scope := newScope()
	defer scope.Close()

	inner, received := NewChain().Unwrap([]byte(body), carrier.Message{ReceiptHandle: "rh-1"}, scope)
	assert.Equal(t, body, string(inner))
	assert.Nil(t, received.Notification)
	assert.Nil(t, received.EventBridge)
	assert.Equal(t, "rh-1", received.Queue.ReceiptHandle)
}

func TestChainFallsBackToQueueWhenSentinelsAbsent(t *testing.T) {
	// A bare envelope containing neither "detail-type" nor "TopicArn"
	// quick-matches neither the notification nor the event-bus parser.
	// QueueFallback's quick-match always accepts, so the first pass
	// returns the payload unchanged with no wrapper metadata.
	body := `{"id":"e-6","type":"widget.created","specversion":"1.0"}`

	scope := newScope()
	defer scope.Close()

	inner, received := NewChain().Unwrap([]byte(body), carrier.Message{}, scope)
	assert.Equal(t, body, string(inner))
	assert.Nil(t, received.Notification)
	assert.Nil(t, received.EventBridge)
}

func TestNotificationQuickMatchRequiresBothSentinels(t *testing.T) {
	n := Notification{}
	assert.True(t, n.QuickMatch([]byte(`{"Type":"Notification","TopicArn":"x"}`)))
	assert.False(t, n.QuickMatch([]byte(`{"Type":"Notification"}`)))
	assert.False(t, n.QuickMatch([]byte(`{"TopicArn":"x"}`)))
}

func TestEventBridgeQuickMatchRequiresBothSentinels(t *testing.T) {
	e := EventBridge{}
	assert.True(t, e.QuickMatch([]byte(`{"detail-type":"x","detail":{}}`)))
	assert.False(t, e.QuickMatch([]byte(`{"detail-type":"x"}`)))
}

func TestNotificationTryParseRejectsMissingRequiredField(t *testing.T) {
	scope := newScope()
	defer scope.Close()

	_, ok := Notification{}.TryParse([]byte(`{"Type":"Notification","TopicArn":"arn:topic"}`), scope)
	assert.False(t, ok)
}

func TestEventBridgeTryParseRejectsMissingRequiredField(t *testing.T) {
	scope := newScope()
	defer scope.Close()

	_, ok := EventBridge{}.TryParse([]byte(`{"detail-type":"x","detail":{}}`), scope)
	assert.False(t, ok)
}

func TestQueueFallbackAlwaysMatches(t *testing.T) {
	q := QueueFallback{}
	assert.True(t, q.QuickMatch([]byte(`anything`)))

	scope := newScope()
	defer scope.Close()

	result, ok := q.TryParse([]byte(`{"a":1}`), scope)
	require.True(t, ok)
	assert.Equal(t, `{"a":1}`, string(result.Inner))
}
