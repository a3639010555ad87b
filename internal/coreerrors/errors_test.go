package coreerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "missing-mapping", KindMissingMapping.String())
	assert.Equal(t, "invalid-data", KindInvalidData.String())
	assert.Equal(t, "serialize-failed", KindSerializeFailed.String())
	assert.Equal(t, "convert-failed", KindConvertFailed.String())
	assert.Equal(t, "null-message", KindNullMessage.String())
}

func TestWrapPreservesCauseByDefault(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(KindConvertFailed, "convert failed", cause, true)
	assert.Same(t, cause, err.Cause)
	assert.ErrorIs(t, err, cause)
}

func TestWrapRedactsMarkedJSONCauseWhenContentLoggingDisabled(t *testing.T) {
	cause := MarkJSONCause(errors.New("unexpected token"))
	err := Wrap(KindInvalidData, "malformed envelope", cause, false)
	assert.Nil(t, err.Cause)
	assert.NotContains(t, err.Error(), "unexpected token")
}

func TestWrapKeepsUnmarkedCauseEvenWhenContentLoggingDisabled(t *testing.T) {
	cause := errors.New("plain failure")
	err := Wrap(KindSerializeFailed, "serialize failed", cause, false)
	require.NotNil(t, err.Cause)
	assert.Equal(t, cause, err.Cause)
}

func TestErrorIsComparesByKind(t *testing.T) {
	a := New(KindMissingMapping, "no mapping for order.created")
	b := New(KindMissingMapping, "different message")
	c := New(KindInvalidData, "no mapping for order.created")

	assert.True(t, errors.Is(a, b))
	assert.False(t, errors.Is(a, c))
}
