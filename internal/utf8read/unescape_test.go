package utf8read

import (
	"testing"

	"github.com/nimbuswire/envelope/internal/bufpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScope() *bufpool.Scope {
	return bufpool.New(nil).NewScope(true)
}

func TestUnescapeFastPathCopiesRawBytes(t *testing.T) {
	scope := newScope()
	defer scope.Close()

	out, err := Unescape(scope, []byte(`"plain value"`))
	require.NoError(t, err)
	assert.Equal(t, "plain value", string(out))
}

func TestUnescapeSlowPathDecodesEscapes(t *testing.T) {
	scope := newScope()
	defer scope.Close()

	out, err := Unescape(scope, []byte(`"line one\nline two"`))
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", string(out))
}

func TestUnescapeInvalidJSONErrors(t *testing.T) {
	scope := newScope()
	defer scope.Close()

	_, err := Unescape(scope, []byte(`"unterminated\`))
	assert.Error(t, err)
}

func TestUnescapeEmptyString(t *testing.T) {
	scope := newScope()
	defer scope.Close()

	out, err := Unescape(scope, []byte(`""`))
	require.NoError(t, err)
	assert.Equal(t, "", string(out))
}
