package jsonscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnterObjectRejectsNonObject(t *testing.T) {
	s := New([]byte(`"not-json"`))
	_, err := s.EnterObject()
	assert.Error(t, err)
}

func TestObjectIteratesKeysInOrder(t *testing.T) {
	s := New([]byte(`{"a":1,"b":"two","c":[1,2,3]}`))
	obj, err := s.EnterObject()
	require.NoError(t, err)

	var keys []string
	for {
		key, ok, err := obj.NextKey()
		require.NoError(t, err)
		if !ok {
			break
		}
		keys = append(keys, key)
		_, _, err = s.SkipValue()
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}

func TestSkipValueCapturesExactRange(t *testing.T) {
	buf := []byte(`{"data":{"nested":[1,2,{"x":true}]},"rest":1}`)
	s := New(buf)
	obj, err := s.EnterObject()
	require.NoError(t, err)

	key, ok, err := obj.NextKey()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "data", key)

	start, end, err := s.SkipValue()
	require.NoError(t, err)
	assert.Equal(t, `{"nested":[1,2,{"x":true}]}`, string(buf[start:end]))
}

func TestSkipValueHandlesScalars(t *testing.T) {
	for _, tc := range []string{`true`, `false`, `null`, `42`, `-3.14`, `1e10`, `"hi"`} {
		s := New([]byte(tc))
		start, end, err := s.SkipValue()
		require.NoError(t, err, tc)
		assert.Equal(t, tc, string([]byte(tc)[start:end]))
	}
}

func TestStringTokenWithEscapes(t *testing.T) {
	s := New([]byte(`"a\"b\\c"`))
	tok, err := s.StringToken()
	require.NoError(t, err)
	assert.Equal(t, `"a\"b\\c"`, string(tok))
}

func TestArrayIteratesElements(t *testing.T) {
	buf := []byte(`["us-east-1","us-west-2"]`)
	s := New(buf)
	arr, err := s.EnterArray()
	require.NoError(t, err)

	var elems []string
	for {
		more, err := arr.Next()
		require.NoError(t, err)
		if !more {
			break
		}
		tok, err := s.StringToken()
		require.NoError(t, err)
		elems = append(elems, string(tok))
	}
	assert.Equal(t, []string{`"us-east-1"`, `"us-west-2"`}, elems)
}

func TestObjectMalformedMissingColon(t *testing.T) {
	s := New([]byte(`{"a" 1}`))
	obj, err := s.EnterObject()
	require.NoError(t, err)
	_, _, err = obj.NextKey()
	assert.Error(t, err)
}

func TestUnexpectedEOF(t *testing.T) {
	s := New([]byte(`{"a":`))
	obj, err := s.EnterObject()
	require.NoError(t, err)
	key, ok, err := obj.NextKey()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a", key)
	_, _, err = s.SkipValue()
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
}
