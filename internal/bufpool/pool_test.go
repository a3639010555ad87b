package bufpool

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeRentReturnsUsableBuffer(t *testing.T) {
	pool := New(nil)
	scope := pool.NewScope(true)
	defer scope.Close()

	buf := scope.Rent(100)
	assert.Equal(t, 0, len(buf))
	assert.GreaterOrEqual(t, cap(buf), 100)

	buf = append(buf, []byte("hello")...)
	assert.Equal(t, "hello", string(buf))
}

func TestScopeCloseReturnsEveryBuffer(t *testing.T) {
	pool := New(nil)
	scope := pool.NewScope(false)

	for i := 0; i < 5; i++ {
		scope.Rent(64)
	}
	require.Len(t, scope.rented, 5)
	scope.Close()
	assert.Nil(t, scope.rented)
}

func TestScopeCleanZeroesReturnedBuffers(t *testing.T) {
	pool := New(nil)

	scope := pool.NewScope(true)
	buf := scope.Rent(16)
	buf = append(buf, []byte("secret")...)
	scope.Close()

	// A fresh scope pulling from the same pool should observe a
	// zeroed buffer for the size class "secret" was rented from.
	scope2 := pool.NewScope(true)
	defer scope2.Close()
	recycled := scope2.Rent(16)
	full := recycled[:cap(recycled)]
	for _, b := range full {
		assert.Equal(t, byte(0), b)
	}
}

func TestScopeGrowPreservesContents(t *testing.T) {
	pool := New(nil)
	scope := pool.NewScope(false)
	defer scope.Close()

	buf := scope.Rent(4)
	buf = append(buf, []byte("abcd")...)

	grown := scope.Grow(buf, 4096)
	assert.Equal(t, "abcd", string(grown))
	assert.GreaterOrEqual(t, cap(grown), 4096)
}

func TestPoolOversizedRequestBypassesClasses(t *testing.T) {
	pool := New(nil)
	scope := pool.NewScope(false)
	defer scope.Close()

	buf := scope.Rent(10 << 20)
	assert.GreaterOrEqual(t, cap(buf), 10<<20)
}

func TestMetricsRecordOperations(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	pool := New(m)

	scope := pool.NewScope(false)
	scope.Rent(32)
	scope.Close()

	families, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)
}
