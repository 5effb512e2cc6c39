package fiberstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	m := NewMemory()

	v, err := m.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, v)

	buf := []byte("token")
	require.NoError(t, m.Set("jti", buf, time.Minute))
	buf[0] = 'X'

	v, err = m.Get("jti")
	require.NoError(t, err)
	assert.Equal(t, []byte("token"), v)

	require.NoError(t, m.Set("short", []byte("1"), 20*time.Millisecond))
	time.Sleep(40 * time.Millisecond)
	v, err = m.Get("short")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, m.Delete("jti"))
	v, _ = m.Get("jti")
	assert.Nil(t, v)

	require.NoError(t, m.Set("a", []byte("1"), 0))
	require.NoError(t, m.Reset())
	v, _ = m.Get("a")
	assert.Nil(t, v)
}
