package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingularMutexGetSet(t *testing.T) {
	c := NewSingular[int64]("local-source")

	var calls atomic.Int32
	load := func() (int64, error) {
		calls.Add(1)
		time.Sleep(10 * time.Millisecond)
		return 42, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var v int64
			assert.NoError(t, c.MutexGetSet(&v, load, time.Minute))
			assert.Equal(t, int64(42), v)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), calls.Load())

	c.Delete()
	var v int64
	assert.ErrorIs(t, c.Get(&v), ErrNotFound)
}

func TestSingularLoaderError(t *testing.T) {
	c := NewSingular[string]("k")
	boom := errors.New("boom")

	var v string
	err := c.MutexGetSet(&v, func() (string, error) { return "", boom }, time.Minute)
	require.ErrorIs(t, err, boom)
	assert.ErrorIs(t, c.Get(&v), ErrNotFound)
}
