package cache

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var ErrNotFound = errors.New("cache: key not found")

// Singular caches exactly one value of type T in process memory.
type Singular[T any] struct {
	// m serializes loaders in MutexGetSet
	m sync.Mutex

	key string
	c   *cache.Cache
}

func NewSingular[T any](key string) *Singular[T] {
	return &Singular[T]{
		key: key,
		c:   cache.New(cache.NoExpiration, time.Minute*10),
	}
}

func (c *Singular[T]) Get(dest *T) error {
	v, ok := c.c.Get(c.key)
	if !ok {
		return ErrNotFound
	}
	*dest = v.(T)
	return nil
}

// Set stores value. A zero expire keeps it until Delete.
func (c *Singular[T]) Set(value T, expire time.Duration) {
	if expire == 0 {
		expire = cache.NoExpiration
	}
	c.c.Set(c.key, value, expire)
}

// MutexGetSet writes the cached value to dest. On a miss it runs valueFunc,
// with at most one valueFunc in flight, and caches its result for expire.
func (c *Singular[T]) MutexGetSet(dest *T, valueFunc func() (T, error), expire time.Duration) error {
	if err := c.Get(dest); err == nil {
		return nil
	}

	c.m.Lock()
	defer c.m.Unlock()

	if err := c.Get(dest); err == nil {
		return nil
	}

	value, err := valueFunc()
	if err != nil {
		log.Error().Err(err).Str("key", c.key).Msg("cache: failed to load value")
		return err
	}

	c.Set(value, expire)
	*dest = value
	return nil
}

func (c *Singular[T]) Delete() {
	c.c.Delete(c.key)
}
