package fiberstore

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/patrickmn/go-cache"
)

// Memory is an in-process fiber.Storage used when no redis is configured.
type Memory struct {
	c *cache.Cache
}

var _ fiber.Storage = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		c: cache.New(cache.NoExpiration, time.Minute),
	}
}

func (m *Memory) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	v, ok := m.c.Get(key)
	if !ok {
		return nil, nil
	}
	return v.([]byte), nil
}

func (m *Memory) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	if exp <= 0 {
		exp = cache.NoExpiration
	}
	// callers may reuse val
	buf := make([]byte, len(val))
	copy(buf, val)
	m.c.Set(key, buf, exp)
	return nil
}

func (m *Memory) Delete(key string) error {
	m.c.Delete(key)
	return nil
}

func (m *Memory) Reset() error {
	m.c.Flush()
	return nil
}

func (m *Memory) Close() error {
	return nil
}
