package infra

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/labtrack/lims/internal/pkg/fiberstore"
)

// SessionStore backs CSRF tokens and revoked session tokens. It shares the
// redis client when one is configured.
func SessionStore(client *redis.Client) fiber.Storage {
	if client == nil {
		return fiberstore.NewMemory()
	}
	return fiberstore.NewRedis(client, "lims:session")
}
