package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/labtrack/lims/internal/pkg/flog"
)

const RequestIDHeader = "X-Request-ID"

func Logger(app *fiber.App) {
	Chained(
		app,
		flog.NewHandlerMiddleware(log.With().Logger()),
		flog.RequestIDHandler("request_id", RequestIDHeader),
		flog.RemoteAddrHandler("ip"),
		flog.MethodHandler("method"),
		flog.URLHandler("url"),
		flog.UserAgentHandler("user_agent"),
		requestLogger(),
	)
}

func requestLogger() fiber.Handler {
	return flog.AccessHandler(func(c *fiber.Ctx, err error, duration time.Duration) {
		status := c.Response().StatusCode()
		var evt *zerolog.Event
		switch {
		case err != nil || status >= fiber.StatusInternalServerError:
			evt = flog.WarnFrom(c)
		default:
			evt = flog.InfoFrom(c)
		}
		evt.
			Str("evt.name", "http.request").
			Int("status", status).
			Int("size", len(c.Response().Body())).
			Dur("duration", duration).
			Msg("handled request")
	})
}
