package httpserver

import (
	"strconv"

	"github.com/gofiber/contrib/fibersentry"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/labtrack/lims/internal/pkg/flog"
	"github.com/labtrack/lims/internal/pkg/limserr"
)

func handleCustomError(c *fiber.Ctx, e *limserr.LIMSError) error {
	flog.WarnFrom(c).
		Err(e).
		Str("evt.name", "http.error").
		Msg(e.Message)

	body := fiber.Map{
		"code":    e.ErrorCode,
		"message": e.Message,
	}
	if e.Extras != nil {
		for k, v := range *e.Extras {
			body[k] = v
		}
	}

	return c.Status(e.StatusCode).JSON(body)
}

func ErrorHandler(c *fiber.Ctx, err error) error {
	if e, ok := limserr.From(err); ok {
		return handleCustomError(c, e)
	}

	re := *limserr.ErrInternalError
	if e, ok := err.(*fiber.Error); ok {
		re.StatusCode = e.Code
		re.ErrorCode = "UNKNOWN_ERROR"
		re.Message = e.Message
		if e.Code < fiber.StatusInternalServerError {
			return handleCustomError(c, &re)
		}
	}

	log.Error().
		Stack().
		Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", re.StatusCode).
		Msg("internal server error")

	if hub := fibersentry.GetHubFromContext(c); hub != nil {
		hub.Scope().SetTag("status", strconv.Itoa(re.StatusCode))
		hub.CaptureException(err)
	}

	return handleCustomError(c, &re)
}
