package rekuest

import (
	"context"

	ut "github.com/go-playground/universal-translator"
	"github.com/gofiber/fiber/v2"

	"github.com/labtrack/lims/internal/util/i18n"
)

const LocalsKey = "T"

type translatorKey struct{}

func TranslatorFromCtx(c *fiber.Ctx) ut.Translator {
	if tr, ok := c.Locals(LocalsKey).(ut.Translator); ok {
		return tr
	}
	return i18n.UT.GetFallback()
}

func WithTranslator(ctx context.Context, tr ut.Translator) context.Context {
	return context.WithValue(ctx, translatorKey{}, tr)
}

func TranslatorFromContext(ctx context.Context) ut.Translator {
	if tr, ok := ctx.Value(translatorKey{}).(ut.Translator); ok {
		return tr
	}
	return i18n.UT.GetFallback()
}
