package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/language"

	"github.com/labtrack/lims/internal/util/i18n"
	"github.com/labtrack/lims/internal/util/rekuest"
)

// InjectI18n picks the validation message translator from Accept-Language. It
// is kept in the fiber locals and in the user context for services.
func InjectI18n() fiber.Handler {
	return func(c *fiber.Ctx) error {
		trans := i18n.UT.GetFallback()

		tags, _, err := language.ParseAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage))
		if err == nil && len(tags) > 0 {
			langs := make([]string, 0, len(tags))
			for _, tag := range tags {
				base, _ := tag.Base()
				langs = append(langs, strings.ToLower(base.String()))
			}
			trans, _ = i18n.UT.FindTranslator(langs...)
		}

		c.Locals(rekuest.LocalsKey, trans)
		c.SetUserContext(rekuest.WithTranslator(c.UserContext(), trans))
		return c.Next()
	}
}
