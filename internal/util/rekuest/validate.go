package rekuest

import (
	"context"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	jaTranslations "github.com/go-playground/validator/v10/translations/ja"
	zhTranslations "github.com/go-playground/validator/v10/translations/zh"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/labtrack/lims/internal/pkg/limserr"
	"github.com/labtrack/lims/internal/util"
	"github.com/labtrack/lims/internal/util/i18n"
)

var Validate = util.NewValidator()

type registerFunc func(v *validator.Validate, trans ut.Translator) error

func init() {
	locales := map[string]registerFunc{
		"en": enTranslations.RegisterDefaultTranslations,
		"zh": zhTranslations.RegisterDefaultTranslations,
		"ja": jaTranslations.RegisterDefaultTranslations,
	}

	for locale, register := range locales {
		tr, _ := i18n.UT.GetTranslator(locale)
		if err := register(Validate, tr); err != nil {
			log.Warn().Err(err).Str("locale", locale).Msg("could not register translation")
		}
	}

	entr, _ := i18n.UT.GetTranslator("en")
	custom := map[string]string{
		"pid":        "{0} must be 1 to 10 letters, digits or inner dashes",
		"labelstyle": "{0} must be one of numeric, alphabetic",
	}
	for tag, text := range custom {
		tag, text := tag, text
		err := Validate.RegisterTranslation(tag, entr, func(t ut.Translator) error {
			return t.Add(tag, text, true)
		}, func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field())
			return msg
		})
		if err != nil {
			log.Warn().Err(err).Str("tag", tag).Msg("could not register translation for custom validation")
		}
	}
}

type ErrorResponse struct {
	Field     string `json:"field,omitempty"`
	Violation string `json:"violation"`
	Message   string `json:"message"`
}

func translate(tr ut.Translator, ve validator.ValidationErrors) []*ErrorResponse {
	out := make([]*ErrorResponse, 0, len(ve))
	for _, fe := range ve {
		out = append(out, &ErrorResponse{
			Field:     fe.Namespace(),
			Violation: fe.Tag(),
			Message:   strings.TrimSpace(fe.Translate(tr)),
		})
	}
	return out
}

// Struct validates s and returns limserr.ErrInvalidReq carrying the translated
// violations when it fails.
func Struct(tr ut.Translator, s any) error {
	err := Validate.Struct(s)
	if err == nil {
		return nil
	}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return limserr.ErrInvalidReq.Msg("invalid request: %s", err)
	}
	return limserr.NewInvalidViolations(translate(tr, ve))
}

// ValidBody parses the request body into dest, which must be a pointer, and validates it.
func ValidBody(c *fiber.Ctx, dest any) error {
	if err := c.BodyParser(dest); err != nil {
		return limserr.ErrInvalidReq.Msg("invalid request: %s", err)
	}
	return Struct(TranslatorFromCtx(c), dest)
}

func ValidStruct(c *fiber.Ctx, s any) error {
	return Struct(TranslatorFromCtx(c), s)
}

// ValidCtx validates s with the translator carried by ctx, if any.
func ValidCtx(ctx context.Context, s any) error {
	return Struct(TranslatorFromContext(ctx), s)
}
