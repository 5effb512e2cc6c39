package middlewares

import (
	"net/http/httptest"
	"testing"

	ut "github.com/go-playground/universal-translator"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labtrack/lims/internal/pkg/limserr"
	"github.com/labtrack/lims/internal/util/rekuest"
)

func errorStatus(c *fiber.Ctx, err error) error {
	if e, ok := limserr.From(err); ok {
		return c.SendStatus(e.StatusCode)
	}
	return fiber.DefaultErrorHandler(c, err)
}

func TestAdminKey(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: errorStatus})
	app.Get("/open", AdminKey("secret"), func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/locked", AdminKey(""), func(c *fiber.Ctx) error { return c.SendString("ok") })

	cases := []struct {
		path   string
		header string
		status int
	}{
		{"/open", "Bearer secret", fiber.StatusOK},
		{"/open", "Bearer wrong", fiber.StatusForbidden},
		{"/open", "secret", fiber.StatusForbidden},
		{"/open", "", fiber.StatusForbidden},
		{"/locked", "Bearer ", fiber.StatusForbidden},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(fiber.MethodGet, tc.path, nil)
		if tc.header != "" {
			req.Header.Set(fiber.HeaderAuthorization, tc.header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, tc.status, resp.StatusCode, "%s %q", tc.path, tc.header)
	}
}

func TestInjectI18n(t *testing.T) {
	app := fiber.New()
	app.Use(InjectI18n())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(rekuest.LocalsKey).(ut.Translator).Locale())
	})

	for header, want := range map[string]string{
		"":               "en",
		"ja-JP,ja;q=0.9": "ja",
		"zh-CN,zh;q=0.9": "zh",
		"fr-FR":          "en",
	} {
		req := httptest.NewRequest(fiber.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set(fiber.HeaderAcceptLanguage, header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		buf := make([]byte, 8)
		n, _ := resp.Body.Read(buf)
		assert.Equal(t, want, string(buf[:n]), header)
	}
}
