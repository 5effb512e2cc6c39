package web

import (
	"time"

	"github.com/dchest/uniuri"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"go.uber.org/fx"

	"github.com/labtrack/lims/internal/app/appconfig"
	"github.com/labtrack/lims/internal/pkg/cachectrl"
	"github.com/labtrack/lims/internal/pkg/flog"
	"github.com/labtrack/lims/internal/server/svr"
	"github.com/labtrack/lims/internal/service"
)

const (
	csrfCookieName  = "csrftoken"
	csrfTokenLength = 64
	csrfLocalsKey   = "csrfToken"
)

type Session struct {
	fx.In

	AuthService *service.Auth
	Store       fiber.Storage
	Config      *appconfig.Config
}

func RegisterSession(root *svr.Root, c Session) {
	protect := csrf.New(csrf.Config{
		KeyLookup:      "header:" + csrf.HeaderName,
		CookieName:     csrfCookieName,
		CookiePath:     "/",
		CookieSameSite: fiber.CookieSameSiteLaxMode,
		CookieSecure:   c.Config.JWTCookieSecure,
		Expiration:     time.Hour * 24 * 7,
		Storage:        c.Store,
		ContextKey:     csrfLocalsKey,
		KeyGenerator: func() string {
			return uniuri.NewLen(csrfTokenLength)
		},
	})

	root.Get("/csrf/", protect, c.CSRF)
	root.Get("/logout/", c.Logout)
}

// CSRF hands the anti-forgery token to scripts; the same value is set as a cookie.
func (c *Session) CSRF(ctx *fiber.Ctx) error {
	cachectrl.OptOut(ctx)
	token, _ := ctx.Locals(csrfLocalsKey).(string)
	return ctx.JSON(fiber.Map{
		"csrfToken": token,
	})
}

// Logout revokes the session token of the cookie, clears it and redirects.
func (c *Session) Logout(ctx *fiber.Ctx) error {
	cachectrl.OptOut(ctx)
	if token := ctx.Cookies(c.Config.JWTCookieName); token != "" {
		if err := c.AuthService.Revoke(ctx.UserContext(), token); err != nil {
			return err
		}
		flog.InfoFrom(ctx).
			Str("evt.name", "session.logout").
			Msg("session token revoked")
	}
	clearTokenCookie(ctx, c.Config)
	return ctx.Redirect(c.Config.LogoutRedirectURL, fiber.StatusFound)
}
