package web

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/labtrack/lims/internal/app/appconfig"
	"github.com/labtrack/lims/internal/model/types"
)

// tokenFrom reads the session token from the Authorization header, accepting
// the JWT and Bearer schemes, and falls back to the session cookie.
func tokenFrom(ctx *fiber.Ctx, cookieName string) string {
	if auth := ctx.Get(fiber.HeaderAuthorization); auth != "" {
		scheme, token, ok := strings.Cut(auth, " ")
		if ok && (strings.EqualFold(scheme, "JWT") || strings.EqualFold(scheme, "Bearer")) {
			return strings.TrimSpace(token)
		}
	}
	return ctx.Cookies(cookieName)
}

func setTokenCookie(ctx *fiber.Ctx, conf *appconfig.Config, token *types.IssuedToken) {
	ctx.Cookie(&fiber.Cookie{
		Name:     conf.JWTCookieName,
		Value:    token.Token,
		Path:     "/",
		Expires:  token.Payload.Exp,
		HTTPOnly: true,
		Secure:   conf.JWTCookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func clearTokenCookie(ctx *fiber.Ctx, conf *appconfig.Config) {
	ctx.Cookie(&fiber.Cookie{
		Name:     conf.JWTCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   conf.JWTCookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
