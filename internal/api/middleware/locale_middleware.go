package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/dagbok/internal/i18n"
)

// LocaleMiddleware resolves the request locale from the NEXT_LOCALE cookie or
// Accept-Language and keeps the cookie in sync with the result.
func LocaleMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		current := c.Cookies(i18n.CookieName)
		locale := i18n.Resolve(current, c.Get(fiber.HeaderAcceptLanguage))

		if current != locale {
			c.Cookie(&fiber.Cookie{
				Name:     i18n.CookieName,
				Value:    locale,
				Path:     "/",
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}

		c.Locals(LocalLocale, locale)
		return c.Next()
	}
}

// Locale returns the locale chosen by LocaleMiddleware, or the default.
func Locale(c *fiber.Ctx) string {
	if locale, ok := c.Locals(LocalLocale).(string); ok && locale != "" {
		return locale
	}
	return i18n.DefaultLocale
}
