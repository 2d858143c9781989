package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

var unguardedPrefixes = []string{"/api", "/backend", "/django", "/_next/static", "/_next/image", "/healthz", "/metrics"}

func unguarded(path, basePath string) bool {
	if basePath != "" {
		if path != basePath && !strings.HasPrefix(path, basePath+"/") {
			return true
		}
		path = strings.TrimPrefix(path, basePath)
	}
	if path == "/favicon.ico" {
		return true
	}
	for _, prefix := range unguardedPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

// PageGuard sends signed-out visitors to the login page and signed-in ones
// away from it. It expects OptionalAuth to have run.
func PageGuard(basePath string) fiber.Handler {
	login := basePath + "/login"

	return func(c *fiber.Ctx) error {
		path := c.Path()
		if unguarded(path, basePath) {
			return c.Next()
		}

		signedIn := c.Locals(LocalSession) != nil
		onLogin := strings.HasSuffix(path, login)

		if !signedIn && !onLogin {
			return c.Redirect(login, fiber.StatusFound)
		}
		if signedIn && onLogin {
			return c.Redirect(basePath+"/", fiber.StatusFound)
		}
		return c.Next()
	}
}
