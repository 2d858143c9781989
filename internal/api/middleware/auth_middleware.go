package middleware

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	config "github.com/maheshrc27/dagbok/configs"
	"github.com/maheshrc27/dagbok/internal/i18n"
	"github.com/maheshrc27/dagbok/internal/models"
	"github.com/maheshrc27/dagbok/internal/service"
)

// Request locals set by the middlewares in this package.
const (
	LocalUserID       = "user_id"
	LocalEmail        = "email"
	LocalName         = "name"
	LocalSession      = "session"
	LocalSessionToken = "session_token"
	LocalLocale       = "locale"
)

type AuthMiddleware struct {
	s       service.SessionService
	cfg     config.Config
	catalog *i18n.Catalog
}

func NewAuthMiddleware(cfg config.Config, sessions service.SessionService, catalog *i18n.Catalog) *AuthMiddleware {
	return &AuthMiddleware{s: sessions, cfg: cfg, catalog: catalog}
}

// ClearSessionCookie expires the session cookie in the browser.
func ClearSessionCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}

func setSessionLocals(c *fiber.Ctx, token string, s *models.Session) {
	c.Locals(LocalUserID, s.UserID)
	c.Locals(LocalEmail, s.Email)
	c.Locals(LocalName, s.Name)
	c.Locals(LocalSession, s)
	c.Locals(LocalSessionToken, token)
}

// AuthMiddleware rejects requests without a live session.
func (m *AuthMiddleware) AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(m.cfg.CookieName)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": m.catalog.T(Locale(c), "auth", "errors.unauthorized"),
			})
		}

		session, err := m.s.Resolve(c.Context(), tokenString)
		if err != nil {
			if errors.Is(err, service.ErrUnauthorized) {
				ClearSessionCookie(c, m.cfg.CookieName)
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": m.catalog.T(Locale(c), "auth", "errors.sessionExpired"),
				})
			}
			slog.Error("session lookup failed", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   m.catalog.T(Locale(c), "common", "errors.internal"),
				"details": err.Error(),
			})
		}

		setSessionLocals(c, tokenString, session)
		return c.Next()
	}
}

// OptionalAuth attaches the session when there is one and never rejects.
func (m *AuthMiddleware) OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(m.cfg.CookieName)
		if tokenString == "" {
			return c.Next()
		}

		session, err := m.s.Resolve(c.Context(), tokenString)
		switch {
		case errors.Is(err, service.ErrUnauthorized):
			ClearSessionCookie(c, m.cfg.CookieName)
		case err != nil:
			slog.Error("session lookup failed", "error", err)
		default:
			setSessionLocals(c, tokenString, session)
		}
		return c.Next()
	}
}
