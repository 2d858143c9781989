package handlers

import (
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	config "github.com/maheshrc27/dagbok/configs"
	"github.com/maheshrc27/dagbok/internal/api/middleware"
	"github.com/maheshrc27/dagbok/internal/i18n"
	"github.com/maheshrc27/dagbok/internal/service"
	"github.com/maheshrc27/dagbok/internal/transfer"
	"github.com/maheshrc27/dagbok/pkg/utils"
)

const (
	stateCookieName = "dagbok.oauth-state"
	stateTTL        = 10 * time.Minute
)

// Error codes understood by the login page.
const (
	authErrorSignin        = "OAuthSignin"
	authErrorCallback      = "OAuthCallback"
	authErrorAccessDenied  = "AccessDenied"
	authErrorConfiguration = "Configuration"
)

type AuthHandler struct {
	s        service.AuthService
	sessions service.SessionService
	cfg      config.Config
	catalog  *i18n.Catalog
}

func NewAuthHandler(cfg config.Config, service service.AuthService, sessions service.SessionService, catalog *i18n.Catalog) *AuthHandler {
	return &AuthHandler{s: service, sessions: sessions, cfg: cfg, catalog: catalog}
}

func (h *AuthHandler) secureCookies() bool {
	return strings.HasPrefix(h.cfg.BaseURL, "https://")
}

func (h *AuthHandler) loginError(c *fiber.Ctx, code string) error {
	return c.Redirect(h.cfg.FrontendURL+"/login?error="+url.QueryEscape(code), fiber.StatusFound)
}

func (h *AuthHandler) Providers(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.s.Providers())
}

func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	state, err := utils.RandomToken(24)
	if err != nil {
		return internalError(c, h.catalog, err)
	}

	authURL, err := h.s.AuthCodeURL(c.Params("provider"), state)
	if errors.Is(err, service.ErrUnknownProvider) {
		return errorJSON(c, fiber.StatusNotFound, h.catalog, "auth", "errors.unknownProvider")
	}
	if err != nil {
		return internalError(c, h.catalog, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.secureCookies(),
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(stateTTL),
	})

	return c.Redirect(authURL, fiber.StatusTemporaryRedirect)
}

func (h *AuthHandler) Callback(c *fiber.Ctx) error {
	provider := c.Params("provider")
	expected := c.Cookies(stateCookieName)
	c.ClearCookie(stateCookieName)

	if reason := c.Query("error"); reason != "" {
		slog.Info("provider denied sign-in", "provider", provider, "reason", reason)
		return h.loginError(c, authErrorAccessDenied)
	}

	if expected == "" || expected != c.Query("state") {
		slog.Info("oauth state mismatch", "provider", provider)
		return h.loginError(c, authErrorSignin)
	}

	token, err := h.s.SignIn(c.Context(), provider, c.Query("code"))
	if errors.Is(err, service.ErrUnknownProvider) {
		return h.loginError(c, authErrorConfiguration)
	}
	if errors.Is(err, service.ErrUnverifiedEmail) {
		return h.loginError(c, authErrorAccessDenied)
	}
	if err != nil {
		slog.Error("sign-in failed", "provider", provider, "error", err)
		return h.loginError(c, authErrorCallback)
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.CookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.secureCookies(),
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(h.sessions.TTL()),
	})

	return c.Redirect(h.cfg.FrontendURL+h.cfg.LoginRedirectPath, fiber.StatusTemporaryRedirect)
}

func (h *AuthHandler) SignOut(c *fiber.Ctx) error {
	if token := c.Cookies(h.cfg.CookieName); token != "" {
		if err := h.sessions.Destroy(c.Context(), token); err != nil {
			return internalError(c, h.catalog, err)
		}
	}
	middleware.ClearSessionCookie(c, h.cfg.CookieName)

	if c.Method() == fiber.MethodGet {
		return c.Redirect(h.cfg.FrontendURL+"/", fiber.StatusFound)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"url": "/"})
}

// Session reports the current session, or {} for anonymous visitors.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	s := GetSession(c)
	if s == nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{})
	}

	return c.Status(fiber.StatusOK).JSON(transfer.SessionResponse{
		User: transfer.SessionUser{
			Name:  s.Name,
			Email: s.Email,
			Image: s.Image,
		},
		Provider: s.Provider,
		Expires:  s.ExpiresAt.UTC().Format(time.RFC3339),
	})
}
