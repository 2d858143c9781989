package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/proxy"
	config "github.com/maheshrc27/dagbok/configs"
	"github.com/maheshrc27/dagbok/internal/i18n"
	"github.com/maheshrc27/dagbok/internal/service"
)

const completeRegistrationPath = "/api/users/complete-registration/"

// ProxyHandler forwards requests to the backend API and the page server.
type ProxyHandler struct {
	sessions service.SessionService
	cfg      config.Config
	catalog  *i18n.Catalog
}

func NewProxyHandler(cfg config.Config, sessions service.SessionService, catalog *i18n.Catalog) *ProxyHandler {
	return &ProxyHandler{sessions: sessions, cfg: cfg, catalog: catalog}
}

func withQuery(c *fiber.Ctx, target string) string {
	if q := c.Request().URI().QueryString(); len(q) > 0 {
		return target + "?" + string(q)
	}
	return target
}

// forward relays the request to target. Browser cookies never leave this
// process; the provider token of the current session travels as a bearer
// token instead.
func (h *ProxyHandler) forward(c *fiber.Ctx, target string) error {
	c.Request().Header.Del(fiber.HeaderCookie)

	if s := GetSession(c); s != nil {
		token, err := h.sessions.AccessToken(s)
		if err != nil {
			slog.Error("failed to open session access token", "user_id", s.UserID, "error", err)
		} else if token != "" {
			c.Request().Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
		}
	}

	if err := proxy.Do(c, target); err != nil {
		slog.Error("proxy request failed", "target", target, "error", err)
		return errorJSON(c, fiber.StatusBadGateway, h.catalog, "common", "errors.backendUnavailable")
	}
	c.Response().Header.Del(fiber.HeaderServer)
	return nil
}

// Backend maps /backend/* onto the backend's /api/*.
func (h *ProxyHandler) Backend(c *fiber.Ctx) error {
	return h.forward(c, withQuery(c, h.cfg.BackendAPIURL+"/api/"+c.Params("*")))
}

// Django maps /django/* onto the backend root.
func (h *ProxyHandler) Django(c *fiber.Ctx) error {
	return h.forward(c, withQuery(c, h.cfg.BackendAPIURL+"/"+c.Params("*")))
}

// CompleteRegistration relays the registration form. The backend's status
// and body are passed through unchanged.
func (h *ProxyHandler) CompleteRegistration(c *fiber.Ctx) error {
	c.Request().Header.SetMethod(fiber.MethodPost)
	return h.forward(c, h.cfg.BackendAPIURL+completeRegistrationPath)
}

// Pages serves everything else from the page server when one is configured.
func (h *ProxyHandler) Pages(c *fiber.Ctx) error {
	if h.cfg.PagesUpstream == "" {
		return errorJSON(c, fiber.StatusNotFound, h.catalog, "common", "errors.notFound")
	}

	if err := proxy.Do(c, h.cfg.PagesUpstream+c.OriginalURL()); err != nil {
		slog.Error("page request failed", "path", c.Path(), "error", err)
		return errorJSON(c, fiber.StatusBadGateway, h.catalog, "common", "errors.backendUnavailable")
	}
	c.Response().Header.Del(fiber.HeaderServer)
	return nil
}
