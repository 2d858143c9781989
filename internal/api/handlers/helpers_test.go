package handlers

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/dagbok/internal/api/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newErrorApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(testCatalog)})
	app.Use(middleware.LocaleMiddleware())
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("database is on fire")
	})
	app.Get("/forbidden", func(c *fiber.Ctx) error {
		return fiber.ErrForbidden
	})
	app.Get("/too-large", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusRequestEntityTooLarge, "body too large")
	})
	return app
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		status  int
		key     string
		details string
	}{
		{name: "plain error", target: "/boom", status: fiber.StatusInternalServerError, key: "errors.internal", details: "database is on fire"},
		{name: "unmatched route", target: "/nowhere", status: fiber.StatusNotFound, key: "errors.notFound", details: "Cannot GET /nowhere"},
		{name: "forbidden", target: "/forbidden", status: fiber.StatusForbidden, key: "errors.forbidden", details: "Forbidden"},
		{name: "other client error", target: "/too-large", status: fiber.StatusRequestEntityTooLarge, key: "errors.badRequest", details: "body too large"},
	}

	app := newErrorApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, tt.target, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			body := decodeBody(t, resp)
			assert.Equal(t, testCatalog.T("en", "common", tt.key), body["error"])
			assert.Equal(t, tt.details, body["details"])
		})
	}
}

func TestErrorHandler_Localized(t *testing.T) {
	req := httptest.NewRequest(fiber.MethodGet, "/nowhere", nil)
	req.Header.Set(fiber.HeaderAcceptLanguage, "pt-BR")

	resp, err := newErrorApp().Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Não encontrado", decodeBody(t, resp)["error"])
}
