package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/dagbok/internal/i18n"
)

type I18nHandler struct {
	catalog *i18n.Catalog
}

func NewI18nHandler(catalog *i18n.Catalog) *I18nHandler {
	return &I18nHandler{catalog: catalog}
}

// GetNamespace serves one locale namespace, e.g. GET /api/i18n/pt/blog.
func (h *I18nHandler) GetNamespace(c *fiber.Ctx) error {
	msgs, ok := h.catalog.Namespace(c.Params("locale"), c.Params("namespace"))
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, h.catalog, "common", "errors.notFound")
	}

	c.Set(fiber.HeaderCacheControl, "public, max-age=300")
	return c.Status(fiber.StatusOK).JSON(msgs)
}
