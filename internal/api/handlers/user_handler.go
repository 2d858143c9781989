package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/dagbok/internal/i18n"
	"github.com/maheshrc27/dagbok/internal/service"
)

type UserHandler struct {
	s       service.UserService
	catalog *i18n.Catalog
}

func NewUserHandler(service service.UserService, catalog *i18n.Catalog) *UserHandler {
	return &UserHandler{s: service, catalog: catalog}
}

func (h *UserHandler) GetUserInfo(c *fiber.Ctx) error {
	userID := GetUserID(c)

	user, err := h.s.GetUserInfo(c.Context(), userID)
	if err != nil {
		return serviceError(c, h.catalog, "common", commonErrors, err)
	}

	return c.Status(fiber.StatusOK).JSON(user)
}
