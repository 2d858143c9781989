package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/dagbok/internal/i18n"
	"github.com/maheshrc27/dagbok/internal/service"
	"github.com/maheshrc27/dagbok/internal/transfer"
)

type PostHandler struct {
	s       service.PostService
	media   service.MediaService
	catalog *i18n.Catalog
}

func NewPostHandler(service service.PostService, media service.MediaService, catalog *i18n.Catalog) *PostHandler {
	return &PostHandler{s: service, media: media, catalog: catalog}
}

func parseBool(raw string) (*bool, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return nil, true
	case "true", "1":
		v := true
		return &v, true
	case "false", "0":
		v := false
		return &v, true
	}
	return nil, false
}

func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	published, ok := parseBool(c.Query("published"))
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, h.catalog, "blog", "errors.invalidPublished")
	}

	list, err := h.s.List(c.Context(), GetEmail(c), transfer.PostQuery{
		Category:  c.Query("category"),
		Search:    c.Query("search"),
		Tag:       c.Query("tag"),
		Published: published,
		Page:      c.QueryInt("page", 1),
		Limit:     c.QueryInt("limit", service.DefaultPageLimit),
	})
	if err != nil {
		return serviceError(c, h.catalog, "blog", postErrors, err)
	}

	return c.Status(fiber.StatusOK).JSON(list)
}

func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	var pc transfer.PostCreation
	if err := c.BodyParser(&pc); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, h.catalog, "common", "errors.badRequest")
	}

	post, err := h.s.Create(c.Context(), GetEmail(c), GetName(c), &pc)
	if err != nil {
		return serviceError(c, h.catalog, "blog", postErrors, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *PostHandler) GetPost(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, h.catalog, "blog", postErrors.notFound)
	}

	post, err := h.s.GetByID(c.Context(), id, GetEmail(c))
	if err != nil {
		return serviceError(c, h.catalog, "blog", postErrors, err)
	}

	return c.Status(fiber.StatusOK).JSON(post)
}

func (h *PostHandler) GetPostBySlug(c *fiber.Ctx) error {
	post, err := h.s.GetBySlug(c.Context(), c.Params("slug"), GetEmail(c))
	if err != nil {
		return serviceError(c, h.catalog, "blog", postErrors, err)
	}

	return c.Status(fiber.StatusOK).JSON(post)
}

func (h *PostHandler) UpdatePost(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, h.catalog, "blog", postErrors.notFound)
	}

	var pc transfer.PostCreation
	if err := c.BodyParser(&pc); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, h.catalog, "common", "errors.badRequest")
	}

	post, err := h.s.Update(c.Context(), id, GetEmail(c), &pc)
	if err != nil {
		return serviceError(c, h.catalog, "blog", postErrors, err)
	}

	return c.Status(fiber.StatusOK).JSON(post)
}

func (h *PostHandler) RemovePost(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, h.catalog, "blog", postErrors.notFound)
	}

	if err := h.s.Remove(c.Context(), id, GetEmail(c)); err != nil {
		return serviceError(c, h.catalog, "blog", postErrors, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": h.catalog.T(localeOf(c), "blog", "messages.postDeleted"),
	})
}

func (h *PostHandler) UploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, h.catalog, "blog", "errors.fileRequired")
	}

	url, err := h.media.UploadImage(c.Context(), file)
	switch {
	case errors.Is(err, service.ErrInvalidFile):
		return errorJSON(c, fiber.StatusBadRequest, h.catalog, "blog", "errors.invalidImage")
	case errors.Is(err, service.ErrFileTooLarge):
		return errorJSON(c, fiber.StatusRequestEntityTooLarge, h.catalog, "blog", "errors.imageTooLarge")
	case err != nil:
		return internalError(c, h.catalog, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
}
