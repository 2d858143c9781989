package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/dagbok/internal/i18n"
	"github.com/maheshrc27/dagbok/internal/queue"
	"github.com/maheshrc27/dagbok/internal/service"
	"github.com/maheshrc27/dagbok/internal/transfer"
)

type TranscriptionHandler struct {
	s       service.TranscriptionService
	client  queue.Enqueuer
	catalog *i18n.Catalog
}

func NewTranscriptionHandler(service service.TranscriptionService, client queue.Enqueuer, catalog *i18n.Catalog) *TranscriptionHandler {
	return &TranscriptionHandler{s: service, client: client, catalog: catalog}
}

func (h *TranscriptionHandler) ListTranscriptions(c *fiber.Ctx) error {
	list, err := h.s.List(c.Context(), GetEmail(c), transfer.TranscriptionQuery{
		Search: c.Query("search"),
		Status: c.Query("status"),
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", service.DefaultPageLimit),
	})
	if err != nil {
		return serviceError(c, h.catalog, "transcriptions", transcriptionErrors, err)
	}

	return c.Status(fiber.StatusOK).JSON(list)
}

func (h *TranscriptionHandler) CreateTranscription(c *fiber.Ctx) error {
	var tc transfer.TranscriptionCreation
	if err := c.BodyParser(&tc); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, h.catalog, "common", "errors.badRequest")
	}

	t, err := h.s.Create(c.Context(), GetEmail(c), &tc)
	if err != nil {
		return serviceError(c, h.catalog, "transcriptions", transcriptionErrors, err)
	}

	// The pending sweep picks the record up if this fails.
	if err := queue.EnqueueTranscription(h.client, queue.ProcessTranscriptionPayload{TranscriptionID: t.ID}); err != nil {
		slog.Error("failed to enqueue transcription", "transcription_id", t.ID, "error", err)
	}

	return c.Status(fiber.StatusCreated).JSON(t)
}

func (h *TranscriptionHandler) GetTranscription(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, h.catalog, "transcriptions", transcriptionErrors.notFound)
	}

	t, err := h.s.Get(c.Context(), id, GetEmail(c))
	if err != nil {
		return serviceError(c, h.catalog, "transcriptions", transcriptionErrors, err)
	}

	return c.Status(fiber.StatusOK).JSON(t)
}

func (h *TranscriptionHandler) RemoveTranscription(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, h.catalog, "transcriptions", transcriptionErrors.notFound)
	}

	if err := h.s.Remove(c.Context(), id, GetEmail(c)); err != nil {
		return serviceError(c, h.catalog, "transcriptions", transcriptionErrors, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": h.catalog.T(localeOf(c), "transcriptions", "messages.deleted"),
	})
}
