package handlers

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/dagbok/internal/api/middleware"
	"github.com/maheshrc27/dagbok/internal/i18n"
	"github.com/maheshrc27/dagbok/internal/models"
	"github.com/maheshrc27/dagbok/internal/service"
)

func GetUserID(c *fiber.Ctx) int64 {
	userID, _ := c.Locals(middleware.LocalUserID).(int64)
	return userID
}

func GetEmail(c *fiber.Ctx) string {
	email, _ := c.Locals(middleware.LocalEmail).(string)
	return email
}

func GetName(c *fiber.Ctx) string {
	name, _ := c.Locals(middleware.LocalName).(string)
	return name
}

func GetSession(c *fiber.Ctx) *models.Session {
	s, _ := c.Locals(middleware.LocalSession).(*models.Session)
	return s
}

func localeOf(c *fiber.Ctx) string {
	return middleware.Locale(c)
}

func paramID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func errorJSON(c *fiber.Ctx, status int, catalog *i18n.Catalog, ns, key string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": catalog.T(middleware.Locale(c), ns, key),
	})
}

func internalError(c *fiber.Ctx, catalog *i18n.Catalog, err error) error {
	slog.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   catalog.T(middleware.Locale(c), "common", "errors.internal"),
		"details": err.Error(),
	})
}

// ErrorHandler answers errors no handler turned into a response, such as
// unmatched routes or oversized bodies, in the same localized shape the
// handlers use.
func ErrorHandler(catalog *i18n.Catalog) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if !errors.As(err, &fe) || fe.Code >= fiber.StatusInternalServerError {
			return internalError(c, catalog, err)
		}

		key := "errors.badRequest"
		switch fe.Code {
		case fiber.StatusNotFound:
			key = "errors.notFound"
		case fiber.StatusUnauthorized:
			key = "errors.unauthorized"
		case fiber.StatusForbidden:
			key = "errors.forbidden"
		}
		return c.Status(fe.Code).JSON(fiber.Map{
			"error":   catalog.T(middleware.Locale(c), "common", key),
			"details": fe.Message,
		})
	}
}

// errorKeys names the catalog messages used for ErrNotFound and ErrForbidden.
type errorKeys struct {
	notFound  string
	forbidden string
}

var (
	commonErrors        = errorKeys{notFound: "errors.notFound", forbidden: "errors.forbidden"}
	postErrors          = errorKeys{notFound: "errors.postNotFound", forbidden: "errors.notAuthor"}
	transcriptionErrors = errorKeys{notFound: "errors.notFound", forbidden: "errors.notOwner"}
)

// serviceError maps service errors onto responses, translating messages
// from namespace ns.
func serviceError(c *fiber.Ctx, catalog *i18n.Catalog, ns string, keys errorKeys, err error) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		body := fiber.Map{"error": catalog.T(middleware.Locale(c), ns, verr.Key)}
		if len(verr.Fields) > 0 {
			body["fields"] = verr.Fields
		}
		return c.Status(fiber.StatusBadRequest).JSON(body)
	case errors.Is(err, service.ErrNotFound):
		return errorJSON(c, fiber.StatusNotFound, catalog, ns, keys.notFound)
	case errors.Is(err, service.ErrForbidden):
		return errorJSON(c, fiber.StatusForbidden, catalog, ns, keys.forbidden)
	case errors.Is(err, service.ErrUnauthorized):
		return errorJSON(c, fiber.StatusUnauthorized, catalog, "auth", "errors.unauthorized")
	default:
		return internalError(c, catalog, err)
	}
}
