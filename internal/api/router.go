package api

import (
	"github.com/gofiber/fiber/v2"
	config "github.com/maheshrc27/dagbok/configs"
	"github.com/maheshrc27/dagbok/internal/api/handlers"
	"github.com/maheshrc27/dagbok/internal/api/middleware"
)

type Handlers struct {
	Auth          *handlers.AuthHandler
	User          *handlers.UserHandler
	Post          *handlers.PostHandler
	Transcription *handlers.TranscriptionHandler
	I18n          *handlers.I18nHandler
	Proxy         *handlers.ProxyHandler
}

// SetupRoutes mounts every route on app. The page proxy is registered last
// and catches whatever the API does not serve.
func SetupRoutes(app *fiber.App, cfg config.Config, h Handlers, auth *middleware.AuthMiddleware, metrics *middleware.Metrics) {
	required := auth.AuthMiddleware()
	optional := auth.OptionalAuth()

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", metrics.Handler())

	api := app.Group("/api")

	api.Get("/auth/providers", h.Auth.Providers)
	api.Get("/auth/signin/:provider", h.Auth.SignIn)
	api.Get("/auth/callback/:provider", h.Auth.Callback)
	api.Post("/auth/signout", h.Auth.SignOut)
	api.Get("/auth/signout", h.Auth.SignOut)
	api.Get("/auth/session", optional, h.Auth.Session)
	api.Post("/auth/complete-registration", required, h.Proxy.CompleteRegistration)

	api.Get("/i18n/:locale/:namespace", h.I18n.GetNamespace)

	api.Get("/user/info", required, h.User.GetUserInfo)

	api.Get("/posts", optional, h.Post.ListPosts)
	api.Post("/posts", required, h.Post.CreatePost)
	api.Post("/posts/images", required, h.Post.UploadImage)
	api.Get("/posts/slug/:slug", optional, h.Post.GetPostBySlug)
	api.Get("/posts/:id", optional, h.Post.GetPost)
	api.Put("/posts/:id", required, h.Post.UpdatePost)
	api.Delete("/posts/:id", required, h.Post.RemovePost)

	transcriptions := api.Group("/transcriptions", required)
	transcriptions.Get("/", h.Transcription.ListTranscriptions)
	transcriptions.Post("/", h.Transcription.CreateTranscription)
	transcriptions.Get("/:id", h.Transcription.GetTranscription)
	transcriptions.Delete("/:id", h.Transcription.RemoveTranscription)

	app.All("/backend/*", optional, h.Proxy.Backend)
	app.All("/django/*", optional, h.Proxy.Django)

	app.Use(optional, middleware.PageGuard(cfg.BasePath), h.Proxy.Pages)
}
