package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"phonelister/internal/config"
	applog "phonelister/internal/log"
)

// Routes mounts every endpoint on app.
func Routes(app *fiber.App, d *Deps, cfg config.Config) {
	admin := RequireAdmin(cfg)

	// Public
	app.Get("/", d.PhoneHandler.List)
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	api := app.Group("/api")
	api.Get("/phones", d.PhoneHandler.List)
	api.Get("/phones/:id", d.PhoneHandler.Get)
	api.Get("/phones/:id/price/:platform", d.ListingHandler.Preview)

	availLimiter := limiter.New(limiter.Config{
		Max:        15,
		Expiration: 30 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|avail"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.availability.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	})
	api.Get("/v1/availability", availLimiter, d.InventoryHandler.Check)

	// Admin API
	api.Post("/phones", admin, d.PhoneHandler.Create)
	api.Put("/phones/:id", admin, d.PhoneHandler.Update)
	api.Delete("/phones/:id", admin, d.PhoneHandler.Delete)
	api.Post("/bulk_upload", admin, d.ImportHandler.Upload)
	api.Get("/logs", admin, d.LogHandler.List)
	api.Get("/logs/export", admin, d.LogHandler.Export)
	api.Post("/update-prices", admin, d.AdminHandler.UpdatePrices)

	// Legacy form routes
	app.Post("/phone/add", admin, d.PhoneHandler.Create)
	app.Put("/phone/:id/edit", admin, d.PhoneHandler.Update)
	app.Delete("/phone/:id/delete", admin, d.PhoneHandler.Delete)
	app.Post("/bulk_upload", admin, d.ImportHandler.Upload)

	app.Post("/list/:id/:platform", admin, d.ListingHandler.List)

	app.Get("/admin", admin, d.AdminHandler.Dashboard)
	app.Get("/admin/logs", admin, d.LogHandler.Page)

	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Page not found")
	})
}
