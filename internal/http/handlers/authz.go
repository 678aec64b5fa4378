package handlers

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"phonelister/internal/config"
	applog "phonelister/internal/log"
)

// RequireAdmin gates a route on the admin flag. With ADMIN_KEY_HASH set the
// X-ADMIN header must match that hash and the query flag is ignored.
func RequireAdmin(cfg config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if isAdmin(c, cfg.AdminKeyHash) {
			return c.Next()
		}
		applog.Security(c, "access.denied.admin", nil)
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Admin access required"})
	}
}

func isAdmin(c *fiber.Ctx, hash string) bool {
	key := c.Get("X-ADMIN")
	if hash != "" {
		return key != "" && bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil
	}
	return key == "1" || c.Query("admin") == "1"
}
