package handlers

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "phonelister/internal/log"
	"phonelister/internal/services"
	"phonelister/internal/validate"
)

type InventoryHandler struct {
	Inv *services.InventoryService
}

// GET /api/v1/availability?phoneId=
func (h *InventoryHandler) Check(c *fiber.Ctx) error {
	raw := c.Query("phoneId")
	if raw == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing phoneId"})
	}
	phoneID, ok := validate.ID(raw)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "phoneId"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid phoneId"})
	}

	avail, err := h.Inv.CheckAvailability(phoneID)
	if errors.Is(err, sql.ErrNoRows) {
		return phoneNotFound(c)
	}
	if err != nil {
		applog.Error(c, "availability.fail", err, map[string]any{"phone_id": phoneID})
		return err
	}
	return c.JSON(avail)
}
