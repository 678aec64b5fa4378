package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	applog "phonelister/internal/log"
	"phonelister/internal/services"
)

type AdminHandler struct {
	Phones  *services.PhoneService
	Listing *services.ListingService
	Loc     *time.Location
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	phones, err := h.Phones.ListNewest()
	if err != nil {
		applog.Error(c, "admin.phones.list.fail", err, nil)
		return err
	}
	return c.JSON(fiber.Map{"phones": phoneViews(phones, h.Loc), "count": len(phones)})
}

// POST /api/update-prices
func (h *AdminHandler) UpdatePrices(c *fiber.Ctx) error {
	n, err := h.Listing.RefreshPrices()
	if err != nil {
		applog.Error(c, "admin.prices.refresh.fail", err, nil)
		return err
	}
	applog.Audit(c, "admin.prices.refresh", map[string]any{"updated": n})
	return c.JSON(fiber.Map{
		"success":       true,
		"message":       fmt.Sprintf("Price calculations refreshed for %d phones", n),
		"updated_count": n,
	})
}
