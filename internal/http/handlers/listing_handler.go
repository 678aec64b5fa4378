package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "phonelister/internal/log"
	"phonelister/internal/locks"
	"phonelister/internal/pricing"
	"phonelister/internal/services"
	"phonelister/internal/validate"
)

type ListingHandler struct {
	Listing *services.ListingService
}

// POST /list/:id/:platform
func (h *ListingHandler) List(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return phoneNotFound(c)
	}
	platform := c.Params("platform")
	override, ok := overridePrice(c)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "override_price", "phone_id": id})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid override price"})
	}

	res, err := h.Listing.List(c.UserContext(), id, platform, override)
	switch {
	case err == nil:
	case errors.Is(err, sql.ErrNoRows):
		return phoneNotFound(c)
	case errors.Is(err, pricing.ErrMalformedOverride):
		applog.Security(c, "validation.fail", map[string]any{"field": "override_price", "phone_id": id})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid override price"})
	case errors.Is(err, pricing.ErrUnknownPlatform), errors.Is(err, pricing.ErrInvalidInput):
		applog.Info(c, "listing.unpriceable", map[string]any{"phone_id": id, "platform": platform, "reason": err.Error()})
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, locks.ErrNotObtained):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Listing already in progress, retry shortly"})
	default:
		applog.Error(c, "listing.fail", err, map[string]any{"phone_id": id, "platform": platform})
		return err
	}

	d := res.Decision
	applog.Audit(c, "listing.attempt", map[string]any{
		"phone_id": id, "platform": platform, "success": d.Success, "override": d.Override, "log_id": res.Log.ID,
	})
	body := fiber.Map{"success": d.Success, "message": d.Message}
	if res.Log.AttemptedPrice.Valid {
		body["price"] = d.FinalPrice
		body["fee"] = d.Fee
		body["override"] = d.Override
	}
	status := fiber.StatusOK
	if !d.Success {
		status = fiber.StatusBadRequest
	}
	return c.Status(status).JSON(body)
}

// GET /api/phones/:id/price/:platform
func (h *ListingHandler) Preview(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return phoneNotFound(c)
	}
	q, err := h.Listing.Preview(id, c.Params("platform"))
	switch {
	case err == nil:
		return c.JSON(q)
	case errors.Is(err, sql.ErrNoRows):
		return phoneNotFound(c)
	case errors.Is(err, pricing.ErrUnknownPlatform), errors.Is(err, pricing.ErrInvalidInput):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	applog.Error(c, "listing.preview.fail", err, map[string]any{"phone_id": id})
	return err
}

// overridePrice reads override_price from a JSON or form body as raw text.
// A JSON value that is neither a number nor a string is reported as not ok.
func overridePrice(c *fiber.Ctx) (string, bool) {
	if !strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEApplicationJSON) {
		return c.FormValue("override_price"), true
	}
	if len(c.Body()) == 0 {
		return "", true
	}
	var body struct {
		Override json.RawMessage `json:"override_price"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return "", false
	}
	raw := strings.TrimSpace(string(body.Override))
	if raw == "" || raw == "null" {
		return "", true
	}
	var s string
	if err := json.Unmarshal(body.Override, &s); err == nil {
		return s, true
	}
	var f float64
	if err := json.Unmarshal(body.Override, &f); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64), true
	}
	return "", false
}
