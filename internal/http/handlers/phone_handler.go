package handlers

import (
	"database/sql"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	applog "phonelister/internal/log"
	"phonelister/internal/services"
	"phonelister/internal/validate"
)

type PhoneHandler struct {
	Phones *services.PhoneService
	Loc    *time.Location
}

// GET / and GET /api/phones
func (h *PhoneHandler) List(c *fiber.Ctx) error {
	phones, err := h.Phones.Search(c.Query("q"), c.Query("condition"))
	if err != nil {
		applog.Error(c, "phones.list.fail", err, nil)
		return err
	}
	return c.JSON(phoneViews(phones, h.Loc))
}

// GET /api/phones/:id
func (h *PhoneHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return phoneNotFound(c)
	}
	p, err := h.Phones.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return phoneNotFound(c)
	}
	if err != nil {
		applog.Error(c, "phones.get.fail", err, map[string]any{"phone_id": id})
		return err
	}
	return c.JSON(phoneView(p, h.Loc))
}

// POST /api/phones
func (h *PhoneHandler) Create(c *fiber.Ctx) error {
	var in validate.PhoneInput
	if err := c.BodyParser(&in); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"body": "unparsable"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	p, err := h.Phones.Create(in)
	if err != nil {
		return h.writeError(c, "phones.create.fail", "", err)
	}
	applog.Audit(c, "phones.create", map[string]any{"phone_id": p.ID, "brand": p.Brand, "model": p.ModelName})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "phone": phoneView(p, h.Loc)})
}

// PUT /api/phones/:id
func (h *PhoneHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return phoneNotFound(c)
	}
	var patch services.PhonePatch
	if err := c.BodyParser(&patch); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"body": "unparsable", "phone_id": id})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	p, err := h.Phones.Update(id, patch)
	if err != nil {
		return h.writeError(c, "phones.update.fail", id, err)
	}
	applog.Audit(c, "phones.update", map[string]any{"phone_id": id})
	return c.JSON(fiber.Map{"success": true, "phone": phoneView(p, h.Loc)})
}

// DELETE /api/phones/:id
func (h *PhoneHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return phoneNotFound(c)
	}
	if err := h.Phones.Delete(id); err != nil {
		return h.writeError(c, "phones.delete.fail", id, err)
	}
	applog.Audit(c, "phones.delete", map[string]any{"phone_id": id})
	return c.JSON(fiber.Map{"success": true, "message": "Phone deleted"})
}

func (h *PhoneHandler) writeError(c *fiber.Ctx, action, id string, err error) error {
	var verr *validate.Error
	switch {
	case errors.As(err, &verr):
		applog.Security(c, "validation.fail", map[string]any{"fields": verr.Fields, "phone_id": id})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verr.Error()})
	case errors.Is(err, sql.ErrNoRows):
		return phoneNotFound(c)
	}
	applog.Error(c, action, err, map[string]any{"phone_id": id})
	return err
}

func phoneNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Phone not found"})
}
