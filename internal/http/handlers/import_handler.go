package handlers

import (
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "phonelister/internal/log"
	"phonelister/internal/services"
)

type ImportHandler struct {
	Import *services.ImportService
}

// POST /bulk_upload and /api/bulk_upload
func (h *ImportHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil || fh.Filename == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No file provided"})
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".csv") {
		applog.Security(c, "validation.fail", map[string]any{"field": "file", "name": fh.Filename})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Please upload a CSV file"})
	}
	f, err := fh.Open()
	if err != nil {
		applog.Error(c, "import.open.fail", err, nil)
		return err
	}
	defer f.Close()

	res, err := h.Import.Import(f)
	if err != nil {
		applog.Error(c, "import.fail", err, map[string]any{"file": fh.Filename})
		return err
	}

	applog.Audit(c, "import.csv", map[string]any{
		"file": fh.Filename, "created": res.Created, "errors": len(res.Errors),
	})
	status := fiber.StatusOK
	if len(res.Errors) > 0 {
		status = fiber.StatusBadRequest
	}
	return c.Status(status).JSON(fiber.Map{
		"success":       len(res.Errors) == 0,
		"message":       res.Message(),
		"created_count": res.Created,
		"error_count":   len(res.Errors),
		"errors":        res.ReportedErrors(),
	})
}
