package handlers

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	applog "phonelister/internal/log"
	"phonelister/internal/services"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type LogHandler struct {
	Audit *services.AuditService
	Loc   *time.Location
}

// GET /api/logs
func (h *LogHandler) List(c *fiber.Ctx) error {
	logs, err := h.Audit.Latest()
	if err != nil {
		applog.Error(c, "logs.list.fail", err, nil)
		return err
	}
	return c.JSON(logViews(logs, h.Loc))
}

// GET /admin/logs
func (h *LogHandler) Page(c *fiber.Ctx) error {
	logs, err := h.Audit.Latest()
	if err != nil {
		applog.Error(c, "logs.page.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load listing logs"})
	}
	rows := make([]logRow, 0, len(logs))
	for _, l := range logs {
		v := logView(l, h.Loc)
		rows = append(rows, logRow{logJSON: v, Price: money(v.AttemptedPrice), Fee: money(v.Fee)})
	}
	return render(c, "admin_logs", fiber.Map{"Logs": rows, "Count": len(rows)})
}

// logRow is a log line with its amounts preformatted for the page.
type logRow struct {
	logJSON
	Price string
	Fee   string
}

func money(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}

// GET /api/logs/export
func (h *LogHandler) Export(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.Audit.ExportXLSX(&buf); err != nil {
		applog.Error(c, "logs.export.fail", err, nil)
		return err
	}
	applog.Audit(c, "logs.export", map[string]any{"bytes": buf.Len()})
	c.Attachment("listing_logs.xlsx")
	c.Set(fiber.HeaderContentType, xlsxMIME)
	return c.Send(buf.Bytes())
}
