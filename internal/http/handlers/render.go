package handlers

import (
	"database/sql"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"phonelister/internal/domain"
	applog "phonelister/internal/log"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if rid, ok := c.Locals("requestid").(string); ok {
		data["RequestID"] = rid
	}
	return c.Render(tmpl, data)
}

const friendlyError = "Something went wrong. Please try again."

// jsonPrefixes are the paths whose errors are reported as JSON.
var jsonPrefixes = []string{"/api", "/list", "/bulk_upload", "/phone"}

// ErrorHandler logs err and answers without exposing it. 4xx messages from
// fiber.Error are kept, everything else becomes a generic message.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := friendlyError
	if fe, ok := err.(*fiber.Error); ok && fe.Code < fiber.StatusInternalServerError {
		code, msg = fe.Code, fe.Message
	}
	applog.Error(c, "server.error", err, map[string]any{"code": code})

	for _, p := range jsonPrefixes {
		if strings.HasPrefix(c.Path(), p) {
			return c.Status(code).JSON(fiber.Map{"error": msg})
		}
	}
	if rerr := c.Status(code).Render("notfound", fiber.Map{"Message": msg}); rerr != nil {
		return c.Status(code).SendString(msg)
	}
	return nil
}

type phoneJSON struct {
	ID              string             `json:"id"`
	Brand           string             `json:"brand"`
	ModelName       string             `json:"model_name"`
	Condition       string             `json:"condition"`
	Storage         string             `json:"storage"`
	Color           string             `json:"color"`
	BasePrice       float64            `json:"base_price"`
	StockQuantity   int                `json:"stock_quantity"`
	Discontinued    bool               `json:"discontinued"`
	Tags            []string           `json:"tags"`
	ManualOverrides map[string]float64 `json:"manual_overrides"`
	CreatedAt       string             `json:"created_at"`
	UpdatedAt       string             `json:"updated_at,omitempty"`
}

func phoneView(p domain.Phone, loc *time.Location) phoneJSON {
	return phoneJSON{
		ID:              p.ID,
		Brand:           p.Brand,
		ModelName:       p.ModelName,
		Condition:       string(p.Condition),
		Storage:         p.Storage,
		Color:           p.Color,
		BasePrice:       p.BasePrice,
		StockQuantity:   p.StockQuantity,
		Discontinued:    p.Discontinued,
		Tags:            p.TagList(),
		ManualOverrides: p.Overrides.Map(),
		CreatedAt:       domain.FormatTimestamp(p.CreatedAt, loc),
		UpdatedAt:       domain.FormatTimestamp(p.UpdatedAt, loc),
	}
}

func phoneViews(ps []domain.Phone, loc *time.Location) []phoneJSON {
	out := make([]phoneJSON, 0, len(ps))
	for _, p := range ps {
		out = append(out, phoneView(p, loc))
	}
	return out
}

type logJSON struct {
	ID             string   `json:"id"`
	PhoneID        string   `json:"phone_id"`
	Platform       string   `json:"platform"`
	Success        bool     `json:"success"`
	Message        string   `json:"message"`
	AttemptedPrice *float64 `json:"attempted_price"`
	Fee            *float64 `json:"fee"`
	Override       bool     `json:"override"`
	Timestamp      string   `json:"timestamp"`
}

func logView(l domain.ListingLog, loc *time.Location) logJSON {
	return logJSON{
		ID:             l.ID,
		PhoneID:        l.PhoneID,
		Platform:       l.Platform.String(),
		Success:        l.Success,
		Message:        l.Message,
		AttemptedPrice: nullFloat(l.AttemptedPrice),
		Fee:            nullFloat(l.Fee),
		Override:       l.Override,
		Timestamp:      domain.FormatTimestamp(l.CreatedAt, loc),
	}
}

func logViews(ls []domain.ListingLog, loc *time.Location) []logJSON {
	out := make([]logJSON, 0, len(ls))
	for _, l := range ls {
		out = append(out, logView(l, loc))
	}
	return out
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
