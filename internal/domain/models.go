package domain

import (
	"database/sql"
	"strings"
)

type Phone struct {
	ID            string    `db:"id"`
	Brand         string    `db:"brand"`
	ModelName     string    `db:"model_name"`
	Condition     Condition `db:"condition"`
	Storage       string    `db:"storage"`
	Color         string    `db:"color"`
	BasePrice     float64   `db:"base_price"`
	StockQuantity int       `db:"stock_quantity"`
	Discontinued  bool      `db:"discontinued"`
	Tags          string    `db:"tags"` // comma-joined, order kept as entered
	Overrides     Overrides `db:"manual_overrides"`
	CreatedAt     string    `db:"created_at"`
	UpdatedAt     string    `db:"updated_at"`
}

// TagList splits the stored tag string, dropping blanks.
func (p Phone) TagList() []string {
	return SplitTags(p.Tags)
}

type ListingLog struct {
	ID             string          `db:"id"`
	PhoneID        string          `db:"phone_id"`
	Platform       Platform        `db:"platform"`
	Success        bool            `db:"success"`
	Message        string          `db:"message"`
	AttemptedPrice sql.NullFloat64 `db:"attempted_price"`
	Fee            sql.NullFloat64 `db:"fee"`
	Override       bool            `db:"override"`
	CreatedAt      string          `db:"created_at"`
}

type Availability struct {
	Status string `json:"status"` // IN_STOCK | LOW_STOCK | OUT_OF_STOCK
	Qty    int    `json:"qty,omitempty"`
}

func SplitTags(s string) []string {
	out := []string{}
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func JoinTags(tags []string) string {
	return strings.Join(SplitTags(strings.Join(tags, ",")), ",")
}

// HasTag reports whether tag is in the set, ignoring case.
func HasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if strings.EqualFold(strings.TrimSpace(t), tag) {
			return true
		}
	}
	return false
}
