package domain

import "time"

const (
	storedLayout  = "2006-01-02 15:04:05"
	displayLayout = "02/01/2006 03:04:05 PM MST"
)

// FormatTimestamp renders a stored UTC timestamp in loc. Values that do not
// parse are returned unchanged.
func FormatTimestamp(raw string, loc *time.Location) string {
	if raw == "" {
		return ""
	}
	t, err := time.ParseInLocation(storedLayout, raw, time.UTC)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, raw); err != nil {
			return raw
		}
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(displayLayout)
}
