package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// ListingEvent describes one listing attempt after it has been recorded.
type ListingEvent struct {
	LogID     string    `json:"log_id"`
	PhoneID   string    `json:"phone_id"`
	Platform  string    `json:"platform"`
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Price     *float64  `json:"price,omitempty"`
	Fee       *float64  `json:"fee,omitempty"`
	Override  bool      `json:"override"`
	Timestamp time.Time `json:"timestamp"`
}

// Subject is where events for a platform are published.
func Subject(platform string) string { return "listing.events." + platform }

type Publisher interface {
	PublishListing(ctx context.Context, ev ListingEvent) error
}

// Nop drops every event.
type Nop struct{}

func (Nop) PublishListing(context.Context, ListingEvent) error { return nil }

// NATS publishes events as JSON, one subject per platform.
type NATS struct {
	conn *nats.Conn
}

func NewNATS(url string) (*NATS, error) {
	conn, err := nats.Connect(url, nats.Name("phonelister"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATS{conn: conn}, nil
}

func (n *NATS) PublishListing(ctx context.Context, ev ListingEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal listing event: %w", err)
	}
	return n.conn.Publish(Subject(ev.Platform), data)
}

func (n *NATS) Close() {
	if n.conn != nil {
		n.conn.Close()
	}
}

// Recorder keeps published events in memory.
type Recorder struct {
	Events []ListingEvent
}

func (r *Recorder) PublishListing(_ context.Context, ev ListingEvent) error {
	r.Events = append(r.Events, ev)
	return nil
}
