package services

import (
	"context"
	"database/sql"
	"time"

	"phonelister/internal/domain"
	"phonelister/internal/events"
	applog "phonelister/internal/log"
	"phonelister/internal/locks"
	"phonelister/internal/pricing"
	"phonelister/internal/repos"
)

const outOfStockMessage = "Cannot list: out of stock"

type ListingService struct {
	Phones *repos.PhoneRepo
	Logs   *repos.ListingLogRepo
	Locks  locks.Locker
	Events events.Publisher
}

func NewListingService(phones *repos.PhoneRepo, logs *repos.ListingLogRepo, l locks.Locker, pub events.Publisher) *ListingService {
	if pub == nil {
		pub = events.Nop{}
	}
	if l == nil {
		l = locks.NewLocal()
	}
	return &ListingService{Phones: phones, Logs: logs, Locks: l, Events: pub}
}

// ListingResult is what one listing attempt produced. Log is the audit row
// that was written for it.
type ListingResult struct {
	Decision pricing.Decision
	Log      domain.ListingLog
}

// List runs one listing attempt for phoneID on platformRaw, optionally
// storing overrideRaw as the platform's manual price first.
//
// Out of stock is checked before anything else about the phone and is
// recorded without a price. Errors from the pricing engine are returned
// without recording anything.
func (s *ListingService) List(ctx context.Context, phoneID, platformRaw, overrideRaw string) (ListingResult, error) {
	platform, err := domain.ParsePlatform(platformRaw)
	if err != nil {
		return ListingResult{}, err
	}

	unlock, err := s.Locks.Lock(ctx, locks.ListingKey(phoneID, platform.String()))
	if err != nil {
		return ListingResult{}, err
	}
	defer unlock()

	phone, err := s.Phones.Get(phoneID)
	if err != nil {
		return ListingResult{}, err
	}

	if phone.StockQuantity <= 0 {
		entry := domain.ListingLog{PhoneID: phone.ID, Platform: platform, Message: outOfStockMessage}
		if err := s.Logs.Insert(&entry); err != nil {
			return ListingResult{}, err
		}
		s.publish(ctx, entry)
		return ListingResult{Decision: pricing.Decision{Message: outOfStockMessage}, Log: entry}, nil
	}

	override, ok, err := pricing.ParseOverride(overrideRaw)
	if err != nil {
		return ListingResult{}, err
	}
	if ok {
		if err := s.Phones.SetOverride(phone.ID, platform, override); err != nil {
			return ListingResult{}, err
		}
		phone.Overrides.Set(platform, override)
	}

	d, err := pricing.Evaluate(pricing.SnapshotOf(phone), platform)
	if err != nil {
		return ListingResult{}, err
	}

	entry := domain.ListingLog{
		PhoneID:        phone.ID,
		Platform:       platform,
		Success:        d.Success,
		Message:        d.Message,
		AttemptedPrice: sql.NullFloat64{Float64: d.FinalPrice, Valid: true},
		Fee:            sql.NullFloat64{Float64: d.Fee, Valid: true},
		Override:       d.Override,
	}
	if err := s.Logs.Insert(&entry); err != nil {
		return ListingResult{}, err
	}
	s.publish(ctx, entry)
	return ListingResult{Decision: d, Log: entry}, nil
}

// publish never fails the attempt; the audit row is already written.
func (s *ListingService) publish(ctx context.Context, l domain.ListingLog) {
	ev := events.ListingEvent{
		LogID:     l.ID,
		PhoneID:   l.PhoneID,
		Platform:  l.Platform.String(),
		Success:   l.Success,
		Message:   l.Message,
		Override:  l.Override,
		Timestamp: time.Now().UTC(),
	}
	if l.AttemptedPrice.Valid {
		v := l.AttemptedPrice.Float64
		ev.Price = &v
	}
	if l.Fee.Valid {
		v := l.Fee.Float64
		ev.Fee = &v
	}
	if err := s.Events.PublishListing(ctx, ev); err != nil {
		applog.Logger().WithError(err).WithField("log_id", l.ID).Warn("listing.event_publish_failed")
	}
}

// PriceQuote is the read-only price a phone would list at on one platform.
type PriceQuote struct {
	Price    float64 `json:"price"`
	Fee      float64 `json:"fee"`
	Override bool    `json:"override"`
}

// Preview prices a phone without recording anything. A stored override is
// returned as-is with no fee.
func (s *ListingService) Preview(phoneID, platformRaw string) (PriceQuote, error) {
	platform, err := domain.ParsePlatform(platformRaw)
	if err != nil {
		return PriceQuote{}, err
	}
	phone, err := s.Phones.Get(phoneID)
	if err != nil {
		return PriceQuote{}, err
	}
	if v, ok := phone.Overrides.Get(platform); ok {
		return PriceQuote{Price: v, Override: true}, nil
	}
	q, err := pricing.CalculatePlatformPrice(phone.BasePrice, platform)
	if err != nil {
		return PriceQuote{}, err
	}
	return PriceQuote{Price: q.FinalPrice, Fee: q.Fee}, nil
}

// RefreshPrices recomputes every platform price for every phone and returns
// how many phones priced cleanly. Nothing is stored.
func (s *ListingService) RefreshPrices() (int, error) {
	phones, err := s.Phones.ListNewest()
	if err != nil {
		return 0, err
	}
	n := 0
	for _, p := range phones {
		ok := true
		for _, platform := range domain.Platforms() {
			if _, err := pricing.CalculatePlatformPrice(p.BasePrice, platform); err != nil {
				applog.Logger().WithError(err).WithField("phone_id", p.ID).Warn("prices.refresh.skip")
				ok = false
				break
			}
		}
		if ok {
			n++
		}
	}
	return n, nil
}
