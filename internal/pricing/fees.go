package pricing

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"phonelister/internal/domain"
)

// PlatformFee is a percentage of the base price plus a flat amount.
type PlatformFee struct {
	Percent decimal.Decimal
	Flat    decimal.Decimal
}

var platformFees = map[domain.Platform]PlatformFee{
	domain.PlatformX: {Percent: decimal.RequireFromString("10")},
	domain.PlatformY: {Percent: decimal.RequireFromString("8"), Flat: decimal.RequireFromString("2.00")},
	domain.PlatformZ: {Percent: decimal.RequireFromString("12")},
}

var hundred = decimal.NewFromInt(100)

// Quote is the outcome of pricing a phone for one platform.
type Quote struct {
	FinalPrice float64
	Fee        float64
}

// CalculatePlatformPrice returns the net listing price and the platform fee.
// The fee is rounded from its own unrounded value, not derived from the
// rounded net price.
func CalculatePlatformPrice(basePrice float64, p domain.Platform) (Quote, error) {
	if basePrice <= 0 || math.IsNaN(basePrice) || math.IsInf(basePrice, 0) {
		return Quote{}, fmt.Errorf("%w: base price must be greater than 0", ErrInvalidInput)
	}
	rule, ok := platformFees[p]
	if !ok {
		return Quote{}, fmt.Errorf("%w: %s", ErrUnknownPlatform, p)
	}

	base := decimal.NewFromFloat(basePrice)
	fee := base.Mul(rule.Percent).Div(hundred).Add(rule.Flat)
	final := base.Sub(fee)
	if final.IsNegative() {
		final = decimal.Zero
	}
	return Quote{FinalPrice: roundCents(final), Fee: roundCents(fee)}, nil
}
