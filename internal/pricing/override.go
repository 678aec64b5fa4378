package pricing

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"phonelister/internal/domain"
)

// ResolveOverride short-circuits the simulator when s carries a manual price
// for p. The reported fee is still the standard fee on the base price; the
// override itself is passed through unrounded.
func ResolveOverride(s Snapshot, p domain.Platform) (Decision, bool, error) {
	price, ok := s.Overrides.Get(p)
	if !ok {
		return Decision{}, false, nil
	}
	q, err := CalculatePlatformPrice(s.BasePrice, p)
	if err != nil {
		return Decision{}, true, err
	}
	return Decision{
		Success:    true,
		Message:    fmt.Sprintf("Listed with manual override $%.2f on %s", price, p),
		Label:      MapConditionForPlatform(s.Condition, p),
		FinalPrice: price,
		Fee:        q.Fee,
		Override:   true,
	}, true, nil
}

// Evaluate runs the override path if one applies, the simulator otherwise.
func Evaluate(s Snapshot, p domain.Platform) (Decision, error) {
	if d, ok, err := ResolveOverride(s, p); ok {
		return d, err
	}
	return SimulateListing(s, p)
}

// ParseOverride reads a caller-supplied override. An empty string means none
// was given.
func ParseOverride(raw string) (float64, bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false, fmt.Errorf("%w: %q", ErrMalformedOverride, raw)
	}
	return v, true, nil
}
