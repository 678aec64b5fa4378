package pricing

import (
	"fmt"
	"strings"

	"phonelister/internal/domain"
)

const (
	minMargin       = 5.00
	lowPriceCeiling = 50.0
	usableFloorOnY  = 20.0
	discontinuedTag = "discontinued"
)

// Snapshot is the subset of a phone the engine looks at.
type Snapshot struct {
	BasePrice float64
	Condition string
	Tags      []string
	Overrides domain.Overrides
}

// SnapshotOf copies the fields the engine needs out of p.
func SnapshotOf(p domain.Phone) Snapshot {
	return Snapshot{
		BasePrice: p.BasePrice,
		Condition: string(p.Condition),
		Tags:      p.TagList(),
		Overrides: p.Overrides,
	}
}

// Decision is the result of one listing evaluation. A rejection is a
// Decision with Success false; errors are reserved for inputs that cannot be
// priced at all.
type Decision struct {
	Success    bool
	Message    string
	Label      string
	FinalPrice float64
	Fee        float64
	Override   bool
}

// SimulateListing applies the platform rules in a fixed order; the first
// rejection wins. Every outcome carries the computed price and fee.
func SimulateListing(s Snapshot, p domain.Platform) (Decision, error) {
	q, err := CalculatePlatformPrice(s.BasePrice, p)
	if err != nil {
		return Decision{}, err
	}
	label := MapConditionForPlatform(s.Condition, p)
	d := Decision{Label: label, FinalPrice: q.FinalPrice, Fee: q.Fee}

	switch {
	case p == domain.PlatformY && strings.Contains(strings.ToLower(label), "usable") && s.BasePrice < usableFloorOnY:
		d.Message = "Platform Y rejects very low-priced 'Usable' items"
	case q.FinalPrice < minMargin && s.BasePrice < lowPriceCeiling:
		d.Message = fmt.Sprintf("Fees too high on platform %s, margin $%.2f", p, q.FinalPrice)
	case domain.HasTag(s.Tags, discontinuedTag):
		d.Message = fmt.Sprintf("Phone marked discontinued — platform %s refused listing", p)
	default:
		d.Success = true
		d.Message = fmt.Sprintf("Listed on platform %s as '%s' at $%.2f (fee $%.2f)", p, label, q.FinalPrice, q.Fee)
	}
	return d, nil
}
