package pricing

import "github.com/shopspring/decimal"

// RoundMoney rounds to cents, half-up. The float is read through its shortest
// decimal form so 2.675 rounds to 2.68 rather than to the binary neighbour.
func RoundMoney(amount float64) float64 {
	return roundCents(decimal.NewFromFloat(amount))
}

func roundCents(d decimal.Decimal) float64 {
	// decimal rounds half away from zero, which is half-up for amounts >= 0
	return d.Round(2).InexactFloat64()
}
