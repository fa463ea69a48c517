package domain

import "github.com/shopspring/decimal"

// PriceData is a transient token quote from the remote price feed.
// It is never persisted; a fixed fallback is used when the feed is down.
type PriceData struct {
	USD          decimal.Decimal `json:"usd"`
	USD24hChange decimal.Decimal `json:"usd_24h_change"`
}

// FallbackPrice is the quote shown when the price feed is unavailable.
func FallbackPrice() PriceData {
	return PriceData{
		USD:          decimal.NewFromFloat(0.0042),
		USD24hChange: decimal.Zero,
	}
}

// ChangeDirection returns "positive", "negative", or "neutral"
func (p PriceData) ChangeDirection() string {
	if p.USD24hChange.IsPositive() {
		return "positive"
	}
	if p.USD24hChange.IsNegative() {
		return "negative"
	}
	return "neutral"
}

// IsZero reports whether the quote has not been populated yet.
func (p PriceData) IsZero() bool {
	return p.USD.IsZero() && p.USD24hChange.IsZero()
}
