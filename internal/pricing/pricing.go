// Package pricing computes per-seat and total prices for a booking attempt.
// Everything here is pure and deterministic; input validation is the caller's
// responsibility.
package pricing

import "math"

// SeatType classifies a seat for pricing. PMR (reduced-mobility) seats cost
// the same as standard ones; only premium carries a surcharge.
type SeatType string

const (
	SeatStandard SeatType = "standard"
	SeatPremium  SeatType = "premium"
	SeatPMR      SeatType = "pmr"
)

// DefaultPremiumMultiplier is the canonical premium surcharge policy:
// multiplicative, premium = base * 1.5.
const DefaultPremiumMultiplier = 1.5

// ParseSeatType maps a raw seat type string to a SeatType. Unknown values are
// treated as standard, so malformed inventory data never inflates a price.
func ParseSeatType(s string) SeatType {
	switch s {
	case string(SeatPremium):
		return SeatPremium
	case string(SeatPMR):
		return SeatPMR
	default:
		return SeatStandard
	}
}

// SeatPrice returns the price of a single seat of the given type using the
// default premium multiplier.
func SeatPrice(basePrice float64, seatType SeatType) float64 {
	return SeatPriceWithMultiplier(basePrice, seatType, DefaultPremiumMultiplier)
}

// SeatPriceWithMultiplier returns the price of a single seat with a
// configurable premium multiplier.
func SeatPriceWithMultiplier(basePrice float64, seatType SeatType, premiumMultiplier float64) float64 {
	if seatType == SeatPremium {
		return basePrice * premiumMultiplier
	}
	return basePrice
}

// Total sums SeatPrice over the selected seat types. The result is
// order-independent.
func Total(seatTypes []SeatType, basePrice float64) float64 {
	return TotalWithMultiplier(seatTypes, basePrice, DefaultPremiumMultiplier)
}

// TotalWithMultiplier sums seat prices with a configurable premium multiplier.
func TotalWithMultiplier(seatTypes []SeatType, basePrice float64, premiumMultiplier float64) float64 {
	var total float64
	for _, t := range seatTypes {
		total += SeatPriceWithMultiplier(basePrice, t, premiumMultiplier)
	}
	return total
}

// Round2 rounds to two decimal places, half-up on the cent boundary.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
