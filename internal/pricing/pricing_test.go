package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeatPrice(t *testing.T) {
	tests := []struct {
		name      string
		basePrice float64
		seatType  SeatType
		expected  float64
	}{
		{"standard seat at base price", 10, SeatStandard, 10},
		{"pmr seat at base price", 10, SeatPMR, 10},
		{"premium seat at 1.5x", 10, SeatPremium, 15},
		{"premium seat with decimal base", 12.50, SeatPremium, 18.75},
		{"zero base price", 0, SeatPremium, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, SeatPrice(tt.basePrice, tt.seatType), 1e-9)
		})
	}
}

func TestSeatPriceWithMultiplier(t *testing.T) {
	assert.InDelta(t, 20, SeatPriceWithMultiplier(10, SeatPremium, 2.0), 1e-9)
	// Multiplier only applies to premium seats
	assert.InDelta(t, 10, SeatPriceWithMultiplier(10, SeatStandard, 2.0), 1e-9)
	assert.InDelta(t, 10, SeatPriceWithMultiplier(10, SeatPMR, 2.0), 1e-9)
}

func TestTotal(t *testing.T) {
	// 10 + 10 + 15 = 35
	total := Total([]SeatType{SeatStandard, SeatStandard, SeatPremium}, 10)
	assert.InDelta(t, 35, total, 1e-9)
}

func TestTotal_TwoStandardSeats(t *testing.T) {
	total := Total([]SeatType{SeatStandard, SeatStandard}, 12.50)
	assert.InDelta(t, 25, total, 1e-9)
}

func TestTotal_OrderIndependent(t *testing.T) {
	a := Total([]SeatType{SeatPremium, SeatStandard, SeatPMR}, 9.90)
	b := Total([]SeatType{SeatPMR, SeatPremium, SeatStandard}, 9.90)
	assert.InDelta(t, a, b, 1e-9)
}

func TestTotal_Empty(t *testing.T) {
	assert.Zero(t, Total(nil, 12.50))
}

func TestTotal_MixedSeats(t *testing.T) {
	// Standard A1 + premium A2 at 12.50: 12.50 + 18.75 = 31.25
	total := Total([]SeatType{SeatStandard, SeatPremium}, 12.50)
	assert.InDelta(t, 31.25, total, 1e-9)
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in       float64
		expected float64
	}{
		{10.999, 11},
		{10.994, 10.99},
		{10.995, 11},
		{31.25, 31.25},
		{0, 0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.expected, Round2(tt.in), 1e-9)
	}
}

func TestParseSeatType(t *testing.T) {
	assert.Equal(t, SeatPremium, ParseSeatType("premium"))
	assert.Equal(t, SeatPMR, ParseSeatType("pmr"))
	assert.Equal(t, SeatStandard, ParseSeatType("standard"))
	// Unknown types never carry a surcharge
	assert.Equal(t, SeatStandard, ParseSeatType("vip"))
	assert.Equal(t, SeatStandard, ParseSeatType(""))
}
