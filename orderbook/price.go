package orderbook

import (
	"fmt"
	"math"
)

// Price is a fixed-point decimal with 8 implied decimal places, backed by
// a signed 64-bit integer. Comparison and hashing are defined on the raw
// integer.
type Price int64

// PriceScale is 10^8, the number of raw units per whole price unit.
const PriceScale = 100_000_000

// PriceFromRaw8 converts a raw 8-decimal wire value (Price8) to Price.
func PriceFromRaw8(raw uint64) Price { return Price(raw) }

// PriceFromRaw4 converts a raw 4-decimal wire value (Price4) to Price by
// scaling up to 8 decimals.
func PriceFromRaw4(raw uint32) Price { return Price(int64(raw) * 10_000) }

// Raw8 returns the raw 8-decimal representation.
func (p Price) Raw8() uint64 { return uint64(p) }

// Raw4 truncates to a raw 4-decimal representation, as required when
// emitting records at the coarser wire scale.
func (p Price) Raw4() uint32 { return uint32(int64(p) / 10_000) }

// FromFloat64 rounds f to the nearest representable Price, rounding
// half away from zero.
func FromFloat64(f float64) Price {
	scaled := f * PriceScale
	if scaled >= 0 {
		return Price(math.Floor(scaled + 0.5))
	}
	return Price(math.Ceil(scaled - 0.5))
}

// Float64 returns the price as a floating point value in whole units.
func (p Price) Float64() float64 { return float64(p) / PriceScale }

func (p Price) String() string {
	whole := int64(p) / PriceScale
	frac := int64(p) % PriceScale
	if frac < 0 {
		frac = -frac
	}
	return fmt.Sprintf("%d.%08d", whole, frac)
}

// Quantity is signed so in-flight accounting (e.g. the brief window
// between unlink and destroy) can be represented, though a live order's
// quantity is always positive.
type Quantity = int64

// ReferenceNum is the feed-assigned order identifier, opaque and unique
// within a trading day under well-formed input.
type ReferenceNum = uint64
