package utils

import (
	"math"
	"math/rand"
)

// RandomFloat returns a random float64 between 0.0 and 1.0
func RandomFloat() float64 {
	return rand.Float64() //nolint:gosec // Game logic randomness, not security critical
}

// RandomInt returns a random integer between min and max (inclusive)
func RandomInt(min, max int) int {
	if min > max {
		return min
	}
	return rand.Intn(max-min+1) + min //nolint:gosec // Game logic randomness, not security critical
}

// Clamp bounds v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Randomizer is the source of randomness for game rolls. Tests swap in a fixed one.
type Randomizer interface {
	Float() float64
	IntBetween(min, max int) int
}

// MathRandomizer draws from math/rand
type MathRandomizer struct{}

func (MathRandomizer) Float() float64              { return RandomFloat() }
func (MathRandomizer) IntBetween(min, max int) int { return RandomInt(min, max) }

// FixedRandomizer always returns the same roll. IntBetween maps the float
// onto the range, so 0 yields min and 1 yields max.
type FixedRandomizer struct {
	Value float64
}

func (f FixedRandomizer) Float() float64 { return f.Value }

func (f FixedRandomizer) IntBetween(min, max int) int {
	if min >= max {
		return min
	}
	return min + int(math.Round(f.Value*float64(max-min)))
}
