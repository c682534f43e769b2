// range.go defines inclusive integer and fraction ranges used in capability descriptions.

package types

import (
	"fmt"
)

type IntRange struct {
	Min int
	Max int
}

func (r IntRange) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// Intersect returns the overlap of two ranges; the second value is false if
// they do not overlap.
func (r IntRange) Intersect(other IntRange) (IntRange, bool) {
	result := IntRange{Min: max(r.Min, other.Min), Max: min(r.Max, other.Max)}
	if result.Min > result.Max {
		return IntRange{}, false
	}
	return result, true
}

func (r IntRange) String() string {
	return fmt.Sprintf("[ %d, %d ]", r.Min, r.Max)
}

type FractionRange struct {
	Min Rational
	Max Rational
}

func (r FractionRange) Contains(v Rational) bool {
	return r.Min.Cmp(v) <= 0 && r.Max.Cmp(v) >= 0
}

func (r FractionRange) Intersect(other FractionRange) (FractionRange, bool) {
	result := r
	if other.Min.Cmp(result.Min) > 0 {
		result.Min = other.Min
	}
	if other.Max.Cmp(result.Max) < 0 {
		result.Max = other.Max
	}
	if result.Min.Cmp(result.Max) > 0 {
		return FractionRange{}, false
	}
	return result, true
}

func (r FractionRange) String() string {
	return fmt.Sprintf("[ %s, %s ]", r.Min, r.Max)
}
