// Package stats provides guarded numeric reductions for activity summaries.
// Every function defines its result for empty input instead of returning
// NaN, infinities, or sentinel indexes.
package stats

import (
	"cmp"
	"math"
)

// Number is the set of numeric types the reductions accept.
type Number interface {
	~int | ~int32 | ~int64 | ~float64
}

// percentScale converts a fraction to a percentage.
const percentScale = 100

// Clamp restricts val to the range [lo, hi].
func Clamp[T cmp.Ordered](val, lo, hi T) T {
	return max(lo, min(val, hi))
}

// Sum returns the sum of all elements in values.
// Returns the zero value of T for an empty slice.
func Sum[T Number](values []T) T {
	var result T

	for _, v := range values {
		result += v
	}

	return result
}

// Mean returns the arithmetic mean of values.
// Returns 0 for an empty slice.
func Mean[T Number](values []T) float64 {
	if len(values) == 0 {
		return 0
	}

	return float64(Sum(values)) / float64(len(values))
}

// ArgMax returns the index of the first largest element.
// ok is false for an empty slice.
func ArgMax[T cmp.Ordered](values []T) (idx int, ok bool) {
	if len(values) == 0 {
		return 0, false
	}

	for i := 1; i < len(values); i++ {
		if values[i] > values[idx] {
			idx = i
		}
	}

	return idx, true
}

// ArgMaxFunc is [ArgMax] over a projected key. Ties keep the earliest index.
func ArgMaxFunc[E any, K cmp.Ordered](items []E, key func(E) K) (idx int, ok bool) {
	if len(items) == 0 {
		return 0, false
	}

	best := key(items[0])

	for i := 1; i < len(items); i++ {
		if k := key(items[i]); k > best {
			best = k
			idx = i
		}
	}

	return idx, true
}

// ArgMaxAll returns the indexes of every element equal to the maximum, in
// ascending order. An empty slice or one whose maximum is not positive yields
// nil: an all-zero distribution has no real maximum.
func ArgMaxAll[T Number](values []T) []int {
	idx, ok := ArgMax(values)
	if !ok || values[idx] <= 0 {
		return nil
	}

	peak := values[idx]

	var result []int

	for i, v := range values {
		if v == peak {
			result = append(result, i)
		}
	}

	return result
}

// Ratio returns num/den, or 0 when den is zero.
func Ratio[T Number](num, den T) float64 {
	if den == 0 {
		return 0
	}

	return float64(num) / float64(den)
}

// Percent returns round(part/whole*100), or fallback when whole is zero.
func Percent[T Number](part, whole T, fallback int) int {
	if whole == 0 {
		return fallback
	}

	return int(math.Round(float64(part) / float64(whole) * percentScale))
}
