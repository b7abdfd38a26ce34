package quiz

import "math"

// MaxSRSLevel is the highest Leitner level. A question at this level is
// mastered and leaves the review rotation until it is answered wrong.
const MaxSRSLevel = 2

// ClampSRSLevel maps an arbitrary numeric value onto a legal SRS level.
// Non-finite values (NaN, ±Inf) become 0; finite values are floored to an
// integer and clamped to [0, MaxSRSLevel]. Total over all float64 inputs.
func ClampSRSLevel(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return clampLevel(int(math.Floor(v)))
}

// ClampCounter maps an arbitrary numeric value onto a legal attempt
// counter: non-finite becomes 0, finite values floor and never go below 0.
func ClampCounter(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	n := int(math.Floor(v))
	if n < 0 {
		return 0
	}
	return n
}

func clampLevel(n int) int {
	if n < 0 {
		return 0
	}
	if n > MaxSRSLevel {
		return MaxSRSLevel
	}
	return n
}

func clampCount(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
