package common

import "math"

// RoundHalfUp rounds to the nearest integer with halves going toward +Inf,
// so -2.5 becomes -2 rather than math.Round's -3.
func RoundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
