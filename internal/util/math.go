// Package util holds small helpers shared across layers.
package util

import (
	"math"
	"strconv"
)

// Round2 rounds a price to two decimal places.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// FormatAmount renders a price without trailing zeros, the way it appears
// in query strings and summary copy.
func FormatAmount(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
