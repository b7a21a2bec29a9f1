package validator

import (
	"math"
	"strconv"
	"strings"
)

// Latitude reports whether value is a decimal degree in [-90, 90].
func Latitude(value string, _ RuleOptions) bool {
	return coordinateWithin(value, 90)
}

// Longitude reports whether value is a decimal degree in [-180, 180].
func Longitude(value string, _ RuleOptions) bool {
	return coordinateWithin(value, 180)
}

func coordinateWithin(value string, limit float64) bool {
	if value == "" {
		return true
	}
	// ParseFloat accepts "Inf", "NaN" and hex floats; coordinates are plain decimals.
	if strings.ContainsAny(value, "xXpPiInN") {
		return false
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) {
		return false
	}
	return f >= -limit && f <= limit
}
