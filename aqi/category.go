package aqi

import (
	"fmt"
	"math"
)

type Category int

const (
	Unknown Category = iota
	Good
	Moderate
	UnhealthyForSensitiveGroups
	Unhealthy
	VeryUnhealthy
	Hazardous
)

var categoryInfo = map[Category]struct {
	name   string
	abbrv  string
	lo, hi int
}{
	Good:                        {"Good", "G", 0, 50},
	Moderate:                    {"Moderate", "M", 51, 100},
	UnhealthyForSensitiveGroups: {"Unhealthy for Sensitive Groups", "USG", 101, 150},
	Unhealthy:                   {"Unhealthy", "U", 151, 200},
	VeryUnhealthy:               {"Very Unhealthy", "VU", 201, 300},
	Hazardous:                   {"Hazardous", "H", 301, 500},
}

func (c Category) String() string {
	if info, ok := categoryInfo[c]; ok {
		return info.name
	}
	if c == Unknown {
		return "Unknown"
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Abbrv returns the short form of the category name, e.g. "USG".
func (c Category) Abbrv() string {
	if info, ok := categoryInfo[c]; ok {
		return info.abbrv
	}
	return "?"
}

// Range returns the inclusive band of integer indices in the category.
// Hazardous tops out at 500 even though Categorize maps larger values to it.
func (c Category) Range() (lo, hi int) {
	info := categoryInfo[c]
	return info.lo, info.hi
}

// Categorize returns the category an index falls into. Band upper limits are
// inclusive, so fractional indices between bands belong to the higher one.
// Indices below 0 are Good and indices above 500 are Hazardous; NaN is Unknown.
func Categorize(index float64) Category {
	switch {
	case math.IsNaN(index):
		return Unknown
	case index <= 50:
		return Good
	case index <= 100:
		return Moderate
	case index <= 150:
		return UnhealthyForSensitiveGroups
	case index <= 200:
		return Unhealthy
	case index <= 300:
		return VeryUnhealthy
	default:
		return Hazardous
	}
}
