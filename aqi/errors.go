package aqi

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is matched by a *RangeError.
	ErrOutOfRange = errors.New("aqi: concentration out of range")
	// ErrUnsupported is returned when no breakpoint table or formula covers the request.
	ErrUnsupported = errors.New("aqi: unsupported")
	// ErrMissingInput is returned when a correction formula needs an input the caller didn't give.
	ErrMissingInput = errors.New("aqi: missing required input")
	// ErrInvalidInput is returned for negative or non-finite inputs.
	ErrInvalidInput = errors.New("aqi: invalid input")
)

// Bound says which end of a table a concentration fell off. The published
// tables only yield AboveMaximum: all but 1-hour ozone start at zero, and
// 1-hour ozone below its first row is ErrUnsupported.
type Bound int

const (
	BelowMinimum Bound = iota + 1
	AboveMaximum
)

func (b Bound) String() string {
	switch b {
	case BelowMinimum:
		return "below minimum"
	case AboveMaximum:
		return "above maximum"
	default:
		return fmt.Sprintf("Bound(%d)", int(b))
	}
}

// RangeError reports a concentration outside every row of a table. The library
// never clamps; callers that want to report "beyond index" can use Min and Max.
type RangeError struct {
	Pollutant     Pollutant
	Window        Window
	Concentration float64
	Bound         Bound
	Min           float64
	Max           float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("aqi: %s concentration %v is %s of %s table [%v, %v]",
		e.Pollutant, e.Concentration, e.Bound, e.Window, e.Min, e.Max)
}

func (e *RangeError) Is(target error) bool {
	return target == ErrOutOfRange
}
