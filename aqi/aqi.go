// Package aqi computes US EPA Air Quality Index values from pollutant
// concentrations and corrects low-cost sensor PM2.5 readings.
//
// The caller is responsible for averaging concentrations over the window the
// index requires (for example 24 hours for PM2.5, 8 hours for ozone) and for
// supplying them in the units the tables use:
//
//	Ozone  ppm
//	PM2.5  µg/m³
//	PM10   µg/m³
//	CO     ppm
//	SO2    ppb
//	NO2    ppb
//
// All functions are safe for concurrent use.
package aqi

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

type Pollutant int

const (
	Ozone Pollutant = iota + 1
	PM25
	PM10
	CO
	SO2
	NO2
)

// Pollutants lists every supported pollutant in a stable order.
var Pollutants = []Pollutant{Ozone, PM25, PM10, CO, SO2, NO2}

func (p Pollutant) String() string {
	switch p {
	case Ozone:
		return "O3"
	case PM25:
		return "PM2.5"
	case PM10:
		return "PM10"
	case CO:
		return "CO"
	case SO2:
		return "SO2"
	case NO2:
		return "NO2"
	default:
		return fmt.Sprintf("Pollutant(%d)", int(p))
	}
}

// ParsePollutant is the inverse of String. It is case-insensitive and also
// accepts a few common spellings such as "ozone" and "pm25".
func ParsePollutant(s string) (Pollutant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "o3", "ozone":
		return Ozone, nil
	case "pm2.5", "pm25", "pm2_5":
		return PM25, nil
	case "pm10":
		return PM10, nil
	case "co":
		return CO, nil
	case "so2":
		return SO2, nil
	case "no2":
		return NO2, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupported, s)
}

// Window is the averaging period of a concentration.
type Window time.Duration

const (
	// DefaultWindow selects the pollutant's standard averaging period.
	DefaultWindow  Window = 0
	OneHour               = Window(time.Hour)
	EightHour             = Window(8 * time.Hour)
	TwentyFourHour        = Window(24 * time.Hour)
)

func (w Window) String() string {
	switch w {
	case DefaultWindow:
		return "default"
	case OneHour:
		return "1-hour"
	case EightHour:
		return "8-hour"
	case TwentyFourHour:
		return "24-hour"
	default:
		return time.Duration(w).String()
	}
}

// Result is the index computed for one concentration.
type Result struct {
	Pollutant Pollutant
	Window    Window
	// Concentration is the input after truncation to the table's precision.
	Concentration float64
	// Exact is the interpolated index before rounding.
	Exact    float64
	AQI      int
	Category Category
}

func (r Result) String() string {
	return fmt.Sprintf("%s %v AQI %d %s", r.Pollutant, r.Concentration, r.AQI, r.Category)
}

// Calculate computes the AQI for a concentration of p averaged over w.
//
// The concentration is truncated to the precision of the pollutant's table, as
// the EPA prescribes, then interpolated within the row that contains it. The
// index is rounded half up. A concentration that equals one row's upper limit
// and the next row's lower limit resolves to the lower row.
//
// Concentrations above the table yield a *RangeError with Bound AboveMaximum;
// the index is never clamped. Negative input is ErrInvalidInput, so no
// published table yields BelowMinimum. Ranges that are defined only for another averaging window of the
// same pollutant (1-hour ozone below 0.125 ppm, 8-hour ozone above 0.200 ppm,
// 1-hour SO2 above 304 ppb) yield ErrUnsupported.
func Calculate(p Pollutant, w Window, concentration float64) (Result, error) {
	if err := checkValue(concentration); err != nil {
		return Result{}, fmt.Errorf("%w: %s concentration %v", err, p, concentration)
	}

	w, t, ok := lookupTable(p, w)
	if !ok {
		return Result{}, unsupported(p, w)
	}

	c := truncate(concentration, t.places)
	if c < t.min() {
		if t.below != DefaultWindow {
			return Result{}, fmt.Errorf("%w: %s %s concentration %v is below %v, use a %s average",
				ErrUnsupported, w, p, c, t.min(), t.below)
		}
		return Result{}, &RangeError{p, w, c, BelowMinimum, t.min(), t.max()}
	}
	if c > t.max() {
		if t.above != DefaultWindow {
			return Result{}, fmt.Errorf("%w: %s %s concentration %v is above %v, use a %s average",
				ErrUnsupported, w, p, c, t.max(), t.above)
		}
		return Result{}, &RangeError{p, w, c, AboveMaximum, t.min(), t.max()}
	}

	exact := scale(c, t.row(c))
	index := round(exact)
	return Result{
		Pollutant:     p,
		Window:        w,
		Concentration: c,
		Exact:         exact,
		AQI:           index,
		Category:      Categorize(float64(index)),
	}, nil
}

// row returns the first row containing c, or the row below the gap c falls
// into. c must lie within [t.min(), t.max()].
func (t table) row(c float64) Breakpoint {
	r := t.rows[0]
	for _, b := range t.rows {
		if c < b.ConcLow {
			break
		}
		r = b
		if c <= b.ConcHigh {
			break
		}
	}
	return r
}

func scale(c float64, b Breakpoint) float64 {
	return (float64(b.AQIHigh-b.AQILow)/(b.ConcHigh-b.ConcLow))*(c-b.ConcLow) + float64(b.AQILow)
}

// round rounds half up. Inputs are never negative.
func round(x float64) int {
	return int(math.Floor(x + 0.5))
}

// truncate drops digits past the given number of decimal places of x's
// shortest decimal form, so 0.604 stays 0.604 and 12.0999999999 becomes 12.0.
// x must be finite.
func truncate(x float64, places int) float64 {
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		end := i + 1 + places
		if places == 0 {
			end = i
		}
		if end < len(s) {
			s = s[:end]
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return x
	}
	return f
}

func checkValue(x float64) error {
	if math.IsNaN(x) || math.IsInf(x, 0) || x < 0 {
		return ErrInvalidInput
	}
	return nil
}

func unsupported(p Pollutant, w Window) error {
	return fmt.Errorf("%w: no %s table for %s", ErrUnsupported, w, p)
}
