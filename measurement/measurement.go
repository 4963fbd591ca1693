// Package measurement holds air quality readings and the helpers a caller
// needs to turn a series of them into window averages and indices.
package measurement

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mtraver/airquality/aqi"
)

// KeyRH is the ValueMap key for relative humidity. Pollutant values are keyed
// by aqi.Pollutant's String.
const KeyRH = "RH"

// Reading is one set of concentrations taken at the same time. Nil fields were
// not measured. Units are those the aqi package expects for each pollutant;
// RH is relative humidity in percent.
type Reading struct {
	DeviceID  string
	Timestamp time.Time

	PM25  *float32
	PM10  *float32
	Ozone *float32
	CO    *float32
	SO2   *float32
	NO2   *float32
	RH    *float32
}

func (r *Reading) field(key string) **float32 {
	switch key {
	case aqi.PM25.String():
		return &r.PM25
	case aqi.PM10.String():
		return &r.PM10
	case aqi.Ozone.String():
		return &r.Ozone
	case aqi.CO.String():
		return &r.CO
	case aqi.SO2.String():
		return &r.SO2
	case aqi.NO2.String():
		return &r.NO2
	case KeyRH:
		return &r.RH
	}
	return nil
}

func keys() []string {
	k := make([]string, 0, len(aqi.Pollutants)+1)
	for _, p := range aqi.Pollutants {
		k = append(k, p.String())
	}
	return append(k, KeyRH)
}

// ValueMap returns the Reading's non-nil values keyed by pollutant name, plus
// KeyRH if humidity was measured.
func (r Reading) ValueMap() map[string]float32 {
	m := make(map[string]float32)
	for _, k := range keys() {
		if v := *r.field(k); v != nil {
			m[k] = *v
		}
	}
	return m
}

// FromValueMap is the inverse of ValueMap. Unknown keys are ignored.
func FromValueMap(m map[string]float32) Reading {
	var r Reading
	for k, v := range m {
		if f := r.field(k); f != nil {
			v := v
			*f = &v
		}
	}
	return r
}

// Value returns the concentration of p, if present.
func (r Reading) Value(p aqi.Pollutant) (float32, bool) {
	f := r.field(p.String())
	if f == nil || *f == nil {
		return 0, false
	}
	return **f, true
}

func (r Reading) String() string {
	vals := r.ValueMap()
	names := make([]string, 0, len(vals))
	for k := range vals {
		names = append(names, k)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, k := range names {
		parts[i] = fmt.Sprintf("%s=%.3f", k, vals[k])
	}

	s := "[unknown]"
	if len(parts) > 0 {
		s = strings.Join(parts, " ")
	}
	return fmt.Sprintf("%s %s %s", r.DeviceID, s, r.Timestamp.Format(time.RFC3339))
}

// Assessment is the outcome of computing one pollutant's index.
type Assessment struct {
	Result aqi.Result
	Err    error
}

// Assess computes an index for each pollutant present in r, independently of
// the others, using each pollutant's standard averaging window. If f is
// non-zero the PM2.5 value is corrected with it first, using r.RH as the
// humidity. Assess doesn't combine the results into an overall index.
func Assess(r Reading, f aqi.Formula) map[aqi.Pollutant]Assessment {
	out := make(map[aqi.Pollutant]Assessment)
	for _, p := range aqi.Pollutants {
		v, ok := r.Value(p)
		if !ok {
			continue
		}

		var a Assessment
		if p == aqi.PM25 && f != 0 {
			var rh *float64
			if r.RH != nil {
				h := widen(*r.RH)
				rh = &h
			}
			a.Result, a.Err = aqi.PM25Adjusted(widen(v), f, rh)
		} else {
			a.Result, a.Err = aqi.Calculate(p, aqi.DefaultWindow, widen(v))
		}
		out[p] = a
	}
	return out
}

// widen converts v to the float64 nearest its shortest decimal form, so that
// float32(0.055) becomes 0.055 rather than 0.0549999997. The aqi package
// truncates to table precision and would otherwise drop a step.
func widen(v float32) float64 {
	f, err := strconv.ParseFloat(strconv.FormatFloat(float64(v), 'g', -1, 32), 64)
	if err != nil {
		return float64(v)
	}
	return f
}
