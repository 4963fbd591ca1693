package main

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/mtraver/airquality/aqi"
	"github.com/mtraver/airquality/measurement"
)

// report writes one line per concentration of o.pollutant. Failures don't stop
// the remaining concentrations from being reported; they're returned joined.
func report(w io.Writer, concentrations []float64, o options) error {
	var errs []error
	for _, c := range concentrations {
		if err := reportOne(w, c, o); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func reportOne(w io.Writer, c float64, o options) error {
	window := o.window
	if o.formula != 0 {
		adjusted, err := aqi.Adjust(c, o.formula, o.rh)
		if err != nil {
			return err
		}
		if verbose {
			log.Printf("%s corrected %v to %v", o.formula, c, adjusted)
		}
		c = adjusted
		if window == aqi.DefaultWindow {
			window = aqi.TwentyFourHour
		}
	}

	r, err := aqi.Calculate(o.pollutant, window, c)
	return emit(w, o.pollutant, r, err, o.cap)
}

func reportAssessments(w io.Writer, as map[aqi.Pollutant]measurement.Assessment, o options) error {
	var errs []error
	for _, p := range aqi.Pollutants {
		a, ok := as[p]
		if !ok {
			continue
		}
		if err := emit(w, p, a.Result, a.Err, o.cap); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// emit writes a result line. With capped set, a concentration above the top
// of its table is written as beyond the index rather than returned as an error.
func emit(w io.Writer, p aqi.Pollutant, r aqi.Result, err error, capped bool) error {
	var rerr *aqi.RangeError
	if capped && errors.As(err, &rerr) && rerr.Bound == aqi.AboveMaximum {
		_, err := fmt.Fprintf(w, "%s %v AQI 500+ %s (beyond index)\n", p, rerr.Concentration, aqi.Hazardous)
		return err
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, r)
	return err
}
