package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/naoina/toml"

	"github.com/mtraver/airquality/aqi"
)

const defaultConfigPath = "~/.aqicalc.toml"

// settings holds the options that may come from the config file or from flags.
// An example config file:
//
//	pollutant = "pm2.5"
//	window = "24h"
//	adjust = "lrapa"
//	cap = true
type settings struct {
	Pollutant string
	Window    string
	Adjust    string
	Cap       bool

	// Humidity belongs to a reading, not to a config file.
	RH *float64 `toml:"-"`
}

// options are settings after parsing and validation.
type options struct {
	pollutant aqi.Pollutant
	window    aqi.Window
	formula   aqi.Formula
	rh        *float64
	cap       bool
}

// loadConfig decodes the TOML file at path, after expanding a leading ~. A
// missing file is not an error when optional is true; the zero settings are
// returned instead.
func loadConfig(path string, optional bool) (settings, error) {
	var s settings

	expanded, err := homedir.Expand(path)
	if err != nil {
		return s, err
	}

	f, err := os.Open(expanded)
	if errors.Is(err, fs.ErrNotExist) && optional {
		return s, nil
	} else if err != nil {
		return s, err
	}
	defer f.Close()

	if err := toml.NewDecoder(f).Decode(&s); err != nil {
		return s, fmt.Errorf("config %s: %w", expanded, err)
	}
	return s, nil
}

// merge returns base with the fields named in set replaced by those of override.
// Names are flag names.
func merge(base, override settings, set map[string]bool) settings {
	if set["pollutant"] {
		base.Pollutant = override.Pollutant
	}
	if set["window"] {
		base.Window = override.Window
	}
	if set["adjust"] {
		base.Adjust = override.Adjust
	}
	if set["cap"] {
		base.Cap = override.Cap
	}
	if set["rh"] {
		base.RH = override.RH
	}
	return base
}

func (s settings) options() (options, error) {
	o := options{
		pollutant: aqi.PM25,
		rh:        s.RH,
		cap:       s.Cap,
	}

	if s.Pollutant != "" {
		p, err := aqi.ParsePollutant(s.Pollutant)
		if err != nil {
			return o, err
		}
		o.pollutant = p
	}

	if s.Window != "" {
		d, err := time.ParseDuration(s.Window)
		if err != nil {
			return o, fmt.Errorf("bad window %q: %w", s.Window, err)
		}
		o.window = aqi.Window(d)
	}

	if s.Adjust != "" && s.Adjust != "none" {
		f, err := aqi.ParseFormula(s.Adjust)
		if err != nil {
			return o, err
		}
		if o.pollutant != aqi.PM25 {
			return o, fmt.Errorf("correction %s only applies to %s, not %s", f, aqi.PM25, o.pollutant)
		}
		o.formula = f
	}

	return o, nil
}
