// Binary aqicalc computes US EPA Air Quality Index values from concentrations
// given on the command line or averaged from a CSV file of readings.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/mtraver/airquality/measurement"
)

// Flags.
var (
	flagSettings settings
	csvPath      string
	configPath   string
	verbose      bool
)

func init() {
	flag.StringVar(&flagSettings.Pollutant, "pollutant", "", "pollutant: o3, pm2.5, pm10, co, so2 or no2 (default pm2.5)")
	flag.StringVar(&flagSettings.Window, "window", "", "averaging window, e.g. 1h, 8h or 24h (default: the pollutant's standard window)")
	flag.StringVar(&flagSettings.Adjust, "adjust", "", "PM2.5 correction to apply first: lrapa, aqandu, epa or none")
	flag.Func("rh", "relative humidity in percent, required by -adjust epa", func(s string) error {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		flagSettings.RH = &v
		return nil
	})
	flag.BoolVar(&flagSettings.Cap, "cap", false, "report concentrations above the top of a table as 500+ instead of failing")
	flag.StringVar(&csvPath, "csv", "", "path to a CSV file of readings to average and assess")
	flag.StringVar(&configPath, "config", defaultConfigPath, "path to a TOML config file; flags override its values")
	flag.BoolVar(&verbose, "v", false, "log diagnostics to stderr")

	flag.Usage = func() {
		message := `usage: aqicalc [options] concentration...
       aqicalc [options] -csv file

Positional Arguments:
  concentration
	one or more concentrations of the chosen pollutant, already averaged
	over its window, in ppm (O3, CO), ppb (SO2, NO2) or µg/m³ (PM2.5, PM10)

The CSV file's first line must name its columns: timestamp, device_id, rh,
and any of the pollutants above. Each column is averaged and every pollutant
present is assessed on its own at its standard window, so -pollutant and
-window can't be combined with -csv. -rh is used when the file has no rh column.

Options:
`

		fmt.Fprint(flag.CommandLine.Output(), message)
		flag.PrintDefaults()
	}
}

func parseConcentrations(args []string) ([]float64, error) {
	cs := make([]float64, len(args))
	for i, a := range args {
		c, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, err
		}
		cs[i] = c
	}
	return cs, nil
}

// csvExclusive are flags that conflict with -csv, which assesses every
// pollutant in the file at its standard window.
var csvExclusive = []string{"pollutant", "window"}

func checkCSVFlags(set map[string]bool) error {
	for _, name := range csvExclusive {
		if set[name] {
			return fmt.Errorf("-%s can't be used with -csv", name)
		}
	}
	return nil
}

// assessCSV averages the readings in the file at path and writes the index of
// each pollutant present. o.rh stands in for humidity when the file has none.
func assessCSV(w io.Writer, path string, o options) error {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return err
	}

	f, err := os.Open(expanded)
	if err != nil {
		return err
	}
	defer f.Close()

	readings, err := measurement.ReadCSV(f)
	if err != nil {
		return err
	}
	if len(readings) == 0 {
		return fmt.Errorf("%s has no readings", expanded)
	}

	avg := measurement.Average(readings)
	if avg.RH == nil && o.rh != nil {
		rh := float32(*o.rh)
		avg.RH = &rh
	}
	if verbose {
		log.Printf("Averaged %d readings from %s: %v", len(readings), expanded, avg)
	}

	return reportAssessments(w, measurement.Assess(avg, o.formula), o)
}

func main() {
	flag.Parse()

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	fileSettings, err := loadConfig(configPath, !set["config"])
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if verbose {
		log.Printf("Config: %+v", fileSettings)
	}

	opts, err := merge(fileSettings, flagSettings, set).options()
	if err != nil {
		fmt.Fprintf(os.Stderr, "argument error: %v\n", err)
		os.Exit(2)
	}

	if csvPath != "" {
		if flag.NArg() != 0 {
			flag.Usage()
			os.Exit(2)
		}
		if err := checkCSVFlags(set); err != nil {
			fmt.Fprintf(os.Stderr, "argument error: %v\n", err)
			os.Exit(2)
		}
		if err := assessCSV(os.Stdout, csvPath, opts); err != nil {
			log.Fatal(err)
		}
		return
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	concentrations, err := parseConcentrations(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "argument error: %v\n", err)
		os.Exit(2)
	}

	if err := report(os.Stdout, concentrations, opts); err != nil {
		log.Fatal(err)
	}
}
