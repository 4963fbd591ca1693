package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/mtraver/airquality/aqi"
)

func floatPtr(f float64) *float64 {
	return &f
}

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "aqicalc.toml", `pollutant = "o3"
window = "1h"
cap = true
`)

	got, err := loadConfig(path, false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := settings{Pollutant: "o3", Window: "1h", Cap: true}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("Unexpected result (-got +want):\n%s", diff)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.toml")

	got, err := loadConfig(path, true)
	if err != nil {
		t.Errorf("Got error for missing optional config: %v", err)
	}
	if diff := cmp.Diff(got, settings{}); diff != "" {
		t.Errorf("Unexpected result (-got +want):\n%s", diff)
	}

	if _, err := loadConfig(path, false); err == nil {
		t.Error("Expected error for missing required config, but error is nil")
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	path := writeFile(t, "bad.toml", "pollutant = [\n")
	if _, err := loadConfig(path, false); err == nil {
		t.Error("Expected error on invalid config, but error is nil")
	}
}

func TestMerge(t *testing.T) {
	base := settings{Pollutant: "o3", Window: "1h", Adjust: "lrapa", Cap: true}
	override := settings{Pollutant: "co", Window: "8h", RH: floatPtr(40)}

	cases := []struct {
		name string
		set  map[string]bool
		want settings
	}{
		{"none_set", map[string]bool{}, base},
		{"some_set",
			map[string]bool{"pollutant": true, "cap": true, "rh": true},
			settings{Pollutant: "co", Window: "1h", Adjust: "lrapa", RH: floatPtr(40)}},
		{"unrelated_flags", map[string]bool{"csv": true, "v": true}, base},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := merge(base, override, c.set)
			if diff := cmp.Diff(got, c.want); diff != "" {
				t.Errorf("Unexpected result (-got +want):\n%s", diff)
			}
		})
	}
}

func TestOptions(t *testing.T) {
	cases := []struct {
		name  string
		s     settings
		want  options
		valid bool
	}{
		{"defaults", settings{}, options{pollutant: aqi.PM25}, true},
		{"ozone_1h", settings{Pollutant: "O3", Window: "1h"},
			options{pollutant: aqi.Ozone, window: aqi.OneHour}, true},
		{"epa", settings{Adjust: "epa", RH: floatPtr(50), Cap: true},
			options{pollutant: aqi.PM25, formula: aqi.EPA, rh: floatPtr(50), cap: true}, true},
		{"adjust_none", settings{Adjust: "none"}, options{pollutant: aqi.PM25}, true},
		{"bad_pollutant", settings{Pollutant: "pm1"}, options{}, false},
		{"bad_window", settings{Window: "eight hours"}, options{}, false},
		{"bad_formula", settings{Adjust: "purpleair"}, options{}, false},
		{"formula_not_pm25", settings{Pollutant: "co", Adjust: "lrapa"}, options{}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := c.s.options()
			if valid := err == nil; valid != c.valid {
				t.Fatalf("got valid = %t, want %t (err = %v)", valid, c.valid, err)
			}
			if !c.valid {
				return
			}
			if diff := cmp.Diff(got, c.want, cmp.AllowUnexported(options{})); diff != "" {
				t.Errorf("Unexpected result (-got +want):\n%s", diff)
			}
		})
	}
}

func TestParseConcentrations(t *testing.T) {
	got, err := parseConcentrations([]string{"12", "35.5", "0.07"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if diff := cmp.Diff(got, []float64{12, 35.5, 0.07}, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("Unexpected result (-got +want):\n%s", diff)
	}

	if _, err := parseConcentrations([]string{"12", "spam"}); err == nil {
		t.Error("Expected error on invalid input, but error is nil")
	}
}

func TestReport(t *testing.T) {
	cases := []struct {
		name string
		cs   []float64
		o    options
		want string
		err  error
	}{
		{"pm25", []float64{0, 35.5}, options{pollutant: aqi.PM25},
			"PM2.5 0 AQI 0 Good\nPM2.5 35.5 AQI 101 Unhealthy for Sensitive Groups\n", nil},
		{"ozone_1h", []float64{0.125}, options{pollutant: aqi.Ozone, window: aqi.OneHour},
			"O3 0.125 AQI 101 Unhealthy for Sensitive Groups\n", nil},
		{"lrapa", []float64{12}, options{pollutant: aqi.PM25, formula: aqi.LRAPA},
			"PM2.5 5.3 AQI 22 Good\n", nil},
		{"epa_without_rh", []float64{12}, options{pollutant: aqi.PM25, formula: aqi.EPA},
			"", aqi.ErrMissingInput},
		{"above_max", []float64{60}, options{pollutant: aqi.CO},
			"", aqi.ErrOutOfRange},
		{"above_max_capped", []float64{60}, options{pollutant: aqi.CO, cap: true},
			"CO 60 AQI 500+ Hazardous (beyond index)\n", nil},
		{"partial_failure", []float64{12, 600}, options{pollutant: aqi.PM25},
			"PM2.5 12 AQI 50 Good\n", aqi.ErrOutOfRange},
		{"unsupported_not_capped", []float64{0.3}, options{pollutant: aqi.Ozone, cap: true},
			"", aqi.ErrUnsupported},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := report(&buf, c.cs, c.o)
			if c.err == nil && err != nil {
				t.Fatalf("Unexpected error: %v", err)
			} else if !errors.Is(err, c.err) {
				t.Fatalf("got err %v, want %v", err, c.err)
			}

			if diff := cmp.Diff(buf.String(), c.want); diff != "" {
				t.Errorf("Unexpected result (-got +want):\n%s", diff)
			}
		})
	}
}

func TestAssessCSV(t *testing.T) {
	path := writeFile(t, "readings.csv", `timestamp,pm2.5,pm10,co
2018-03-25T00:00:00Z,10,50,
2018-03-25T01:00:00Z,14,60,
2018-03-25T02:00:00Z,,,60
`)

	var buf bytes.Buffer
	err := assessCSV(&buf, path, options{pollutant: aqi.PM25})
	if !errors.Is(err, aqi.ErrOutOfRange) {
		t.Errorf("got err %v, want %v", err, aqi.ErrOutOfRange)
	}

	want := "PM2.5 12 AQI 50 Good\nPM10 55 AQI 51 Moderate\n"
	if diff := cmp.Diff(buf.String(), want); diff != "" {
		t.Errorf("Unexpected result (-got +want):\n%s", diff)
	}

	buf.Reset()
	if err := assessCSV(&buf, path, options{pollutant: aqi.PM25, cap: true}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want += "CO 60 AQI 500+ Hazardous (beyond index)\n"
	if diff := cmp.Diff(buf.String(), want); diff != "" {
		t.Errorf("Unexpected result (-got +want):\n%s", diff)
	}
}

func TestAssessCSVHumidityFromFlag(t *testing.T) {
	path := writeFile(t, "readings.csv", `timestamp,pm2.5
2018-03-25T00:00:00Z,18
2018-03-25T01:00:00Z,22
`)

	var buf bytes.Buffer
	err := assessCSV(&buf, path, options{pollutant: aqi.PM25, formula: aqi.EPA})
	if !errors.Is(err, aqi.ErrMissingInput) {
		t.Errorf("got err %v, want %v", err, aqi.ErrMissingInput)
	}

	buf.Reset()
	if err := assessCSV(&buf, path, options{pollutant: aqi.PM25, formula: aqi.EPA, rh: floatPtr(50)}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := "PM2.5 11.8 AQI 49 Good\n"
	if diff := cmp.Diff(buf.String(), want); diff != "" {
		t.Errorf("Unexpected result (-got +want):\n%s", diff)
	}
}

func TestCheckCSVFlags(t *testing.T) {
	cases := []struct {
		set     map[string]bool
		wantErr bool
	}{
		{map[string]bool{}, false},
		{map[string]bool{"csv": true, "adjust": true, "rh": true, "cap": true}, false},
		{map[string]bool{"csv": true, "pollutant": true}, true},
		{map[string]bool{"csv": true, "window": true}, true},
	}

	for _, c := range cases {
		err := checkCSVFlags(c.set)
		if c.wantErr && err == nil {
			t.Errorf("%v: Expected error, but error is nil", c.set)
		} else if !c.wantErr && err != nil {
			t.Errorf("%v: Unexpected error: %v", c.set, err)
		}
	}
}

func TestAssessCSVErrors(t *testing.T) {
	if err := assessCSV(&bytes.Buffer{}, filepath.Join(t.TempDir(), "nope.csv"), options{}); err == nil {
		t.Error("Expected error for missing file, but error is nil")
	}

	path := writeFile(t, "empty.csv", "timestamp,pm2.5\n")
	if err := assessCSV(&bytes.Buffer{}, path, options{}); err == nil {
		t.Error("Expected error for file with no readings, but error is nil")
	}
}
