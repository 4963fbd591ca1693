package measurement

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/mtraver/airquality/aqi"
)

// TimeFormat is accepted in the timestamp column in addition to RFC 3339.
const TimeFormat = "2006-01-02T15:04:05.999999"

const (
	colTimestamp = "timestamp"
	colDevice    = "device_id"
)

// ReadCSV reads readings from CSV. The first line must be column headers.
// Recognized headers are "timestamp", "device_id", "rh", and any name
// aqi.ParsePollutant accepts; other columns are ignored. Empty cells leave the
// corresponding value unset.
func ReadCSV(r io.Reader) ([]Reading, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("measurement: CSV has no header")
	} else if err != nil {
		return nil, err
	}

	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = columnKey(h)
	}

	var readings []Reading
	for {
		line, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return readings, err
		}

		row, _ := reader.FieldPos(0)
		reading, err := lineToReading(columns, line)
		if err != nil {
			return readings, fmt.Errorf("measurement: line %d: %w", row, err)
		}
		readings = append(readings, reading)
	}

	return readings, nil
}

// columnKey maps a header to a ValueMap key, or to one of the col* names, or
// to "" for columns that are ignored.
func columnKey(h string) string {
	h = strings.TrimSpace(h)
	switch strings.ToLower(h) {
	case colTimestamp, colDevice:
		return strings.ToLower(h)
	case "rh", "humidity":
		return KeyRH
	}
	if p, err := aqi.ParsePollutant(h); err == nil {
		return p.String()
	}
	return ""
}

func lineToReading(columns []string, line []string) (Reading, error) {
	var r Reading
	for i, cell := range line {
		if i >= len(columns) || columns[i] == "" {
			continue
		}
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}

		switch columns[i] {
		case colTimestamp:
			ts, err := parseTime(cell)
			if err != nil {
				return Reading{}, err
			}
			r.Timestamp = ts
		case colDevice:
			r.DeviceID = cell
		default:
			f, err := strconv.ParseFloat(cell, 32)
			if err != nil {
				return Reading{}, err
			}
			v := float32(f)
			*r.field(columns[i]) = &v
		}
	}
	return r, nil
}

func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	return time.Parse(TimeFormat, s)
}
