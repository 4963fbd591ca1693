package aqi

// Breakpoint is one row of a published breakpoint table: concentrations in
// [ConcLow, ConcHigh] map linearly onto indices in [AQILow, AQIHigh].
type Breakpoint struct {
	ConcLow  float64
	ConcHigh float64
	AQILow   int
	AQIHigh  int
}

type tableKey struct {
	pollutant Pollutant
	window    Window
}

type table struct {
	rows []Breakpoint
	// Concentrations are truncated to this many decimal places before lookup.
	places int
	// Set when the range past that end of the table belongs to the same
	// pollutant's table for another averaging window.
	below Window
	above Window
}

func (t table) min() float64 { return t.rows[0].ConcLow }
func (t table) max() float64 { return t.rows[len(t.rows)-1].ConcHigh }

// Values are from the EPA Technical Assistance Document for the Reporting of
// Daily Air Quality (EPA-454/B-18-007, September 2018).
var tables = map[tableKey]table{
	{Ozone, EightHour}: {
		rows: []Breakpoint{
			{0.000, 0.054, 0, 50},
			{0.055, 0.070, 51, 100},
			{0.071, 0.085, 101, 150},
			{0.086, 0.105, 151, 200},
			{0.106, 0.200, 201, 300},
		},
		places: 3,
		above:  OneHour,
	},
	{Ozone, OneHour}: {
		rows: []Breakpoint{
			{0.125, 0.164, 101, 150},
			{0.165, 0.204, 151, 200},
			{0.205, 0.404, 201, 300},
			{0.405, 0.504, 301, 400},
			{0.505, 0.604, 401, 500},
		},
		places: 3,
		below:  EightHour,
	},
	{PM25, TwentyFourHour}: {
		rows: []Breakpoint{
			{0.0, 12.0, 0, 50},
			{12.1, 35.4, 51, 100},
			{35.5, 55.4, 101, 150},
			{55.5, 150.4, 151, 200},
			{150.5, 250.4, 201, 300},
			{250.5, 350.4, 301, 400},
			{350.5, 500.4, 401, 500},
		},
		places: 1,
	},
	{PM10, TwentyFourHour}: {
		rows: []Breakpoint{
			{0, 54, 0, 50},
			{55, 154, 51, 100},
			{155, 254, 101, 150},
			{255, 354, 151, 200},
			{355, 424, 201, 300},
			{425, 504, 301, 400},
			{505, 604, 401, 500},
		},
		places: 0,
	},
	{CO, EightHour}: {
		rows: []Breakpoint{
			{0.0, 4.4, 0, 50},
			{4.5, 9.4, 51, 100},
			{9.5, 12.4, 101, 150},
			{12.5, 15.4, 151, 200},
			{15.5, 30.4, 201, 300},
			{30.5, 40.4, 301, 400},
			{40.5, 50.4, 401, 500},
		},
		places: 1,
	},
	// 1-hour SO2 doesn't define indices of 201 and up.
	{SO2, OneHour}: {
		rows: []Breakpoint{
			{0, 35, 0, 50},
			{36, 75, 51, 100},
			{76, 185, 101, 150},
			{186, 304, 151, 200},
		},
		places: 0,
		above:  TwentyFourHour,
	},
	{SO2, TwentyFourHour}: {
		rows: []Breakpoint{
			{0, 35, 0, 50},
			{36, 75, 51, 100},
			{76, 185, 101, 150},
			{186, 304, 151, 200},
			{305, 604, 201, 300},
			{605, 804, 301, 400},
			{805, 1004, 401, 500},
		},
		places: 0,
	},
	{NO2, OneHour}: {
		rows: []Breakpoint{
			{0, 53, 0, 50},
			{54, 100, 51, 100},
			{101, 360, 101, 150},
			{361, 649, 151, 200},
			{650, 1249, 201, 300},
			{1250, 1649, 301, 400},
			{1650, 2049, 401, 500},
		},
		places: 0,
	},
}

// defaultWindows holds the averaging window used when a caller passes DefaultWindow.
var defaultWindows = map[Pollutant]Window{
	Ozone: EightHour,
	PM25:  TwentyFourHour,
	PM10:  TwentyFourHour,
	CO:    EightHour,
	SO2:   OneHour,
	NO2:   OneHour,
}

func lookupTable(p Pollutant, w Window) (Window, table, bool) {
	if w == DefaultWindow {
		var ok bool
		if w, ok = defaultWindows[p]; !ok {
			return w, table{}, false
		}
	}

	t, ok := tables[tableKey{p, w}]
	return w, t, ok
}

// Breakpoints returns a copy of the breakpoint table for the pollutant and
// averaging window. A zero window selects the pollutant's standard window.
func Breakpoints(p Pollutant, w Window) ([]Breakpoint, error) {
	w, t, ok := lookupTable(p, w)
	if !ok {
		return nil, unsupported(p, w)
	}

	rows := make([]Breakpoint, len(t.rows))
	copy(rows, t.rows)
	return rows, nil
}
