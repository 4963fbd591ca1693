package measurement

import (
	"math"
)

// Mean returns the mean of each value across the readings, keyed as in
// Reading.ValueMap. Readings missing a value don't count toward its mean.
func Mean(readings []Reading) map[string]float32 {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range readings {
		for k, v := range r.ValueMap() {
			sums[k] += float64(v)
			counts[k]++
		}
	}

	means := make(map[string]float32)
	for k, v := range sums {
		means[k] = float32(v / float64(counts[k]))
	}

	return means
}

// StdDev returns the population standard deviation of each value.
func StdDev(readings []Reading) map[string]float32 {
	avg := Mean(readings)

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range readings {
		for k, v := range r.ValueMap() {
			sums[k] += math.Pow(float64(v-avg[k]), 2)
			counts[k]++
		}
	}

	devs := make(map[string]float32)
	for k, v := range sums {
		devs[k] = float32(math.Sqrt(v / float64(counts[k])))
	}

	return devs
}

func Min(readings []Reading) map[string]float32 {
	x := make(map[string]float32)
	for _, r := range readings {
		for k, v := range r.ValueMap() {
			if cur, ok := x[k]; !ok || v < cur {
				x[k] = v
			}
		}
	}

	return x
}

func Max(readings []Reading) map[string]float32 {
	x := make(map[string]float32)
	for _, r := range readings {
		for k, v := range r.ValueMap() {
			if cur, ok := x[k]; !ok || v > cur {
				x[k] = v
			}
		}
	}

	return x
}

// Average collapses readings into one Reading holding the mean of each value.
// DeviceID is kept if all readings share it, and Timestamp is the latest one.
func Average(readings []Reading) Reading {
	avg := FromValueMap(Mean(readings))
	for i, r := range readings {
		if i == 0 {
			avg.DeviceID = r.DeviceID
		} else if r.DeviceID != avg.DeviceID {
			avg.DeviceID = ""
		}
		if r.Timestamp.After(avg.Timestamp) {
			avg.Timestamp = r.Timestamp
		}
	}
	return avg
}
