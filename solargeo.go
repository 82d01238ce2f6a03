// Package solargeo computes solar geometry: the apparent position of the Sun
// (elevation, azimuth, earth-sun distance) for a time and place, and
// time-averaged elevation angles over the intervals of a sampled series.
//
// Two operations make up the public API:
//
//   - Sunae evaluates the solar position element-wise for vectors of
//     (year, day-of-year, decimal UTC hour).
//   - AvgEl averages the elevation angle over each interval of a uniform
//     time series, working in sine space where irradiance is linear.
//
// Both are pure functions of their inputs.
package solargeo

import (
	"fmt"
	"time"

	"github.com/litescript/solargeo/internal/average"
	"github.com/litescript/solargeo/internal/ephemeris"
)

// Position is the apparent solar position for a single instant.
type Position struct {
	Elevation float64 // degrees above the local horizon
	Azimuth   float64 // degrees clockwise from north, [0, 360)
	Distance  float64 // earth-sun distance in astronomical units
}

// Reference states where an averaged value's timestamp sits within its
// averaging interval.
type Reference string

const (
	// RefBeginning - timestamps label the start of each interval.
	RefBeginning Reference = average.RefBeginning

	// RefMiddle - timestamps label the middle of each interval.
	RefMiddle Reference = average.RefMiddle

	// RefEnd - timestamps label the end of each interval.
	RefEnd Reference = average.RefEnd
)

// Errors returned by AvgEl. Wrapped values are matchable with errors.Is.
var (
	ErrUnknownReference = average.ErrUnknownReference
	ErrShortSeries      = average.ErrShortSeries
	ErrNonUniformStep   = average.ErrNonUniformStep
)

// Sample is one averaged elevation value labeled by the start of its
// averaging interval.
type Sample struct {
	Time      time.Time
	Elevation float64 // degrees above horizon, clamped at 0
}

// Sunae computes the solar position for each element of the input vectors.
// years, days and hours must have equal length; lat (north positive) and lon
// (east positive) are shared across all elements. hours are decimal UTC
// hours with any timezone shift already applied by the caller. When
// refraction is true an empirical atmospheric correction is applied to
// elevations near the horizon.
func Sunae(years, days []int, hours []float64, lat, lon float64, refraction bool) ([]Position, error) {
	if len(years) != len(days) || len(years) != len(hours) {
		return nil, fmt.Errorf("input length mismatch: %d years, %d days, %d hours",
			len(years), len(days), len(hours))
	}

	out := make([]Position, len(years))
	for i := range years {
		p := ephemeris.Solar(years[i], days[i], hours[i], lat, lon, refraction)
		out[i] = Position(p)
	}
	return out, nil
}

// SunaeAt computes the solar position for a single instant. The time is
// converted to UTC before evaluation.
func SunaeAt(t time.Time, lat, lon float64, refraction bool) Position {
	return Position(ephemeris.SolarAt(t, lat, lon, refraction))
}

// AvgEl computes the average solar elevation angle over the interval
// associated with each timestamp of a uniformly spaced series. tz is the
// number of timezones west of UTC for series whose stamps are not already in
// UTC; ref describes whether stamps label the beginning, middle or end of
// their interval. Results are labeled by interval start and negative
// (below-horizon) averages are clamped to zero.
//
// Series shorter than two stamps, non-uniform spacing and unknown ref values
// are rejected.
func AvgEl(series []time.Time, lat, lon, tz float64, ref Reference) ([]Sample, error) {
	samples, err := average.Elevations(series, lat, lon, tz, string(ref))
	if err != nil {
		return nil, err
	}

	out := make([]Sample, len(samples))
	for i, s := range samples {
		out[i] = Sample{Time: s.Time, Elevation: s.Elevation}
	}
	return out, nil
}
