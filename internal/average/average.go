// Package average computes interval-averaged solar elevation angles.
//
// Averaging happens in sine space: the sine of the elevation is the quantity
// irradiance scales with, so averaging raw angles across an interval would
// bias the result. Instantaneous elevations are sampled on a fine grid,
// converted to sines, averaged per coarse bin and converted back.
package average

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/litescript/solargeo/internal/ephemeris"
)

// Reference literals describing where a bin's timestamp sits in its
// averaging interval.
const (
	RefBeginning = "BEG"
	RefMiddle    = "MID"
	RefEnd       = "END"
)

// FineStep is the sub-sampling cadence used for the numerical integration
// within each averaging bin.
const FineStep = 5 * time.Minute

var (
	// ErrUnknownReference is returned for a reference literal other than
	// BEG, MID or END.
	ErrUnknownReference = errors.New("unrecognized reference option")

	// ErrShortSeries is returned when the series has fewer than two
	// timestamps and no step can be inferred.
	ErrShortSeries = errors.New("time series needs at least two timestamps")

	// ErrNonUniformStep is returned when the series spacing is not constant.
	// Discontinuous series are rejected rather than silently mis-binned.
	ErrNonUniformStep = errors.New("time series step is not uniform")
)

// Sample is one averaged elevation value labeled by the start of its bin.
type Sample struct {
	Time      time.Time
	Elevation float64 // degrees above horizon, clamped at 0
}

// Elevations returns the average solar elevation angle over the interval
// associated with each timestamp in the series.
//
// tz is the number of timezones west of UTC and is added to the decimal hour
// before the ephemeris is evaluated, for series whose stamps are not already
// UTC. ref states whether each stamp labels the beginning, middle or end of
// its interval; output stamps always label the beginning.
func Elevations(series []time.Time, lat, lon, tz float64, ref string) ([]Sample, error) {
	shifted, step, err := shiftToBinStart(series, ref)
	if err != nil {
		return nil, err
	}

	// Sub-sample each bin. A step shorter than the usual 5-minute cadence
	// collapses the fine grid onto the step itself so no bin is left empty.
	fine := FineStep
	if step < fine {
		fine = step
	}

	start := shifted[0]
	end := shifted[len(shifted)-1]
	bins := make([][]float64, len(shifted))

	for t := start; !t.After(end); t = t.Add(fine) {
		year, day, hour := ephemeris.TimeParts(t)
		pos := ephemeris.Solar(year, day, hour+tz, lat, lon, false)

		idx := int(t.Sub(start) / step)
		if idx >= len(bins) {
			idx = len(bins) - 1
		}
		bins[idx] = append(bins[idx], math.Sin(pos.Elevation*math.Pi/180))
	}

	out := make([]Sample, len(shifted))
	for i, bin := range bins {
		mean, err := stats.Mean(bin)
		if err != nil {
			return nil, fmt.Errorf("average bin %d: %w", i, err)
		}

		el := math.Asin(mean) * 180 / math.Pi
		if el < 0 {
			el = 0
		}
		out[i] = Sample{Time: shifted[i], Elevation: el}
	}

	return out, nil
}

// shiftToBinStart moves every timestamp to the beginning of its averaging
// interval and returns the inferred step. The series must be uniformly
// spaced with a positive step.
func shiftToBinStart(series []time.Time, ref string) ([]time.Time, time.Duration, error) {
	if len(series) < 2 {
		return nil, 0, ErrShortSeries
	}

	step := series[1].Sub(series[0])
	if step <= 0 {
		return nil, 0, fmt.Errorf("%w: step %v is not positive", ErrNonUniformStep, step)
	}
	for i := 2; i < len(series); i++ {
		if d := series[i].Sub(series[i-1]); d != step {
			return nil, 0, fmt.Errorf("%w: step %v at index %d, %v at start", ErrNonUniformStep, d, i, step)
		}
	}

	var offset time.Duration
	switch ref {
	case RefBeginning:
		offset = 0
	case RefMiddle:
		offset = step / 2
	case RefEnd:
		offset = step
	default:
		return nil, 0, fmt.Errorf("%w: %q", ErrUnknownReference, ref)
	}

	if offset == 0 {
		return series, step, nil
	}

	shifted := make([]time.Time, len(series))
	for i, t := range series {
		shifted[i] = t.Add(-offset)
	}
	return shifted, step, nil
}
