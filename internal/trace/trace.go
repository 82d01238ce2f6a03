// Package trace builds solar elevation traces for an observer site.
package trace

import (
	"fmt"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/nathan-osman/go-sunrise"

	"github.com/litescript/solargeo/internal/average"
	"github.com/litescript/solargeo/internal/ephemeris"
	"github.com/litescript/solargeo/internal/sites"
)

// Point is one instantaneous solar position sample.
type Point struct {
	Time      time.Time
	Elevation float64 // degrees above horizon, refraction applied
	Azimuth   float64 // degrees clockwise from north
}

// SampleInterval is the time between instantaneous samples.
const SampleInterval = 5 * time.Minute

// Trace holds a UTC day of solar geometry for one site: instantaneous
// position samples, interval-averaged elevations, the daylight window and
// summary statistics over the day.
type Trace struct {
	Site        sites.Site
	GeneratedAt time.Time
	WindowStart time.Time
	WindowEnd   time.Time

	Points   []Point          // every SampleInterval across the window
	Averaged []average.Sample // one value per averaging step, bin-start labeled

	// Daylight window from the horizon-crossing model. HasDaylight is
	// false during polar night or polar day, when no crossing exists.
	Sunrise     time.Time
	Sunset      time.Time
	HasDaylight bool

	// Elevation statistics over the instantaneous samples.
	MinElevation  float64
	MaxElevation  float64
	MeanElevation float64
}

// BuildDay computes the trace for the UTC calendar day containing `day`.
// step is the averaging bin width; it must divide evenly into a day and
// allow at least two bins.
func BuildDay(site sites.Site, day time.Time, step time.Duration) (*Trace, error) {
	if step <= 0 || step > 12*time.Hour {
		return nil, fmt.Errorf("averaging step %v out of range (0, 12h]", step)
	}
	if (24*time.Hour)%step != 0 {
		return nil, fmt.Errorf("averaging step %v does not divide a day evenly", step)
	}

	day = day.UTC()
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	tr := &Trace{
		Site:        site,
		GeneratedAt: day,
		WindowStart: start,
		WindowEnd:   end,
	}

	// Instantaneous samples, refraction on: these feed the display.
	var elevations []float64
	for t := start; t.Before(end); t = t.Add(SampleInterval) {
		pos := ephemeris.SolarAt(t, site.Lat, site.Lon, true)
		tr.Points = append(tr.Points, Point{
			Time:      t,
			Elevation: pos.Elevation,
			Azimuth:   pos.Azimuth,
		})
		elevations = append(elevations, pos.Elevation)
	}

	// Interval-averaged elevations on the coarse grid. The generated
	// stamps are UTC, so no timezone shift applies here.
	coarse := make([]time.Time, int((24*time.Hour)/step))
	for i := range coarse {
		coarse[i] = start.Add(time.Duration(i) * step)
	}
	averaged, err := average.Elevations(coarse, site.Lat, site.Lon, 0, average.RefBeginning)
	if err != nil {
		return nil, fmt.Errorf("average elevations: %w", err)
	}
	tr.Averaged = averaged

	rise, set := sunrise.SunriseSunset(site.Lat, site.Lon, start.Year(), start.Month(), start.Day())
	if !rise.IsZero() && !set.IsZero() {
		tr.Sunrise = rise.UTC()
		tr.Sunset = set.UTC()
		tr.HasDaylight = true
	}

	if tr.MinElevation, err = stats.Min(elevations); err != nil {
		return nil, fmt.Errorf("trace stats: %w", err)
	}
	if tr.MaxElevation, err = stats.Max(elevations); err != nil {
		return nil, fmt.Errorf("trace stats: %w", err)
	}
	if tr.MeanElevation, err = stats.Mean(elevations); err != nil {
		return nil, fmt.Errorf("trace stats: %w", err)
	}

	return tr, nil
}

// CurrentPoint returns the sample closest to the given time, or nil when the
// trace is empty.
func (t *Trace) CurrentPoint(now time.Time) *Point {
	if len(t.Points) == 0 {
		return nil
	}

	closest := &t.Points[0]
	minDelta := absDuration(t.Points[0].Time.Sub(now))
	for i := 1; i < len(t.Points); i++ {
		if d := absDuration(t.Points[i].Time.Sub(now)); d < minDelta {
			minDelta = d
			closest = &t.Points[i]
		}
	}
	return closest
}

// DayLength returns the daylight duration, or zero when the sun never
// crosses the horizon on this day.
func (t *Trace) DayLength() time.Duration {
	if !t.HasDaylight {
		return 0
	}
	return t.Sunset.Sub(t.Sunrise)
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
