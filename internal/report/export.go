// Package report renders solar traces for humans and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/litescript/solargeo/internal/trace"
)

// TraceExport is the JSON-serializable representation of a day trace.
type TraceExport struct {
	Site        SiteExport       `json:"site"`
	GeneratedAt time.Time        `json:"generated_at"`
	WindowStart time.Time        `json:"window_start"`
	WindowEnd   time.Time        `json:"window_end"`
	Sunrise     *time.Time       `json:"sunrise,omitempty"`
	Sunset      *time.Time       `json:"sunset,omitempty"`
	Stats       StatsExport      `json:"stats"`
	Points      []PointExport    `json:"points"`
	Averaged    []AveragedExport `json:"averaged"`
}

// SiteExport is a JSON-friendly site representation.
type SiteExport struct {
	Name string  `json:"name,omitempty"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	TZ   float64 `json:"tz"`
}

// PointExport is one instantaneous sample.
type PointExport struct {
	Time      time.Time `json:"time"`
	Elevation float64   `json:"elevation"`
	Azimuth   float64   `json:"azimuth"`
}

// AveragedExport is one interval-averaged elevation, bin-start labeled.
type AveragedExport struct {
	Time      time.Time `json:"time"`
	Elevation float64   `json:"elevation"`
}

// StatsExport summarizes the day's elevation range.
type StatsExport struct {
	MinElevation  float64 `json:"min_elevation"`
	MaxElevation  float64 `json:"max_elevation"`
	MeanElevation float64 `json:"mean_elevation"`
}

// ExportTrace converts a trace to its exportable form.
func ExportTrace(tr *trace.Trace) *TraceExport {
	if tr == nil {
		return &TraceExport{}
	}

	export := &TraceExport{
		Site: SiteExport{
			Name: tr.Site.Name,
			Lat:  tr.Site.Lat,
			Lon:  tr.Site.Lon,
			TZ:   tr.Site.TZ,
		},
		GeneratedAt: tr.GeneratedAt,
		WindowStart: tr.WindowStart,
		WindowEnd:   tr.WindowEnd,
		Stats: StatsExport{
			MinElevation:  tr.MinElevation,
			MaxElevation:  tr.MaxElevation,
			MeanElevation: tr.MeanElevation,
		},
	}

	if tr.HasDaylight {
		rise, set := tr.Sunrise, tr.Sunset
		export.Sunrise = &rise
		export.Sunset = &set
	}

	for _, p := range tr.Points {
		export.Points = append(export.Points, PointExport{
			Time:      p.Time,
			Elevation: p.Elevation,
			Azimuth:   p.Azimuth,
		})
	}
	for _, s := range tr.Averaged {
		export.Averaged = append(export.Averaged, AveragedExport{
			Time:      s.Time,
			Elevation: s.Elevation,
		})
	}

	return export
}

// WriteJSON writes the trace as JSON to the given writer.
func (e *TraceExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// WriteSummary writes a text summary of the day trace to the given writer:
// a header with the site and daylight window, then one row per averaging bin.
func WriteSummary(w io.Writer, tr *trace.Trace) {
	if tr == nil {
		fmt.Fprintln(w, "No trace")
		return
	}

	fmt.Fprintf(w, "Solar elevation for %s on %s\n", tr.Site, tr.WindowStart.Format("2006-01-02"))
	fmt.Fprintln(w, strings.Repeat("─", 56))

	if tr.HasDaylight {
		fmt.Fprintf(w, "Sunrise %s UTC   Sunset %s UTC   Daylight %s\n",
			tr.Sunrise.Format("15:04"), tr.Sunset.Format("15:04"), formatDuration(tr.DayLength()))
	} else {
		fmt.Fprintln(w, "Sun does not cross the horizon on this day")
	}
	fmt.Fprintf(w, "Elevation min %6.2f°   max %6.2f°   mean %6.2f°\n\n",
		tr.MinElevation, tr.MaxElevation, tr.MeanElevation)

	fmt.Fprintf(w, "%-8s %12s %12s\n", "Bin", "Avg El", "Azimuth")
	fmt.Fprintln(w, strings.Repeat("─", 36))

	for _, s := range tr.Averaged {
		az := "-"
		if p := tr.CurrentPoint(s.Time); p != nil {
			az = fmt.Sprintf("%6.1f°", p.Azimuth)
		}
		fmt.Fprintf(w, "%-8s %11.2f° %12s\n", s.Time.Format("15:04"), s.Elevation, az)
	}

	fmt.Fprintf(w, "\nTotal: %d bins, %d samples\n", len(tr.Averaged), len(tr.Points))
}

// WriteNow writes a single-line position readout.
func WriteNow(w io.Writer, tr *trace.Trace, now time.Time) {
	p := tr.CurrentPoint(now)
	if p == nil {
		fmt.Fprintln(w, "no data")
		return
	}
	fmt.Fprintf(w, "%s  %s  el %6.2f°  az %6.1f°\n",
		now.UTC().Format("15:04:05"), tr.Site, p.Elevation, p.Azimuth)
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	return fmt.Sprintf("%dh%02dm", h, m)
}
