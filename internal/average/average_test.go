package average

import (
	"errors"
	"testing"
	"time"
)

// hourly builds a uniform series starting at start with n stamps spaced by step.
func hourly(start time.Time, step time.Duration, n int) []time.Time {
	series := make([]time.Time, n)
	for i := range series {
		series[i] = start.Add(time.Duration(i) * step)
	}
	return series
}

const (
	seattleLat = 47.6097
	seattleLon = 122.3331
)

func TestElevationsValidation(t *testing.T) {
	start := time.Date(2015, 9, 27, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		series  []time.Time
		ref     string
		wantErr error
	}{
		{
			name:    "Unknown reference literal",
			series:  hourly(start, time.Hour, 4),
			ref:     "FOO",
			wantErr: ErrUnknownReference,
		},
		{
			name:    "Empty reference literal",
			series:  hourly(start, time.Hour, 4),
			ref:     "",
			wantErr: ErrUnknownReference,
		},
		{
			name:    "Lowercase reference rejected",
			series:  hourly(start, time.Hour, 4),
			ref:     "beg",
			wantErr: ErrUnknownReference,
		},
		{
			name:    "Single timestamp",
			series:  hourly(start, time.Hour, 1),
			ref:     RefBeginning,
			wantErr: ErrShortSeries,
		},
		{
			name:    "Empty series",
			series:  nil,
			ref:     RefBeginning,
			wantErr: ErrShortSeries,
		},
		{
			name:    "Non-uniform spacing",
			series:  []time.Time{start, start.Add(time.Hour), start.Add(3 * time.Hour)},
			ref:     RefBeginning,
			wantErr: ErrNonUniformStep,
		},
		{
			name:    "Backwards series",
			series:  []time.Time{start.Add(time.Hour), start},
			ref:     RefBeginning,
			wantErr: ErrNonUniformStep,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Elevations(tt.series, seattleLat, seattleLon, 0, tt.ref)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Elevations() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestElevationsProperties(t *testing.T) {
	// Three years of 3-hour stamps: every output present, in range,
	// monotonically increasing and unique.
	start := time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC)
	series := hourly(start, 3*time.Hour, 3*365*8)

	got, err := Elevations(series, seattleLat, seattleLon, 0, RefBeginning)
	if err != nil {
		t.Fatalf("Elevations() error = %v", err)
	}

	if len(got) != len(series) {
		t.Fatalf("Elevations() returned %d samples, want %d", len(got), len(series))
	}

	for i, s := range got {
		if s.Elevation < 0 || s.Elevation > 90 {
			t.Fatalf("sample %d at %v: elevation %.3f out of [0, 90]", i, s.Time, s.Elevation)
		}
		if !s.Time.Equal(series[i]) {
			t.Fatalf("sample %d: time %v, want %v", i, s.Time, series[i])
		}
		if i > 0 && !got[i-1].Time.Before(s.Time) {
			t.Fatalf("sample %d: time %v not after previous %v", i, s.Time, got[i-1].Time)
		}
	}
}

func TestElevationsReferenceEquivalence(t *testing.T) {
	// An END-referenced series shifted forward by one step describes the
	// same bins as the BEG-referenced original, so the results must match.
	start := time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC)
	step := time.Hour
	beg := hourly(start, step, 24)
	end := hourly(start.Add(step), step, 24)

	gotBeg, err := Elevations(beg, seattleLat, seattleLon, 0, RefBeginning)
	if err != nil {
		t.Fatalf("Elevations(BEG) error = %v", err)
	}
	gotEnd, err := Elevations(end, seattleLat, seattleLon, 0, RefEnd)
	if err != nil {
		t.Fatalf("Elevations(END) error = %v", err)
	}

	if len(gotBeg) != len(gotEnd) {
		t.Fatalf("length mismatch: BEG %d, END %d", len(gotBeg), len(gotEnd))
	}
	for i := range gotBeg {
		if gotBeg[i] != gotEnd[i] {
			t.Errorf("sample %d: BEG %+v != END %+v", i, gotBeg[i], gotEnd[i])
		}
	}
}

func TestElevationsMidShiftsHalfStep(t *testing.T) {
	start := time.Date(2015, 6, 1, 12, 0, 0, 0, time.UTC)
	step := time.Hour
	series := hourly(start, step, 6)

	got, err := Elevations(series, seattleLat, seattleLon, 0, RefMiddle)
	if err != nil {
		t.Fatalf("Elevations(MID) error = %v", err)
	}

	for i, s := range got {
		want := series[i].Add(-step / 2)
		if !s.Time.Equal(want) {
			t.Errorf("sample %d: time %v, want %v", i, s.Time, want)
		}
	}
}

func TestElevationsNightClampedToZero(t *testing.T) {
	// Longitude 0, local midnight hours: the sun is well below the horizon
	// and every averaged value must clamp to exactly zero.
	start := time.Date(2015, 3, 21, 0, 0, 0, 0, time.UTC)
	series := hourly(start, time.Hour, 3)

	got, err := Elevations(series, 50, 0, 0, RefBeginning)
	if err != nil {
		t.Fatalf("Elevations() error = %v", err)
	}
	for i, s := range got {
		if s.Elevation != 0 {
			t.Errorf("sample %d at %v: elevation %.3f, want 0 (sun below horizon)", i, s.Time, s.Elevation)
		}
	}
}

func TestElevationsStepBelowFineCadence(t *testing.T) {
	// A 1-minute step is finer than the usual 5-minute integration grid;
	// the grid collapses onto the step and no bin may come back empty.
	start := time.Date(2015, 6, 1, 12, 0, 0, 0, time.UTC)
	series := hourly(start, time.Minute, 30)

	got, err := Elevations(series, 0, 0, 0, RefBeginning)
	if err != nil {
		t.Fatalf("Elevations() error = %v", err)
	}
	if len(got) != len(series) {
		t.Fatalf("Elevations() returned %d samples, want %d", len(got), len(series))
	}
}

func TestElevationsTimezoneOffset(t *testing.T) {
	// Stamps recorded in a zone 8 hours west of UTC with tz=8 must match
	// the same instants expressed directly in UTC with tz=0.
	startLocal := time.Date(2015, 6, 1, 4, 0, 0, 0, time.UTC) // 12:00 UTC as local-west clock
	startUTC := time.Date(2015, 6, 1, 12, 0, 0, 0, time.UTC)

	local, err := Elevations(hourly(startLocal, time.Hour, 6), seattleLat, -122.3331, 8, RefBeginning)
	if err != nil {
		t.Fatalf("Elevations(local) error = %v", err)
	}
	utc, err := Elevations(hourly(startUTC, time.Hour, 6), seattleLat, -122.3331, 0, RefBeginning)
	if err != nil {
		t.Fatalf("Elevations(utc) error = %v", err)
	}

	for i := range local {
		if local[i].Elevation != utc[i].Elevation {
			t.Errorf("sample %d: local-clock elevation %.6f != UTC elevation %.6f",
				i, local[i].Elevation, utc[i].Elevation)
		}
	}
}
