package ephemeris

import (
	"math"
	"testing"
	"time"
)

func TestSolarSeasons(t *testing.T) {
	// Noon UTC at the Greenwich meridian. Solar noon drifts from clock noon
	// by the equation of time, so elevations get a few degrees of slack.
	tests := []struct {
		name      string
		year, day int
		lat       float64
		wantElMin float64
		wantElMax float64
		wantAzMin float64
		wantAzMax float64
	}{
		{
			name: "Equinox noon at the equator - sun near zenith",
			year: 2024, day: 80, // Mar 20
			lat:       0,
			wantElMin: 85, wantElMax: 90,
			wantAzMin: 0, wantAzMax: 360,
		},
		{
			name: "Summer solstice noon at 50N - sun high in the south",
			year: 2024, day: 173, // Jun 21
			lat:       50,
			wantElMin: 61, wantElMax: 65,
			wantAzMin: 150, wantAzMax: 210,
		},
		{
			name: "Winter solstice noon at 50N - sun low in the south",
			year: 2024, day: 356, // Dec 21
			lat:       50,
			wantElMin: 14, wantElMax: 18,
			wantAzMin: 150, wantAzMax: 210,
		},
		{
			name: "Winter solstice noon at 80N - polar night, sun below horizon",
			year: 2024, day: 356,
			lat:       80,
			wantElMin: -90, wantElMax: 0,
			wantAzMin: 0, wantAzMax: 360,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Solar(tt.year, tt.day, 12.0, tt.lat, 0, false)

			if got.Elevation < tt.wantElMin || got.Elevation > tt.wantElMax {
				t.Errorf("Solar() elevation = %.2f°, want between %.2f° and %.2f°",
					got.Elevation, tt.wantElMin, tt.wantElMax)
			}
			if got.Azimuth < tt.wantAzMin || got.Azimuth > tt.wantAzMax {
				t.Errorf("Solar() azimuth = %.2f°, want between %.2f° and %.2f°",
					got.Azimuth, tt.wantAzMin, tt.wantAzMax)
			}
		})
	}
}

func TestSolarOutputRanges(t *testing.T) {
	// Sweep a coarse grid of places and times, including the poles, and
	// check that every output stays within its physical range.
	for _, lat := range []float64{-90, -60, -23.5, 0, 23.5, 47.6, 60, 90} {
		for _, lon := range []float64{-180, -120, 0, 122.3, 180} {
			for day := 1; day <= 365; day += 30 {
				for hour := 0.0; hour < 24; hour += 3 {
					got := Solar(2020, day, hour, lat, lon, true)

					if got.Elevation < -90 || got.Elevation > 90 {
						t.Fatalf("Solar(lat=%.1f lon=%.1f day=%d h=%.1f) elevation = %f, out of [-90, 90]",
							lat, lon, day, hour, got.Elevation)
					}
					if got.Azimuth < 0 || got.Azimuth >= 360 {
						t.Fatalf("Solar(lat=%.1f lon=%.1f day=%d h=%.1f) azimuth = %f, out of [0, 360)",
							lat, lon, day, hour, got.Azimuth)
					}
					if got.Distance < 0.98 || got.Distance > 1.02 {
						t.Fatalf("Solar(lat=%.1f lon=%.1f day=%d h=%.1f) distance = %f AU, implausible",
							lat, lon, day, hour, got.Distance)
					}
					if math.IsNaN(got.Elevation) || math.IsNaN(got.Azimuth) || math.IsNaN(got.Distance) {
						t.Fatalf("Solar(lat=%.1f lon=%.1f day=%d h=%.1f) returned NaN: %+v",
							lat, lon, day, hour, got)
					}
				}
			}
		}
	}
}

func TestSolarDistanceExtremes(t *testing.T) {
	// Perihelion in early January, aphelion in early July.
	jan := Solar(2024, 4, 0, 0, 0, false)
	jul := Solar(2024, 186, 0, 0, 0, false)

	if jan.Distance >= 1 {
		t.Errorf("January distance = %.5f AU, want < 1 (perihelion)", jan.Distance)
	}
	if jul.Distance <= 1 {
		t.Errorf("July distance = %.5f AU, want > 1 (aphelion)", jul.Distance)
	}
}

func TestSolarDeterminism(t *testing.T) {
	a := Solar(2015, 270, 19.5, 47.6097, 122.3331, true)
	b := Solar(2015, 270, 19.5, 47.6097, 122.3331, true)
	if a != b {
		t.Errorf("Solar() not deterministic: %+v != %+v", a, b)
	}
}

func TestRefraction(t *testing.T) {
	tests := []struct {
		name    string
		elDeg   float64
		wantMin float64
		wantMax float64
	}{
		{"At the horizon", 0, 0.5, 0.6},
		{"Just above horizon", 1, 0.3, 0.5},
		{"Mid elevation", 10, 0.05, 0.15},
		{"High elevation", 45, 0.005, 0.02},
		{"Near formula boundary", 19.3, 0.01, 0.06},
		{"Well below horizon", -5, 0, 0},
		{"Deep below horizon", -45, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Refraction(tt.elDeg)
			if got < tt.wantMin || got > tt.wantMax {
				t.Errorf("Refraction(%.2f) = %.4f°, want between %.4f° and %.4f°",
					tt.elDeg, got, tt.wantMin, tt.wantMax)
			}
			if math.IsNaN(got) || math.IsInf(got, 0) {
				t.Errorf("Refraction(%.2f) = %v, want finite", tt.elDeg, got)
			}
		})
	}

	// The correction must never flip the apparent elevation discontinuously:
	// scan through the horizon region looking for finite, bounded output.
	for el := -2.0; el <= 2.0; el += 0.01 {
		r := Refraction(el)
		if r < 0 || r > 1 {
			t.Fatalf("Refraction(%.2f) = %.4f, out of [0, 1]", el, r)
		}
	}
}

func TestTimeParts(t *testing.T) {
	tests := []struct {
		name     string
		time     time.Time
		wantYear int
		wantDay  int
		wantHour float64
	}{
		{
			name:     "Midnight New Year UTC",
			time:     time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC),
			wantYear: 2015, wantDay: 1, wantHour: 0,
		},
		{
			name:     "Half past noon",
			time:     time.Date(2015, 9, 27, 12, 30, 0, 0, time.UTC),
			wantYear: 2015, wantDay: 270, wantHour: 12.5,
		},
		{
			name:     "Non-UTC zone converted",
			time:     time.Date(2015, 9, 27, 2, 0, 0, 0, time.FixedZone("UTC+8", 8*3600)),
			wantYear: 2015, wantDay: 269, wantHour: 18,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			year, day, hour := TimeParts(tt.time)
			if year != tt.wantYear || day != tt.wantDay {
				t.Errorf("TimeParts() = (%d, %d), want (%d, %d)", year, day, tt.wantYear, tt.wantDay)
			}
			if math.Abs(hour-tt.wantHour) > 1e-9 {
				t.Errorf("TimeParts() hour = %f, want %f", hour, tt.wantHour)
			}
		})
	}
}

func TestSolarAtMatchesSolar(t *testing.T) {
	at := time.Date(2015, 9, 27, 19, 30, 0, 0, time.UTC)
	year, day, hour := TimeParts(at)

	a := SolarAt(at, 47.6097, -122.3331, true)
	b := Solar(year, day, hour, 47.6097, -122.3331, true)
	if a != b {
		t.Errorf("SolarAt() = %+v, Solar() = %+v, want identical", a, b)
	}
}
