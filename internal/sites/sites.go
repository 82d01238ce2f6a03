// Package sites provides named observer locations.
package sites

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

// Site is a ground observer location.
type Site struct {
	Name string  `yaml:"name"`
	Lat  float64 `yaml:"lat"` // degrees, north positive
	Lon  float64 `yaml:"lon"` // degrees, east positive
	TZ   float64 `yaml:"tz"`  // timezones west of UTC
}

// File is the on-disk YAML layout for user-defined sites.
type File struct {
	Sites []Site `yaml:"sites"`
}

// Builtin returns the site presets shipped with the tool.
func Builtin() []Site {
	return []Site{
		{Name: "seattle", Lat: 47.6097, Lon: -122.3331, TZ: 8},
		{Name: "boulder", Lat: 40.0150, Lon: -105.2705, TZ: 7},
		{Name: "greenwich", Lat: 51.4779, Lon: -0.0015, TZ: 0},
		{Name: "canberra", Lat: -35.2809, Lon: 149.1300, TZ: -10},
		{Name: "utqiagvik", Lat: 71.2906, Lon: -156.7886, TZ: 9},
	}
}

// Lookup finds a site by name, case-insensitively. User-defined sites take
// precedence over builtins with the same name.
func Lookup(name string, extra []Site) (Site, bool) {
	for _, s := range extra {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	for _, s := range Builtin() {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Site{}, false
}

// LoadFile reads user-defined sites from a YAML file.
func LoadFile(path string) ([]Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sites file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse sites file %s: %w", path, err)
	}

	for i, s := range f.Sites {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("sites file %s, entry %d: %w", path, i, err)
		}
	}
	return f.Sites, nil
}

// Validate checks that the site's fields are usable.
func (s Site) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("site has no name")
	}
	if s.Lat < -90 || s.Lat > 90 {
		return fmt.Errorf("site %q: latitude %.4f out of [-90, 90]", s.Name, s.Lat)
	}
	if s.Lon < -180 || s.Lon > 180 {
		return fmt.Errorf("site %q: longitude %.4f out of [-180, 180]", s.Name, s.Lon)
	}
	if s.TZ < -14 || s.TZ > 14 {
		return fmt.Errorf("site %q: timezone offset %.1f out of [-14, 14]", s.Name, s.TZ)
	}
	return nil
}

// String renders the site for logs and headers.
func (s Site) String() string {
	ns := "N"
	lat := s.Lat
	if lat < 0 {
		ns = "S"
		lat = -lat
	}
	ew := "E"
	lon := s.Lon
	if lon < 0 {
		ew = "W"
		lon = -lon
	}
	if s.Name == "" {
		return fmt.Sprintf("%.4f°%s %.4f°%s", lat, ns, lon, ew)
	}
	return fmt.Sprintf("%s (%.4f°%s %.4f°%s)", s.Name, lat, ns, lon, ew)
}
