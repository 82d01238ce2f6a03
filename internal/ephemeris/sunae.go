// Package ephemeris computes the apparent position of the Sun for a
// ground-based observer.
package ephemeris

import (
	"math"
	"time"
)

// Position is the apparent solar position for one observer and instant.
type Position struct {
	Elevation float64 // degrees above the local horizon
	Azimuth   float64 // degrees clockwise from north (0-360)
	Distance  float64 // earth-sun distance in astronomical units
}

// Solar calculates the apparent position of the Sun from the civil date and
// decimal UTC hour. Uses the Astronomical Almanac low-precision solar
// ephemeris (valid roughly 1950-2050, accuracy ~0.01 degrees).
//
// Conventions:
//   - day is the day of year (1-366)
//   - hour is the decimal UTC hour; any timezone shift must be applied by
//     the caller before the call
//   - lat is in degrees, north positive; lon in degrees, east positive
//
// When refraction is true, an empirical atmospheric refraction correction is
// added to the elevation for angles near the horizon.
func Solar(year, day int, hour, lat, lon float64, refraction bool) Position {
	// Days from J2000.0. The epoch offset folds the leap days between 1949
	// and the given year into the day count.
	delta := float64(year - 1949)
	leap := math.Floor(delta / 4)
	jd := 32916.5 + delta*365 + leap + float64(day) + hour/24
	t := jd - 51545.0

	// Mean longitude and mean anomaly of the Sun (degrees)
	mnlong := normalize360(280.460 + 0.9856474*t)
	mnanom := degToRad(normalize360(357.528 + 0.9856003*t))

	// Ecliptic longitude via the equation of center
	eclong := degToRad(normalize360(mnlong + 1.915*math.Sin(mnanom) + 0.020*math.Sin(2*mnanom)))

	// Obliquity of the ecliptic
	oblqec := degToRad(23.439 - 0.0000004*t)

	// Right ascension and declination
	ra := math.Atan2(math.Cos(oblqec)*math.Sin(eclong), math.Cos(eclong))
	if ra < 0 {
		ra += 2 * math.Pi
	}
	dec := math.Asin(math.Sin(oblqec) * math.Sin(eclong))

	// Greenwich mean sidereal time (hours), then local mean sidereal time
	gmst := normalize24(6.697375 + 0.0657098242*t + hour)
	lmst := degToRad(normalize24(gmst+lon/15) * 15)

	// Local hour angle, wrapped to (-pi, pi]
	ha := lmst - ra
	if ha < -math.Pi {
		ha += 2 * math.Pi
	}
	if ha > math.Pi {
		ha -= 2 * math.Pi
	}

	latRad := degToRad(lat)

	// Elevation from the spherical triangle between declination, latitude
	// and hour angle. Clamp guards against rounding just past |1| at the
	// poles and at the zenith.
	sinEl := math.Sin(dec)*math.Sin(latRad) + math.Cos(dec)*math.Cos(latRad)*math.Cos(ha)
	if sinEl > 1 {
		sinEl = 1
	} else if sinEl < -1 {
		sinEl = -1
	}
	elDeg := radToDeg(math.Asin(sinEl))

	// Azimuth via atan2: continuous everywhere, no division, well defined
	// at the poles and directly overhead.
	az := math.Atan2(
		-math.Cos(dec)*math.Sin(ha),
		math.Sin(dec)*math.Cos(latRad)-math.Cos(dec)*math.Sin(latRad)*math.Cos(ha),
	)
	azDeg := radToDeg(az)
	if azDeg < 0 {
		azDeg += 360
	}

	if refraction {
		elDeg += Refraction(elDeg)
	}

	// Earth-sun distance from orbital eccentricity and the anomaly
	dist := 1.00014 - 0.01671*math.Cos(mnanom) - 0.00014*math.Cos(2*mnanom)

	return Position{
		Elevation: elDeg,
		Azimuth:   azDeg,
		Distance:  dist,
	}
}

// SolarAt computes the solar position for a single instant in time.
// The time is converted to UTC before evaluation.
func SolarAt(t time.Time, lat, lon float64, refraction bool) Position {
	year, day, hour := TimeParts(t)
	return Solar(year, day, hour, lat, lon, refraction)
}

// TimeParts decomposes a time into the (year, day-of-year, decimal UTC hour)
// triple the ephemeris works in.
func TimeParts(t time.Time) (year, day int, hour float64) {
	t = t.UTC()
	hour = float64(t.Hour()) +
		float64(t.Minute())/60 +
		float64(t.Second())/3600 +
		float64(t.Nanosecond())/3600e9
	return t.Year(), t.YearDay(), hour
}

// Refraction returns the empirical atmospheric refraction correction in
// degrees for a geometric elevation under standard pressure and temperature.
// The rational approximation stays finite through the horizon; below -0.766
// degrees the Sun is geometrically hidden and the correction is zero.
func Refraction(elDeg float64) float64 {
	switch {
	case elDeg >= 19.225:
		return 0.00452 * 3.51823 / math.Tan(degToRad(elDeg))
	case elDeg > -0.766:
		return 3.51823 * (0.1594 + 0.0196*elDeg + 0.00002*elDeg*elDeg) /
			(1 + 0.505*elDeg + 0.0845*elDeg*elDeg)
	default:
		return 0
	}
}

// normalize360 normalizes an angle to 0-360 degrees.
func normalize360(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// normalize24 normalizes an hour value to 0-24.
func normalize24(h float64) float64 {
	h = math.Mod(h, 24)
	if h < 0 {
		h += 24
	}
	return h
}

// degToRad converts degrees to radians.
func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// radToDeg converts radians to degrees.
func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
