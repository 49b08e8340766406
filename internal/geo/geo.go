// Package geo holds the distance and direction math used to score guesses.
//
// Distances follow the spherical law of cosines on a 6 378 137 m sphere and
// are rounded to whole metres; bearings are rhumb-line bearings. Shared
// results depend on these exact numbers.
package geo

import "math"

const (
	// EarthRadius is the sphere radius in metres.
	EarthRadius = 6378137.0

	// MaxDistance is the distance at or beyond which proximity is 0%.
	MaxDistance = 20_000_000.0
)

// Point is a WGS84 coordinate in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func toRad(d float64) float64 { return d * math.Pi / 180 }
func toDeg(r float64) float64 { return r * 180 / math.Pi }

// Distance returns the great-circle distance between a and b in metres.
func Distance(a, b Point) float64 {
	if a == b {
		return 0
	}
	cos := math.Sin(toRad(b.Lat))*math.Sin(toRad(a.Lat)) +
		math.Cos(toRad(b.Lat))*math.Cos(toRad(a.Lat))*math.Cos(toRad(a.Lon)-toRad(b.Lon))
	// rounding can push the cosine just outside acos' domain
	cos = math.Max(-1, math.Min(1, cos))
	return math.Round(math.Acos(cos) * EarthRadius)
}

// Bearing returns the rhumb-line bearing from a to b in degrees, [0, 360).
func Bearing(a, b Point) float64 {
	dLon := toRad(b.Lon) - toRad(a.Lon)
	dPhi := math.Log(math.Tan(toRad(b.Lat)/2+math.Pi/4) / math.Tan(toRad(a.Lat)/2+math.Pi/4))
	if math.Abs(dLon) > math.Pi {
		if dLon > 0 {
			dLon = -(2*math.Pi - dLon)
		} else {
			dLon = 2*math.Pi + dLon
		}
	}
	return math.Mod(toDeg(math.Atan2(dLon, dPhi))+360, 360)
}

// ProximityPercent maps a distance in metres onto 0..100.
// 0 m is 100; MaxDistance and beyond is 0; it never increases with distance.
func ProximityPercent(distance float64) int {
	proximity := math.Max(MaxDistance-distance, 0)
	return int(math.Floor(proximity / MaxDistance * 100))
}
