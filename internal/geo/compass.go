package geo

import "math"

// Direction is one of the 16 compass points.
type Direction string

const (
	N   Direction = "N"
	NNE Direction = "NNE"
	NE  Direction = "NE"
	ENE Direction = "ENE"
	E   Direction = "E"
	ESE Direction = "ESE"
	SE  Direction = "SE"
	SSE Direction = "SSE"
	S   Direction = "S"
	SSW Direction = "SSW"
	SW  Direction = "SW"
	WSW Direction = "WSW"
	W   Direction = "W"
	WNW Direction = "WNW"
	NW  Direction = "NW"
	NNW Direction = "NNW"
)

var compassPoints = [16]Direction{N, NNE, NE, ENE, E, ESE, SE, SSE, S, SSW, SW, WSW, W, WNW, NW, NNW}

// Compass buckets a bearing into its 16-point direction.
// Each point covers 22.5°, centred on its nominal bearing.
func Compass(bearing float64) Direction {
	b := math.Mod(math.Mod(bearing, 360)+360, 360)
	return compassPoints[int(math.Floor((b+11.25)/22.5))%16]
}

// CompassDirection is the direction to travel from a to reach b.
// It is empty when a and b coincide.
func CompassDirection(a, b Point) Direction {
	if a == b {
		return ""
	}
	return Compass(Bearing(a, b))
}

// Valid reports whether d is one of the 16 compass points.
func (d Direction) Valid() bool {
	for _, p := range compassPoints {
		if p == d {
			return true
		}
	}
	return false
}
