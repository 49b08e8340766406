package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	france  = Point{Lat: 46.227638, Lon: 2.213749}
	germany = Point{Lat: 51.165691, Lon: 10.451526}
	china   = Point{Lat: 35.86166, Lon: 104.195397}
	chad    = Point{Lat: 15.454166, Lon: 18.732207}
	mexico  = Point{Lat: 23.634501, Lon: -102.552784}
	japan   = Point{Lat: 36.204824, Lon: 138.252924}
	usa     = Point{Lat: 37.09024, Lon: -95.712891}
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want float64
	}{
		{"same point", france, france, 0},
		{"france to germany", france, germany, 816743},
		{"germany to france", germany, france, 816743},
		{"china to chad", china, chad, 8617772},
		{"mexico to japan", mexico, japan, 10810230},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Distance(tt.a, tt.b))
		})
	}
}

func TestCompassDirection(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want Direction
	}{
		{"france to germany", france, germany, NE},
		{"germany to france", germany, france, SW},
		{"china to chad", china, chad, WSW},
		{"mexico to japan crosses the antimeridian westward", mexico, japan, W},
		{"japan to usa crosses the antimeridian eastward", japan, usa, E},
		{"same point", chad, chad, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompassDirection(tt.a, tt.b))
		})
	}
}

func TestCompassBuckets(t *testing.T) {
	assert.Equal(t, N, Compass(0))
	assert.Equal(t, N, Compass(11.24))
	assert.Equal(t, NNE, Compass(11.25))
	assert.Equal(t, E, Compass(90))
	assert.Equal(t, S, Compass(180))
	assert.Equal(t, NNW, Compass(348.74))
	assert.Equal(t, N, Compass(348.75))
	assert.Equal(t, N, Compass(360))
	assert.Equal(t, W, Compass(-90))
}

func TestBearingRange(t *testing.T) {
	for _, p := range []Point{germany, china, chad, mexico, japan, usa} {
		b := Bearing(france, p)
		assert.GreaterOrEqual(t, b, 0.0)
		assert.Less(t, b, 360.0)
	}
}

func TestProximityPercent(t *testing.T) {
	assert.Equal(t, 100, ProximityPercent(0))
	assert.Equal(t, 95, ProximityPercent(816743))
	assert.Equal(t, 56, ProximityPercent(8617772))
	assert.Equal(t, 50, ProximityPercent(10_000_000))
	assert.Equal(t, 0, ProximityPercent(MaxDistance))
	assert.Equal(t, 0, ProximityPercent(MaxDistance*2))

	prev := ProximityPercent(0)
	for d := 0.0; d <= MaxDistance*1.1; d += 137_531 {
		p := ProximityPercent(d)
		assert.LessOrEqual(t, p, prev, "distance %v", d)
		assert.True(t, p >= 0 && p <= 100)
		prev = p
	}
}

func TestDirectionValid(t *testing.T) {
	assert.True(t, WNW.Valid())
	assert.False(t, Direction("").Valid())
	assert.False(t, Direction("up").Valid())
}
