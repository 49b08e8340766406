// internal/daily/daily.go
//
// Day keys: the canonical "yyyy-MM-dd" string that identifies one puzzle.
//
// Every random choice made for a day is seeded by its key alone, so the key
// format is part of the contract. Parsing is strict: anything that does not
// format back to the same string is rejected rather than reinterpreted.

package daily

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/robalobadob/geodle/internal/seedrandom"
)

// Layout is the DayKey format.
const Layout = "2006-01-02"

// ErrInvalidDayKey is returned for strings that are not yyyy-MM-dd dates.
var ErrInvalidDayKey = errors.New("daily: invalid day key")

// DateKey returns YYYY-MM-DD for t in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format(Layout)
}

// Today returns the day key for now shifted by shift days.
func Today(now time.Time, shift int) string {
	return DateKey(now.AddDate(0, 0, shift))
}

// Parse parses a day key as midnight UTC.
func Parse(key string) (time.Time, error) {
	t, err := time.Parse(Layout, key)
	if err != nil || t.Format(Layout) != key {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDayKey, key)
	}
	return t, nil
}

// MustParse is Parse for compile-time constants; it panics on bad input.
func MustParse(key string) time.Time {
	t, err := Parse(key)
	if err != nil {
		panic(err)
	}
	return t
}

// DaysBetween returns the whole number of days from start to end, floored.
// Both are treated as calendar dates in UTC.
func DaysBetween(start, end time.Time) int {
	return int(math.Floor(end.Sub(start).Hours() / 24))
}

// DayIndex returns how many days key lies after epoch.
func DayIndex(epoch time.Time, key string) (int, error) {
	t, err := Parse(key)
	if err != nil {
		return 0, err
	}
	return DaysBetween(epoch, t), nil
}

// Rotation returns the day's image rotation in degrees [0, 360) and the
// scale that keeps the rotated square image filling its frame.
func Rotation(key string) (angle, scale float64) {
	angle = seedrandom.Float(key) * 360
	normalized := 45 - math.Mod(angle, 90)
	rad := normalized * math.Pi / 180
	scale = 1 / (math.Cos(rad) * math.Sqrt2)
	return angle, scale
}
