// Package scorer turns guesses into proximity feedback and the share text.
package scorer

import (
	"github.com/robalobadob/geodle/internal/countries"
	"github.com/robalobadob/geodle/internal/geo"
)

// Guess is one submitted answer and how far it was from the day's target.
type Guess struct {
	Code      string        `json:"code"`
	Name      string        `json:"name"`
	Distance  float64       `json:"distance"`            // metres
	Direction geo.Direction `json:"direction,omitempty"` // empty on a correct guess
}

// Result is the live feedback for a guess.
type Result struct {
	Distance  float64       `json:"distance"`
	Percent   int           `json:"percent"`
	Direction geo.Direction `json:"direction,omitempty"`
}

// Score compares guess against target. The direction points from the
// guess towards the target and is empty when they are the same place.
func Score(target, guess countries.Country) Result {
	if guess.Code == target.Code {
		return Result{Percent: 100}
	}
	d := geo.Distance(guess.Point(), target.Point())
	return Result{
		Distance:  d,
		Percent:   geo.ProximityPercent(d),
		Direction: geo.CompassDirection(guess.Point(), target.Point()),
	}
}

// NewGuess scores guess against target and packs it for storage.
func NewGuess(target, guess countries.Country) Guess {
	r := Score(target, guess)
	return Guess{Code: guess.Code, Name: guess.Name, Distance: r.Distance, Direction: r.Direction}
}

// Percent is the guess's proximity score.
func (g Guess) Percent() int { return geo.ProximityPercent(g.Distance) }

// Correct reports whether the guess hit the target.
func (g Guess) Correct() bool { return g.Distance == 0 }

// Result expands a stored guess back into live feedback.
func (g Guess) Result() Result {
	return Result{Distance: g.Distance, Percent: g.Percent(), Direction: g.Direction}
}

// Outcome reports whether the list is won (its last guess is correct) and,
// if so, how many guesses it took.
func Outcome(guesses []Guess) (won bool, count int) {
	if n := len(guesses); n > 0 && guesses[n-1].Correct() {
		return true, n
	}
	return false, 0
}

// BestPercent returns the highest proximity in guesses; ok is false when
// there are none.
func BestPercent(guesses []Guess) (best int, ok bool) {
	if len(guesses) == 0 {
		return 0, false
	}
	minDistance := guesses[0].Distance
	for _, g := range guesses[1:] {
		if g.Distance < minDistance {
			minDistance = g.Distance
		}
	}
	return geo.ProximityPercent(minDistance), true
}
