// internal/game/types.go
//
// Core type definitions for a player's daily puzzle.
// Defines:
//   - Mode: which selection pool the puzzle draws from.
//   - State: where the session stands (playing/won/lost).
//   - Session: one player's guesses against one day's target.

package game

import (
	"fmt"

	"github.com/robalobadob/geodle/internal/countries"
	"github.com/robalobadob/geodle/internal/scorer"
)

// Mode selects the target pool.
type Mode string

const (
	ModeCountry Mode = "country" // ordinary pool
	ModeCounty  Mode = "county"  // small-area pool
)

// ParseMode accepts "", "country" and "county".
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeCountry:
		return ModeCountry, nil
	case ModeCounty:
		return ModeCounty, nil
	}
	return "", fmt.Errorf("game: unknown mode %q", s)
}

// SmallPool reports whether the mode draws from the small-area pool.
func (m Mode) SmallPool() bool { return m == ModeCounty }

// State is the coarse session state.
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
	StateLost    State = "lost"
)

// Session holds one player's attempt at one day's puzzle.
type Session struct {
	Day        string            // day key
	Mode       Mode              // pool the target came from
	Target     countries.Country // the day's answer
	Guesses    []scorer.Guess    // submission order, append-only
	MaxGuesses int               // typically 6
}
