// internal/game/engine.go
//
// Game engine for a single daily session.
// Responsibilities:
//   - Rebuild a session from previously stored guesses.
//   - Validate and apply guesses (not finished, not repeated).
//   - Score guesses with the scorer package.
//   - Track state transitions: playing → won/lost.
//
// Sessions never mutate a guess list they were handed; they keep a copy.
package game

import (
	"errors"

	"github.com/robalobadob/geodle/internal/countries"
	"github.com/robalobadob/geodle/internal/scorer"
)

const defaultMaxGuesses = scorer.DefaultMaxGuesses

var (
	// ErrFinished is returned when guessing after a win or the last guess.
	ErrFinished = errors.New("game finished")
	// ErrDuplicateGuess is returned when a country was already guessed.
	ErrDuplicateGuess = errors.New("already guessed")
)

// NewSession rebuilds a session for day/mode with prior guesses.
func NewSession(day string, mode Mode, target countries.Country, prior []scorer.Guess) *Session {
	return &Session{
		Day:        day,
		Mode:       mode,
		Target:     target,
		Guesses:    append([]scorer.Guess(nil), prior...),
		MaxGuesses: defaultMaxGuesses,
	}
}

// ApplyGuess validates and scores a guess, appending it to the session.
// Returns: the stored guess, the new state, or an error.
//
// Validation rules:
//   - Session must not be finished.
//   - The same country cannot be guessed twice.
//
// State transitions:
//   - A guess at distance 0 → won.
//   - Else if the number of guesses reaches MaxGuesses → lost.
func (s *Session) ApplyGuess(c countries.Country) (scorer.Guess, State, error) {
	if st := s.State(); st != StatePlaying {
		return scorer.Guess{}, st, ErrFinished
	}
	for _, g := range s.Guesses {
		if g.Code == c.Code {
			return scorer.Guess{}, StatePlaying, ErrDuplicateGuess
		}
	}

	g := scorer.NewGuess(s.Target, c)
	s.Guesses = append(s.Guesses, g)
	return g, s.State(), nil
}

// State reports the session state derived from its guesses.
func (s *Session) State() State {
	if won, _ := scorer.Outcome(s.Guesses); won {
		return StateWon
	}
	if len(s.Guesses) >= s.maxGuesses() {
		return StateLost
	}
	return StatePlaying
}

// Finished reports whether no more guesses are accepted.
func (s *Session) Finished() bool { return s.State() != StatePlaying }

// Remaining is the number of guesses left.
func (s *Session) Remaining() int {
	if s.Finished() {
		return 0
	}
	return s.maxGuesses() - len(s.Guesses)
}

func (s *Session) maxGuesses() int {
	if s.MaxGuesses <= 0 {
		return defaultMaxGuesses
	}
	return s.MaxGuesses
}
