// internal/store/store.go
//
// Persistence interface for players' guess lists.
//
// Guess lists are append-only: implementations must keep submission order
// and never rewrite or drop an earlier guess. Callers always receive a copy.

package store

import (
	"context"

	"github.com/robalobadob/geodle/internal/scorer"
)

// Key identifies one player's puzzle: who, which day, which mode.
type Key struct {
	Owner string
	Day   string
	Mode  string
}

// Store persists guess lists.
// Implementations may be backed by memory (this package), SQLite, etc.
type Store interface {
	// Load returns the guesses for k in submission order (empty if none).
	Load(ctx context.Context, k Key) ([]scorer.Guess, error)

	// Append adds g to the end of k's list.
	Append(ctx context.Context, k Key, g scorer.Guess) error

	// Claim moves from's guess lists to owner to. A list to already has
	// for the same day and mode is kept and from's list is left behind.
	// It returns the number of lists moved.
	Claim(ctx context.Context, from, to string) (int, error)
}
