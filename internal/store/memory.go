// internal/store/memory.go
//
// In-memory implementation of Store.
// Used for tests and for running without a database file.
//
// Characteristics:
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sync"

	"github.com/robalobadob/geodle/internal/scorer"
)

type memory struct {
	mu      sync.RWMutex           // guards guesses
	guesses map[Key][]scorer.Guess // keyed by owner/day/mode
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{guesses: make(map[Key][]scorer.Guess)}
}

func (m *memory) Load(ctx context.Context, k Key) ([]scorer.Guess, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]scorer.Guess(nil), m.guesses[k]...), nil
}

func (m *memory) Append(ctx context.Context, k Key, g scorer.Guess) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.guesses[k] = append(m.guesses[k], g)
	return nil
}

func (m *memory) Claim(ctx context.Context, from, to string) (int, error) {
	if from == "" || to == "" || from == to {
		return 0, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	moved := 0
	for k, list := range m.guesses {
		if k.Owner != from {
			continue
		}
		dst := Key{Owner: to, Day: k.Day, Mode: k.Mode}
		if len(m.guesses[dst]) > 0 {
			continue
		}
		m.guesses[dst] = list
		delete(m.guesses, k)
		moved++
	}
	return moved, nil
}
