package selector

import (
	"time"

	"github.com/robalobadob/geodle/internal/countries"
	"github.com/robalobadob/geodle/internal/daily"
	"github.com/robalobadob/geodle/internal/seedrandom"
)

// DayPick is what the replay decided for one day.
type DayPick struct {
	Day      string
	Target   countries.Country
	Index    int  // seeded pool index, computed even when Forced
	Previous int  // index the previous day's key yields for the same pool
	Forced   bool // Target came from the forced-day table
	Attempts int  // seeds tried before the stability check passed
	Cooldown int  // small-target cooldown after this day
}

// state is the replay accumulator.
type state struct {
	cooldown int
	pick     DayPick
}

// Replay folds over every day from the epoch through day, calling visit
// (when non-nil) with each day's pick, and returns the final one.
//
// Every replayed day uses the pool chosen for the final day. A day before the
// epoch replays on its own, seeded with that day's key. The published game
// instead seeded such days with the epoch's key; only the forced days before
// the epoch were ever served, and they resolve the same either way.
func (s *Selector) Replay(day string, useSmallPool bool, visit func(DayPick)) (DayPick, error) {
	end, err := daily.Parse(day)
	if err != nil {
		return DayPick{}, err
	}
	pool := s.pool(useSmallPool)
	if len(pool) == 0 {
		return DayPick{}, ErrEmptyPool
	}

	cursor := s.epoch
	if end.Before(cursor) {
		cursor = end
	}
	var st state
	for ; !cursor.After(end); cursor = cursor.AddDate(0, 0, 1) {
		st = s.step(st, cursor, pool)
		if visit != nil {
			visit(st.pick)
		}
	}
	return st.pick, nil
}

// step applies one replayed day to the accumulator.
func (s *Selector) step(st state, day time.Time, pool []countries.Country) state {
	st.cooldown--

	key := daily.DateKey(day)
	prev := seedrandom.Index(daily.DateKey(day.AddDate(0, 0, -1)), len(pool))
	idx, attempts := s.stableIndex(key, prev, len(pool))

	pick := DayPick{Day: key, Index: idx, Previous: prev, Attempts: attempts, Target: pool[idx]}
	if forced, ok := s.forced[key]; ok {
		pick.Target = forced
		pick.Forced = true
	}
	if pick.Target.IsSmall(s.smallLimit) {
		st.cooldown = s.cooldown
	}
	pick.Cooldown = st.cooldown

	st.pick = pick
	return st
}

// stableIndex derives the pool index for key. While it equals prev, the
// index the previous day's plain key yields, the seed is extended with the
// suffix and retried. prev is recomputed from the key, never taken from the
// previous pick.
func (s *Selector) stableIndex(key string, prev, n int) (idx, attempts int) {
	seed := key
	for attempts = 1; ; attempts++ {
		idx = seedrandom.Index(seed, n)
		// a one-target pool can never diverge
		if idx != prev || attempts >= s.attempts {
			return idx, attempts
		}
		seed += s.suffix
	}
}
