// Package selector resolves the target country for a puzzle day.
//
// Resolution replays every day from a fixed epoch up to the requested day,
// carrying a small accumulator (cooldown, last pick) through the replay. The
// replay is the contract: the pick for any day depends on the seeded index
// formula, the previous-day stability check and the forced-day table, and
// changing any of them changes which target past days had.
//
// A Selector holds only immutable configuration and is safe for concurrent use.
package selector

import (
	"errors"
	"fmt"
	"time"

	"github.com/robalobadob/geodle/internal/countries"
	"github.com/robalobadob/geodle/internal/daily"
)

// Defaults taken from the first published season.
const (
	DefaultEpoch        = "2022-03-21"
	DefaultCooldownDays = 7
	DefaultSeedSuffix   = "114514"
	DefaultMaxAttempts  = 64
)

// ErrEmptyPool means the requested pool has no targets. It is a
// configuration error, not something a caller can retry.
var ErrEmptyPool = errors.New("selector: selection pool is empty")

// Config is the static data a Selector is built from.
type Config struct {
	// Epoch is the first day of the replay.
	Epoch time.Time

	// Targets resolves forced codes; it usually holds both pools.
	Targets []countries.Country
	// Ordinary and Small are the two selection pools, in index order.
	Ordinary []countries.Country
	Small    []countries.Country

	// Forced maps a day key to the code that day must use.
	Forced map[string]string

	SmallLimit   float64
	CooldownDays int
	SeedSuffix   string
	MaxAttempts  int
}

// FromTable fills a Config from loaded reference data with default tuning.
func FromTable(t *countries.Table, forced map[string]string) Config {
	return Config{
		Epoch:        daily.MustParse(DefaultEpoch),
		Targets:      t.All(),
		Ordinary:     t.Ordinary(),
		Small:        t.Small(),
		Forced:       forced,
		SmallLimit:   t.SmallLimit(),
		CooldownDays: DefaultCooldownDays,
		SeedSuffix:   DefaultSeedSuffix,
		MaxAttempts:  DefaultMaxAttempts,
	}
}

// Selector picks one target per day.
type Selector struct {
	epoch      time.Time
	ordinary   []countries.Country
	small      []countries.Country
	forced     map[string]countries.Country
	smallLimit float64
	cooldown   int
	suffix     string
	attempts   int
}

// New validates cfg and builds a Selector. Forced codes that match no target
// are dropped here, so those days fall back to the seeded pick.
func New(cfg Config) (*Selector, error) {
	if cfg.Epoch.IsZero() {
		return nil, errors.New("selector: epoch is not set")
	}
	if len(cfg.Ordinary) == 0 && len(cfg.Small) == 0 {
		return nil, ErrEmptyPool
	}
	if cfg.SmallLimit <= 0 {
		cfg.SmallLimit = countries.DefaultSmallLimit
	}
	if cfg.CooldownDays <= 0 {
		cfg.CooldownDays = DefaultCooldownDays
	}
	if cfg.SeedSuffix == "" {
		cfg.SeedSuffix = DefaultSeedSuffix
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}

	byCode := make(map[string]countries.Country, len(cfg.Targets))
	for _, c := range cfg.Targets {
		byCode[c.Code] = c
	}
	forced := make(map[string]countries.Country, len(cfg.Forced))
	for day, code := range cfg.Forced {
		if _, err := daily.Parse(day); err != nil {
			return nil, fmt.Errorf("selector: forced day: %w", err)
		}
		if c, ok := byCode[code]; ok {
			forced[day] = c
		}
	}

	return &Selector{
		epoch:      cfg.Epoch.UTC().Truncate(24 * time.Hour),
		ordinary:   cfg.Ordinary,
		small:      cfg.Small,
		forced:     forced,
		smallLimit: cfg.SmallLimit,
		cooldown:   cfg.CooldownDays,
		suffix:     cfg.SeedSuffix,
		attempts:   cfg.MaxAttempts,
	}, nil
}

// Epoch returns the first replayed day.
func (s *Selector) Epoch() time.Time { return s.epoch }

// Resolve returns the target for day. useSmallPool picks the small-area pool.
func (s *Selector) Resolve(day string, useSmallPool bool) (countries.Country, error) {
	pick, err := s.Replay(day, useSmallPool, nil)
	if err != nil {
		return countries.Country{}, err
	}
	return pick.Target, nil
}

func (s *Selector) pool(useSmallPool bool) []countries.Country {
	if useSmallPool {
		return s.small
	}
	return s.ordinary
}
