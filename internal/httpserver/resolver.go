// internal/httpserver/resolver.go
//
// Memoized day→target resolution. Resolving replays every day from the
// selector's epoch, so results are cached per (day, mode) and concurrent
// misses for the same key share one replay.

package httpserver

import (
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/robalobadob/geodle/internal/countries"
	"github.com/robalobadob/geodle/internal/game"
	"github.com/robalobadob/geodle/internal/metrics"
	"github.com/robalobadob/geodle/internal/selector"
)

// maxCachedTargets bounds the cache; it is cleared when full.
const maxCachedTargets = 1024

type targetResolver struct {
	sel     *selector.Selector
	metrics *metrics.Metrics
	group   singleflight.Group

	mu    sync.RWMutex
	cache map[string]countries.Country
}

func newTargetResolver(sel *selector.Selector, m *metrics.Metrics) *targetResolver {
	return &targetResolver{sel: sel, metrics: m, cache: make(map[string]countries.Country)}
}

// Resolve returns the target of day in mode.
func (t *targetResolver) Resolve(day string, mode game.Mode) (countries.Country, error) {
	key := day + "|" + string(mode)

	t.mu.RLock()
	c, ok := t.cache[key]
	t.mu.RUnlock()
	if ok {
		t.metrics.Resolutions.WithLabelValues(string(mode), strconv.FormatBool(true)).Inc()
		return c, nil
	}

	v, err, _ := t.group.Do(key, func() (any, error) {
		start := time.Now()
		c, err := t.sel.Resolve(day, mode.SmallPool())
		t.metrics.ResolveSeconds.WithLabelValues(string(mode)).Observe(time.Since(start).Seconds())
		if err != nil {
			return nil, err
		}
		t.mu.Lock()
		if len(t.cache) >= maxCachedTargets {
			t.cache = make(map[string]countries.Country)
		}
		t.cache[key] = c
		t.mu.Unlock()
		return c, nil
	})
	if err != nil {
		return countries.Country{}, err
	}
	t.metrics.Resolutions.WithLabelValues(string(mode), strconv.FormatBool(false)).Inc()
	return v.(countries.Country), nil
}
