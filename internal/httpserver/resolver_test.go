package httpserver

import (
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/geodle/internal/countries"
	"github.com/robalobadob/geodle/internal/daily"
	"github.com/robalobadob/geodle/internal/game"
	"github.com/robalobadob/geodle/internal/metrics"
	"github.com/robalobadob/geodle/internal/selector"
)

func newTestResolver(t *testing.T) (*targetResolver, *metrics.Metrics) {
	t.Helper()
	tbl, err := countries.Load("", countries.DefaultSmallLimit)
	require.NoError(t, err)
	forced, err := countries.LoadForced("")
	require.NoError(t, err)
	sel, err := selector.New(selector.FromTable(tbl, forced))
	require.NoError(t, err)
	m := metrics.New(prometheus.NewRegistry())
	return newTargetResolver(sel, m), m
}

func TestResolverMemoizes(t *testing.T) {
	r, m := newTestResolver(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := r.Resolve("2022-04-25", game.ModeCountry)
			assert.NoError(t, err)
			assert.Equal(t, "CF", c.Code)
		}()
	}
	wg.Wait()

	c, err := r.Resolve("2022-04-25", game.ModeCounty)
	require.NoError(t, err)
	assert.Equal(t, "GD", c.Code)

	hits := testutil.ToFloat64(m.Resolutions.WithLabelValues("country", "true"))
	misses := testutil.ToFloat64(m.Resolutions.WithLabelValues("country", "false"))
	assert.Equal(t, 8.0, hits+misses)
	assert.GreaterOrEqual(t, misses, 1.0)
	assert.Len(t, r.cache, 2)
}

func TestResolverErrorsAreNotCached(t *testing.T) {
	r, _ := newTestResolver(t)
	_, err := r.Resolve("2022-13-01", game.ModeCountry)
	assert.ErrorIs(t, err, daily.ErrInvalidDayKey)
	assert.Empty(t, r.cache)
}
