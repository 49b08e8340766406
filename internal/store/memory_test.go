package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/geodle/internal/scorer"
)

func TestMemoryAppendKeepsOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	k := Key{Owner: "u1", Day: "2022-04-25", Mode: "country"}

	got, err := s.Load(ctx, k)
	require.NoError(t, err)
	assert.Empty(t, got)

	for _, code := range []string{"FR", "DE", "TD"} {
		require.NoError(t, s.Append(ctx, k, scorer.Guess{Code: code}))
	}
	got, err = s.Load(ctx, k)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "FR", got[0].Code)
	assert.Equal(t, "TD", got[2].Code)

	other, err := s.Load(ctx, Key{Owner: "u1", Day: "2022-04-25", Mode: "county"})
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestMemoryLoadReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	k := Key{Owner: "u1", Day: "2022-04-25"}
	require.NoError(t, s.Append(ctx, k, scorer.Guess{Code: "FR"}))

	got, _ := s.Load(ctx, k)
	got[0].Code = "XX"

	again, _ := s.Load(ctx, k)
	assert.Equal(t, "FR", again[0].Code)
}

func TestMemoryConcurrentAppends(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	k := Key{Owner: "u1", Day: "2022-04-25"}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Append(ctx, k, scorer.Guess{Code: "FR"})
		}()
	}
	wg.Wait()

	got, err := s.Load(ctx, k)
	require.NoError(t, err)
	assert.Len(t, got, 50)
}

func TestMemoryClaim(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	anon := func(day string) Key { return Key{Owner: "anon", Day: day, Mode: "country"} }
	user := func(day string) Key { return Key{Owner: "user", Day: day, Mode: "country"} }

	require.NoError(t, s.Append(ctx, anon("2022-04-25"), scorer.Guess{Code: "FR", Name: "France", Distance: 1}))
	require.NoError(t, s.Append(ctx, anon("2022-04-25"), scorer.Guess{Code: "DE", Name: "Germany", Distance: 2}))
	require.NoError(t, s.Append(ctx, anon("2022-04-26"), scorer.Guess{Code: "ML", Name: "Mali"}))
	require.NoError(t, s.Append(ctx, user("2022-04-26"), scorer.Guess{Code: "TD", Name: "Chad", Distance: 3}))

	moved, err := s.Claim(ctx, "anon", "user")
	require.NoError(t, err)
	assert.Equal(t, 1, moved)

	got, err := s.Load(ctx, user("2022-04-25"))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "FR", got[0].Code)
	assert.Equal(t, "DE", got[1].Code)

	left, err := s.Load(ctx, anon("2022-04-25"))
	require.NoError(t, err)
	assert.Empty(t, left)

	kept, err := s.Load(ctx, user("2022-04-26"))
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, "TD", kept[0].Code, "existing list is not merged")

	n, err := s.Claim(ctx, "anon", "")
	require.NoError(t, err)
	assert.Zero(t, n)
}
