package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/geodle/internal/countries"
	"github.com/robalobadob/geodle/internal/scorer"
)

func loadTable(t *testing.T) *countries.Table {
	t.Helper()
	tbl, err := countries.Load("", countries.DefaultSmallLimit)
	require.NoError(t, err)
	return tbl
}

func mustFind(t *testing.T, tbl *countries.Table, code string) countries.Country {
	t.Helper()
	c, ok := tbl.Lookup(code)
	require.True(t, ok, code)
	return c
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeCountry, m)
	assert.False(t, m.SmallPool())

	m, err = ParseMode("county")
	require.NoError(t, err)
	assert.True(t, m.SmallPool())

	_, err = ParseMode("province")
	assert.Error(t, err)
}

func TestApplyGuessWin(t *testing.T) {
	tbl := loadTable(t)
	s := NewSession("2022-04-25", ModeCountry, mustFind(t, tbl, "CF"), nil)

	g, st, err := s.ApplyGuess(mustFind(t, tbl, "TD"))
	require.NoError(t, err)
	assert.Equal(t, StatePlaying, st)
	assert.NotZero(t, g.Distance)
	assert.NotEmpty(t, g.Direction)
	assert.Equal(t, 5, s.Remaining())

	_, st, err = s.ApplyGuess(mustFind(t, tbl, "TD"))
	assert.ErrorIs(t, err, ErrDuplicateGuess)
	assert.Equal(t, StatePlaying, st)
	assert.Len(t, s.Guesses, 1)

	g, st, err = s.ApplyGuess(mustFind(t, tbl, "CF"))
	require.NoError(t, err)
	assert.Equal(t, StateWon, st)
	assert.True(t, g.Correct())
	assert.Empty(t, g.Direction)
	assert.True(t, s.Finished())
	assert.Zero(t, s.Remaining())

	_, st, err = s.ApplyGuess(mustFind(t, tbl, "FR"))
	assert.ErrorIs(t, err, ErrFinished)
	assert.Equal(t, StateWon, st)
}

func TestApplyGuessLoses(t *testing.T) {
	tbl := loadTable(t)
	s := NewSession("2022-04-25", ModeCountry, mustFind(t, tbl, "CF"), nil)

	for i, code := range []string{"FR", "DE", "CN", "US", "BR"} {
		_, st, err := s.ApplyGuess(mustFind(t, tbl, code))
		require.NoError(t, err)
		assert.Equal(t, StatePlaying, st, "guess %d", i+1)
	}
	_, st, err := s.ApplyGuess(mustFind(t, tbl, "JP"))
	require.NoError(t, err)
	assert.Equal(t, StateLost, st)

	_, _, err = s.ApplyGuess(mustFind(t, tbl, "CF"))
	assert.ErrorIs(t, err, ErrFinished)
}

func TestNewSessionCopiesPrior(t *testing.T) {
	tbl := loadTable(t)
	target := mustFind(t, tbl, "CF")
	prior := []scorer.Guess{scorer.NewGuess(target, mustFind(t, tbl, "FR"))}

	s := NewSession("2022-04-25", ModeCountry, target, prior)
	_, _, err := s.ApplyGuess(mustFind(t, tbl, "DE"))
	require.NoError(t, err)

	assert.Len(t, prior, 1)
	assert.Len(t, s.Guesses, 2)
	assert.Equal(t, "FR", s.Guesses[0].Code)
}

func TestCustomMaxGuesses(t *testing.T) {
	tbl := loadTable(t)
	s := NewSession("2022-04-25", ModeCounty, mustFind(t, tbl, "GD"), nil)
	s.MaxGuesses = 2

	_, _, err := s.ApplyGuess(mustFind(t, tbl, "MC"))
	require.NoError(t, err)
	_, st, err := s.ApplyGuess(mustFind(t, tbl, "VA"))
	require.NoError(t, err)
	assert.Equal(t, StateLost, st)
}
