// internal/seedrandom/seedrandom.go
//
// Deterministic pseudo-random numbers keyed by a string seed.
//
// The generator is Johannes Baagøe's Alea, reproduced bit for bit against the
// JavaScript `seedrandom.alea` implementation: published puzzles were picked
// with that generator, so any drift here changes which target a past day had.
//
// Notes:
//   - All arithmetic is float64 to match JS Number semantics.
//   - `>>> 0` and `| 0` are emulated by toUint32 and a positive truncation.
//   - Seeds are hashed per UTF-16 code unit, as JS charCodeAt does.
//   - Generators are cheap; Float builds a fresh one per call so callers never
//     share state.

package seedrandom

import (
	"math"
	"unicode/utf16"
)

const twoPow32 = 4294967296.0

// 2^-32
const inv32 = 2.3283064365386963e-10

// Alea is a single Alea generator stream.
type Alea struct {
	s0, s1, s2 float64
	c          float64
}

// New seeds a generator with one or more seed strings, in order.
func New(seeds ...string) *Alea {
	m := newMash()
	a := &Alea{c: 1}
	a.s0 = m.hash(" ")
	a.s1 = m.hash(" ")
	a.s2 = m.hash(" ")
	for _, seed := range seeds {
		a.s0 -= m.hash(seed)
		if a.s0 < 0 {
			a.s0++
		}
		a.s1 -= m.hash(seed)
		if a.s1 < 0 {
			a.s1++
		}
		a.s2 -= m.hash(seed)
		if a.s2 < 0 {
			a.s2++
		}
	}
	return a
}

// Next returns the next value in [0, 1).
func (a *Alea) Next() float64 {
	// Explicit conversions keep the compiler from fusing into an FMA.
	t := float64(2091639*a.s0) + float64(a.c*inv32)
	a.s0 = a.s1
	a.s1 = a.s2
	// t is always positive and below 2^31, so truncation equals JS `t | 0`.
	a.c = math.Trunc(t)
	a.s2 = t - a.c
	return a.s2
}

// Float returns the first value of a generator seeded with seed.
// It is the pure seededRandom(seed) used by daily target selection.
func Float(seed string) float64 {
	return New(seed).Next()
}

// Index maps seed onto [0, n) as floor(Float(seed) * n).
func Index(seed string, n int) int {
	if n <= 0 {
		return 0
	}
	return int(math.Floor(Float(seed) * float64(n)))
}

type mash struct{ n float64 }

func newMash() *mash { return &mash{n: 0xefc8249d} }

// hash feeds data through the Mash function, one UTF-16 code unit at a time.
func (m *mash) hash(data string) float64 {
	for _, u := range utf16.Encode([]rune(data)) {
		m.n += float64(u)
		h := 0.02519603282416938 * m.n
		m.n = float64(toUint32(h))
		h -= m.n
		h *= m.n
		m.n = float64(toUint32(h))
		h -= m.n
		m.n += float64(h * twoPow32)
	}
	return float64(toUint32(m.n)) * inv32
}

// toUint32 emulates JS `x >>> 0` for non-negative finite x.
func toUint32(x float64) uint32 {
	return uint32(uint64(math.Trunc(x)) % (1 << 32))
}
