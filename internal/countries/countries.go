// internal/countries/countries.go
//
// Reference data for the puzzle: every guessable target and the two
// selection pools derived from it.
//
// Responsibilities:
//   - Load the country table from a file (COUNTRIES_FILE) or the embedded default.
//   - Normalize codes (trimmed, upper case) and reject duplicates or blank rows.
//   - Split targets into the ordinary pool and the small-area pool by area.
//   - Answer lookups by code or by name for guess validation.
//
// The table is immutable after Load; share it freely between goroutines.

package countries

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/robalobadob/geodle/assets"
	"github.com/robalobadob/geodle/internal/geo"
)

// DefaultSmallLimit is the area (km²) below which a target counts as small.
const DefaultSmallLimit = 500.0

// ErrUnknownCountry is returned when a code or name matches no target.
var ErrUnknownCountry = errors.New("countries: unknown country")

// Country is one puzzle target.
type Country struct {
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Area      float64 `json:"area"` // km²; 0 when unknown
}

// Point returns the country's reference coordinate.
func (c Country) Point() geo.Point {
	return geo.Point{Lat: c.Latitude, Lon: c.Longitude}
}

// IsSmall reports whether the country's known area is below limit.
// Countries without an area are never small.
func (c Country) IsSmall(limit float64) bool {
	return c.Area > 0 && c.Area < limit
}

// Table is the loaded reference data.
type Table struct {
	all      []Country
	byCode   map[string]Country
	byName   map[string]Country
	ordinary []Country
	small    []Country
	limit    float64
}

// Load reads the country table from path, or the embedded default when
// path is empty, and classifies it with smallLimit.
func Load(path string, smallLimit float64) (*Table, error) {
	var (
		b   []byte
		err error
	)
	if path != "" {
		b, err = os.ReadFile(path)
	} else {
		b, err = assets.CountriesJSON()
	}
	if err != nil {
		return nil, fmt.Errorf("countries: read: %w", err)
	}
	return Parse(b, smallLimit)
}

// Parse builds a Table from a JSON array of countries.
func Parse(b []byte, smallLimit float64) (*Table, error) {
	var list []Country
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, fmt.Errorf("countries: parse: %w", err)
	}
	return New(list, smallLimit)
}

// New validates list and builds a Table. File order is kept: pools are
// indexed by position, so reordering the data reshuffles every past day.
func New(list []Country, smallLimit float64) (*Table, error) {
	if smallLimit <= 0 {
		smallLimit = DefaultSmallLimit
	}
	t := &Table{
		byCode: make(map[string]Country, len(list)),
		byName: make(map[string]Country, len(list)),
		limit:  smallLimit,
	}
	for i, c := range list {
		c.Code = normalizeCode(c.Code)
		c.Name = strings.TrimSpace(c.Name)
		if c.Code == "" {
			return nil, fmt.Errorf("countries: entry %d: missing code", i)
		}
		if _, dup := t.byCode[c.Code]; dup {
			return nil, fmt.Errorf("countries: duplicate code %q", c.Code)
		}
		if c.Latitude < -90 || c.Latitude > 90 || c.Longitude < -180 || c.Longitude > 180 {
			return nil, fmt.Errorf("countries: %s: coordinate out of range", c.Code)
		}
		t.all = append(t.all, c)
		t.byCode[c.Code] = c
		if c.Name != "" {
			t.byName[strings.ToLower(c.Name)] = c
		}
		if c.IsSmall(smallLimit) {
			t.small = append(t.small, c)
		} else {
			t.ordinary = append(t.ordinary, c)
		}
	}
	if len(t.all) == 0 {
		return nil, errors.New("countries: table is empty")
	}
	return t, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// All returns every target in file order.
func (t *Table) All() []Country { return t.all }

// Ordinary returns the pool of targets at or above the small-area limit.
func (t *Table) Ordinary() []Country { return t.ordinary }

// Small returns the pool of targets below the small-area limit.
func (t *Table) Small() []Country { return t.small }

// SmallLimit is the area threshold the pools were split with.
func (t *Table) SmallLimit() float64 { return t.limit }

// Lookup finds a target by code (case-insensitive).
func (t *Table) Lookup(code string) (Country, bool) {
	c, ok := t.byCode[normalizeCode(code)]
	return c, ok
}

// Find resolves a player's input, trying the code first and then the name.
func (t *Table) Find(input string) (Country, error) {
	if c, ok := t.Lookup(input); ok {
		return c, nil
	}
	if c, ok := t.byName[strings.ToLower(strings.TrimSpace(input))]; ok {
		return c, nil
	}
	return Country{}, fmt.Errorf("%w: %q", ErrUnknownCountry, input)
}

// Stats returns the pool sizes: (ordinary, small).
func (t *Table) Stats() (ordinary int, small int) {
	return len(t.ordinary), len(t.small)
}
