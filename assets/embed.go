// Package assets embeds the static reference data and SQL migrations
// shipped with the server.
package assets

import (
	"embed"
	"encoding/json"
	"io/fs"
)

//go:embed countries.json forced.json
var FS embed.FS

//go:embed sql/*.sql
var migrations embed.FS

func readJSON(name string, v any) error {
	b, err := FS.ReadFile(name)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// CountriesJSON returns the raw embedded country table.
func CountriesJSON() ([]byte, error) {
	return FS.ReadFile("countries.json")
}

// ForcedDays returns the embedded day -> country code override table.
func ForcedDays() (map[string]string, error) {
	out := map[string]string{}
	if err := readJSON("forced.json", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Migrations returns the embedded migration files rooted at "sql".
func Migrations() fs.FS {
	sub, err := fs.Sub(migrations, "sql")
	if err != nil {
		panic(err)
	}
	return sub
}
